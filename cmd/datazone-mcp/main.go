// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// datazone-mcp is an MCP (Model Context Protocol) server that exposes Amazon
// DataZone operations as tools.
//
// It communicates with MCP clients (like Claude Desktop, VS Code) over stdio
// JSON-RPC by default, or over streamable HTTP with --transport http. AWS
// credentials are resolved through the standard SDK chain (environment,
// shared config profile, instance role).
//
// Usage:
//
//	datazone-mcp --aws-region us-east-1
//
// Claude Desktop configuration (claude_desktop_config.json):
//
//	{
//	  "mcpServers": {
//	    "datazone": {
//	      "command": "/path/to/datazone-mcp",
//	      "args": ["--aws-region", "us-east-1"]
//	    }
//	  }
//	}
package main

func main() {
	Execute()
}
