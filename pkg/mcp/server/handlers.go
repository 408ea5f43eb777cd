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

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/teradata-labs/datazone-mcp/pkg/mcp/protocol"
)

// newToolsListHandler creates a handler for tools/list.
func newToolsListHandler(provider ToolProvider) MethodHandler {
	return func(ctx context.Context, _ json.RawMessage, _ json.RawMessage) (interface{}, error) {
		tools, err := provider.ListTools(ctx)
		if err != nil {
			return nil, fmt.Errorf("list tools: %w", err)
		}
		return protocol.ToolListResult{Tools: tools}, nil
	}
}

// newToolsCallHandler creates a handler for tools/call.
// Protocol-level failures (unknown tool, invalid arguments) surface as
// JSON-RPC errors; tool execution failures surface as isError results so
// the model can see and react to them.
func newToolsCallHandler(provider ToolProvider) MethodHandler {
	return func(ctx context.Context, _ json.RawMessage, params json.RawMessage) (interface{}, error) {
		var callParams protocol.CallToolParams
		if err := json.Unmarshal(params, &callParams); err != nil {
			return nil, protocol.NewError(protocol.InvalidParams, fmt.Sprintf("invalid tool call params: %v", err), nil)
		}

		if callParams.Name == "" {
			return nil, protocol.NewError(protocol.InvalidParams, "tool name is required", nil)
		}

		result, err := provider.CallTool(ctx, callParams.Name, callParams.Arguments)
		if err != nil {
			var rpcErr *protocol.Error
			if errors.As(err, &rpcErr) {
				return nil, rpcErr
			}
			// Return the error as an MCP tool error result (isError: true)
			return &protocol.CallToolResult{
				Content: []protocol.Content{
					{Type: "text", Text: err.Error()},
				},
				IsError: true,
			}, nil
		}

		return result, nil
	}
}
