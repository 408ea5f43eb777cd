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

package datazone

import (
	"context"

	"github.com/teradata-labs/datazone-mcp/pkg/mcp/protocol"
)

// projectTools exports the project management tools.
func (t *Toolset) projectTools() []toolDef {
	ro := readOnlyAnnotation()
	mut := mutatingAnnotation()

	return []toolDef{
		{
			tool: protocol.Tool{
				Name:        "datazone_create_project",
				Description: "Create a project in an Amazon DataZone domain.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain where the project is created"),
					reqProp("name", "string", "Name of the project"),
					prop("description", "string", "Description of the project"),
					prop("domainUnitId", "string", "The ID of the domain unit that owns the project"),
				),
				Annotations: mut,
			},
			handler: t.handleCreateProject,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_get_project",
				Description: "Get details of a project in an Amazon DataZone domain.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("identifier", "string", "The ID of the project"),
				),
				Annotations: ro,
			},
			handler: t.handleGetProject,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_list_projects",
				Description: "List projects in an Amazon DataZone domain.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					prop("name", "string", "Filter projects by name"),
					prop("userIdentifier", "string", "Filter projects by member user"),
					prop("groupIdentifier", "string", "Filter projects by member group"),
					prop("maxResults", "integer", "Maximum number of projects to return (1-50)"),
					prop("nextToken", "string", "Pagination token from a previous call"),
				),
				Annotations: ro,
			},
			handler: t.handleListProjects,
		},
	}
}

func (t *Toolset) handleCreateProject(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.CreateProject)
}

func (t *Toolset) handleGetProject(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.GetProject)
}

func (t *Toolset) handleListProjects(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.ListProjects)
}
