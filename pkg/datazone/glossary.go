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

// glossaryTools exports the business glossary tools.
func (t *Toolset) glossaryTools() []toolDef {
	ro := readOnlyAnnotation()
	mut := mutatingAnnotation()

	return []toolDef{
		{
			tool: protocol.Tool{
				Name:        "datazone_create_glossary",
				Description: "Create a business glossary in a project.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("name", "string", "Name of the glossary"),
					reqProp("owningProjectIdentifier", "string", "The ID of the project that owns the glossary"),
					prop("description", "string", "Description of the glossary"),
					prop("status", "string", "ENABLED or DISABLED (defaults to ENABLED)"),
					prop("clientToken", "string", "Idempotency token"),
				),
				Annotations: mut,
			},
			handler: t.handleCreateGlossary,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_get_glossary",
				Description: "Get details of a business glossary.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("identifier", "string", "The ID of the glossary"),
				),
				Annotations: ro,
			},
			handler: t.handleGetGlossary,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_create_glossary_term",
				Description: "Create a term in a business glossary.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("glossaryIdentifier", "string", "The ID of the glossary the term belongs to"),
					reqProp("name", "string", "Name of the term"),
					prop("shortDescription", "string", "Short description of the term"),
					prop("longDescription", "string", "Long description of the term"),
					prop("status", "string", "ENABLED or DISABLED (defaults to ENABLED)"),
					prop("termRelations", "object", "Related terms, e.g. {\"classifies\": [...], \"isA\": [...]}"),
					prop("clientToken", "string", "Idempotency token"),
				),
				Annotations: mut,
			},
			handler: t.handleCreateGlossaryTerm,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_get_glossary_term",
				Description: "Get details of a glossary term.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("identifier", "string", "The ID of the glossary term"),
				),
				Annotations: ro,
			},
			handler: t.handleGetGlossaryTerm,
		},
	}
}

func (t *Toolset) handleCreateGlossary(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.CreateGlossary)
}

func (t *Toolset) handleGetGlossary(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.GetGlossary)
}

func (t *Toolset) handleCreateGlossaryTerm(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.CreateGlossaryTerm)
}

func (t *Toolset) handleGetGlossaryTerm(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.GetGlossaryTerm)
}
