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
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/datazone"
	"github.com/teradata-labs/datazone-mcp/pkg/mcp/protocol"
	"go.uber.org/zap"
)

// toolHandler is a function that handles a specific tool call.
type toolHandler func(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error)

// toolDef pairs an MCP tool definition with its handler.
type toolDef struct {
	tool    protocol.Tool
	handler toolHandler
}

// Toolset maps the DataZone API to an MCP ToolProvider. Registration
// happens once at construction, single-threaded, before serving begins;
// the tool and handler tables are immutable afterwards.
type Toolset struct {
	client   *Client
	logger   *zap.Logger
	tools    []protocol.Tool
	handlers map[string]toolHandler
}

// NewToolset builds the toolset, registering every DataZone tool module.
// It fails if two modules export the same tool name.
func NewToolset(client *Client, logger *zap.Logger) (*Toolset, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Toolset{
		client:   client,
		logger:   logger,
		handlers: make(map[string]toolHandler),
	}

	modules := [][]toolDef{
		t.domainTools(),
		t.projectTools(),
		t.dataTools(),
		t.glossaryTools(),
		t.environmentTools(),
	}
	for _, defs := range modules {
		for _, def := range defs {
			if err := t.register(def); err != nil {
				return nil, err
			}
		}
	}

	logger.Info("DataZone toolset registered", zap.Int("tools", len(t.tools)))
	return t, nil
}

// register adds a single tool, rejecting duplicate names.
func (t *Toolset) register(def toolDef) error {
	if _, exists := t.handlers[def.tool.Name]; exists {
		return fmt.Errorf("tool %q already registered", def.tool.Name)
	}
	t.handlers[def.tool.Name] = def.handler
	t.tools = append(t.tools, def.tool)
	return nil
}

// Count returns the number of registered tools.
func (t *Toolset) Count() int {
	return len(t.tools)
}

// ListTools implements server.ToolProvider.
func (t *Toolset) ListTools(_ context.Context) ([]protocol.Tool, error) {
	return t.tools, nil
}

// CallTool implements server.ToolProvider. Unknown names and schema
// violations are invalid-params protocol errors; upstream AWS failures
// come back as normalized ToolErrors.
func (t *Toolset) CallTool(ctx context.Context, name string, args map[string]interface{}) (*protocol.CallToolResult, error) {
	handler, ok := t.handlers[name]
	if !ok {
		return nil, protocol.NewError(protocol.InvalidParams, fmt.Sprintf("unknown tool: %s", name), nil)
	}

	// The arguments field is optional on tools/call; a nil map would
	// serialize as JSON null and fail every object schema.
	if args == nil {
		args = map[string]interface{}{}
	}

	if err := protocol.ValidateToolArguments(t.toolByName(name), args); err != nil {
		return nil, protocol.NewError(protocol.InvalidParams, err.Error(), nil)
	}

	t.logger.Debug("calling tool", zap.String("tool", name))
	return handler(ctx, args)
}

func (t *Toolset) toolByName(name string) protocol.Tool {
	for _, tool := range t.tools {
		if tool.Name == name {
			return tool
		}
	}
	return protocol.Tool{}
}

// api resolves the shared DataZone client, normalizing construction errors.
func (t *Toolset) api(ctx context.Context) (API, error) {
	api, err := t.client.API(ctx)
	if err != nil {
		return nil, &ToolError{Code: CodeUnavailable, Message: ScrubCredentials(err.Error())}
	}
	return api, nil
}

// callDataZone is a generic helper that decodes tool arguments into the
// operation's input struct, invokes the operation, and returns the
// response as an MCP tool result. Argument keys use the DataZone API's
// own camelCase names; encoding/json matches them case-insensitively
// onto the SDK input fields.
func callDataZone[In, Out any](
	ctx context.Context,
	args map[string]interface{},
	op func(context.Context, *In, ...func(*datazone.Options)) (*Out, error),
) (*protocol.CallToolResult, error) {
	in := new(In)
	if len(args) > 0 {
		if err := decodeArgs(args, in); err != nil {
			return nil, err
		}
	}

	out, err := op(ctx, in)
	if err != nil {
		return nil, NormalizeError(err)
	}

	return jsonResult(out)
}

// decodeArgs round-trips an argument map through JSON into a typed value.
func decodeArgs(args map[string]interface{}, v interface{}) error {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("marshal args: %w", err)
	}
	if err := json.Unmarshal(argsJSON, v); err != nil {
		return protocol.NewError(protocol.InvalidParams, fmt.Sprintf("decode arguments: %v", err), nil)
	}
	return nil
}

// jsonResult marshals an API response as a single JSON text content item.
func jsonResult(v interface{}) (*protocol.CallToolResult, error) {
	respJSON, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			{Type: "text", Text: string(respJSON)},
		},
	}, nil
}

// ============================================================================
// Tool annotation helpers
// ============================================================================

// boolP returns a pointer to a bool value. Used for optional annotation fields.
func boolP(b bool) *bool { return &b }

// readOnlyAnnotation returns annotations for tools that only read data.
func readOnlyAnnotation() *protocol.ToolAnnotations {
	return &protocol.ToolAnnotations{
		ReadOnlyHint:    boolP(true),
		DestructiveHint: boolP(false),
		IdempotentHint:  boolP(true),
	}
}

// mutatingAnnotation returns annotations for tools that create or update data.
func mutatingAnnotation() *protocol.ToolAnnotations {
	return &protocol.ToolAnnotations{
		ReadOnlyHint:    boolP(false),
		DestructiveHint: boolP(false),
	}
}

// ============================================================================
// Schema helpers
// ============================================================================

type schemaProperty struct {
	name     string
	typ      string
	desc     string
	required bool
}

func prop(name, typ, desc string) schemaProperty {
	return schemaProperty{name: name, typ: typ, desc: desc, required: false}
}

func reqProp(name, typ, desc string) schemaProperty {
	return schemaProperty{name: name, typ: typ, desc: desc, required: true}
}

func objectSchema(props ...schemaProperty) map[string]interface{} {
	schema := map[string]interface{}{
		"type": "object",
	}

	if len(props) > 0 {
		properties := make(map[string]interface{})
		var required []string

		for _, p := range props {
			properties[p.name] = map[string]interface{}{
				"type":        p.typ,
				"description": p.desc,
			}
			if p.required {
				required = append(required, p.name)
			}
		}

		schema["properties"] = properties
		if len(required) > 0 {
			schema["required"] = required
		}
	}

	return schema
}
