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

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/datazone"
	"github.com/aws/aws-sdk-go-v2/service/datazone/types"
	"github.com/teradata-labs/datazone-mcp/pkg/mcp/protocol"
)

// environmentTools exports the environment, connection and blueprint
// tools.
func (t *Toolset) environmentTools() []toolDef {
	ro := readOnlyAnnotation()
	mut := mutatingAnnotation()

	return []toolDef{
		{
			tool: protocol.Tool{
				Name:        "datazone_list_environments",
				Description: "List environments in a project.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("projectIdentifier", "string", "The ID of the project"),
					prop("environmentProfileIdentifier", "string", "Filter by environment profile"),
					prop("environmentBlueprintIdentifier", "string", "Filter by environment blueprint"),
					prop("awsAccountId", "string", "Filter by AWS account"),
					prop("awsAccountRegion", "string", "Filter by AWS region"),
					prop("provider", "string", "Filter by environment provider"),
					prop("name", "string", "Filter by environment name"),
					prop("status", "string", "Filter by status, e.g. ACTIVE or CREATE_FAILED"),
					prop("maxResults", "integer", "Maximum number of environments to return"),
					prop("nextToken", "string", "Pagination token from a previous call"),
				),
				Annotations: ro,
			},
			handler: t.handleListEnvironments,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_get_environment",
				Description: "Get details of an environment.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("identifier", "string", "The ID of the environment"),
				),
				Annotations: ro,
			},
			handler: t.handleGetEnvironment,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_create_connection",
				Description: "Create a connection in an environment. Supports athenaProperties and iamProperties.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("name", "string", "Name of the connection"),
					reqProp("environmentIdentifier", "string", "The ID of the environment to attach the connection to"),
					prop("description", "string", "Description of the connection"),
					prop("awsLocation", "object", "Location, e.g. {\"awsAccountId\": \"...\", \"awsRegion\": \"...\"}"),
					prop("props", "object", "Connection properties keyed by kind, e.g. {\"athenaProperties\": {...}}"),
					prop("clientToken", "string", "Idempotency token"),
				),
				Annotations: mut,
			},
			handler: t.handleCreateConnection,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_get_connection",
				Description: "Get details of a connection.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("identifier", "string", "The ID of the connection"),
					prop("withSecret", "boolean", "Include connection credentials in the response"),
				),
				Annotations: ro,
			},
			handler: t.handleGetConnection,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_list_connections",
				Description: "List connections in a project.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("projectIdentifier", "string", "The ID of the project"),
					prop("environmentIdentifier", "string", "Filter by environment"),
					prop("name", "string", "Filter by connection name"),
					prop("type", "string", "Filter by connection type, e.g. ATHENA or REDSHIFT"),
					prop("sortBy", "string", "Sort field (NAME)"),
					prop("sortOrder", "string", "ASCENDING or DESCENDING"),
					prop("maxResults", "integer", "Maximum number of connections to return"),
					prop("nextToken", "string", "Pagination token from a previous call"),
				),
				Annotations: ro,
			},
			handler: t.handleListConnections,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_list_environment_blueprints",
				Description: "List environment blueprints in a domain.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					prop("managed", "boolean", "Only AWS-managed blueprints"),
					prop("name", "string", "Filter by blueprint name"),
					prop("maxResults", "integer", "Maximum number of blueprints to return"),
					prop("nextToken", "string", "Pagination token from a previous call"),
				),
				Annotations: ro,
			},
			handler: t.handleListEnvironmentBlueprints,
		},
	}
}

func (t *Toolset) handleListEnvironments(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.ListEnvironments)
}

func (t *Toolset) handleGetEnvironment(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.GetEnvironment)
}

// handleCreateConnection builds the request by hand because the SDK
// models connection properties as a union type.
func (t *Toolset) handleCreateConnection(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}

	var in struct {
		DomainIdentifier      string                     `json:"domainIdentifier"`
		Name                  string                     `json:"name"`
		EnvironmentIdentifier string                     `json:"environmentIdentifier"`
		Description           string                     `json:"description"`
		AwsLocation           *types.AwsLocation         `json:"awsLocation"`
		Props                 map[string]json.RawMessage `json:"props"`
		ClientToken           string                     `json:"clientToken"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	input := &datazone.CreateConnectionInput{
		DomainIdentifier:      aws.String(in.DomainIdentifier),
		Name:                  aws.String(in.Name),
		EnvironmentIdentifier: aws.String(in.EnvironmentIdentifier),
		AwsLocation:           in.AwsLocation,
	}
	if in.Description != "" {
		input.Description = aws.String(in.Description)
	}
	if in.ClientToken != "" {
		input.ClientToken = aws.String(in.ClientToken)
	}

	if len(in.Props) > 0 {
		props, err := connectionProperties(in.Props)
		if err != nil {
			return nil, protocol.NewError(protocol.InvalidParams, err.Error(), nil)
		}
		input.Props = props
	}

	out, err := api.CreateConnection(ctx, input)
	if err != nil {
		return nil, NormalizeError(err)
	}
	return jsonResult(out)
}

// connectionProperties decodes the props object into the matching SDK
// union member.
func connectionProperties(props map[string]json.RawMessage) (types.ConnectionPropertiesInput, error) {
	if len(props) != 1 {
		return nil, fmt.Errorf("props must contain exactly one of athenaProperties or iamProperties")
	}

	if raw, ok := props["athenaProperties"]; ok {
		var athena types.AthenaPropertiesInput
		if err := json.Unmarshal(raw, &athena); err != nil {
			return nil, fmt.Errorf("decode athenaProperties: %v", err)
		}
		return &types.ConnectionPropertiesInputMemberAthenaProperties{Value: athena}, nil
	}
	if raw, ok := props["iamProperties"]; ok {
		var iam types.IamPropertiesInput
		if err := json.Unmarshal(raw, &iam); err != nil {
			return nil, fmt.Errorf("decode iamProperties: %v", err)
		}
		return &types.ConnectionPropertiesInputMemberIamProperties{Value: iam}, nil
	}

	for kind := range props {
		return nil, fmt.Errorf("unsupported connection properties: %s", kind)
	}
	return nil, nil
}

func (t *Toolset) handleGetConnection(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.GetConnection)
}

func (t *Toolset) handleListConnections(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.ListConnections)
}

func (t *Toolset) handleListEnvironmentBlueprints(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.ListEnvironmentBlueprints)
}
