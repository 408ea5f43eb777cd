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
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/datazone"
	"github.com/aws/aws-sdk-go-v2/service/datazone/types"
	"github.com/teradata-labs/datazone-mcp/pkg/mcp/protocol"
)

// domainTools exports the domain management tools.
func (t *Toolset) domainTools() []toolDef {
	ro := readOnlyAnnotation()
	mut := mutatingAnnotation()

	return []toolDef{
		{
			tool: protocol.Tool{
				Name:        "datazone_get_domain",
				Description: "Get details of an Amazon DataZone domain.",
				InputSchema: objectSchema(
					reqProp("identifier", "string", "The ID of the domain to retrieve"),
				),
				Annotations: ro,
			},
			handler: t.handleGetDomain,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_create_domain",
				Description: "Create a new Amazon DataZone domain.",
				InputSchema: objectSchema(
					reqProp("name", "string", "Name of the domain"),
					reqProp("domainExecutionRole", "string", "ARN of the domain execution role"),
					prop("description", "string", "Description of the domain"),
					prop("serviceRole", "string", "ARN of the service role (required for V2 domains)"),
					prop("kmsKeyIdentifier", "string", "KMS key used to encrypt customer data in the domain"),
					prop("domainVersion", "string", "Domain version (V1 or V2)"),
					prop("clientToken", "string", "Idempotency token"),
				),
				Annotations: mut,
			},
			handler: t.handleCreateDomain,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_list_domains",
				Description: "List Amazon DataZone domains in the account.",
				InputSchema: objectSchema(
					prop("maxResults", "integer", "Maximum number of domains to return (1-25)"),
					prop("nextToken", "string", "Pagination token from a previous call"),
					prop("status", "string", "Filter by domain status (e.g. AVAILABLE, CREATING)"),
				),
				Annotations: ro,
			},
			handler: t.handleListDomains,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_list_domain_units",
				Description: "List child domain units for a parent domain unit.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("parentDomainUnitIdentifier", "string", "The ID of the parent domain unit"),
					prop("maxResults", "integer", "Maximum number of domain units to return"),
					prop("nextToken", "string", "Pagination token from a previous call"),
				),
				Annotations: ro,
			},
			handler: t.handleListDomainUnits,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_create_domain_unit",
				Description: "Create a domain unit within an Amazon DataZone domain.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("name", "string", "Name of the domain unit"),
					reqProp("parentDomainUnitIdentifier", "string", "The ID of the parent domain unit"),
					prop("description", "string", "Description of the domain unit"),
					prop("clientToken", "string", "Idempotency token"),
				),
				Annotations: mut,
			},
			handler: t.handleCreateDomainUnit,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_get_domain_unit",
				Description: "Get details of a domain unit.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("identifier", "string", "The ID of the domain unit"),
				),
				Annotations: ro,
			},
			handler: t.handleGetDomainUnit,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_search",
				Description: "Search assets, glossaries, glossary terms or data products in a domain.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain to search"),
					reqProp("searchScope", "string", "Search scope: ASSET, GLOSSARY, GLOSSARY_TERM or DATA_PRODUCT"),
					prop("searchText", "string", "Free-text search query"),
					prop("owningProjectIdentifier", "string", "Restrict results to a single owning project"),
					prop("maxResults", "integer", "Maximum number of results to return (1-50)"),
					prop("nextToken", "string", "Pagination token from a previous call"),
				),
				Annotations: ro,
			},
			handler: t.handleSearch,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_add_policy_grant",
				Description: "Add a policy grant to an entity (such as a domain unit) for a user, group, project or domain unit principal.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("entityType", "string", "Target entity type: DOMAIN_UNIT, ENVIRONMENT_BLUEPRINT_CONFIGURATION or ENVIRONMENT_PROFILE"),
					reqProp("entityIdentifier", "string", "The ID of the entity the grant is attached to"),
					reqProp("policyType", "string", "Managed policy type, e.g. CREATE_PROJECT or OVERRIDE_DOMAIN_UNIT_OWNERS"),
					prop("userIdentifier", "string", "User principal to grant the policy to"),
					prop("groupIdentifier", "string", "Group principal to grant the policy to"),
					prop("projectIdentifier", "string", "Project principal to grant the policy to"),
					prop("domainUnitIdentifier", "string", "Domain unit principal to grant the policy to"),
					prop("includeChildDomainUnits", "boolean", "Whether the grant cascades to child domain units"),
					prop("clientToken", "string", "Idempotency token"),
				),
				Annotations: mut,
			},
			handler: t.handleAddPolicyGrant,
		},
	}
}

func (t *Toolset) handleGetDomain(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.GetDomain)
}

func (t *Toolset) handleCreateDomain(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.CreateDomain)
}

func (t *Toolset) handleListDomains(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.ListDomains)
}

func (t *Toolset) handleListDomainUnits(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.ListDomainUnitsForParent)
}

func (t *Toolset) handleCreateDomainUnit(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.CreateDomainUnit)
}

func (t *Toolset) handleGetDomainUnit(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.GetDomainUnit)
}

func (t *Toolset) handleSearch(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.Search)
}

// handleAddPolicyGrant builds the AddPolicyGrant request by hand because
// the SDK models the principal and grant detail as union types that
// cannot be decoded from flat JSON arguments.
func (t *Toolset) handleAddPolicyGrant(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}

	var in struct {
		DomainIdentifier        string `json:"domainIdentifier"`
		EntityType              string `json:"entityType"`
		EntityIdentifier        string `json:"entityIdentifier"`
		PolicyType              string `json:"policyType"`
		UserIdentifier          string `json:"userIdentifier"`
		GroupIdentifier         string `json:"groupIdentifier"`
		ProjectIdentifier       string `json:"projectIdentifier"`
		DomainUnitIdentifier    string `json:"domainUnitIdentifier"`
		IncludeChildDomainUnits bool   `json:"includeChildDomainUnits"`
		ClientToken             string `json:"clientToken"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	principal, err := policyGrantPrincipal(in.UserIdentifier, in.GroupIdentifier, in.ProjectIdentifier, in.DomainUnitIdentifier)
	if err != nil {
		return nil, protocol.NewError(protocol.InvalidParams, err.Error(), nil)
	}

	detail, err := policyGrantDetail(types.ManagedPolicyType(in.PolicyType), in.IncludeChildDomainUnits)
	if err != nil {
		return nil, protocol.NewError(protocol.InvalidParams, err.Error(), nil)
	}

	input := &datazone.AddPolicyGrantInput{
		DomainIdentifier: aws.String(in.DomainIdentifier),
		EntityType:       types.TargetEntityType(in.EntityType),
		EntityIdentifier: aws.String(in.EntityIdentifier),
		PolicyType:       types.ManagedPolicyType(in.PolicyType),
		Principal:        principal,
		Detail:           detail,
	}
	if in.ClientToken != "" {
		input.ClientToken = aws.String(in.ClientToken)
	}

	out, err := api.AddPolicyGrant(ctx, input)
	if err != nil {
		return nil, NormalizeError(err)
	}
	return jsonResult(out)
}

// policyGrantPrincipal maps exactly one of the principal identifier
// arguments to the corresponding SDK principal union member.
func policyGrantPrincipal(user, group, project, domainUnit string) (types.PolicyGrantPrincipal, error) {
	set := 0
	for _, id := range []string{user, group, project, domainUnit} {
		if id != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of userIdentifier, groupIdentifier, projectIdentifier or domainUnitIdentifier is required")
	}

	switch {
	case user != "":
		return &types.PolicyGrantPrincipalMemberUser{
			Value: &types.UserPolicyGrantPrincipalMemberUserIdentifier{Value: user},
		}, nil
	case group != "":
		return &types.PolicyGrantPrincipalMemberGroup{
			Value: &types.GroupPolicyGrantPrincipalMemberGroupIdentifier{Value: group},
		}, nil
	case project != "":
		return &types.PolicyGrantPrincipalMemberProject{
			Value: types.ProjectPolicyGrantPrincipal{
				ProjectIdentifier:  aws.String(project),
				ProjectDesignation: types.ProjectDesignationOwner,
			},
		}, nil
	default:
		return &types.PolicyGrantPrincipalMemberDomainUnit{
			Value: types.DomainUnitPolicyGrantPrincipal{
				DomainUnitIdentifier:  aws.String(domainUnit),
				DomainUnitDesignation: types.DomainUnitDesignationOwner,
			},
		}, nil
	}
}

// policyGrantDetail maps a managed policy type to its grant detail union
// member. Only the domain-unit scoped policies the server exposes are
// supported.
func policyGrantDetail(policyType types.ManagedPolicyType, includeChildren bool) (types.PolicyGrantDetail, error) {
	include := aws.Bool(includeChildren)

	switch policyType {
	case types.ManagedPolicyTypeCreateDomainUnit:
		return &types.PolicyGrantDetailMemberCreateDomainUnit{
			Value: types.CreateDomainUnitPolicyGrantDetail{IncludeChildDomainUnits: include},
		}, nil
	case types.ManagedPolicyTypeOverrideDomainUnitOwners:
		return &types.PolicyGrantDetailMemberOverrideDomainUnitOwners{
			Value: types.OverrideDomainUnitOwnersPolicyGrantDetail{IncludeChildDomainUnits: include},
		}, nil
	case types.ManagedPolicyTypeAddToProjectMemberPool:
		return &types.PolicyGrantDetailMemberAddToProjectMemberPool{
			Value: types.AddToProjectMemberPoolPolicyGrantDetail{IncludeChildDomainUnits: include},
		}, nil
	case types.ManagedPolicyTypeOverrideProjectOwners:
		return &types.PolicyGrantDetailMemberOverrideProjectOwners{
			Value: types.OverrideProjectOwnersPolicyGrantDetail{IncludeChildDomainUnits: include},
		}, nil
	case types.ManagedPolicyTypeCreateProject:
		return &types.PolicyGrantDetailMemberCreateProject{
			Value: types.CreateProjectPolicyGrantDetail{IncludeChildDomainUnits: include},
		}, nil
	case types.ManagedPolicyTypeCreateGlossary:
		return &types.PolicyGrantDetailMemberCreateGlossary{
			Value: types.CreateGlossaryPolicyGrantDetail{IncludeChildDomainUnits: include},
		}, nil
	case types.ManagedPolicyTypeCreateFormType:
		return &types.PolicyGrantDetailMemberCreateFormType{
			Value: types.CreateFormTypePolicyGrantDetail{IncludeChildDomainUnits: include},
		}, nil
	case types.ManagedPolicyTypeCreateAssetType:
		return &types.PolicyGrantDetailMemberCreateAssetType{
			Value: types.CreateAssetTypePolicyGrantDetail{IncludeChildDomainUnits: include},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported policy type: %s", policyType)
	}
}
