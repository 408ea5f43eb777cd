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

// dataTools exports the asset, listing, data source, subscription and
// form type tools.
func (t *Toolset) dataTools() []toolDef {
	ro := readOnlyAnnotation()
	mut := mutatingAnnotation()

	return []toolDef{
		{
			tool: protocol.Tool{
				Name:        "datazone_get_asset",
				Description: "Get details of an asset in an Amazon DataZone domain.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("identifier", "string", "The ID of the asset"),
					prop("revision", "string", "Specific asset revision (defaults to latest)"),
				),
				Annotations: ro,
			},
			handler: t.handleGetAsset,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_create_asset",
				Description: "Create an asset in a project's inventory.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("name", "string", "Name of the asset"),
					reqProp("typeIdentifier", "string", "The ID of the asset type"),
					reqProp("owningProjectIdentifier", "string", "The ID of the project that owns the asset"),
					prop("typeRevision", "string", "Revision of the asset type"),
					prop("description", "string", "Description of the asset"),
					prop("externalIdentifier", "string", "External identifier of the asset"),
					prop("formsInput", "array", "Metadata forms: [{formName, typeIdentifier, typeRevision, content}]"),
					prop("glossaryTerms", "array", "Glossary term IDs to attach to the asset"),
					prop("clientToken", "string", "Idempotency token"),
				),
				Annotations: mut,
			},
			handler: t.handleCreateAsset,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_publish_asset",
				Description: "Publish or unpublish an asset to the domain catalog by creating a listing change set.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("entityIdentifier", "string", "The ID of the asset to publish"),
					prop("entityType", "string", "Entity type (defaults to ASSET)"),
					prop("action", "string", "PUBLISH or UNPUBLISH (defaults to PUBLISH)"),
					prop("entityRevision", "string", "Specific revision to publish"),
					prop("clientToken", "string", "Idempotency token"),
				),
				Annotations: mut,
			},
			handler: t.handlePublishAsset,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_get_listing",
				Description: "Get a published listing from the domain catalog.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("identifier", "string", "The ID of the listing"),
					prop("listingRevision", "string", "Specific listing revision (defaults to latest)"),
				),
				Annotations: ro,
			},
			handler: t.handleGetListing,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_search_listings",
				Description: "Search published listings in the domain catalog.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					prop("searchText", "string", "Free-text search query"),
					prop("maxResults", "integer", "Maximum number of results to return (1-50)"),
					prop("nextToken", "string", "Pagination token from a previous call"),
				),
				Annotations: ro,
			},
			handler: t.handleSearchListings,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_create_data_source",
				Description: "Create a data source in a project. Supports glueRunConfiguration and sageMakerRunConfiguration.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("projectIdentifier", "string", "The ID of the project to associate the data source with"),
					reqProp("name", "string", "Name of the data source"),
					reqProp("type", "string", "Data source type, e.g. GLUE or REDSHIFT"),
					prop("description", "string", "Description of the data source"),
					prop("enableSetting", "string", "ENABLED or DISABLED (defaults to ENABLED)"),
					prop("environmentIdentifier", "string", "The ID of the environment to publish assets to"),
					prop("connectionIdentifier", "string", "The ID of the connection to use"),
					prop("configuration", "object", "Data source configuration keyed by kind, e.g. {\"glueRunConfiguration\": {...}}"),
					prop("assetFormsInput", "array", "Metadata forms applied to imported assets"),
					prop("publishOnImport", "boolean", "Automatically publish imported assets"),
					prop("recommendation", "object", "Recommendation settings, e.g. {\"enableBusinessNameGeneration\": true}"),
					prop("schedule", "object", "Schedule configuration, e.g. {\"schedule\": \"cron(0 12 * * ? *)\", \"timezone\": \"UTC\"}"),
					prop("clientToken", "string", "Idempotency token"),
				),
				Annotations: mut,
			},
			handler: t.handleCreateDataSource,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_get_data_source",
				Description: "Get details of a data source.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("identifier", "string", "The ID of the data source"),
				),
				Annotations: ro,
			},
			handler: t.handleGetDataSource,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_list_data_sources",
				Description: "List data sources in a project.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("projectIdentifier", "string", "The ID of the project"),
					prop("environmentIdentifier", "string", "Filter by environment"),
					prop("connectionIdentifier", "string", "Filter by connection"),
					prop("name", "string", "Filter by data source name"),
					prop("status", "string", "Filter by status, e.g. READY or FAILED_CREATION"),
					prop("type", "string", "Filter by data source type"),
					prop("maxResults", "integer", "Maximum number of data sources to return"),
					prop("nextToken", "string", "Pagination token from a previous call"),
				),
				Annotations: ro,
			},
			handler: t.handleListDataSources,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_start_data_source_run",
				Description: "Start a run of a data source.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("dataSourceIdentifier", "string", "The ID of the data source to run"),
					prop("clientToken", "string", "Idempotency token"),
				),
				Annotations: mut,
			},
			handler: t.handleStartDataSourceRun,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_create_subscription_request",
				Description: "Request subscription access to published listings for one or more projects.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("requestReason", "string", "Justification for the subscription request"),
					reqProp("subscribedListings", "array", "Listing IDs to subscribe to"),
					reqProp("subscribedProjects", "array", "Project IDs subscribing to the listings"),
					prop("clientToken", "string", "Idempotency token"),
				),
				Annotations: mut,
			},
			handler: t.handleCreateSubscriptionRequest,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_accept_subscription_request",
				Description: "Accept a pending subscription request.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("identifier", "string", "The ID of the subscription request"),
					prop("decisionComment", "string", "Comment recorded with the approval"),
				),
				Annotations: mut,
			},
			handler: t.handleAcceptSubscriptionRequest,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_get_subscription",
				Description: "Get details of a subscription.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("identifier", "string", "The ID of the subscription"),
				),
				Annotations: ro,
			},
			handler: t.handleGetSubscription,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_get_form_type",
				Description: "Get details of a metadata form type.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("formTypeIdentifier", "string", "The ID of the form type"),
					prop("revision", "string", "Specific form type revision (defaults to latest)"),
				),
				Annotations: ro,
			},
			handler: t.handleGetFormType,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_create_form_type",
				Description: "Create a metadata form type from a Smithy model.",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					reqProp("name", "string", "Name of the form type"),
					reqProp("owningProjectIdentifier", "string", "The ID of the project that owns the form type"),
					reqProp("model", "string", "Smithy model describing the form structure"),
					prop("description", "string", "Description of the form type"),
					prop("status", "string", "ENABLED or DISABLED"),
				),
				Annotations: mut,
			},
			handler: t.handleCreateFormType,
		},
		{
			tool: protocol.Tool{
				Name:        "datazone_list_form_types",
				Description: "List metadata form types in a domain (via a FORM_TYPE type search).",
				InputSchema: objectSchema(
					reqProp("domainIdentifier", "string", "The ID of the domain"),
					prop("managed", "boolean", "Include AWS-managed form types (defaults to false)"),
					prop("searchText", "string", "Free-text filter on form type names"),
					prop("maxResults", "integer", "Maximum number of form types to return"),
					prop("nextToken", "string", "Pagination token from a previous call"),
				),
				Annotations: ro,
			},
			handler: t.handleListFormTypes,
		},
	}
}

func (t *Toolset) handleGetAsset(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.GetAsset)
}

func (t *Toolset) handleCreateAsset(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.CreateAsset)
}

func (t *Toolset) handlePublishAsset(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}

	in := &datazone.CreateListingChangeSetInput{}
	if err := decodeArgs(args, in); err != nil {
		return nil, err
	}
	if in.EntityType == "" {
		in.EntityType = types.EntityTypeAsset
	}
	if in.Action == "" {
		in.Action = types.ChangeActionPublish
	}

	out, err := api.CreateListingChangeSet(ctx, in)
	if err != nil {
		return nil, NormalizeError(err)
	}
	return jsonResult(out)
}

func (t *Toolset) handleGetListing(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.GetListing)
}

func (t *Toolset) handleSearchListings(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.SearchListings)
}

// handleCreateDataSource builds the request by hand because the SDK
// models the run configuration as a union type.
func (t *Toolset) handleCreateDataSource(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}

	var in struct {
		DomainIdentifier      string                              `json:"domainIdentifier"`
		ProjectIdentifier     string                              `json:"projectIdentifier"`
		Name                  string                              `json:"name"`
		Type                  string                              `json:"type"`
		Description           string                              `json:"description"`
		EnableSetting         string                              `json:"enableSetting"`
		EnvironmentIdentifier string                              `json:"environmentIdentifier"`
		ConnectionIdentifier  string                              `json:"connectionIdentifier"`
		Configuration         map[string]json.RawMessage          `json:"configuration"`
		AssetFormsInput       []types.FormInput                   `json:"assetFormsInput"`
		PublishOnImport       *bool                               `json:"publishOnImport"`
		Recommendation        *types.RecommendationConfiguration  `json:"recommendation"`
		Schedule              *types.ScheduleConfiguration        `json:"schedule"`
		ClientToken           string                              `json:"clientToken"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	input := &datazone.CreateDataSourceInput{
		DomainIdentifier:  aws.String(in.DomainIdentifier),
		ProjectIdentifier: aws.String(in.ProjectIdentifier),
		Name:              aws.String(in.Name),
		Type:              aws.String(in.Type),
		AssetFormsInput:   in.AssetFormsInput,
		PublishOnImport:   in.PublishOnImport,
		Recommendation:    in.Recommendation,
		Schedule:          in.Schedule,
	}
	if in.Description != "" {
		input.Description = aws.String(in.Description)
	}
	if in.EnableSetting != "" {
		input.EnableSetting = types.EnableSetting(in.EnableSetting)
	}
	if in.EnvironmentIdentifier != "" {
		input.EnvironmentIdentifier = aws.String(in.EnvironmentIdentifier)
	}
	if in.ConnectionIdentifier != "" {
		input.ConnectionIdentifier = aws.String(in.ConnectionIdentifier)
	}
	if in.ClientToken != "" {
		input.ClientToken = aws.String(in.ClientToken)
	}

	if len(in.Configuration) > 0 {
		cfg, err := dataSourceConfiguration(in.Configuration)
		if err != nil {
			return nil, protocol.NewError(protocol.InvalidParams, err.Error(), nil)
		}
		input.Configuration = cfg
	}

	out, err := api.CreateDataSource(ctx, input)
	if err != nil {
		return nil, NormalizeError(err)
	}
	return jsonResult(out)
}

// dataSourceConfiguration decodes the configuration object into the
// matching SDK union member.
func dataSourceConfiguration(cfg map[string]json.RawMessage) (types.DataSourceConfigurationInput, error) {
	if len(cfg) != 1 {
		return nil, fmt.Errorf("configuration must contain exactly one of glueRunConfiguration or sageMakerRunConfiguration")
	}

	if raw, ok := cfg["glueRunConfiguration"]; ok {
		var glue types.GlueRunConfigurationInput
		if err := json.Unmarshal(raw, &glue); err != nil {
			return nil, fmt.Errorf("decode glueRunConfiguration: %v", err)
		}
		return &types.DataSourceConfigurationInputMemberGlueRunConfiguration{Value: glue}, nil
	}
	if raw, ok := cfg["sageMakerRunConfiguration"]; ok {
		var sm types.SageMakerRunConfigurationInput
		if err := json.Unmarshal(raw, &sm); err != nil {
			return nil, fmt.Errorf("decode sageMakerRunConfiguration: %v", err)
		}
		return &types.DataSourceConfigurationInputMemberSageMakerRunConfiguration{Value: sm}, nil
	}

	for kind := range cfg {
		return nil, fmt.Errorf("unsupported data source configuration: %s", kind)
	}
	return nil, nil
}

func (t *Toolset) handleGetDataSource(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.GetDataSource)
}

func (t *Toolset) handleListDataSources(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.ListDataSources)
}

func (t *Toolset) handleStartDataSourceRun(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.StartDataSourceRun)
}

// handleCreateSubscriptionRequest flattens listing and project ID lists
// into the SDK's subscribed-listing and subscribed-principal unions.
func (t *Toolset) handleCreateSubscriptionRequest(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}

	var in struct {
		DomainIdentifier   string   `json:"domainIdentifier"`
		RequestReason      string   `json:"requestReason"`
		SubscribedListings []string `json:"subscribedListings"`
		SubscribedProjects []string `json:"subscribedProjects"`
		ClientToken        string   `json:"clientToken"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	listings := make([]types.SubscribedListingInput, 0, len(in.SubscribedListings))
	for _, id := range in.SubscribedListings {
		listings = append(listings, types.SubscribedListingInput{Identifier: aws.String(id)})
	}
	principals := make([]types.SubscribedPrincipalInput, 0, len(in.SubscribedProjects))
	for _, id := range in.SubscribedProjects {
		principals = append(principals, &types.SubscribedPrincipalInputMemberProject{
			Value: types.SubscribedProjectInput{Identifier: aws.String(id)},
		})
	}

	input := &datazone.CreateSubscriptionRequestInput{
		DomainIdentifier:     aws.String(in.DomainIdentifier),
		RequestReason:        aws.String(in.RequestReason),
		SubscribedListings:   listings,
		SubscribedPrincipals: principals,
	}
	if in.ClientToken != "" {
		input.ClientToken = aws.String(in.ClientToken)
	}

	out, err := api.CreateSubscriptionRequest(ctx, input)
	if err != nil {
		return nil, NormalizeError(err)
	}
	return jsonResult(out)
}

func (t *Toolset) handleAcceptSubscriptionRequest(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.AcceptSubscriptionRequest)
}

func (t *Toolset) handleGetSubscription(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.GetSubscription)
}

func (t *Toolset) handleGetFormType(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}
	return callDataZone(ctx, args, api.GetFormType)
}

// handleCreateFormType wraps the Smithy model string into the SDK's
// model union.
func (t *Toolset) handleCreateFormType(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}

	var in struct {
		DomainIdentifier        string `json:"domainIdentifier"`
		Name                    string `json:"name"`
		OwningProjectIdentifier string `json:"owningProjectIdentifier"`
		Model                   string `json:"model"`
		Description             string `json:"description"`
		Status                  string `json:"status"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	input := &datazone.CreateFormTypeInput{
		DomainIdentifier:        aws.String(in.DomainIdentifier),
		Name:                    aws.String(in.Name),
		OwningProjectIdentifier: aws.String(in.OwningProjectIdentifier),
		Model:                   &types.ModelMemberSmithy{Value: in.Model},
	}
	if in.Description != "" {
		input.Description = aws.String(in.Description)
	}
	if in.Status != "" {
		input.Status = types.FormTypeStatus(in.Status)
	}

	out, err := api.CreateFormType(ctx, input)
	if err != nil {
		return nil, NormalizeError(err)
	}
	return jsonResult(out)
}

// handleListFormTypes lists form types through a type search scoped to
// FORM_TYPE; DataZone has no dedicated list operation for form types.
func (t *Toolset) handleListFormTypes(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResult, error) {
	api, err := t.api(ctx)
	if err != nil {
		return nil, err
	}

	in := &datazone.SearchTypesInput{}
	if err := decodeArgs(args, in); err != nil {
		return nil, err
	}
	in.SearchScope = types.TypesSearchScopeFormType
	// Managed is a required API member; the tool defaults it to false.
	if in.Managed == nil {
		in.Managed = aws.Bool(false)
	}

	out, err := api.SearchTypes(ctx, in)
	if err != nil {
		return nil, NormalizeError(err)
	}
	return jsonResult(out)
}
