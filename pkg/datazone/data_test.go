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
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/datazone"
	"github.com/aws/aws-sdk-go-v2/service/datazone/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teradata-labs/datazone-mcp/pkg/mcp/protocol"
)

func TestDataSourceConfiguration(t *testing.T) {
	t.Run("glue", func(t *testing.T) {
		cfg, err := dataSourceConfiguration(map[string]json.RawMessage{
			"glueRunConfiguration": json.RawMessage(`{"relationalFilterConfigurations":[{"databaseName":"sales"}]}`),
		})
		require.NoError(t, err)
		glue, ok := cfg.(*types.DataSourceConfigurationInputMemberGlueRunConfiguration)
		require.True(t, ok)
		require.Len(t, glue.Value.RelationalFilterConfigurations, 1)
		assert.Equal(t, "sales", aws.ToString(glue.Value.RelationalFilterConfigurations[0].DatabaseName))
	})

	t.Run("sagemaker", func(t *testing.T) {
		cfg, err := dataSourceConfiguration(map[string]json.RawMessage{
			"sageMakerRunConfiguration": json.RawMessage(`{"trackingAssets":{}}`),
		})
		require.NoError(t, err)
		_, ok := cfg.(*types.DataSourceConfigurationInputMemberSageMakerRunConfiguration)
		assert.True(t, ok)
	})

	t.Run("unsupported kind", func(t *testing.T) {
		_, err := dataSourceConfiguration(map[string]json.RawMessage{
			"redshiftRunConfiguration": json.RawMessage(`{}`),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redshiftRunConfiguration")
	})

	t.Run("multiple kinds", func(t *testing.T) {
		_, err := dataSourceConfiguration(map[string]json.RawMessage{
			"glueRunConfiguration":      json.RawMessage(`{}`),
			"sageMakerRunConfiguration": json.RawMessage(`{}`),
		})
		assert.Error(t, err)
	})
}

func TestHandleCreateDataSource(t *testing.T) {
	var captured *datazone.CreateDataSourceInput
	ts := newTestToolset(t, &mockAPI{
		createDSFn: func(_ context.Context, in *datazone.CreateDataSourceInput) (*datazone.CreateDataSourceOutput, error) {
			captured = in
			return &datazone.CreateDataSourceOutput{Id: aws.String("ds-1")}, nil
		},
	})

	result, err := ts.CallTool(context.Background(), "datazone_create_data_source", map[string]interface{}{
		"domainIdentifier":  "dzd_abc123",
		"projectIdentifier": "prj-1",
		"name":              "glue-crawl",
		"type":              "GLUE",
		"enableSetting":     "ENABLED",
		"publishOnImport":   true,
		"configuration": map[string]interface{}{
			"glueRunConfiguration": map[string]interface{}{
				"relationalFilterConfigurations": []interface{}{
					map[string]interface{}{"databaseName": "sales"},
				},
			},
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	require.NotNil(t, captured)
	assert.Equal(t, "glue-crawl", aws.ToString(captured.Name))
	assert.Equal(t, "GLUE", aws.ToString(captured.Type))
	assert.Equal(t, types.EnableSettingEnabled, captured.EnableSetting)
	assert.True(t, aws.ToBool(captured.PublishOnImport))
	require.IsType(t, &types.DataSourceConfigurationInputMemberGlueRunConfiguration{}, captured.Configuration)
}

func TestHandleCreateDataSource_UnsupportedConfiguration(t *testing.T) {
	ts := newTestToolset(t, &mockAPI{})

	_, err := ts.CallTool(context.Background(), "datazone_create_data_source", map[string]interface{}{
		"domainIdentifier":  "dzd_abc123",
		"projectIdentifier": "prj-1",
		"name":              "bad",
		"type":              "REDSHIFT",
		"configuration": map[string]interface{}{
			"redshiftRunConfiguration": map[string]interface{}{},
		},
	})
	require.Error(t, err)

	var rpcErr *protocol.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, protocol.InvalidParams, rpcErr.Code)
}

func TestHandleCreateSubscriptionRequest(t *testing.T) {
	var captured *datazone.CreateSubscriptionRequestInput
	ts := newTestToolset(t, &mockAPI{
		createSubFn: func(_ context.Context, in *datazone.CreateSubscriptionRequestInput) (*datazone.CreateSubscriptionRequestOutput, error) {
			captured = in
			return &datazone.CreateSubscriptionRequestOutput{Id: aws.String("sub-1")}, nil
		},
	})

	result, err := ts.CallTool(context.Background(), "datazone_create_subscription_request", map[string]interface{}{
		"domainIdentifier":   "dzd_abc123",
		"requestReason":      "need sales data",
		"subscribedListings": []interface{}{"listing-1", "listing-2"},
		"subscribedProjects": []interface{}{"prj-1"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	require.NotNil(t, captured)
	assert.Equal(t, "need sales data", aws.ToString(captured.RequestReason))
	require.Len(t, captured.SubscribedListings, 2)
	assert.Equal(t, "listing-1", aws.ToString(captured.SubscribedListings[0].Identifier))
	require.Len(t, captured.SubscribedPrincipals, 1)
	project, ok := captured.SubscribedPrincipals[0].(*types.SubscribedPrincipalInputMemberProject)
	require.True(t, ok)
	assert.Equal(t, "prj-1", aws.ToString(project.Value.Identifier))
}

func TestHandleCreateFormType_WrapsSmithyModel(t *testing.T) {
	var captured *datazone.CreateFormTypeInput
	ts := newTestToolset(t, &mockAPI{
		createFormFn: func(_ context.Context, in *datazone.CreateFormTypeInput) (*datazone.CreateFormTypeOutput, error) {
			captured = in
			return &datazone.CreateFormTypeOutput{Name: in.Name}, nil
		},
	})

	model := `structure SalesForm { @required region: String }`
	result, err := ts.CallTool(context.Background(), "datazone_create_form_type", map[string]interface{}{
		"domainIdentifier":        "dzd_abc123",
		"name":                    "SalesForm",
		"owningProjectIdentifier": "prj-1",
		"model":                   model,
		"status":                  "ENABLED",
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	require.NotNil(t, captured)
	smithyModel, ok := captured.Model.(*types.ModelMemberSmithy)
	require.True(t, ok)
	assert.Equal(t, model, smithyModel.Value)
	assert.Equal(t, types.FormTypeStatusEnabled, captured.Status)
}

func TestHandleListFormTypes_ForcesFormTypeScope(t *testing.T) {
	ts := newTestToolset(t, &mockAPI{
		searchTypesFn: func(_ context.Context, in *datazone.SearchTypesInput) (*datazone.SearchTypesOutput, error) {
			assert.Equal(t, types.TypesSearchScopeFormType, in.SearchScope)
			assert.Equal(t, "dzd_abc123", aws.ToString(in.DomainIdentifier))
			return &datazone.SearchTypesOutput{}, nil
		},
	})

	result, err := ts.CallTool(context.Background(), "datazone_list_form_types", map[string]interface{}{
		"domainIdentifier": "dzd_abc123",
		"managed":          false,
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestHandleListFormTypes_DefaultsManagedFalse(t *testing.T) {
	ts := newTestToolset(t, &mockAPI{
		searchTypesFn: func(_ context.Context, in *datazone.SearchTypesInput) (*datazone.SearchTypesOutput, error) {
			// Managed is required by the API; omitting it from the
			// arguments must not produce an unset input field.
			require.NotNil(t, in.Managed)
			assert.False(t, *in.Managed)
			return &datazone.SearchTypesOutput{}, nil
		},
	})

	result, err := ts.CallTool(context.Background(), "datazone_list_form_types", map[string]interface{}{
		"domainIdentifier": "dzd_abc123",
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestHandlePublishAsset_Defaults(t *testing.T) {
	var captured *datazone.CreateListingChangeSetInput
	ts := newTestToolset(t, &mockAPI{
		changeSetFn: func(_ context.Context, in *datazone.CreateListingChangeSetInput) (*datazone.CreateListingChangeSetOutput, error) {
			captured = in
			return &datazone.CreateListingChangeSetOutput{ListingId: aws.String("listing-1")}, nil
		},
	})

	result, err := ts.CallTool(context.Background(), "datazone_publish_asset", map[string]interface{}{
		"domainIdentifier": "dzd_abc123",
		"entityIdentifier": "asset-1",
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	require.NotNil(t, captured)
	assert.Equal(t, types.EntityTypeAsset, captured.EntityType)
	assert.Equal(t, types.ChangeActionPublish, captured.Action)
}

func TestHandlePublishAsset_Unpublish(t *testing.T) {
	ts := newTestToolset(t, &mockAPI{
		changeSetFn: func(_ context.Context, in *datazone.CreateListingChangeSetInput) (*datazone.CreateListingChangeSetOutput, error) {
			assert.Equal(t, types.ChangeActionUnpublish, in.Action)
			return &datazone.CreateListingChangeSetOutput{}, nil
		},
	})

	_, err := ts.CallTool(context.Background(), "datazone_publish_asset", map[string]interface{}{
		"domainIdentifier": "dzd_abc123",
		"entityIdentifier": "asset-1",
		"action":           "UNPUBLISH",
	})
	require.NoError(t, err)
}
