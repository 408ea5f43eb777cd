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
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/datazone"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// mockAPI stubs the DataZone API for tests. Only the operations a test
// overrides are callable; anything else panics through the embedded nil
// interface, which makes an unexpected call fail loudly.
type mockAPI struct {
	API

	getDomainFn     func(context.Context, *datazone.GetDomainInput) (*datazone.GetDomainOutput, error)
	createDomainFn  func(context.Context, *datazone.CreateDomainInput) (*datazone.CreateDomainOutput, error)
	listDomainsFn   func(context.Context, *datazone.ListDomainsInput) (*datazone.ListDomainsOutput, error)
	searchFn        func(context.Context, *datazone.SearchInput) (*datazone.SearchOutput, error)
	addPolicyFn     func(context.Context, *datazone.AddPolicyGrantInput) (*datazone.AddPolicyGrantOutput, error)
	getProjectFn    func(context.Context, *datazone.GetProjectInput) (*datazone.GetProjectOutput, error)
	createDSFn      func(context.Context, *datazone.CreateDataSourceInput) (*datazone.CreateDataSourceOutput, error)
	createSubFn     func(context.Context, *datazone.CreateSubscriptionRequestInput) (*datazone.CreateSubscriptionRequestOutput, error)
	createFormFn    func(context.Context, *datazone.CreateFormTypeInput) (*datazone.CreateFormTypeOutput, error)
	searchTypesFn   func(context.Context, *datazone.SearchTypesInput) (*datazone.SearchTypesOutput, error)
	createConnFn    func(context.Context, *datazone.CreateConnectionInput) (*datazone.CreateConnectionOutput, error)
	changeSetFn     func(context.Context, *datazone.CreateListingChangeSetInput) (*datazone.CreateListingChangeSetOutput, error)
	createGlossFn   func(context.Context, *datazone.CreateGlossaryInput) (*datazone.CreateGlossaryOutput, error)
	getGlossTermFn  func(context.Context, *datazone.GetGlossaryTermInput) (*datazone.GetGlossaryTermOutput, error)
	listEnvsFn      func(context.Context, *datazone.ListEnvironmentsInput) (*datazone.ListEnvironmentsOutput, error)
}

func (m *mockAPI) GetDomain(ctx context.Context, params *datazone.GetDomainInput, _ ...func(*datazone.Options)) (*datazone.GetDomainOutput, error) {
	return m.getDomainFn(ctx, params)
}

func (m *mockAPI) CreateDomain(ctx context.Context, params *datazone.CreateDomainInput, _ ...func(*datazone.Options)) (*datazone.CreateDomainOutput, error) {
	return m.createDomainFn(ctx, params)
}

func (m *mockAPI) ListDomains(ctx context.Context, params *datazone.ListDomainsInput, _ ...func(*datazone.Options)) (*datazone.ListDomainsOutput, error) {
	return m.listDomainsFn(ctx, params)
}

func (m *mockAPI) Search(ctx context.Context, params *datazone.SearchInput, _ ...func(*datazone.Options)) (*datazone.SearchOutput, error) {
	return m.searchFn(ctx, params)
}

func (m *mockAPI) AddPolicyGrant(ctx context.Context, params *datazone.AddPolicyGrantInput, _ ...func(*datazone.Options)) (*datazone.AddPolicyGrantOutput, error) {
	return m.addPolicyFn(ctx, params)
}

func (m *mockAPI) GetProject(ctx context.Context, params *datazone.GetProjectInput, _ ...func(*datazone.Options)) (*datazone.GetProjectOutput, error) {
	return m.getProjectFn(ctx, params)
}

func (m *mockAPI) CreateDataSource(ctx context.Context, params *datazone.CreateDataSourceInput, _ ...func(*datazone.Options)) (*datazone.CreateDataSourceOutput, error) {
	return m.createDSFn(ctx, params)
}

func (m *mockAPI) CreateSubscriptionRequest(ctx context.Context, params *datazone.CreateSubscriptionRequestInput, _ ...func(*datazone.Options)) (*datazone.CreateSubscriptionRequestOutput, error) {
	return m.createSubFn(ctx, params)
}

func (m *mockAPI) CreateFormType(ctx context.Context, params *datazone.CreateFormTypeInput, _ ...func(*datazone.Options)) (*datazone.CreateFormTypeOutput, error) {
	return m.createFormFn(ctx, params)
}

func (m *mockAPI) SearchTypes(ctx context.Context, params *datazone.SearchTypesInput, _ ...func(*datazone.Options)) (*datazone.SearchTypesOutput, error) {
	return m.searchTypesFn(ctx, params)
}

func (m *mockAPI) CreateConnection(ctx context.Context, params *datazone.CreateConnectionInput, _ ...func(*datazone.Options)) (*datazone.CreateConnectionOutput, error) {
	return m.createConnFn(ctx, params)
}

func (m *mockAPI) CreateListingChangeSet(ctx context.Context, params *datazone.CreateListingChangeSetInput, _ ...func(*datazone.Options)) (*datazone.CreateListingChangeSetOutput, error) {
	return m.changeSetFn(ctx, params)
}

func (m *mockAPI) CreateGlossary(ctx context.Context, params *datazone.CreateGlossaryInput, _ ...func(*datazone.Options)) (*datazone.CreateGlossaryOutput, error) {
	return m.createGlossFn(ctx, params)
}

func (m *mockAPI) GetGlossaryTerm(ctx context.Context, params *datazone.GetGlossaryTermInput, _ ...func(*datazone.Options)) (*datazone.GetGlossaryTermOutput, error) {
	return m.getGlossTermFn(ctx, params)
}

func (m *mockAPI) ListEnvironments(ctx context.Context, params *datazone.ListEnvironmentsInput, _ ...func(*datazone.Options)) (*datazone.ListEnvironmentsOutput, error) {
	return m.listEnvsFn(ctx, params)
}

// newTestToolset builds a Toolset whose client is pre-resolved to the
// given mock, bypassing AWS config loading.
func newTestToolset(t *testing.T, api API) *Toolset {
	t.Helper()

	client := &Client{logger: zap.NewNop(), api: api}

	ts, err := NewToolset(client, zaptest.NewLogger(t))
	require.NoError(t, err)
	return ts
}
