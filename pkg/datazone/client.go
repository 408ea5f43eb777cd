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

// Package datazone exposes AWS DataZone API operations as MCP tools.
// It is a thin translation layer: each tool decodes its arguments, calls
// the corresponding aws-sdk-go-v2 operation through one shared client,
// and maps the result or error into the MCP response format.
package datazone

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/datazone"
	"go.uber.org/zap"
)

// API is the subset of the DataZone service client used by the toolset.
// *datazone.Client satisfies it; tests substitute a hand-written mock.
type API interface {
	// Domains
	GetDomain(ctx context.Context, params *datazone.GetDomainInput, optFns ...func(*datazone.Options)) (*datazone.GetDomainOutput, error)
	CreateDomain(ctx context.Context, params *datazone.CreateDomainInput, optFns ...func(*datazone.Options)) (*datazone.CreateDomainOutput, error)
	ListDomains(ctx context.Context, params *datazone.ListDomainsInput, optFns ...func(*datazone.Options)) (*datazone.ListDomainsOutput, error)
	ListDomainUnitsForParent(ctx context.Context, params *datazone.ListDomainUnitsForParentInput, optFns ...func(*datazone.Options)) (*datazone.ListDomainUnitsForParentOutput, error)
	CreateDomainUnit(ctx context.Context, params *datazone.CreateDomainUnitInput, optFns ...func(*datazone.Options)) (*datazone.CreateDomainUnitOutput, error)
	GetDomainUnit(ctx context.Context, params *datazone.GetDomainUnitInput, optFns ...func(*datazone.Options)) (*datazone.GetDomainUnitOutput, error)
	Search(ctx context.Context, params *datazone.SearchInput, optFns ...func(*datazone.Options)) (*datazone.SearchOutput, error)
	AddPolicyGrant(ctx context.Context, params *datazone.AddPolicyGrantInput, optFns ...func(*datazone.Options)) (*datazone.AddPolicyGrantOutput, error)

	// Projects
	CreateProject(ctx context.Context, params *datazone.CreateProjectInput, optFns ...func(*datazone.Options)) (*datazone.CreateProjectOutput, error)
	GetProject(ctx context.Context, params *datazone.GetProjectInput, optFns ...func(*datazone.Options)) (*datazone.GetProjectOutput, error)
	ListProjects(ctx context.Context, params *datazone.ListProjectsInput, optFns ...func(*datazone.Options)) (*datazone.ListProjectsOutput, error)

	// Assets, listings, data sources, subscriptions, form types
	GetAsset(ctx context.Context, params *datazone.GetAssetInput, optFns ...func(*datazone.Options)) (*datazone.GetAssetOutput, error)
	CreateAsset(ctx context.Context, params *datazone.CreateAssetInput, optFns ...func(*datazone.Options)) (*datazone.CreateAssetOutput, error)
	CreateListingChangeSet(ctx context.Context, params *datazone.CreateListingChangeSetInput, optFns ...func(*datazone.Options)) (*datazone.CreateListingChangeSetOutput, error)
	GetListing(ctx context.Context, params *datazone.GetListingInput, optFns ...func(*datazone.Options)) (*datazone.GetListingOutput, error)
	SearchListings(ctx context.Context, params *datazone.SearchListingsInput, optFns ...func(*datazone.Options)) (*datazone.SearchListingsOutput, error)
	CreateDataSource(ctx context.Context, params *datazone.CreateDataSourceInput, optFns ...func(*datazone.Options)) (*datazone.CreateDataSourceOutput, error)
	GetDataSource(ctx context.Context, params *datazone.GetDataSourceInput, optFns ...func(*datazone.Options)) (*datazone.GetDataSourceOutput, error)
	ListDataSources(ctx context.Context, params *datazone.ListDataSourcesInput, optFns ...func(*datazone.Options)) (*datazone.ListDataSourcesOutput, error)
	StartDataSourceRun(ctx context.Context, params *datazone.StartDataSourceRunInput, optFns ...func(*datazone.Options)) (*datazone.StartDataSourceRunOutput, error)
	CreateSubscriptionRequest(ctx context.Context, params *datazone.CreateSubscriptionRequestInput, optFns ...func(*datazone.Options)) (*datazone.CreateSubscriptionRequestOutput, error)
	AcceptSubscriptionRequest(ctx context.Context, params *datazone.AcceptSubscriptionRequestInput, optFns ...func(*datazone.Options)) (*datazone.AcceptSubscriptionRequestOutput, error)
	GetSubscription(ctx context.Context, params *datazone.GetSubscriptionInput, optFns ...func(*datazone.Options)) (*datazone.GetSubscriptionOutput, error)
	GetFormType(ctx context.Context, params *datazone.GetFormTypeInput, optFns ...func(*datazone.Options)) (*datazone.GetFormTypeOutput, error)
	CreateFormType(ctx context.Context, params *datazone.CreateFormTypeInput, optFns ...func(*datazone.Options)) (*datazone.CreateFormTypeOutput, error)
	SearchTypes(ctx context.Context, params *datazone.SearchTypesInput, optFns ...func(*datazone.Options)) (*datazone.SearchTypesOutput, error)

	// Glossaries
	CreateGlossary(ctx context.Context, params *datazone.CreateGlossaryInput, optFns ...func(*datazone.Options)) (*datazone.CreateGlossaryOutput, error)
	GetGlossary(ctx context.Context, params *datazone.GetGlossaryInput, optFns ...func(*datazone.Options)) (*datazone.GetGlossaryOutput, error)
	CreateGlossaryTerm(ctx context.Context, params *datazone.CreateGlossaryTermInput, optFns ...func(*datazone.Options)) (*datazone.CreateGlossaryTermOutput, error)
	GetGlossaryTerm(ctx context.Context, params *datazone.GetGlossaryTermInput, optFns ...func(*datazone.Options)) (*datazone.GetGlossaryTermOutput, error)

	// Environments and connections
	ListEnvironments(ctx context.Context, params *datazone.ListEnvironmentsInput, optFns ...func(*datazone.Options)) (*datazone.ListEnvironmentsOutput, error)
	GetEnvironment(ctx context.Context, params *datazone.GetEnvironmentInput, optFns ...func(*datazone.Options)) (*datazone.GetEnvironmentOutput, error)
	CreateConnection(ctx context.Context, params *datazone.CreateConnectionInput, optFns ...func(*datazone.Options)) (*datazone.CreateConnectionOutput, error)
	GetConnection(ctx context.Context, params *datazone.GetConnectionInput, optFns ...func(*datazone.Options)) (*datazone.GetConnectionOutput, error)
	ListConnections(ctx context.Context, params *datazone.ListConnectionsInput, optFns ...func(*datazone.Options)) (*datazone.ListConnectionsOutput, error)
	ListEnvironmentBlueprints(ctx context.Context, params *datazone.ListEnvironmentBlueprintsInput, optFns ...func(*datazone.Options)) (*datazone.ListEnvironmentBlueprintsOutput, error)
}

// ClientConfig controls how the shared DataZone client is built.
// All fields are optional; the zero value uses the default AWS
// credential resolution chain and region discovery.
type ClientConfig struct {
	Region          string
	Profile         string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// Client is the process-wide handle to the DataZone API. The underlying
// SDK client is built lazily on first use so that a server can start (and
// answer tools/list) before AWS credentials are resolvable; every tool
// invocation borrows the same client.
type Client struct {
	cfg    ClientConfig
	logger *zap.Logger

	mu  sync.Mutex
	api API

	// loadConfig overrides AWS config resolution in tests.
	loadConfig func(context.Context) (aws.Config, error)
}

// NewClient creates a lazy DataZone client handle.
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{cfg: cfg, logger: logger}
}

// API returns the shared DataZone client, constructing it on first call.
// A construction failure is returned to the caller and retried on the
// next call, so a transient credential or config problem at first use
// does not degrade the process for its whole lifetime.
func (c *Client) API(ctx context.Context) (API, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.api != nil {
		return c.api, nil
	}

	load := c.loadConfig
	if load == nil {
		load = c.loadAWSConfig
	}
	awsCfg, err := load(ctx)
	if err != nil {
		err = fmt.Errorf("load AWS config: %w", err)
		c.logger.Warn("failed to initialize DataZone client", zap.Error(err))
		return nil, err
	}

	c.api = datazone.NewFromConfig(awsCfg)
	c.logger.Info("DataZone client initialized", zap.String("region", awsCfg.Region))
	return c.api, nil
}

// loadAWSConfig resolves AWS configuration in precedence order:
// explicit static credentials, then a named profile, then the default
// credential chain (env vars, shared config, IAM role).
func (c *Client) loadAWSConfig(ctx context.Context) (aws.Config, error) {
	region := c.cfg.Region
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}

	var optFns []func(*config.LoadOptions) error
	if region != "" {
		optFns = append(optFns, config.WithRegion(region))
	}

	switch {
	case c.cfg.AccessKeyID != "" && c.cfg.SecretAccessKey != "":
		optFns = append(optFns, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.cfg.AccessKeyID,
			c.cfg.SecretAccessKey,
			c.cfg.SessionToken,
		)))
	case c.cfg.Profile != "":
		optFns = append(optFns, config.WithSharedConfigProfile(c.cfg.Profile))
	}

	return config.LoadDefaultConfig(ctx, optFns...)
}
