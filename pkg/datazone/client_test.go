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
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_API_RetriesAfterFailure(t *testing.T) {
	calls := 0
	client := &Client{
		logger: zap.NewNop(),
		loadConfig: func(context.Context) (aws.Config, error) {
			calls++
			if calls == 1 {
				return aws.Config{}, fmt.Errorf("no credentials resolvable yet")
			}
			return aws.Config{Region: "us-east-1"}, nil
		},
	}

	// First use fails; the failure must not stick.
	_, err := client.API(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load AWS config")

	api, err := client.API(context.Background())
	require.NoError(t, err)
	require.NotNil(t, api)
	assert.Equal(t, 2, calls)

	// Once constructed, the client is cached.
	_, err = client.API(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
