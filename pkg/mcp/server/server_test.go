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

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teradata-labs/datazone-mcp/pkg/mcp/protocol"
	"github.com/teradata-labs/datazone-mcp/pkg/mcp/transport"
	"go.uber.org/zap/zaptest"
)

func TestNewMCPServer(t *testing.T) {
	logger := zaptest.NewLogger(t)
	s := NewMCPServer("test-server", "1.0.0", logger)

	require.NotNil(t, s)
	assert.Equal(t, "test-server", s.info.Name)
	assert.Equal(t, "1.0.0", s.info.Version)

	// Built-in handlers should be registered
	s.mu.RLock()
	_, hasInit := s.handlers["initialize"]
	_, hasNotif := s.handlers["notifications/initialized"]
	_, hasPing := s.handlers["ping"]
	s.mu.RUnlock()

	assert.True(t, hasInit)
	assert.True(t, hasNotif)
	assert.True(t, hasPing)
}

func TestNewMCPServer_NilLogger(t *testing.T) {
	s := NewMCPServer("test", "1.0.0", nil)
	require.NotNil(t, s)
	require.NotNil(t, s.logger)
}

func TestMCPServer_HandleInitialize(t *testing.T) {
	logger := zaptest.NewLogger(t)
	s := NewMCPServer("test-server", "1.0.0", logger)

	req := protocol.Request{
		JSONRPC: "2.0",
		ID:      protocol.NewNumericRequestID(1),
		Method:  "initialize",
		Params:  json.RawMessage(`{"protocolVersion":"2024-11-05","clientInfo":{"name":"test-client","version":"0.1"}}`),
	}
	reqBytes, err := json.Marshal(req)
	require.NoError(t, err)

	respBytes, err := s.HandleMessage(context.Background(), reqBytes)
	require.NoError(t, err)
	require.NotNil(t, respBytes)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal(respBytes, &resp))
	assert.Nil(t, resp.Error)
	require.NotNil(t, resp.Result)

	var result protocol.InitializeResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))

	assert.Equal(t, protocol.ProtocolVersion, result.ProtocolVersion)
	assert.Equal(t, "test-server", result.ServerInfo.Name)
	assert.Equal(t, "1.0.0", result.ServerInfo.Version)

	// Client info should be retained
	require.NotNil(t, s.ClientInfo())
	assert.Equal(t, "test-client", s.ClientInfo().Name)
}

func TestMCPServer_HandlePing(t *testing.T) {
	logger := zaptest.NewLogger(t)
	s := NewMCPServer("test", "1.0.0", logger)

	req := protocol.Request{
		JSONRPC: "2.0",
		ID:      protocol.NewNumericRequestID(1),
		Method:  "ping",
	}
	reqBytes, err := json.Marshal(req)
	require.NoError(t, err)

	respBytes, err := s.HandleMessage(context.Background(), reqBytes)
	require.NoError(t, err)
	require.NotNil(t, respBytes)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal(respBytes, &resp))
	assert.Nil(t, resp.Error)
}

func TestMCPServer_HandleNotificationsInitialized(t *testing.T) {
	logger := zaptest.NewLogger(t)
	s := NewMCPServer("test", "1.0.0", logger)

	// Notification has no ID; no response is produced
	reqBytes := []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`)

	respBytes, err := s.HandleMessage(context.Background(), reqBytes)
	require.NoError(t, err)
	assert.Nil(t, respBytes)
}

func TestMCPServer_HandleMessage_ParseError(t *testing.T) {
	logger := zaptest.NewLogger(t)
	s := NewMCPServer("test", "1.0.0", logger)

	respBytes, err := s.HandleMessage(context.Background(), []byte(`{not json`))
	require.NoError(t, err)
	require.NotNil(t, respBytes)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal(respBytes, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, protocol.ParseError, resp.Error.Code)
}

func TestMCPServer_HandleMessage_InvalidRequest(t *testing.T) {
	logger := zaptest.NewLogger(t)
	s := NewMCPServer("test", "1.0.0", logger)

	respBytes, err := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"1.0","method":"ping"}`))
	require.NoError(t, err)
	require.NotNil(t, respBytes)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal(respBytes, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, protocol.InvalidRequest, resp.Error.Code)
}

func TestMCPServer_HandleMessage_MethodNotFound(t *testing.T) {
	logger := zaptest.NewLogger(t)
	s := NewMCPServer("test", "1.0.0", logger)

	respBytes, err := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":5,"method":"resources/list"}`))
	require.NoError(t, err)
	require.NotNil(t, respBytes)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal(respBytes, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, protocol.MethodNotFound, resp.Error.Code)
	assert.Equal(t, "5", resp.ID.String())
}

func TestMCPServer_UnknownNotificationIgnored(t *testing.T) {
	logger := zaptest.NewLogger(t)
	s := NewMCPServer("test", "1.0.0", logger)

	respBytes, err := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","method":"notifications/unknown"}`))
	require.NoError(t, err)
	assert.Nil(t, respBytes)
}

// fakeProvider is a minimal ToolProvider for server tests.
type fakeProvider struct {
	tools   []protocol.Tool
	callErr error
	result  *protocol.CallToolResult
}

func (p *fakeProvider) ListTools(_ context.Context) ([]protocol.Tool, error) {
	return p.tools, nil
}

func (p *fakeProvider) CallTool(_ context.Context, name string, _ map[string]interface{}) (*protocol.CallToolResult, error) {
	if p.callErr != nil {
		return nil, p.callErr
	}
	if p.result != nil {
		return p.result, nil
	}
	return &protocol.CallToolResult{
		Content: []protocol.Content{{Type: "text", Text: fmt.Sprintf("called %s", name)}},
	}, nil
}

func TestMCPServer_ToolsList(t *testing.T) {
	logger := zaptest.NewLogger(t)
	provider := &fakeProvider{
		tools: []protocol.Tool{
			{Name: "datazone_get_domain", Description: "Get a domain"},
			{Name: "datazone_list_domains", Description: "List domains"},
		},
	}
	s := NewMCPServer("test", "1.0.0", logger, WithToolProvider(provider))

	// Tools capability should be advertised
	require.NotNil(t, s.capabilities.Tools)

	respBytes, err := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	require.NoError(t, err)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal(respBytes, &resp))
	require.Nil(t, resp.Error)

	var result protocol.ToolListResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	require.Len(t, result.Tools, 2)
	assert.Equal(t, "datazone_get_domain", result.Tools[0].Name)
}

func TestMCPServer_ToolsCall_Success(t *testing.T) {
	logger := zaptest.NewLogger(t)
	provider := &fakeProvider{}
	s := NewMCPServer("test", "1.0.0", logger, WithToolProvider(provider))

	reqBytes := []byte(`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"datazone_get_domain","arguments":{"identifier":"dzd_abc"}}}`)
	respBytes, err := s.HandleMessage(context.Background(), reqBytes)
	require.NoError(t, err)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal(respBytes, &resp))
	require.Nil(t, resp.Error)

	var result protocol.CallToolResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "called datazone_get_domain", result.Content[0].Text)
}

func TestMCPServer_ToolsCall_UpstreamErrorBecomesToolResult(t *testing.T) {
	logger := zaptest.NewLogger(t)
	provider := &fakeProvider{callErr: fmt.Errorf("NOT_FOUND: domain dzd_missing does not exist")}
	s := NewMCPServer("test", "1.0.0", logger, WithToolProvider(provider))

	reqBytes := []byte(`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"datazone_get_domain","arguments":{}}}`)
	respBytes, err := s.HandleMessage(context.Background(), reqBytes)
	require.NoError(t, err)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal(respBytes, &resp))

	// Execution failures are tool results, not JSON-RPC errors
	require.Nil(t, resp.Error)
	var result protocol.CallToolResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Contains(t, result.Content[0].Text, "NOT_FOUND")
}

func TestMCPServer_ToolsCall_ProtocolErrorPassthrough(t *testing.T) {
	logger := zaptest.NewLogger(t)
	provider := &fakeProvider{callErr: protocol.NewError(protocol.InvalidParams, "unknown tool: bogus", nil)}
	s := NewMCPServer("test", "1.0.0", logger, WithToolProvider(provider))

	reqBytes := []byte(`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"bogus","arguments":{}}}`)
	respBytes, err := s.HandleMessage(context.Background(), reqBytes)
	require.NoError(t, err)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal(respBytes, &resp))

	// Protocol-level failures keep their JSON-RPC error code
	require.NotNil(t, resp.Error)
	assert.Equal(t, protocol.InvalidParams, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "unknown tool")
}

func TestMCPServer_ToolsCall_MissingName(t *testing.T) {
	logger := zaptest.NewLogger(t)
	s := NewMCPServer("test", "1.0.0", logger, WithToolProvider(&fakeProvider{}))

	reqBytes := []byte(`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{}}`)
	respBytes, err := s.HandleMessage(context.Background(), reqBytes)
	require.NoError(t, err)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal(respBytes, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, protocol.InvalidParams, resp.Error.Code)
}

func TestMCPServer_Serve_AcceptsNextRequestAfterMalformedLine(t *testing.T) {
	logger := zaptest.NewLogger(t)
	s := NewMCPServer("test", "1.0.0", logger)

	input := "{not json\n" + `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"
	var out bytes.Buffer
	tr := transport.NewStdioServerTransport(strings.NewReader(input), &out)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(context.Background(), tr) }()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, io.EOF)
	case <-time.After(5 * time.Second):
		t.Fatal("serve loop did not stop at EOF")
	}

	// The malformed line gets a parse error; the ping after it still succeeds.
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var parseResp protocol.Response
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &parseResp))
	require.NotNil(t, parseResp.Error)
	assert.Equal(t, protocol.ParseError, parseResp.Error.Code)

	var pingResp protocol.Response
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &pingResp))
	assert.Nil(t, pingResp.Error)
}

func TestMCPServer_StreamableHTTP_AcceptsNextRequestAfterMalformedBody(t *testing.T) {
	logger := zaptest.NewLogger(t)
	s := NewMCPServer("test", "1.0.0", logger)

	httpTransport, err := transport.NewStreamableHTTPServer(transport.StreamableHTTPServerConfig{
		Handler: func(msg []byte) ([]byte, error) {
			return s.HandleMessage(context.Background(), msg)
		},
		Logger: logger,
	})
	require.NoError(t, err)
	defer httpTransport.Close()

	srv := httptest.NewServer(httpTransport)
	defer srv.Close()

	post := func(body string) (int, protocol.Response) {
		resp, err := http.Post(srv.URL, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var rpcResp protocol.Response
		require.NoError(t, json.Unmarshal(data, &rpcResp))
		return resp.StatusCode, rpcResp
	}

	status, parseResp := post(`{not json`)
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, parseResp.Error)
	assert.Equal(t, protocol.ParseError, parseResp.Error.Code)

	status, pingResp := post(`{"jsonrpc":"2.0","id":2,"method":"ping"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, pingResp.Error)
}
