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
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/teradata-labs/datazone-mcp/internal/version"
	"github.com/teradata-labs/datazone-mcp/pkg/datazone"
	"github.com/teradata-labs/datazone-mcp/pkg/mcp/server"
	"github.com/teradata-labs/datazone-mcp/pkg/mcp/transport"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func runServe(cmd *cobra.Command, _ []string) error {
	config, err := LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return err
	}

	// Configure logging -- CRITICAL: never write to stdout (that's the MCP
	// transport in stdio mode)
	logger, err := buildLogger(config.Logging.File, config.Logging.Level)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting datazone-mcp server",
		zap.String("transport", config.Transport),
		zap.String("region", config.AWS.Region),
		zap.String("version", version.Get()),
	)

	client := datazone.NewClient(datazone.ClientConfig{
		Region:          config.AWS.Region,
		Profile:         config.AWS.Profile,
		AccessKeyID:     config.AWS.AccessKeyID,
		SecretAccessKey: config.AWS.SecretAccessKey,
		SessionToken:    config.AWS.SessionToken,
	}, logger)

	toolset, err := datazone.NewToolset(client, logger)
	if err != nil {
		return fmt.Errorf("build toolset: %w", err)
	}
	logger.Info("registered tools", zap.Int("count", toolset.Count()))

	mcpServer := server.NewMCPServer(serverName, version.Get(), logger,
		server.WithToolProvider(toolset),
	)

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	if config.Transport == "http" {
		return serveHTTP(ctx, config, mcpServer, toolset, logger)
	}
	return serveStdio(ctx, mcpServer, logger)
}

// serveStdio runs the MCP server over stdin/stdout.
func serveStdio(ctx context.Context, mcpServer *server.MCPServer, logger *zap.Logger) error {
	stdioTransport := transport.NewStdioServerTransport(os.Stdin, os.Stdout)

	logger.Info("MCP server ready, awaiting client connections on stdio")
	if err := mcpServer.Serve(ctx, stdioTransport); err != nil {
		if ctx.Err() != nil {
			logger.Info("server stopped gracefully")
			return nil
		}
		return err
	}
	return nil
}

// serveHTTP runs the MCP server behind the streamable HTTP transport with a
// health endpoint.
func serveHTTP(ctx context.Context, config *Config, mcpServer *server.MCPServer, toolset *datazone.Toolset, logger *zap.Logger) error {
	httpTransport, err := transport.NewStreamableHTTPServer(transport.StreamableHTTPServerConfig{
		Handler: func(msg []byte) ([]byte, error) {
			return mcpServer.HandleMessage(ctx, msg)
		},
		Logger:     logger,
		SessionTTL: transport.DefaultSessionTTL,
	})
	if err != nil {
		return fmt.Errorf("create http transport: %w", err)
	}
	defer httpTransport.Close()

	mux := http.NewServeMux()
	mux.Handle("/mcp", httpTransport)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "healthy",
			"service":     serverName,
			"version":     version.Get(),
			"transport":   "http",
			"tools_count": toolset.Count(),
		})
	})

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	transport.WarnIfNotLocalhost(logger, addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("MCP server ready on HTTP", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("server stopped gracefully")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// buildLogger creates a zap logger that writes to a file (or stderr if no
// file specified). The logger must NEVER write to stdout because stdout is
// the MCP stdio transport.
func buildLogger(logFile, logLevel string) (*zap.Logger, error) {
	level := parseLogLevel(logLevel)

	var output zapcore.WriteSyncer
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304 -- log file path from CLI flag
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", logFile, err)
		}
		output = zapcore.AddSync(f)
	} else {
		output = zapcore.AddSync(os.Stderr)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		output,
		level,
	)

	return zap.New(core), nil
}

// parseLogLevel converts a string log level to a zapcore.Level.
func parseLogLevel(logLevel string) zapcore.Level {
	switch logLevel {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
