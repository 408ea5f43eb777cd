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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/teradata-labs/datazone-mcp/internal/version"
)

const serverName = "datazone-mcp"

var cfgFile string

// Config holds all configuration for the DataZone MCP server.
// Priority: CLI flags > config file > env vars > defaults
type Config struct {
	// Transport selects how MCP clients connect: "stdio" or "http".
	Transport string `mapstructure:"transport"`

	// Server configuration (http transport only)
	Server ServerConfig `mapstructure:"server"`

	// AWS configuration
	AWS AWSConfig `mapstructure:"aws"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP listener configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// AWSConfig holds AWS client configuration.
type AWSConfig struct {
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`

	// Static credentials (from env or config file only, never flags)
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	SessionToken    string `mapstructure:"session_token"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
	File  string `mapstructure:"file"`  // optional log file path
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:     "datazone-mcp",
	Short:   "MCP server for Amazon DataZone",
	Long:    `datazone-mcp exposes Amazon DataZone domain, project, asset, glossary and environment operations as MCP tools over stdio or streamable HTTP.`,
	Version: version.Get(),
	RunE:    runServe,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./datazone-mcp.yaml)")

	// Transport flags
	rootCmd.PersistentFlags().String("transport", "stdio", "MCP transport (stdio, http)")
	rootCmd.PersistentFlags().String("host", "127.0.0.1", "HTTP server host (http transport)")
	rootCmd.PersistentFlags().Int("port", 8080, "HTTP server port (http transport)")

	// AWS flags
	rootCmd.PersistentFlags().String("aws-region", "", "AWS region (defaults to SDK resolution)")
	rootCmd.PersistentFlags().String("aws-profile", "", "AWS shared config profile")

	// Logging flags
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Log file path (defaults to stderr)")

	// Bind flags to viper
	_ = viper.BindPFlag("transport", rootCmd.PersistentFlags().Lookup("transport"))
	_ = viper.BindPFlag("server.host", rootCmd.PersistentFlags().Lookup("host"))
	_ = viper.BindPFlag("server.port", rootCmd.PersistentFlags().Lookup("port"))
	_ = viper.BindPFlag("aws.region", rootCmd.PersistentFlags().Lookup("aws-region"))
	_ = viper.BindPFlag("aws.profile", rootCmd.PersistentFlags().Lookup("aws-profile"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.file", rootCmd.PersistentFlags().Lookup("log-file"))
}

// LoadConfig loads configuration from multiple sources with proper priority:
// 1. Command line flags (highest priority)
// 2. Config file
// 3. Environment variables (DATAZONE_MCP_*)
// 4. Defaults (lowest priority)
func LoadConfig(cfgFile string) (*Config, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/datazone-mcp/")
		viper.SetConfigName("datazone-mcp")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file %s: %w", viper.ConfigFileUsed(), err)
		}
		// Config file not found; using defaults + env vars + flags
	}

	viper.SetEnvPrefix("DATAZONE_MCP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("transport", "stdio")
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("logging.level", "info")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("unsupported transport: %s (must be stdio or http)", c.Transport)
	}

	if c.Transport == "http" {
		if c.Server.Port < 1 || c.Server.Port > 65535 {
			return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Server.Port)
		}
	}

	return nil
}
