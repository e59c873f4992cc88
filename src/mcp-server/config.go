// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/security"
	"gopkg.in/yaml.v3"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Environment variables read by [loadConfig].
const (
	envConfigFile      = "SOLVE_IT_MCP_CONFIG_FILE"
	envDataPath        = "SOLVE_IT_DATA_PATH"
	envWatch           = "SOLVE_IT_WATCH"
	envRateLimit       = "MCP_RATE_LIMIT"
	envMaxInputSize    = "MCP_MAX_INPUT_SIZE"
	envMaxStringLength = "MCP_MAX_STRING_LENGTH"
	envMaxOutputSize   = "MCP_MAX_OUTPUT_SIZE"
	envMaxOutputLines  = "MCP_MAX_OUTPUT_LINES"
	envDefaultTimeout  = "MCP_DEFAULT_TIMEOUT"
	envMaxTimeout      = "MCP_MAX_TIMEOUT"
	envOutputRateLimit = "MCP_OUTPUT_RATE_LIMIT"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envLogFile         = "LOG_FILE_PATH"
)

// Config represents the MCP server configuration structure.
//
// The configuration can be loaded from a JSON or YAML file specified by the
// SOLVE_IT_MCP_CONFIG_FILE environment variable or the --config flag, with
// defaults applied for any missing values.
// Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Data: Knowledge base location and reload behaviour
	Data struct {
		// Path: Explicit data root; empty means search the default locations
		Path string `json:"path,omitempty" yaml:"path,omitempty"`
		// DefaultMapping: Objective mapping activated at startup
		DefaultMapping string `json:"defaultMapping" yaml:"defaultMapping"`
		// Watch: Reload the knowledge base when files under the data root change
		Watch bool `json:"watch" yaml:"watch"`
	} `json:"data" yaml:"data"`

	// Security: Layer 1 limits shared by every tool
	Security struct {
		// RateLimit: Tool invocations admitted per minute
		RateLimit int `json:"rateLimit" yaml:"rateLimit"`
		// MaxInputSize: Bytes of JSON-encoded arguments per call
		MaxInputSize int `json:"maxInputSize" yaml:"maxInputSize"`
		// MaxStringLength: Bytes per string argument
		MaxStringLength int `json:"maxStringLength" yaml:"maxStringLength"`
		// MaxOutputSize: Bytes per tool result
		MaxOutputSize int `json:"maxOutputSize" yaml:"maxOutputSize"`
		// MaxOutputLines: Lines per tool result
		MaxOutputLines int `json:"maxOutputLines" yaml:"maxOutputLines"`
		// DefaultTimeout: Seconds allowed for tools without their own timeout
		DefaultTimeout int `json:"defaultTimeoutSeconds" yaml:"defaultTimeoutSeconds"`
		// MaxTimeout: Hard ceiling in seconds for any tool
		MaxTimeout int `json:"maxTimeoutSeconds" yaml:"maxTimeoutSeconds"`
		// OutputRateLimit: Result bytes returned per minute across all tools
		OutputRateLimit int `json:"outputRateLimit" yaml:"outputRateLimit"`
	} `json:"security" yaml:"security"`

	// Log: Diagnostic output; stdout is reserved for the protocol
	Log struct {
		// Level: debug, info, warn or error
		Level string `json:"level" yaml:"level"`
		// Format: human or json
		Format string `json:"format" yaml:"format"`
		// File: Destination file; empty means stderr
		File string `json:"file,omitempty" yaml:"file,omitempty"`
	} `json:"log" yaml:"log"`
}

// defaultConfig returns the configuration used when nothing overrides it.
func defaultConfig() *Config {
	def := security.DefaultConfig()

	config := &Config{}
	config.Data.DefaultMapping = knowledgebase.DefaultMapping
	config.Security.RateLimit = def.RateLimit
	config.Security.MaxInputSize = def.MaxInputSize
	config.Security.MaxStringLength = def.MaxStringLength
	config.Security.MaxOutputSize = def.MaxOutputSize
	config.Security.MaxOutputLines = def.MaxOutputLines
	config.Security.DefaultTimeout = int(def.DefaultTimeout / time.Second)
	config.Security.MaxTimeout = int(def.MaxTimeout / time.Second)
	config.Security.OutputRateLimit = def.OutputRateLimit
	config.Log.Level = "info"
	config.Log.Format = "json"
	return config
}

// SecurityConfig converts the security section into gateway limits.
func (c *Config) SecurityConfig() security.Config {
	return security.Config{
		RateLimit:       c.Security.RateLimit,
		RateWindow:      security.DefaultRateWindow,
		MaxInputSize:    c.Security.MaxInputSize,
		MaxStringLength: c.Security.MaxStringLength,
		MaxOutputSize:   c.Security.MaxOutputSize,
		MaxOutputLines:  c.Security.MaxOutputLines,
		DefaultTimeout:  time.Duration(c.Security.DefaultTimeout) * time.Second,
		MaxTimeout:      time.Duration(c.Security.MaxTimeout) * time.Second,
		OutputRateLimit: c.Security.OutputRateLimit,
	}
}

// detectConfigFormat determines the configuration file format based on file extension.
// It supports .json, .yaml, and .yml extensions for flexible configuration management.
//
// Parameters:
//   - configPath: Path to the configuration file
//
// Returns:
//   - configFormat: The detected format (configFormatJSON or configFormatYAML)
//
// The function uses case-insensitive extension matching for cross-platform compatibility.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
//
// Parameters:
//   - data: Raw configuration file contents
//   - config: Pointer to Config struct to populate
//   - format: The configuration format (configFormatJSON or configFormatYAML)
//
// Returns:
//   - error: Any parsing error encountered during unmarshaling
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// loadConfig loads MCP server configuration from a JSON or YAML file or applies defaults.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - A pointer to the loaded Config struct with defaults applied
//   - An error if the configuration file cannot be read or parsed, or an
//     environment override is malformed
//
// Configuration Priority:
//  1. Default values are set
//  2. SOLVE_IT_MCP_CONFIG_FILE environment variable is checked if configPath is empty
//  3. Config file values override defaults (if file exists and is valid)
//  4. Environment variables override config file values
//
// Command-line flags are applied afterwards by the caller. Non-positive limits
// are reset to their defaults here; the gateway normalises the timeout pair.
func loadConfig(configPath string) (*Config, error) {
	config := defaultConfig()

	// Check environment variable for config file path if not provided
	if configPath == "" {
		configPath = os.Getenv(envConfigFile)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		format := detectConfigFormat(configPath)
		if err := unmarshalConfig(data, config, format); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	config.resetInvalid()
	return config, nil
}

// applyEnv overrides config with any environment variables that are set.
func applyEnv(config *Config) error {
	ints := []struct {
		name string
		dest *int
	}{
		{envRateLimit, &config.Security.RateLimit},
		{envMaxInputSize, &config.Security.MaxInputSize},
		{envMaxStringLength, &config.Security.MaxStringLength},
		{envMaxOutputSize, &config.Security.MaxOutputSize},
		{envMaxOutputLines, &config.Security.MaxOutputLines},
		{envDefaultTimeout, &config.Security.DefaultTimeout},
		{envMaxTimeout, &config.Security.MaxTimeout},
		{envOutputRateLimit, &config.Security.OutputRateLimit},
	}
	for _, v := range ints {
		raw, ok := os.LookupEnv(v.name)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", v.name, err)
		}
		*v.dest = n
	}

	if raw := os.Getenv(envWatch); raw != "" {
		watch, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envWatch, err)
		}
		config.Data.Watch = watch
	}

	strs := []struct {
		name string
		dest *string
	}{
		{envDataPath, &config.Data.Path},
		{envLogLevel, &config.Log.Level},
		{envLogFormat, &config.Log.Format},
		{envLogFile, &config.Log.File},
	}
	for _, v := range strs {
		if raw := os.Getenv(v.name); raw != "" {
			*v.dest = raw
		}
	}
	return nil
}

// resetInvalid puts defaults back for values a file or environment set to
// something unusable.
func (c *Config) resetInvalid() {
	def := defaultConfig()
	for _, v := range []struct{ got, def *int }{
		{&c.Security.RateLimit, &def.Security.RateLimit},
		{&c.Security.MaxInputSize, &def.Security.MaxInputSize},
		{&c.Security.MaxStringLength, &def.Security.MaxStringLength},
		{&c.Security.MaxOutputSize, &def.Security.MaxOutputSize},
		{&c.Security.MaxOutputLines, &def.Security.MaxOutputLines},
		{&c.Security.DefaultTimeout, &def.Security.DefaultTimeout},
		{&c.Security.MaxTimeout, &def.Security.MaxTimeout},
		{&c.Security.OutputRateLimit, &def.Security.OutputRateLimit},
	} {
		if *v.got <= 0 {
			*v.got = *v.def
		}
	}
	if c.Data.DefaultMapping == "" {
		c.Data.DefaultMapping = def.Data.DefaultMapping
	}
}
