// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearConfigEnv unsets every variable loadConfig reads for the duration of t.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		envConfigFile, envDataPath, envWatch,
		envRateLimit, envMaxInputSize, envMaxStringLength, envMaxOutputSize,
		envMaxOutputLines, envDefaultTimeout, envMaxTimeout, envOutputRateLimit,
		envLogLevel, envLogFormat, envLogFile,
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	config, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "solve-it.json", config.Data.DefaultMapping)
	assert.False(t, config.Data.Watch)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, security.DefaultConfig(), config.SecurityConfig())
}

func TestLoadConfigFile(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{
			name: "json",
			file: "config.json",
			body: `{"data": {"path": "/srv/solve-it", "watch": true}, "security": {"rateLimit": 10, "defaultTimeoutSeconds": 5}, "log": {"level": "debug"}}`,
		},
		{
			name: "yaml",
			file: "config.yaml",
			body: "data:\n  path: /srv/solve-it\n  watch: true\nsecurity:\n  rateLimit: 10\n  defaultTimeoutSeconds: 5\nlog:\n  level: debug\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)

			config, err := loadConfig(writeConfig(t, tt.file, tt.body))
			require.NoError(t, err)

			assert.Equal(t, "/srv/solve-it", config.Data.Path)
			assert.True(t, config.Data.Watch)
			assert.Equal(t, "debug", config.Log.Level)

			sec := config.SecurityConfig()
			assert.Equal(t, 10, sec.RateLimit)
			assert.Equal(t, 5*time.Second, sec.DefaultTimeout)
			assert.Equal(t, security.DefaultMaxOutputSize, sec.MaxOutputSize, "unset values keep their defaults")
			assert.Equal(t, "solve-it.json", config.Data.DefaultMapping)
		})
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, "config.json", `{"data": {"path": "/from/file"}, "security": {"rateLimit": 10}}`)

	t.Setenv(envConfigFile, path)
	t.Setenv(envDataPath, "/from/env")
	t.Setenv(envRateLimit, "25")
	t.Setenv(envWatch, "true")

	config, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/from/env", config.Data.Path)
	assert.Equal(t, 25, config.Security.RateLimit)
	assert.True(t, config.Data.Watch)
}

func TestLoadConfigResetsInvalidLimits(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, "config.json", `{"data": {"defaultMapping": ""}, "security": {"rateLimit": -1, "maxOutputLines": 0}}`)

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, security.DefaultRateLimit, config.Security.RateLimit)
	assert.Equal(t, security.DefaultMaxOutputLines, config.Security.MaxOutputLines)
	assert.Equal(t, "solve-it.json", config.Data.DefaultMapping)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name:  "missing file",
			setup: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.json") },
		},
		{
			name:  "malformed json",
			setup: func(t *testing.T) string { return writeConfig(t, "config.json", "{") },
		},
		{
			name:  "malformed yaml",
			setup: func(t *testing.T) string { return writeConfig(t, "config.yml", "security: [") },
		},
		{
			name: "malformed integer variable",
			setup: func(t *testing.T) string {
				t.Setenv(envMaxInputSize, "lots")
				return ""
			},
		},
		{
			name: "malformed boolean variable",
			setup: func(t *testing.T) string {
				t.Setenv(envWatch, "sometimes")
				return ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			_, err := loadConfig(tt.setup(t))
			assert.Error(t, err)
		})
	}
}

func TestDetectConfigFormat(t *testing.T) {
	assert.Equal(t, configFormatYAML, detectConfigFormat("a.YAML"))
	assert.Equal(t, configFormatYAML, detectConfigFormat("a.yml"))
	assert.Equal(t, configFormatJSON, detectConfigFormat("a.json"))
	assert.Equal(t, configFormatJSON, detectConfigFormat("a"))
}
