// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package security

import (
	"testing"
	"time"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToolConfigDefaults(t *testing.T) {
	tc := NewToolConfig()
	assert.True(t, tc.AutoSanitize)
	assert.Equal(t, InjectionWarn, tc.InjectionScreening)
	assert.Empty(t, tc.PathParams)

	tc = NewToolConfig(WithoutSanitize(), WithInjectionScreening(InjectionReject))
	assert.False(t, tc.AutoSanitize)
	assert.Equal(t, InjectionReject, tc.InjectionScreening)
}

func TestToolConfigValidate(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()

	tests := []struct {
		name        string
		tc          ToolConfig
		wantErr     string
		wantTimeout time.Duration
		wantLog     string
	}{
		{
			name: "defaults",
			tc:   NewToolConfig(),
		},
		{
			name: "path params with roots",
			tc:   NewToolConfig(WithPathParams([]string{root}, "filename")),
		},
		{
			name:    "path params without roots",
			tc:      NewToolConfig(WithPathParams(nil, "filename")),
			wantErr: "without allowed roots",
		},
		{
			name:    "relative root",
			tc:      NewToolConfig(WithPathParams([]string{"data"}, "filename")),
			wantErr: "absolute path",
		},
		{
			name:    "unknown screening mode",
			tc:      NewToolConfig(WithInjectionScreening("loud")),
			wantErr: "unknown injection screening mode",
		},
		{
			name:        "short timeout kept",
			tc:          NewToolConfig(WithTimeout(45*time.Second, false)),
			wantTimeout: 45 * time.Second,
		},
		{
			name:        "long timeout clamped without acknowledgement",
			tc:          NewToolConfig(WithTimeout(2*time.Minute, false)),
			wantTimeout: LongExecutionThreshold,
			wantLog:     "clamping",
		},
		{
			name:        "long timeout acknowledged",
			tc:          NewToolConfig(WithTimeout(2*time.Minute, true)),
			wantTimeout: 2 * time.Minute,
		},
		{
			name:        "acknowledged timeout capped at maximum",
			tc:          NewToolConfig(WithTimeout(10*time.Minute, true)),
			wantTimeout: DefaultMaxTimeout,
			wantLog:     "capping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := logger.NewTestLogger()
			got, err := tt.tc.Validate("test_tool", cfg, log)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, toolerr.KindConfiguration, toolerr.KindOf(err))
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Contains(t, err.Error(), "test_tool")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTimeout, got.Timeout)
			if tt.wantLog != "" {
				assert.Contains(t, buf.String(), tt.wantLog)
			}
		})
	}
}

func TestEffectiveTimeout(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultTimeout, NewToolConfig().EffectiveTimeout(cfg))
	assert.Equal(t, 45*time.Second, NewToolConfig(WithTimeout(45*time.Second, false)).EffectiveTimeout(cfg))
	assert.Equal(t, LongExecutionThreshold, NewToolConfig(WithTimeout(90*time.Second, false)).EffectiveTimeout(cfg))

	cfg.MaxTimeout = 20 * time.Second
	cfg.DefaultTimeout = 10 * time.Second
	assert.Equal(t, 20*time.Second, NewToolConfig(WithTimeout(45*time.Second, false)).EffectiveTimeout(cfg))
}

func TestConfigNormalize(t *testing.T) {
	log, buf := logger.NewTestLogger()
	cfg := Config{RateLimit: -1, DefaultTimeout: 10 * time.Minute}.Normalize(log)

	def := DefaultConfig()
	assert.Equal(t, def.RateLimit, cfg.RateLimit)
	assert.Equal(t, def.MaxInputSize, cfg.MaxInputSize)
	assert.Equal(t, def.MaxTimeout, cfg.MaxTimeout)
	assert.Equal(t, def.MaxTimeout, cfg.DefaultTimeout)
	assert.Contains(t, buf.String(), "rate_limit")
	assert.Contains(t, buf.String(), "default timeout exceeds maximum")
}
