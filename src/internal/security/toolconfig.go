// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package security

import (
	"path/filepath"
	"time"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
)

// InjectionMode selects how prompt injection screening reacts to a hit.
type InjectionMode string

const (
	InjectionOff    InjectionMode = "off"
	InjectionWarn   InjectionMode = "warn"
	InjectionReject InjectionMode = "reject"
)

// ToolConfig is the Layer 2/3 policy a tool declares for itself.
// Build one with [NewToolConfig]; the zero value disables sanitization.
type ToolConfig struct {
	// AutoSanitize strips control characters and rejects traversal sequences
	// in every string argument.
	AutoSanitize bool

	// PathParams names the arguments holding filesystem paths. Each must
	// resolve inside one of AllowedRoots.
	PathParams   []string
	AllowedRoots []string

	// Timeout overrides the default timeout. Values above
	// [LongExecutionThreshold] require AllowLongExecution.
	Timeout            time.Duration
	AllowLongExecution bool

	InjectionScreening InjectionMode
}

// ToolOption customises a [ToolConfig].
type ToolOption func(*ToolConfig)

// NewToolConfig returns the default tool policy, sanitization on and
// injection screening in warn mode, with opts applied.
func NewToolConfig(opts ...ToolOption) ToolConfig {
	tc := ToolConfig{AutoSanitize: true, InjectionScreening: InjectionWarn}
	for _, opt := range opts {
		opt(&tc)
	}
	return tc
}

// WithoutSanitize turns off automatic string sanitization.
func WithoutSanitize() ToolOption {
	return func(tc *ToolConfig) { tc.AutoSanitize = false }
}

// WithPathParams declares path arguments and the roots they must stay within.
func WithPathParams(roots []string, params ...string) ToolOption {
	return func(tc *ToolConfig) {
		tc.PathParams = append(tc.PathParams, params...)
		tc.AllowedRoots = append(tc.AllowedRoots, roots...)
	}
}

// WithTimeout sets a tool-specific timeout. allowLong acknowledges a value
// above [LongExecutionThreshold].
func WithTimeout(d time.Duration, allowLong bool) ToolOption {
	return func(tc *ToolConfig) {
		tc.Timeout = d
		tc.AllowLongExecution = allowLong
	}
}

// WithInjectionScreening sets the prompt injection screening mode.
func WithInjectionScreening(mode InjectionMode) ToolOption {
	return func(tc *ToolConfig) { tc.InjectionScreening = mode }
}

// Validate checks the declaration of tool against the Layer 1 limits in cfg and
// returns the effective policy.
//
// Path parameters without allowed roots, relative roots and unknown screening
// modes are configuration errors. An unacknowledged long timeout is clamped to
// [LongExecutionThreshold]; every timeout is capped at cfg.MaxTimeout. Both
// adjustments are logged.
func (tc ToolConfig) Validate(tool string, cfg Config, log logger.Logger) (ToolConfig, error) {
	if len(tc.PathParams) > 0 && len(tc.AllowedRoots) == 0 {
		return tc, toolerr.Configuration(tool, "path parameters %v declared without allowed roots", tc.PathParams)
	}
	roots := make([]string, 0, len(tc.AllowedRoots))
	for _, root := range tc.AllowedRoots {
		if root == "" || !filepath.IsAbs(root) {
			return tc, toolerr.Configuration(tool, "allowed root %q must be an absolute path", root)
		}
		roots = append(roots, filepath.Clean(root))
	}
	tc.AllowedRoots = roots

	switch tc.InjectionScreening {
	case "":
		tc.InjectionScreening = InjectionOff
	case InjectionOff, InjectionWarn, InjectionReject:
	default:
		return tc, toolerr.Configuration(tool, "unknown injection screening mode %q", tc.InjectionScreening)
	}

	if tc.Timeout < 0 {
		return tc, toolerr.Configuration(tool, "timeout must not be negative")
	}
	if tc.Timeout > LongExecutionThreshold && !tc.AllowLongExecution {
		log.Warn("tool timeout above threshold without acknowledgement, clamping",
			"tool", tool, "requested", tc.Timeout.String(), "clamped", LongExecutionThreshold.String())
		tc.Timeout = LongExecutionThreshold
	}
	if tc.Timeout > cfg.MaxTimeout {
		log.Warn("tool timeout above maximum, capping",
			"tool", tool, "requested", tc.Timeout.String(), "max", cfg.MaxTimeout.String())
		tc.Timeout = cfg.MaxTimeout
	}
	return tc, nil
}

// EffectiveTimeout returns the timeout applied to one invocation.
func (tc ToolConfig) EffectiveTimeout(cfg Config) time.Duration {
	d := tc.Timeout
	if d <= 0 {
		d = cfg.DefaultTimeout
	}
	if d > LongExecutionThreshold && !tc.AllowLongExecution {
		d = LongExecutionThreshold
	}
	if d > cfg.MaxTimeout {
		d = cfg.MaxTimeout
	}
	return d
}
