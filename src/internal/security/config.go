// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package security

import (
	"time"

	"github.com/CKE-Proto/solve-it-mcp/src/logger"
)

// Layer 1 defaults.
const (
	DefaultRateLimit       = 100
	DefaultRateWindow      = time.Minute
	DefaultMaxInputSize    = 1 << 20   // 1 MiB
	DefaultMaxStringLength = 100 << 10 // 100 KiB
	DefaultMaxOutputSize   = 10 << 20  // 10 MiB
	DefaultMaxOutputLines  = 50_000
	DefaultTimeout         = 30 * time.Second
	DefaultMaxTimeout      = 5 * time.Minute
	DefaultOutputRateLimit = 50 << 20 // 50 MiB per window
)

// LongExecutionThreshold is the largest per-tool timeout allowed without
// [ToolConfig.AllowLongExecution].
const LongExecutionThreshold = 60 * time.Second

// Config holds the Layer 1 limits shared by every tool.
type Config struct {
	// RateLimit is the number of invocations admitted per RateWindow.
	RateLimit  int
	RateWindow time.Duration

	// MaxInputSize bounds the JSON-encoded argument object, in bytes.
	MaxInputSize int

	// MaxStringLength bounds every string argument, in bytes.
	MaxStringLength int

	MaxOutputSize  int
	MaxOutputLines int

	// DefaultTimeout applies to tools that do not declare their own.
	DefaultTimeout time.Duration
	MaxTimeout     time.Duration

	// OutputRateLimit bounds the bytes returned per RateWindow across all tools.
	OutputRateLimit int
}

// DefaultConfig returns the documented Layer 1 defaults.
func DefaultConfig() Config {
	return Config{
		RateLimit:       DefaultRateLimit,
		RateWindow:      DefaultRateWindow,
		MaxInputSize:    DefaultMaxInputSize,
		MaxStringLength: DefaultMaxStringLength,
		MaxOutputSize:   DefaultMaxOutputSize,
		MaxOutputLines:  DefaultMaxOutputLines,
		DefaultTimeout:  DefaultTimeout,
		MaxTimeout:      DefaultMaxTimeout,
		OutputRateLimit: DefaultOutputRateLimit,
	}
}

// Normalize replaces invalid values with their defaults and logs each
// replacement. A default timeout above the maximum is lowered to the maximum.
func (c Config) Normalize(log logger.Logger) Config {
	def := DefaultConfig()
	fixInt := func(name string, v *int, d int) {
		if *v <= 0 {
			log.Warn("invalid security limit, using default", "limit", name, "value", *v, "default", d)
			*v = d
		}
	}
	fixDuration := func(name string, v *time.Duration, d time.Duration) {
		if *v <= 0 {
			log.Warn("invalid security limit, using default", "limit", name, "value", v.String(), "default", d.String())
			*v = d
		}
	}

	fixInt("rate_limit", &c.RateLimit, def.RateLimit)
	fixDuration("rate_window", &c.RateWindow, def.RateWindow)
	fixInt("max_input_size", &c.MaxInputSize, def.MaxInputSize)
	fixInt("max_string_length", &c.MaxStringLength, def.MaxStringLength)
	fixInt("max_output_size", &c.MaxOutputSize, def.MaxOutputSize)
	fixInt("max_output_lines", &c.MaxOutputLines, def.MaxOutputLines)
	fixDuration("default_timeout", &c.DefaultTimeout, def.DefaultTimeout)
	fixDuration("max_timeout", &c.MaxTimeout, def.MaxTimeout)
	fixInt("output_rate_limit", &c.OutputRateLimit, def.OutputRateLimit)

	if c.DefaultTimeout > c.MaxTimeout {
		log.Warn("default timeout exceeds maximum, lowering it",
			"default_timeout", c.DefaultTimeout.String(), "max_timeout", c.MaxTimeout.String())
		c.DefaultTimeout = c.MaxTimeout
	}
	return c
}
