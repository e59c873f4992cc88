// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package security

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/helper/codec"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
)

// Gateway enforces the security policy around tool invocations.
// One Gateway is shared by every tool of a server; its limiters are process-wide.
type Gateway struct {
	cfg    Config
	log    logger.Logger
	calls  *SlidingWindow
	output *ByteWindow
}

// Usage is a point-in-time view of the shared limiters.
type Usage struct {
	Calls           int   `json:"calls_in_window"`
	CallLimit       int   `json:"call_limit"`
	OutputBytes     int64 `json:"output_bytes_in_window"`
	OutputByteLimit int64 `json:"output_byte_limit"`
}

// NewGateway creates a gateway with cfg normalised against the defaults.
func NewGateway(cfg Config, log logger.Logger) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	cfg = cfg.Normalize(log)
	return &Gateway{
		cfg:    cfg,
		log:    log,
		calls:  NewSlidingWindow(cfg.RateLimit, cfg.RateWindow),
		output: NewByteWindow(int64(cfg.OutputRateLimit), cfg.RateWindow),
	}
}

// Config returns the effective Layer 1 limits.
func (g *Gateway) Config() Config { return g.cfg }

// Usage reports the current limiter state.
func (g *Gateway) Usage() Usage {
	return Usage{
		Calls:           g.calls.Used(),
		CallLimit:       g.cfg.RateLimit,
		OutputBytes:     g.output.Used(),
		OutputByteLimit: int64(g.cfg.OutputRateLimit),
	}
}

// Admit applies the Layer 1 input checks: rate limit, type filter, input size
// and string length. It runs before any argument validation.
func (g *Gateway) Admit(tool string, args map[string]any) error {
	if !g.calls.Allow() {
		g.log.Warn("rate limit exceeded", "tool", tool, "limit", g.cfg.RateLimit, "window", g.cfg.RateWindow.String())
		return toolerr.RateLimitExceeded()
	}

	if path, typ, ok := checkTypes(args, ""); !ok {
		g.log.Warn("rejected non-data argument", "tool", tool, "field", path, "type", typ)
		return toolerr.Invalid(path, "unsupported value of type %s", typ)
	}

	size, err := codec.Size(args)
	if err != nil {
		g.log.Warn("arguments could not be encoded", "tool", tool, "error", err)
		return toolerr.Invalid("arguments", "arguments must be JSON data")
	}
	if size > g.cfg.MaxInputSize {
		g.log.Warn("input size limit exceeded", "tool", tool, "size", size, "limit", g.cfg.MaxInputSize)
		return toolerr.SizeLimitExceeded("input")
	}

	if path, n, ok := longestString(args, "", g.cfg.MaxStringLength); !ok {
		g.log.Warn("string length limit exceeded", "tool", tool, "field", path, "length", n, "limit", g.cfg.MaxStringLength)
		return toolerr.SizeLimitExceeded("string argument")
	}
	return nil
}

// Screen applies the Layer 2/3 policy of tc and returns the arguments the
// handler should see.
func (g *Gateway) Screen(ctx context.Context, tool string, tc ToolConfig, args map[string]any) (map[string]any, error) {
	if args == nil {
		args = map[string]any{}
	}

	if tc.AutoSanitize {
		clean, err := Sanitize(args)
		if err != nil {
			g.log.Warn("argument rejected by sanitizer", "tool", tool, "error", err)
			return nil, err
		}
		args = clean
	}

	for _, name := range tc.PathParams {
		raw, present := args[name]
		if !present || raw == nil {
			continue
		}
		value, ok := raw.(string)
		if !ok {
			return nil, toolerr.Invalid(name, "must be a string path")
		}
		if _, ok := ResolveWithin(value, tc.AllowedRoots); !ok {
			g.log.Warn("path outside allowed roots", "tool", tool, "field", name)
			return nil, toolerr.Invalid(name, "path is outside the allowed directories")
		}
	}

	if tc.InjectionScreening == InjectionWarn || tc.InjectionScreening == InjectionReject {
		_, err := walkStrings(args, "", func(path, s string) (string, error) {
			if !DetectInjection(ctx, s) {
				return s, nil
			}
			if tc.InjectionScreening == InjectionReject {
				g.log.Warn("prompt injection rejected", "tool", tool, "field", path)
				return "", toolerr.Invalid(path, "content rejected by prompt injection screening")
			}
			g.log.Warn("possible prompt injection in argument", "tool", tool, "field", path)
			return s, nil
		})
		if err != nil {
			return nil, err
		}
	}
	return args, nil
}

// Run calls fn under timeout. When the deadline passes first, fn's context is
// cancelled, its eventual result is discarded and a timeout error is returned.
// A panic in fn is converted into an internal error.
func (g *Gateway) Run(ctx context.Context, tool string, timeout time.Duration, fn func(context.Context) (any, error)) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value any
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: toolerr.Internal(fmt.Errorf("panic in %s: %v", tool, r))}
			}
		}()
		v, err := fn(ctx)
		done <- outcome{value: v, err: err}
	}()

	select {
	case out := <-done:
		return out.value, out.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			g.log.Warn("tool execution timed out", "tool", tool, "timeout", timeout.String())
			return nil, toolerr.TimeoutExceeded(timeout)
		}
		return nil, ctx.Err()
	}
}

// CheckOutput applies the Layer 1 output checks to a rendered result.
// The output rate window is only charged for results that pass the size checks.
func (g *Gateway) CheckOutput(tool string, out []byte) error {
	if len(out) > g.cfg.MaxOutputSize {
		g.log.Warn("output size limit exceeded", "tool", tool, "size", len(out), "limit", g.cfg.MaxOutputSize)
		return toolerr.SizeLimitExceeded("output")
	}
	if lines := bytes.Count(out, []byte("\n")) + 1; lines > g.cfg.MaxOutputLines {
		g.log.Warn("output line limit exceeded", "tool", tool, "lines", lines, "limit", g.cfg.MaxOutputLines)
		return toolerr.SizeLimitExceeded("output")
	}
	if !g.output.Allow(int64(len(out))) {
		g.log.Warn("output rate limit exceeded", "tool", tool, "size", len(out), "limit", g.cfg.OutputRateLimit)
		return toolerr.RateLimitExceeded()
	}
	return nil
}
