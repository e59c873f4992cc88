// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package security implements the resource-safety gateway wrapped around every
// MCP tool invocation.
//
// Checks are applied in two tiers.
//
// Layer 1 is mandatory and identical for every tool:
//   - a sliding-window invocation rate limit
//   - an input size ceiling on the JSON-encoded arguments
//   - a per-string length ceiling applied recursively
//   - a type filter that only admits JSON-shaped values
//   - a wall-clock timeout that cancels the handler
//   - output size, line and bytes-per-minute ceilings
//
// Layer 2/3 is declared per tool with a [ToolConfig]: automatic sanitization of
// string arguments, allow-listed roots for path parameters, long-running
// timeouts and prompt injection screening. A tool that accepts paths without
// declaring allowed roots is rejected by [ToolConfig.Validate] when the server
// is built, never at call time.
//
// Every rejection is a [toolerr.Error]. Limit violations carry a generic
// message; the measured values are only logged.
//
// [toolerr.Error]: https://pkg.go.dev/github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr#Error
package security
