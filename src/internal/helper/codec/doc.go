// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package codec converts between the loosely typed argument maps that arrive
// in MCP tool calls and the typed parameter structs used by tool handlers, and
// renders handler results as indented JSON text.
//
// Decoding is strict: fields that the destination struct does not declare are
// reported as errors instead of being silently dropped.
//
// Rendering reuses buffers from [gc.Default] so that large result sets do not
// produce garbage on every call.
//
// [gc.Default]: https://pkg.go.dev/github.com/CKE-Proto/solve-it-mcp/src/internal/helper/gc#Default
package codec
