// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver provides the [MCP] server for the [SOLVE-IT] digital forensics
// knowledge base.
//
// Every tool call goes through a [Dispatcher], which resolves the operation,
// applies the Layer 1 input limits of the shared security gateway, validates the
// arguments against the tool's JSON schema, screens them with the tool's
// Layer 2/3 policy, decodes them into typed parameters and runs the handler
// under its timeout. Results are rendered as JSON and checked against the
// output limits before they are returned.
//
// Handlers read a [knowledgebase.Snapshot] captured when the call was
// dispatched, so a concurrent mapping switch or live reload never mixes two
// states within one call.
//
// The server is constructed with [ServerBuilder] and exposed on the command
// line by [CLIFramework].
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
// [SOLVE-IT]: https://github.com/SOLVE-IT-DF/solve-it
package mcpserver
