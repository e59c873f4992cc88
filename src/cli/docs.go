// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the solve-it command-line interface for inspecting a
// SOLVE-IT data directory without running the MCP server.
// It implements a Cobra command tree (describe, search, show, objectives,
// mappings and anomalies) that loads the knowledge base once per run and prints
// markdown tables or, with --json, the same JSON payloads the server returns.
package cli
