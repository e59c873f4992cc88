// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// solve-it is a command-line tool for inspecting a SOLVE-IT data directory
// without an MCP client.
//
// # Installation
//
//	go install github.com/CKE-Proto/solve-it-mcp/cmd/solve-it@latest
//
// # Usage
//
//	solve-it COMMAND [ARGS] [FLAGS]
//
// # Commands
//
//	describe             Knowledge base overview and statistics
//	search KEYWORDS...   Keyword or "quoted phrase" search
//	show ID              A technique, weakness or mitigation with its relationships
//	objectives [NAME]    Objectives of the active mapping, or one objective's techniques
//	mappings             Objective mapping files in the data directory
//	anomalies            Dangling references dropped while loading
//
// # Flags
//
//	    --data       SOLVE-IT data directory (default: $SOLVE_IT_DATA_PATH)
//	-j, --json       Emit JSON instead of markdown tables
//	-t, --type       Restrict search to techniques, weaknesses or mitigations
//	-m, --mapping    Objective mapping file for the objectives command
//
// # Examples
//
// Find techniques about log files:
//
//	solve-it search log --type techniques
//
// Show a weakness and the mitigations that address it:
//
//	solve-it show W1002
//
// List objectives of an alternative mapping as JSON:
//
//	solve-it objectives --mapping carrier.json --json
package main
