// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// solve-it-mcp serves the SOLVE-IT digital forensics knowledge base to MCP
// clients over stdio.
//
// # Installation
//
//	go install github.com/CKE-Proto/solve-it-mcp/cmd/solve-it-mcp@latest
//
// # Usage
//
//	solve-it-mcp [FLAGS]
//
// # Flags
//
//	    --config        JSON or YAML configuration file
//	    --data          SOLVE-IT data directory
//	    --watch         Reload the knowledge base when data files change
//	    --instructions  Print the instructions sent to MCP clients
//	    --log-level     debug, info, warn or error
//	    --log-format    human or json
//
// # Client configuration
//
// Register the binary as a stdio server, for example:
//
//	{
//	  "mcpServers": {
//	    "solve-it": {
//	      "command": "solve-it-mcp",
//	      "args": ["--data", "/path/to/solve-it-main/data"]
//	    }
//	  }
//	}
//
// Logs are written to stderr, or to LOG_FILE_PATH when set, because stdout
// carries the protocol.
package main
