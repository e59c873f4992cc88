// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package templates provides embedded filesystem access for MCP server template files.
//
// The embedded templates are all rendered with [text/template]:
//   - instructions.md: the instructions sent to MCP clients at initialisation,
//     listing every registered tool
//   - cli_help.md: the long description and examples of the server command,
//     split on its "## Examples" heading
//   - *-prompt.md: MCP prompt workflows; "### User:" and "### Assistant:"
//     lines start a message with that role
//
// Example usage:
//
//	import "github.com/CKE-Proto/solve-it-mcp/src/mcp-server/templates"
//
//	text, err := templates.Render(templates.MagicEmbed, "instructions.md", data)
//	if err != nil {
//		return "", err
//	}
package templates
