// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/CKE-Proto/solve-it-mcp/src/mcp-server/templates"
)

// instructionData holds the data used to populate the MCP server instructions template.
type instructionData struct {
	Tools []toolInfo
}

// toolInfo represents information about an MCP tool for template rendering.
type toolInfo struct {
	Name        string
	Description string
}

// loadInstructions renders the embedded instructions template with the given
// operations and returns the text sent to MCP clients at initialisation.
//
// Parameters:
//   - ops: The registered operations, listed in order
//
// Returns:
//   - string: The rendered instruction text
//   - error: If the embedded file cannot be read or template parsing fails
func loadInstructions(ops []Operation) (string, error) {
	data := instructionData{Tools: make([]toolInfo, 0, len(ops))}
	for _, op := range ops {
		data.Tools = append(data.Tools, toolInfo{Name: op.Name(), Description: op.Tool.Description})
	}
	return templates.Render(templates.MagicEmbed, "instructions.md", data)
}
