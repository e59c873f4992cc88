// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var embeddedFS embed.FS

// EmbedFS is the read-only view of the template files. Tests substitute their
// own implementation to exercise missing or malformed templates.
type EmbedFS interface {
	// ReadFile reads the named file relative to the embed root.
	ReadFile(name string) ([]byte, error)
	// ReadDir lists the named directory relative to the embed root.
	ReadDir(name string) ([]fs.DirEntry, error)
}

// MagicEmbed holds the MCP server instructions, the prompt workflows and the
// CLI help text.
var MagicEmbed EmbedFS = embeddedFS

// Render executes the template file name from fsys with data.
//
// Example:
//
//	text, err := templates.Render(templates.MagicEmbed, "instructions.md", data)
func Render(fsys EmbedFS, name string, data any) (string, error) {
	raw, err := fsys.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to load template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
