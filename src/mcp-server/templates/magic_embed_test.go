// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package templates

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagicEmbed_ReadFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		contains []string
		wantErr  bool
	}{
		{
			name:     "read instructions template",
			filename: "instructions.md",
			contains: []string{"{{range .Tools}}", "SOLVE-IT"},
		},
		{
			name:     "read CLI help template",
			filename: "cli_help.md",
			contains: []string{"## Examples", "{{.ExeName}}", "{{.DataFlagName}}"},
		},
		{
			name:     "read technique review prompt",
			filename: "technique-review-prompt.md",
			contains: []string{"### User:", "{{.TechniqueID}}"},
		},
		{
			name:     "read non-existent file",
			filename: "non-existent.md",
			wantErr:  true,
		},
		{
			name:     "read file with invalid path",
			filename: "../invalid.md",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MagicEmbed.ReadFile(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, string(data), want)
			}
		})
	}
}

func TestMagicEmbed_ReadDir(t *testing.T) {
	entries, err := MagicEmbed.ReadDir(".")
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		assert.False(t, entry.IsDir(), "unexpected directory %s", entry.Name())
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{
		"cli_help.md",
		"instructions.md",
		"investigation-plan-prompt.md",
		"technique-review-prompt.md",
		"weakness-assessment-prompt.md",
	}, names)

	_, err = MagicEmbed.ReadDir("non-existent")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	fsys := fstest.MapFS{
		"ok.md":      {Data: []byte("Review {{.ID}}")},
		"broken.md":  {Data: []byte("Review {{.ID")},
		"missing.md": {Data: []byte("Review {{.Other}}")},
	}
	data := map[string]string{"ID": "T1002"}

	out, err := Render(fsys, "ok.md", data)
	require.NoError(t, err)
	assert.Equal(t, "Review T1002", out)

	tests := []struct {
		name    string
		file    string
		wantErr string
	}{
		{"absent file", "absent.md", "failed to load template"},
		{"parse error", "broken.md", "failed to parse template"},
		{"unknown key", "missing.md", "failed to execute template"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(fsys, tt.file, data)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRenderEmbeddedPrompt(t *testing.T) {
	out, err := Render(MagicEmbed, "investigation-plan-prompt.md", struct{ ObjectiveName string }{""})
	require.NoError(t, err)
	assert.Contains(t, out, "list_objectives")
}
