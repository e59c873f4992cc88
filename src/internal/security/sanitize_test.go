// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripControl(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"tab\tnew\nline\r", "tab\tnew\nline\r"},
		{"nul\x00bell\x07esc\x1b", "nulbellesc"},
		{"del\x7f", "del"},
		{"c1\u0085end", "c1end"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripControl(tt.in), "%q", tt.in)
	}
}

func TestHasTraversal(t *testing.T) {
	bad := []string{"../etc/passwd", `..\windows`, "a/../b", "..", "dir/..", "..%2Fetc", "%2E%2E%2f", "%252e%252e%252f"}
	for _, s := range bad {
		assert.True(t, HasTraversal(s), s)
	}

	good := []string{"solve-it.json", "v1.2..3", "log analysis", "...", "a..b"}
	for _, s := range good {
		assert.False(t, HasTraversal(s), s)
	}
}

func TestSanitize(t *testing.T) {
	in := map[string]any{
		"keywords":   "disk\x00 imaging",
		"item_types": []any{"techniques\x01"},
		"limit":      float64(3),
	}

	out, err := Sanitize(in)
	require.NoError(t, err)
	assert.Equal(t, "disk imaging", out["keywords"])
	assert.Equal(t, []any{"techniques"}, out["item_types"])
	assert.Equal(t, float64(3), out["limit"])
	assert.Equal(t, "disk\x00 imaging", in["keywords"], "input is not modified")

	_, err = Sanitize(map[string]any{"nested": map[string]any{"path": "../../secret"}})
	te, ok := toolerr.As(err)
	require.True(t, ok)
	assert.Equal(t, toolerr.KindValidation, te.Kind)
	assert.Equal(t, "nested.path", te.Fields[0].Field)

	empty, err := Sanitize(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestResolveWithin(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(other, "secret.json"), []byte(`{"Leaked":["T1001"]}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "solve-it.json"), []byte(`{}`), 0o600))
	require.NoError(t, os.Symlink(filepath.Join(other, "secret.json"), filepath.Join(root, "link.json")))
	require.NoError(t, os.Symlink(filepath.Join(root, "solve-it.json"), filepath.Join(root, "alias.json")))
	require.NoError(t, os.Symlink(other, filepath.Join(root, "elsewhere")))
	linkedRoot := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.Symlink(root, linkedRoot))

	tests := []struct {
		name  string
		value string
		roots []string
		ok    bool
	}{
		{"relative inside", "solve-it.json", []string{root}, true},
		{"absolute inside", filepath.Join(root, "carrier.json"), []string{root}, true},
		{"escapes root", filepath.Join("..", "x.json"), []string{root}, false},
		{"absolute elsewhere", filepath.Join(other, "x.json"), []string{root}, false},
		{"second root", filepath.Join(other, "x.json"), []string{root, other}, true},
		{"no roots", "x.json", nil, false},
		{"symlink leaving root", "link.json", []string{root}, false},
		{"symlinked directory leaving root", filepath.Join("elsewhere", "secret.json"), []string{root}, false},
		{"symlink inside root", "alias.json", []string{root}, true},
		{"root reached through symlink", "solve-it.json", []string{linkedRoot}, true},
		{"missing parent directory", filepath.Join("absent", "x.json"), []string{root}, false},
		{"missing root", "x.json", []string{filepath.Join(root, "absent")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ResolveWithin(tt.value, tt.roots)
			assert.Equal(t, tt.ok, ok)
		})
	}

	t.Run("returns resolved target", func(t *testing.T) {
		resolvedRoot, err := filepath.EvalSymlinks(root)
		require.NoError(t, err)

		got, ok := ResolveWithin("alias.json", []string{root})
		require.True(t, ok)
		assert.Equal(t, filepath.Join(resolvedRoot, "solve-it.json"), got)
	})
}
