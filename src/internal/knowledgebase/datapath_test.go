// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package knowledgebase_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	p := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(p, 0o755))
	return p
}

func TestResolveDataPath(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) (override, exeDir, workDir, want string)
	}{
		{
			name: "override wins",
			setup: func(t *testing.T) (string, string, string, string) {
				override := mkdir(t, t.TempDir(), "custom")
				work := t.TempDir()
				mkdir(t, work, "data")
				return override, "", work, override
			},
		},
		{
			name: "missing override falls through",
			setup: func(t *testing.T) (string, string, string, string) {
				work := t.TempDir()
				want := mkdir(t, work, "data")
				return filepath.Join(work, "absent"), "", work, want
			},
		},
		{
			name: "executable directory before working directory",
			setup: func(t *testing.T) (string, string, string, string) {
				exe := t.TempDir()
				want := mkdir(t, exe, "solve-it-main", "data")
				work := t.TempDir()
				mkdir(t, work, "data")
				return "", exe, work, want
			},
		},
		{
			name: "sibling of executable directory",
			setup: func(t *testing.T) (string, string, string, string) {
				base := t.TempDir()
				exe := mkdir(t, base, "bin")
				want := mkdir(t, base, "solve-it-main", "data")
				return "", exe, "", want
			},
		},
		{
			name: "checkout root normalised to data child",
			setup: func(t *testing.T) (string, string, string, string) {
				checkout := t.TempDir()
				mkdir(t, checkout, "data", "techniques")
				return checkout, "", "", filepath.Join(checkout, "data")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			override, exeDir, workDir, want := tt.setup(t)
			got, err := knowledgebase.ResolveDataPath(override, exeDir, workDir, logger.Nop())
			require.NoError(t, err)

			wantAbs, err := filepath.Abs(want)
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(wantAbs), got)
		})
	}
}

func TestResolveDataPathNotFound(t *testing.T) {
	log, buf := logger.NewTestLogger()
	_, err := knowledgebase.ResolveDataPath(filepath.Join(t.TempDir(), "absent"), t.TempDir(), t.TempDir(), log)
	require.Error(t, err)
	assert.Equal(t, toolerr.KindDataNotFound, toolerr.KindOf(err))
	assert.Contains(t, buf.String(), "data path override does not exist")
}

func TestPathCandidates(t *testing.T) {
	got := knowledgebase.PathCandidates("o", "e", "w")
	assert.Equal(t, []string{
		"o",
		filepath.Join("e", "solve-it-main", "data"),
		filepath.Join("e", "..", "solve-it-main", "data"),
		filepath.Join("w", "solve-it-main", "data"),
		filepath.Join("w", "data"),
	}, got)
	assert.Empty(t, knowledgebase.PathCandidates("", "", ""))
}
