// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutableName(t *testing.T) {
	tests := []struct {
		name string
		arg0 string
		want string
	}{
		{name: "bare name", arg0: "solve-it", want: "solve-it"},
		{name: "relative path", arg0: "./solve-it-mcp", want: "solve-it-mcp"},
		{name: "unix absolute path", arg0: "/usr/local/bin/solve-it-mcp", want: "solve-it-mcp"},
		{name: "trailing separator", arg0: "/opt/solve-it/", want: "solve-it"},
		{name: "windows path", arg0: `C:\Program Files\SOLVE-IT\solve-it-mcp.exe`, want: "solve-it-mcp"},
		{name: "mixed separators", arg0: `C:\tools/bin\solve-it.exe`, want: "solve-it"},
		{name: "keeps other extensions", arg0: "/usr/bin/solve-it.bin", want: "solve-it.bin"},
		{name: "empty", arg0: "", want: DefaultExecutableName},
		{name: "only separators", arg0: "///", want: DefaultExecutableName},
		{name: "only extension", arg0: `C:\.exe`, want: DefaultExecutableName},
		{name: "dot", arg0: ".", want: DefaultExecutableName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, executableName(tt.arg0))
		})
	}
}

func TestGetExecutableName(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"/usr/local/bin/solve-it"}
	assert.Equal(t, "solve-it", GetExecutableName())

	os.Args = nil
	assert.Equal(t, DefaultExecutableName, GetExecutableName())
}

func TestExecutableDir(t *testing.T) {
	dir := ExecutableDir()
	require.NotEmpty(t, dir)
	assert.True(t, filepath.IsAbs(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
