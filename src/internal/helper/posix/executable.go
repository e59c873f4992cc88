// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultExecutableName is returned when os.Args[0] is unusable.
const DefaultExecutableName = "solve-it-mcp"

// GetExecutableName returns the base name of os.Args[0] without a ".exe"
// suffix. Both slash and backslash separate path components, whatever the
// host OS, so a Windows path seen on Unix still yields its last element.
func GetExecutableName() string {
	if len(os.Args) == 0 {
		return DefaultExecutableName
	}
	return executableName(os.Args[0])
}

func executableName(arg0 string) string {
	parts := strings.FieldsFunc(arg0, func(r rune) bool {
		return r == '/' || r == '\\' || r == filepath.Separator
	})
	if len(parts) == 0 {
		return DefaultExecutableName
	}
	name := strings.TrimSuffix(parts[len(parts)-1], ".exe")
	if name == "" || name == "." || name == ".." {
		return DefaultExecutableName
	}
	return name
}

// ExecutableDir returns the directory holding the running binary with symlinks
// resolved. It returns an empty string when the path cannot be determined, which
// callers treat as "no candidate".
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
