// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package security

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

// ResolveWithin resolves value against roots and returns the first result that
// stays inside its root. Relative values are joined to each root; absolute
// values must already lie inside one.
//
// Symbolic links are followed on both sides before the comparison, so a link
// inside a root that points elsewhere is rejected. A value naming a file that
// does not exist yet is resolved through its parent directory. Any other
// resolution failure rejects the value for that root.
func ResolveWithin(value string, roots []string) (string, bool) {
	for _, root := range roots {
		resolvedRoot, err := filepath.EvalSymlinks(filepath.Clean(root))
		if err != nil {
			continue
		}

		candidate := value
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(root, candidate)
		}
		resolved, err := resolvePath(filepath.Clean(candidate))
		if err != nil {
			continue
		}

		if within(resolvedRoot, resolved) {
			return resolved, true
		}
	}
	return "", false
}

// resolvePath follows every symbolic link in path. When the final element is
// missing, the parent is resolved and the name appended unchanged.
func resolvePath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	parent, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		return "", err
	}
	return filepath.Join(parent, filepath.Base(path)), nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
