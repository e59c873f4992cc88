// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package security

import (
	"strings"
	"unicode"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
)

// traversalSequences are matched case-insensitively against string arguments.
var traversalSequences = []string{
	"../",
	`..\`,
	"..%2f",
	"..%5c",
	"%2e%2e/",
	`%2e%2e\`,
	"%2e%2e%2f",
	"%2e%2e%5c",
	"%252e%252e",
}

// StripControl removes control characters from s, keeping tab, newline and
// carriage return.
func StripControl(s string) string {
	if strings.IndexFunc(s, isStrippable) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isStrippable(r) {
			return -1
		}
		return r
	}, s)
}

func isStrippable(r rune) bool {
	return unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r'
}

// HasTraversal reports whether s contains a path traversal sequence, plain
// or percent-encoded. A bare ".." also counts.
func HasTraversal(s string) bool {
	lower := strings.ToLower(s)
	if lower == ".." || strings.HasSuffix(lower, "/..") || strings.HasSuffix(lower, `\..`) {
		return true
	}
	for _, seq := range traversalSequences {
		if strings.Contains(lower, seq) {
			return true
		}
	}
	return false
}

// Sanitize returns a copy of args with control characters stripped from every
// string. A string holding a traversal sequence fails with a validation error
// naming its location.
func Sanitize(args map[string]any) (map[string]any, error) {
	out, err := walkStrings(args, "", func(path, s string) (string, error) {
		clean := StripControl(s)
		if HasTraversal(clean) {
			return "", toolerr.Invalid(path, "path traversal sequences are not allowed")
		}
		return clean, nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return map[string]any{}, nil
	}
	return out.(map[string]any), nil
}
