// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package security

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// joinPath builds the dotted location of a nested argument, e.g. "item_types[1]".
func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func indexPath(parent string, i int) string { return parent + "[" + strconv.Itoa(i) + "]" }

// checkTypes rejects any value that is not plain JSON data.
// It returns the location and Go type of the first offending value.
func checkTypes(v any, path string) (string, string, bool) {
	switch x := v.(type) {
	case nil, bool, string, json.Number,
		float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return "", "", true
	case []any:
		for i, item := range x {
			if p, t, ok := checkTypes(item, indexPath(path, i)); !ok {
				return p, t, false
			}
		}
		return "", "", true
	case map[string]any:
		for k, item := range x {
			if p, t, ok := checkTypes(item, joinPath(path, k)); !ok {
				return p, t, false
			}
		}
		return "", "", true
	default:
		return path, fmt.Sprintf("%T", v), false
	}
}

// longestString returns the location and length of the first string longer
// than limit, or ok when every string fits.
func longestString(v any, path string, limit int) (string, int, bool) {
	switch x := v.(type) {
	case string:
		if len(x) > limit {
			return path, len(x), false
		}
	case []any:
		for i, item := range x {
			if p, n, ok := longestString(item, indexPath(path, i), limit); !ok {
				return p, n, false
			}
		}
	case map[string]any:
		for k, item := range x {
			if p, n, ok := longestString(item, joinPath(path, k), limit); !ok {
				return p, n, false
			}
		}
	}
	return "", 0, true
}

// walkStrings calls fn for every string value in v, replacing it with the
// returned value. Containers are copied, v itself is never modified.
func walkStrings(v any, path string, fn func(path, s string) (string, error)) (any, error) {
	switch x := v.(type) {
	case string:
		return fn(path, x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			nv, err := walkStrings(item, indexPath(path, i), fn)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			nv, err := walkStrings(item, joinPath(path, k), fn)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	default:
		return v, nil
	}
}
