// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/helper/gc"
)

// Indent is the indentation used by [Render].
const Indent = "  "

// Decode copies an argument map into dest, which must be a pointer to a struct.
// A nil map decodes as an empty object. Unknown fields and type mismatches are
// returned as errors.
func Decode(args map[string]any, dest any) error {
	if args == nil {
		args = map[string]any{}
	}

	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("failed to decode arguments: %w", err)
	}
	return nil
}

// Render encodes v as indented JSON without HTML escaping and without a
// trailing newline. The returned slice is owned by the caller.
func Render(v any) ([]byte, error) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to render result: %w", err)
	}

	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	// Copy out of the pooled buffer before it is reset.
	return append([]byte(nil), out...), nil
}

// Size returns the length in bytes of the compact JSON encoding of v.
// It is used to measure tool arguments against input size limits.
func Size(v any) (int, error) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(v); err != nil {
		return 0, fmt.Errorf("failed to measure value: %w", err)
	}
	return buf.Len() - 1, nil
}
