// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package toolerr

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// Kind tags an [Error] with its category.
type Kind string

const (
	// KindDataNotFound indicates the data root, a required directory, or the
	// default mapping file is missing.
	KindDataNotFound Kind = "data_not_found"

	// KindNotFound indicates a well-formed but unknown entity ID or objective name.
	KindNotFound Kind = "not_found"

	// KindValidation indicates malformed, missing, or out-of-domain arguments.
	KindValidation Kind = "validation_error"

	// KindRateLimitExceeded indicates the invocation or output rate ceiling was hit.
	KindRateLimitExceeded Kind = "rate_limit_exceeded"

	// KindTimeoutExceeded indicates the invocation did not finish in time.
	KindTimeoutExceeded Kind = "timeout_exceeded"

	// KindSizeLimitExceeded indicates an input, string, or output ceiling was hit.
	KindSizeLimitExceeded Kind = "size_limit_exceeded"

	// KindMappingLoad indicates an objective mapping file could not be activated.
	KindMappingLoad Kind = "mapping_load_error"

	// KindUnknownOperation indicates the requested operation is not registered.
	KindUnknownOperation Kind = "unknown_operation"

	// KindConfiguration indicates an invalid tool security declaration at startup.
	KindConfiguration Kind = "configuration_error"

	// KindInternal is used for any untyped failure. Its message is always generic.
	KindInternal Kind = "internal_error"
)

// FieldError attributes a validation failure to a single argument.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// String renders the field error as "field: message".
func (f FieldError) String() string {
	if f.Field == "" {
		return f.Message
	}
	return f.Field + ": " + f.Message
}

// Error is the structured error type returned by every component.
//
// Only Kind, Message, ID, EntityType, File and Fields are ever shown to a caller.
// Cause holds the underlying error for logs and for [errors.Unwrap].
type Error struct {
	Kind       Kind
	Message    string
	ID         string
	EntityType string
	File       string
	Fields     []FieldError
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil && e.Kind != KindInternal {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause attaches an underlying error and returns the same instance for chaining.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// Payload returns the caller-safe representation of the error.
//
// The returned map is what the dispatcher serialises into an MCP error result.
// It never contains the Cause.
func (e *Error) Payload() map[string]any {
	p := map[string]any{
		"error":   string(e.Kind),
		"message": e.Message,
	}
	if e.ID != "" {
		p["id"] = e.ID
	}
	if e.EntityType != "" {
		p["entity_type"] = e.EntityType
	}
	if e.File != "" {
		p["file"] = e.File
	}
	if len(e.Fields) > 0 {
		p["fields"] = e.Fields
	}
	return p
}

// New creates an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an unknown ID of the given entity type.
//
// Example:
//
//	return nil, toolerr.NotFound("technique", "T9999")
func NotFound(entityType, id string) *Error {
	return &Error{
		Kind:       KindNotFound,
		Message:    fmt.Sprintf("%s %q not found", entityType, id),
		ID:         id,
		EntityType: entityType,
	}
}

// Validation reports one or more violated fields as a single error.
func Validation(fields ...FieldError) *Error {
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.String())
	}
	return &Error{
		Kind:    KindValidation,
		Message: "invalid arguments: " + strings.Join(msgs, "; "),
		Fields:  fields,
	}
}

// Invalid is shorthand for a validation error on a single field.
func Invalid(field, format string, args ...any) *Error {
	return Validation(FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// DataNotFound reports a missing data directory or file. Only the base name of
// path reaches the caller; the full path is kept in the cause for logs.
func DataNotFound(path, what string) *Error {
	e := &Error{
		Kind:    KindDataNotFound,
		Message: fmt.Sprintf("%s not found", what),
	}
	if path != "" {
		e.File = filepath.Base(path)
		e.Cause = &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return e
}

// MappingLoad reports a mapping file that could not be activated. The reason is
// shown to the caller, so it must not carry internal paths.
func MappingLoad(file, reason string) *Error {
	return &Error{
		Kind:    KindMappingLoad,
		Message: fmt.Sprintf("failed to load objective mapping %q: %s; previous mapping retained", file, reason),
		File:    file,
	}
}

// RateLimitExceeded reports a tripped rate ceiling with a generic message.
func RateLimitExceeded() *Error {
	return &Error{Kind: KindRateLimitExceeded, Message: "rate limit exceeded, retry later"}
}

// TimeoutExceeded reports an invocation that ran past its deadline.
func TimeoutExceeded(limit time.Duration) *Error {
	return &Error{Kind: KindTimeoutExceeded, Message: fmt.Sprintf("operation exceeded its %s time limit", limit)}
}

// SizeLimitExceeded reports a tripped size ceiling. what names the measured
// quantity ("input", "string argument", "output") and is safe to show.
func SizeLimitExceeded(what string) *Error {
	return &Error{Kind: KindSizeLimitExceeded, Message: what + " exceeds the configured size limit"}
}

// UnknownOperation reports an unregistered operation name.
func UnknownOperation(name string) *Error {
	return &Error{Kind: KindUnknownOperation, Message: fmt.Sprintf("unknown operation %q", name), ID: name}
}

// Configuration reports an invalid tool declaration detected at startup.
func Configuration(tool, format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf("tool %q: %s", tool, fmt.Sprintf(format, args...))}
}

// Internal wraps an untyped error behind a generic message.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error while processing the request", Cause: cause}
}

// As extracts a *Error from err's chain.
func As(err error) (*Error, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal for untyped errors and "" for nil.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if te, ok := As(err); ok {
		return te.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool { return err != nil && KindOf(err) == kind }

// Safe converts any error into a caller-safe *Error. Typed errors pass through;
// everything else becomes [KindInternal].
func Safe(err error) *Error {
	if err == nil {
		return nil
	}
	if te, ok := As(err); ok {
		return te
	}
	return Internal(err)
}
