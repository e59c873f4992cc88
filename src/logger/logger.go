// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Logger defines the interface for logging operations.
// It provides leveled, key/value structured methods plus the printf-style
// helpers used by the command-line entry points.
//
// This interface supports both CLI and [MCP] server modes, allowing seamless
// switching between human-readable output and structured JSON logging.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type Logger interface {
	// Debug logs a message with optional key/value pairs at debug level.
	Debug(msg string, keyvals ...any)
	// Info logs a message with optional key/value pairs at info level.
	Info(msg string, keyvals ...any)
	// Warn logs a message with optional key/value pairs at warn level.
	Warn(msg string, keyvals ...any)
	// Error logs a message with optional key/value pairs at error level.
	Error(msg string, keyvals ...any)
	// Printf formats and prints an info-level message.
	Printf(format string, v ...any)
	// Println prints an info-level message built from its operands.
	Println(v ...any)
	// With returns a child logger that always includes the given key/value pairs.
	With(keyvals ...any) Logger
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// Format selects the line encoding of a [Structured] logger.
type Format string

const (
	// FormatHuman renders colourless "LEVEL prefix: msg key=value" lines.
	FormatHuman Format = "human"
	// FormatJSON renders one JSON object per line.
	FormatJSON Format = "json"
)

// ParseFormat maps a LOG_FORMAT value to a [Format]. Unknown values fall back to human.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatHuman
}

// Options configures a [Structured] logger.
//
// Fields:
//   - Level: Minimum level name ("debug", "info", "warn", "error"); empty means info
//   - Format: Line encoding, see [FormatHuman] and [FormatJSON]
//   - Prefix: Optional prefix printed before each message
//   - Timestamps: Whether to include an RFC 3339 timestamp
type Options struct {
	Level      string
	Format     Format
	Prefix     string
	Timestamps bool
}

// Structured implements Logger on top of [log.Logger] from charmbracelet.
//
// Structured is safe for concurrent use by multiple goroutines.
type Structured struct {
	mu     *sync.Mutex
	l      *log.Logger
	silent bool
}

// New creates a structured logger writing to w. A nil writer discards output.
func New(w io.Writer, opts Options) *Structured {
	if w == nil {
		w = io.Discard
	}

	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: opts.Timestamps,
		TimeFormat:      time.RFC3339,
		Prefix:          opts.Prefix,
	})

	if opts.Format == FormatJSON {
		l.SetFormatter(log.JSONFormatter)
	} else {
		l.SetFormatter(log.TextFormatter)
	}

	level := log.InfoLevel
	if opts.Level != "" {
		if parsed, err := log.ParseLevel(strings.ToLower(opts.Level)); err == nil {
			level = parsed
		}
	}
	l.SetLevel(level)

	return &Structured{mu: &sync.Mutex{}, l: l}
}

// NewCLILogger creates a human-readable logger on stderr with timestamps disabled.
// Command output owns stdout, so diagnostics stay out of piped results.
func NewCLILogger() *Structured {
	return New(os.Stderr, Options{Format: FormatHuman})
}

// NewMCPLogger creates a new [MCP] logger emitting JSON lines.
// When silent is true all output is suppressed, which keeps the stdio protocol
// clean when no separate log destination is configured.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
func NewMCPLogger(writer io.Writer, silent bool) *Structured {
	s := New(writer, Options{Format: FormatJSON, Timestamps: true})
	s.silent = silent
	return s
}

// NewTestLogger creates a debug-level human logger writing into a buffer so tests
// can assert on what was logged.
func NewTestLogger() (*Structured, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, Options{Level: "debug", Format: FormatHuman}), &buf
}

// Nop returns a logger that drops everything.
func Nop() *Structured { return NewMCPLogger(io.Discard, true) }

// Debug logs at debug level.
func (s *Structured) Debug(msg string, keyvals ...any) {
	if !s.silent {
		s.l.Debug(msg, keyvals...)
	}
}

// Info logs at info level.
func (s *Structured) Info(msg string, keyvals ...any) {
	if !s.silent {
		s.l.Info(msg, keyvals...)
	}
}

// Warn logs at warn level.
func (s *Structured) Warn(msg string, keyvals ...any) {
	if !s.silent {
		s.l.Warn(msg, keyvals...)
	}
}

// Error logs at error level.
func (s *Structured) Error(msg string, keyvals ...any) {
	if !s.silent {
		s.l.Error(msg, keyvals...)
	}
}

// Printf formats and logs an info-level message using fmt.Sprintf semantics.
func (s *Structured) Printf(format string, v ...any) { s.Info(fmt.Sprintf(format, v...)) }

// Println logs an info-level message using fmt.Sprint semantics.
func (s *Structured) Println(v ...any) { s.Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n")) }

// With returns a child logger carrying keyvals on every line.
func (s *Structured) With(keyvals ...any) Logger {
	return &Structured{mu: s.mu, l: s.l.With(keyvals...), silent: s.silent}
}

// SetOutput sets the output destination. A nil writer discards output.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (s *Structured) SetOutput(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w == nil {
		w = io.Discard
	}
	s.l.SetOutput(w)
}
