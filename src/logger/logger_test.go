// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/CKE-Proto/solve-it-mcp/src/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "KeyValues",
			testFunc: func(t *testing.T) {
				log, buf := logger.NewTestLogger()
				log.Info("snapshot loaded", "techniques", 3)

				assert.Contains(t, buf.String(), "snapshot loaded")
				assert.Contains(t, buf.String(), "techniques=3")
			},
		},
		{
			name: "LevelFilter",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.New(&buf, logger.Options{Level: "warn"})

				log.Info("hidden")
				log.Warn("shown")

				assert.NotContains(t, buf.String(), "hidden")
				assert.Contains(t, buf.String(), "shown")
			},
		},
		{
			name: "With",
			testFunc: func(t *testing.T) {
				log, buf := logger.NewTestLogger()
				child := log.With("tool", "search")
				child.Debug("dispatch")

				assert.Contains(t, buf.String(), "tool=search")
			},
		},
		{
			name: "Printf",
			testFunc: func(t *testing.T) {
				log, buf := logger.NewTestLogger()
				log.Printf("loaded %d mappings", 2)
				log.Println("ready", "now")

				assert.Contains(t, buf.String(), "loaded 2 mappings")
				assert.Contains(t, buf.String(), "ready now")
			},
		},
		{
			name: "SetOutput",
			testFunc: func(t *testing.T) {
				var buf1, buf2 bytes.Buffer
				log := logger.New(&buf1, logger.Options{})

				log.Info("first")
				log.SetOutput(&buf2)
				log.Info("second")

				assert.Contains(t, buf1.String(), "first")
				assert.Contains(t, buf2.String(), "second")
				assert.NotContains(t, buf1.String(), "second")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestMCPLogger(t *testing.T) {
	t.Run("JSONLines", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.NewMCPLogger(&buf, false)

		log.Warn("rate limit exceeded", "tool", "search")

		line := strings.TrimSpace(buf.String())
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "rate limit exceeded", entry["msg"])
		assert.Equal(t, "search", entry["tool"])
	})

	t.Run("Silent", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.NewMCPLogger(&buf, true)

		log.Error("nothing")
		log.With("k", "v").Info("still nothing")

		assert.Empty(t, buf.String())
	})

	t.Run("NilWriter", func(t *testing.T) {
		log := logger.NewMCPLogger(nil, false)
		assert.NotPanics(t, func() { log.Info("discarded") })
	})

	t.Run("ConcurrentUsage", func(t *testing.T) {
		var buf safeBuffer
		log := logger.NewMCPLogger(&buf, false)

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				log.Info("concurrent", "n", n)
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 20, strings.Count(buf.String(), "\n"))
	})
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, logger.FormatJSON, logger.ParseFormat("JSON"))
	assert.Equal(t, logger.FormatHuman, logger.ParseFormat("human"))
	assert.Equal(t, logger.FormatHuman, logger.ParseFormat("bogus"))
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
