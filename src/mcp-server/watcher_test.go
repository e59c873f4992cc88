// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase/kbtest"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherClassify(t *testing.T) {
	kb := openKB(t)
	w := NewWatcher(kb, nil, 0)
	root := kb.Root()

	tests := []struct {
		name string
		path string
		want change
	}{
		{"technique record", filepath.Join(root, "techniques", "T1001.json"), changeRecords},
		{"weakness record", filepath.Join(root, "weaknesses", "W1004.json"), changeRecords},
		{"mitigation record", filepath.Join(root, "mitigations", "M1001.JSON"), changeRecords},
		{"active mapping", filepath.Join(root, "solve-it.json"), changeMapping},
		{"inactive mapping", filepath.Join(root, "carrier.json"), changeNone},
		{"editor swap file", filepath.Join(root, "techniques", "T1001.json.swp"), changeNone},
		{"nested directory", filepath.Join(root, "techniques", "old", "T1001.json"), changeNone},
		{"outside root", filepath.Join(filepath.Dir(root), "solve-it.json"), changeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.classify(tt.path))
		})
	}
}

func TestWatcherFlushRecords(t *testing.T) {
	kb := openKB(t)
	w := NewWatcher(kb, nil, time.Hour)

	kbtest.WriteJSON(t, filepath.Join(kb.Root(), "mitigations", "M1004.json"), kbtest.Record{
		"id": "M1004", "name": "Document tooling", "description": "Record tool versions",
	})

	before := kb.Current()
	w.schedule(changeRecords)
	w.flush()

	after := kb.Current()
	assert.NotSame(t, before, after)
	assert.Equal(t, 4, after.Counts().Mitigations)
	w.stopTimer()
}

func TestWatcherFlushKeepsSnapshotOnFailure(t *testing.T) {
	log, buf := logger.NewTestLogger()
	kb := openKB(t)
	w := NewWatcher(kb, log, time.Hour)

	require.NoError(t, os.RemoveAll(filepath.Join(kb.Root(), "weaknesses")))

	before := kb.Current()
	w.schedule(changeRecords)
	w.flush()
	w.stopTimer()

	assert.Same(t, before, kb.Current())
	assert.Contains(t, buf.String(), "previous snapshot kept")
}

func TestWatcherFlushMapping(t *testing.T) {
	kb := openKB(t)
	w := NewWatcher(kb, nil, time.Hour)

	kbtest.WriteJSON(t, filepath.Join(kb.Root(), "solve-it.json"), map[string][]string{
		"Acquire data": {"T1001"},
		"Analyse logs": {"T1002"},
		"Report":       {"T1003"},
	})

	before := kb.Current()
	w.schedule(changeMapping)
	w.flush()
	w.stopTimer()

	after := kb.Current()
	assert.Equal(t, 3, after.Counts().Objectives)
	assert.Same(t, before.Store(), after.Store(), "a mapping change must not re-read records")
}

func TestWatcherSchedulePrefersRecords(t *testing.T) {
	w := NewWatcher(openKB(t), nil, time.Hour)
	w.schedule(changeRecords)
	w.schedule(changeMapping)
	w.stopTimer()

	w.mu.Lock()
	defer w.mu.Unlock()
	assert.Equal(t, changeRecords, w.pending)
}

func TestWatcherReloadsOnFileChange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping filesystem watch test in short mode")
	}

	kb := openKB(t)
	w := NewWatcher(kb, nil, 50*time.Millisecond)

	flushed := make(chan change, 8)
	w.onFlush = func(c change) { flushed <- c }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	// The watch is registered asynchronously; keep touching the file until
	// a reload picks the new record up.
	path := filepath.Join(kb.Root(), "techniques", "T1004.json")
	require.Eventually(t, func() bool {
		kbtest.WriteJSON(t, path, kbtest.Record{
			"id": "T1004", "name": "Timeline analysis", "description": "Order events", "weaknesses": []string{},
		})
		select {
		case <-flushed:
		case <-time.After(200 * time.Millisecond):
		}
		return kb.Current().Counts().Techniques == 4
	}, 5*time.Second, 10*time.Millisecond)
}
