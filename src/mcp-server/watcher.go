// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is how long the watcher waits for a burst of file events to
// settle before reloading.
const defaultDebounce = 500 * time.Millisecond

// change classifies a file event under the data root.
type change int

const (
	changeNone change = iota
	// changeMapping is an edit to the active objective mapping file.
	changeMapping
	// changeRecords is an edit to a technique, weakness or mitigation record.
	changeRecords
)

// Watcher reloads the knowledge base when files under its data root change.
// Record changes rebuild the whole snapshot; a change to the active mapping
// file only re-applies the mapping. Failed reloads keep the published snapshot.
type Watcher struct {
	kb       *knowledgebase.KnowledgeBase
	log      logger.Logger
	debounce time.Duration

	mu      sync.Mutex
	pending change
	timer   *time.Timer

	// onFlush, when set, is called after every flush. Tests use it to wait
	// for reloads.
	onFlush func(change)
}

// NewWatcher creates a watcher for kb. A non-positive debounce uses the default.
func NewWatcher(kb *knowledgebase.KnowledgeBase, log logger.Logger, debounce time.Duration) *Watcher {
	if log == nil {
		log = logger.Nop()
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{kb: kb, log: log, debounce: debounce}
}

// Watch blocks until ctx is done, reloading on changes. It returns an error only
// if the watch could not be set up.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	root := w.kb.Root()
	dirs := []string{
		root,
		filepath.Join(root, knowledgebase.TechniquesDir),
		filepath.Join(root, knowledgebase.WeaknessesDir),
		filepath.Join(root, knowledgebase.MitigationsDir),
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.log.Info("watching data directory for changes", "root", root)

	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if c := w.classify(event.Name); c != changeNone {
				w.log.Debug("data file changed", "file", event.Name, "op", event.Op.String())
				w.schedule(c)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

// classify maps a changed path to the reload it needs.
func (w *Watcher) classify(path string) change {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return changeNone
	}
	rel, err := filepath.Rel(w.kb.Root(), path)
	if err != nil {
		return changeNone
	}

	dir, file := filepath.Split(rel)
	switch filepath.Clean(dir) {
	case knowledgebase.TechniquesDir, knowledgebase.WeaknessesDir, knowledgebase.MitigationsDir:
		return changeRecords
	case ".":
		if file == w.kb.Current().MappingName() {
			return changeMapping
		}
	}
	return changeNone
}

// schedule records c and restarts the debounce timer.
func (w *Watcher) schedule(c change) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = max(w.pending, c)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// flush applies the pending change.
func (w *Watcher) flush() {
	w.mu.Lock()
	c := w.pending
	w.pending = changeNone
	hook := w.onFlush
	w.mu.Unlock()

	switch c {
	case changeRecords:
		if _, err := w.kb.Reload(); err != nil {
			w.log.Warn("live reload failed, previous snapshot kept", "error", err)
		}
	case changeMapping:
		name := w.kb.Current().MappingName()
		if _, err := w.kb.LoadObjectiveMapping(name); err != nil {
			w.log.Warn("active mapping changed but could not be reloaded", "file", name, "error", err)
		}
	}

	if hook != nil {
		hook(c)
	}
}
