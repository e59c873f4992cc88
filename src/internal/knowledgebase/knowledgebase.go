// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package knowledgebase

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/helper/posix"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
)

// Options configures [Open].
//
// Fields:
//   - DataPath: Explicit data root override; tried before the default locations
//   - DefaultMapping: Mapping activated at startup; defaults to [DefaultMapping]
//   - Logger: Destination for load messages and anomalies; defaults to [logger.Nop]
type Options struct {
	DataPath       string
	DefaultMapping string
	Logger         logger.Logger
}

// KnowledgeBase owns the published [Snapshot] and serialises everything that
// replaces it. Readers call [KnowledgeBase.Current] and never block.
type KnowledgeBase struct {
	root string
	log  logger.Logger

	mu      sync.Mutex // held while building a replacement snapshot
	current atomic.Pointer[Snapshot]
}

// Open resolves the data root, loads every record and activates the default
// mapping. Any failure here is fatal to the caller: there is no degraded mode.
func Open(opts Options) (*KnowledgeBase, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	mapping := opts.DefaultMapping
	if mapping == "" {
		mapping = DefaultMapping
	}

	wd, _ := os.Getwd()
	root, err := ResolveDataPath(opts.DataPath, posix.ExecutableDir(), wd, log)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(filepath.Join(root, mapping)); err != nil {
		return nil, toolerr.DataNotFound(filepath.Join(root, mapping), "default objective mapping "+mapping)
	}

	kb := &KnowledgeBase{root: root, log: log}
	snap, err := kb.build(mapping)
	if err != nil {
		return nil, err
	}
	kb.current.Store(snap)
	kb.logPublished("knowledge base ready", snap)
	return kb, nil
}

// Root returns the resolved data root.
func (kb *KnowledgeBase) Root() string { return kb.root }

// Current returns the published snapshot.
func (kb *KnowledgeBase) Current() *Snapshot { return kb.current.Load() }

// Reload re-reads every record and re-applies the active mapping file. On any
// failure the previous snapshot stays published and the error is returned.
func (kb *KnowledgeBase) Reload() (*Snapshot, error) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	prev := kb.current.Load()
	snap, err := kb.build(prev.MappingName())
	if err != nil {
		kb.log.Error("reload failed, keeping previous snapshot", "error", err)
		return prev, err
	}
	kb.current.Store(snap)
	kb.logPublished("knowledge base reloaded", snap)
	return snap, nil
}

// LoadObjectiveMapping activates mapping file name from the data root. The
// records are not re-read. On failure the previous mapping stays active and a
// [toolerr.KindMappingLoad] error explains why.
func (kb *KnowledgeBase) LoadObjectiveMapping(name string) (*Snapshot, error) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	prev := kb.current.Load()
	objectives, err := readMapping(kb.root, name)
	if err != nil {
		kb.log.Warn("objective mapping rejected", "file", name, "error", err, "active", prev.MappingName())
		return prev, err
	}

	snap := &Snapshot{
		store:    prev.store,
		index:    prev.index,
		search:   prev.search,
		mapping:  resolveMapping(name, objectives, prev.store, kb.log),
		loadedAt: time.Now(),
	}
	kb.current.Store(snap)
	kb.logPublished("objective mapping activated", snap)
	return snap, nil
}

// ListAvailableMappings lists the mapping files in the data root.
func (kb *KnowledgeBase) ListAvailableMappings() ([]string, error) {
	return ListAvailableMappings(kb.root)
}

// build reads the records and the named mapping into a new snapshot without
// publishing it.
func (kb *KnowledgeBase) build(mapping string) (*Snapshot, error) {
	store, err := LoadDataStore(kb.root, kb.log)
	if err != nil {
		return nil, err
	}
	objectives, err := readMapping(kb.root, mapping)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		store:    store,
		index:    BuildIndex(store, kb.log),
		search:   buildSearchIndex(store),
		mapping:  resolveMapping(mapping, objectives, store, kb.log),
		loadedAt: time.Now(),
	}, nil
}

func (kb *KnowledgeBase) logPublished(msg string, snap *Snapshot) {
	c := snap.Counts()
	kb.log.Info(msg,
		"mapping", snap.MappingName(),
		"techniques", c.Techniques,
		"weaknesses", c.Weaknesses,
		"mitigations", c.Mitigations,
		"objectives", c.Objectives,
		"anomalies", len(snap.Anomalies()),
	)
}
