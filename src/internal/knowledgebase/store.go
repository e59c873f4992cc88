// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package knowledgebase

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/helper/gc"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
)

// DataStore holds the entity records read from a data root.
// It is never modified after [LoadDataStore] returns.
type DataStore struct {
	root string

	techniques  map[string]*Technique
	weaknesses  map[string]*Weakness
	mitigations map[string]*Mitigation

	techniqueIDs  []string
	weaknessIDs   []string
	mitigationIDs []string

	anomalies []Anomaly
}

// LoadDataStore reads every technique, weakness and mitigation record below root.
//
// A missing entity directory fails the load with [toolerr.KindDataNotFound].
// Individual files that cannot be parsed, lack an ID or repeat an ID are
// skipped and recorded as anomalies.
func LoadDataStore(root string, log logger.Logger) (*DataStore, error) {
	an := &anomalies{log: log}
	ds := &DataStore{root: root}

	var err error
	if ds.techniques, ds.techniqueIDs, err = readRecords(root, TechniquesDir, func(t *Technique) string { return t.ID }, an); err != nil {
		return nil, err
	}
	if ds.weaknesses, ds.weaknessIDs, err = readRecords(root, WeaknessesDir, func(w *Weakness) string { return w.ID }, an); err != nil {
		return nil, err
	}
	if ds.mitigations, ds.mitigationIDs, err = readRecords(root, MitigationsDir, func(m *Mitigation) string { return m.ID }, an); err != nil {
		return nil, err
	}

	ds.anomalies = an.items
	log.Info("loaded knowledge base records",
		"path", root,
		"techniques", len(ds.techniqueIDs),
		"weaknesses", len(ds.weaknessIDs),
		"mitigations", len(ds.mitigationIDs),
	)
	return ds, nil
}

// Root returns the data root the store was loaded from.
func (ds *DataStore) Root() string { return ds.root }

// HasTechnique reports whether id is a loaded technique.
func (ds *DataStore) HasTechnique(id string) bool { _, ok := ds.techniques[id]; return ok }

// HasWeakness reports whether id is a loaded weakness.
func (ds *DataStore) HasWeakness(id string) bool { _, ok := ds.weaknesses[id]; return ok }

// HasMitigation reports whether id is a loaded mitigation.
func (ds *DataStore) HasMitigation(id string) bool { _, ok := ds.mitigations[id]; return ok }

// TechniqueIDs returns all technique IDs in natural order.
func (ds *DataStore) TechniqueIDs() []string { return cloneStrings(ds.techniqueIDs) }

// WeaknessIDs returns all weakness IDs in natural order.
func (ds *DataStore) WeaknessIDs() []string { return cloneStrings(ds.weaknessIDs) }

// MitigationIDs returns all mitigation IDs in natural order.
func (ds *DataStore) MitigationIDs() []string { return cloneStrings(ds.mitigationIDs) }

// readRecords decodes every *.json file in root/dir. Files are visited in
// lexical order, so the first file wins when two declare the same ID.
func readRecords[T any](root, dir string, idOf func(*T) string, an *anomalies) (map[string]*T, []string, error) {
	path := filepath.Join(root, dir)
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, toolerr.DataNotFound(path, dir+" directory")
		}
		return nil, nil, fmt.Errorf("failed to read %s directory: %w", dir, err)
	}

	records := make(map[string]*T, len(entries))
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		file := filepath.Join(dir, entry.Name())
		rec := new(T)
		if err := decodeFile(filepath.Join(path, entry.Name()), rec); err != nil {
			an.add(AnomalyUnreadableRecord, file, "", fmt.Sprintf("skipping unreadable record: %v", err))
			continue
		}

		id := idOf(rec)
		if strings.TrimSpace(id) == "" {
			an.add(AnomalyUnreadableRecord, file, "", "skipping record without an id")
			continue
		}
		if _, dup := records[id]; dup {
			an.add(AnomalyDuplicateID, file, id, fmt.Sprintf("duplicate id %s, keeping the first record", id))
			continue
		}
		records[id] = rec
		ids = append(ids, id)
	}

	SortIDs(ids)
	return records, ids, nil
}

// decodeFile reads a JSON file through a pooled buffer and decodes it into v.
func decodeFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(f); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), v)
}
