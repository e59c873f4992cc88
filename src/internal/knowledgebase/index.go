// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package knowledgebase

import (
	"fmt"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
)

// RelationshipIndex holds both directions of the technique, weakness and
// mitigation edges of one [DataStore].
//
// Only the technique→weakness and weakness→mitigation declarations are read;
// the reverse adjacency is mirrored from them, so the two directions always
// agree. Every lookup returns a fresh slice the caller may modify.
type RelationshipIndex struct {
	store *DataStore

	techniqueWeaknesses  map[string][]string // declaration order
	weaknessTechniques   map[string][]string // natural ID order
	weaknessMitigations  map[string][]string // declaration order
	mitigationWeaknesses map[string][]string // natural ID order

	anomalies []Anomaly
}

// BuildIndex derives the relationship index of ds. References to entities
// missing from ds are dropped and reported as anomalies.
func BuildIndex(ds *DataStore, log logger.Logger) *RelationshipIndex {
	an := &anomalies{log: log}
	idx := &RelationshipIndex{
		store:                ds,
		techniqueWeaknesses:  make(map[string][]string, len(ds.techniques)),
		weaknessTechniques:   make(map[string][]string, len(ds.weaknesses)),
		weaknessMitigations:  make(map[string][]string, len(ds.weaknesses)),
		mitigationWeaknesses: make(map[string][]string, len(ds.mitigations)),
	}

	for _, tid := range ds.techniqueIDs {
		var kept []string
		seen := make(map[string]bool)
		for _, wid := range ds.techniques[tid].Weaknesses {
			if seen[wid] {
				continue
			}
			seen[wid] = true
			if !ds.HasWeakness(wid) {
				an.add(AnomalyDanglingWeakness, tid, wid,
					fmt.Sprintf("technique %s references unknown weakness %s", tid, wid))
				continue
			}
			kept = append(kept, wid)
			idx.weaknessTechniques[wid] = append(idx.weaknessTechniques[wid], tid)
		}
		idx.techniqueWeaknesses[tid] = kept
	}

	for _, wid := range ds.weaknessIDs {
		var kept []string
		seen := make(map[string]bool)
		for _, mid := range ds.weaknesses[wid].Mitigations {
			if seen[mid] {
				continue
			}
			seen[mid] = true
			if !ds.HasMitigation(mid) {
				an.add(AnomalyDanglingMitigation, wid, mid,
					fmt.Sprintf("weakness %s references unknown mitigation %s", wid, mid))
				continue
			}
			kept = append(kept, mid)
			idx.mitigationWeaknesses[mid] = append(idx.mitigationWeaknesses[mid], wid)
		}
		idx.weaknessMitigations[wid] = kept
	}

	// Mirrored lists were appended while walking IDs in natural order, so they
	// are already sorted.
	idx.anomalies = an.items
	return idx
}

// WeaknessesForTechnique returns the weaknesses technique id exhibits.
func (idx *RelationshipIndex) WeaknessesForTechnique(id string) ([]string, error) {
	if !idx.store.HasTechnique(id) {
		return nil, toolerr.NotFound(EntityTechnique, id)
	}
	return cloneStrings(idx.techniqueWeaknesses[id]), nil
}

// TechniquesForWeakness returns the techniques that exhibit weakness id.
func (idx *RelationshipIndex) TechniquesForWeakness(id string) ([]string, error) {
	if !idx.store.HasWeakness(id) {
		return nil, toolerr.NotFound(EntityWeakness, id)
	}
	return cloneStrings(idx.weaknessTechniques[id]), nil
}

// MitigationsForWeakness returns the mitigations addressing weakness id.
func (idx *RelationshipIndex) MitigationsForWeakness(id string) ([]string, error) {
	if !idx.store.HasWeakness(id) {
		return nil, toolerr.NotFound(EntityWeakness, id)
	}
	return cloneStrings(idx.weaknessMitigations[id]), nil
}

// WeaknessesForMitigation returns the weaknesses mitigation id addresses.
func (idx *RelationshipIndex) WeaknessesForMitigation(id string) ([]string, error) {
	if !idx.store.HasMitigation(id) {
		return nil, toolerr.NotFound(EntityMitigation, id)
	}
	return cloneStrings(idx.mitigationWeaknesses[id]), nil
}

// TechniquesForMitigation returns every technique exhibiting a weakness that
// mitigation id addresses, de-duplicated and in natural ID order.
func (idx *RelationshipIndex) TechniquesForMitigation(id string) ([]string, error) {
	if !idx.store.HasMitigation(id) {
		return nil, toolerr.NotFound(EntityMitigation, id)
	}

	seen := make(map[string]bool)
	out := []string{}
	for _, wid := range idx.mitigationWeaknesses[id] {
		for _, tid := range idx.weaknessTechniques[wid] {
			if !seen[tid] {
				seen[tid] = true
				out = append(out, tid)
			}
		}
	}
	SortIDs(out)
	return out, nil
}

// Anomalies returns the dangling references dropped while building the index.
func (idx *RelationshipIndex) Anomalies() []Anomaly { return append([]Anomaly(nil), idx.anomalies...) }
