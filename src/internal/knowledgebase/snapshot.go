// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package knowledgebase

import (
	"time"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
)

// Snapshot is one immutable, internally consistent view of the knowledge base:
// the records, their relationship index, the active objective mapping and the
// anomalies found while building them.
//
// A Snapshot is safe for concurrent use. Records returned from it are copies.
type Snapshot struct {
	store    *DataStore
	index    *RelationshipIndex
	search   *searchIndex
	mapping  *ObjectiveMapping
	loadedAt time.Time
}

// DataPath returns the data root the snapshot was loaded from.
func (s *Snapshot) DataPath() string { return s.store.root }

// MappingName returns the file name of the active objective mapping.
func (s *Snapshot) MappingName() string { return s.mapping.name }

// LoadedAt returns when the snapshot was published.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Store returns the underlying record store.
func (s *Snapshot) Store() *DataStore { return s.store }

// Index returns the relationship index.
func (s *Snapshot) Index() *RelationshipIndex { return s.index }

// Counts returns entity and objective totals.
func (s *Snapshot) Counts() Counts {
	return Counts{
		Techniques:  len(s.store.techniqueIDs),
		Weaknesses:  len(s.store.weaknessIDs),
		Mitigations: len(s.store.mitigationIDs),
		Objectives:  s.mapping.Len(),
	}
}

// Anomalies returns the full anomaly report: record, relationship and mapping
// anomalies in that order.
func (s *Snapshot) Anomalies() []Anomaly {
	out := make([]Anomaly, 0, len(s.store.anomalies)+len(s.index.anomalies)+len(s.mapping.anomalies))
	out = append(out, s.store.anomalies...)
	out = append(out, s.index.anomalies...)
	return append(out, s.mapping.anomalies...)
}

// Technique returns technique id with its resolved weaknesses and objective.
func (s *Snapshot) Technique(id string) (Technique, error) {
	t, ok := s.store.techniques[id]
	if !ok {
		return Technique{}, toolerr.NotFound(EntityTechnique, id)
	}
	return s.technique(t), nil
}

// Weakness returns weakness id with both relationship lists resolved.
func (s *Snapshot) Weakness(id string) (Weakness, error) {
	w, ok := s.store.weaknesses[id]
	if !ok {
		return Weakness{}, toolerr.NotFound(EntityWeakness, id)
	}
	return s.weakness(w), nil
}

// Mitigation returns mitigation id with its resolved weaknesses.
func (s *Snapshot) Mitigation(id string) (Mitigation, error) {
	m, ok := s.store.mitigations[id]
	if !ok {
		return Mitigation{}, toolerr.NotFound(EntityMitigation, id)
	}
	return s.mitigation(m), nil
}

func (s *Snapshot) technique(t *Technique) Technique {
	c := *t
	c.Weaknesses = cloneStrings(s.index.techniqueWeaknesses[t.ID])
	c.Objective = s.mapping.techniqueObjective[t.ID]
	return c
}

func (s *Snapshot) weakness(w *Weakness) Weakness {
	c := *w
	c.Mitigations = cloneStrings(s.index.weaknessMitigations[w.ID])
	c.Techniques = cloneStrings(s.index.weaknessTechniques[w.ID])
	return c
}

func (s *Snapshot) mitigation(m *Mitigation) Mitigation {
	c := *m
	c.Weaknesses = cloneStrings(s.index.mitigationWeaknesses[m.ID])
	return c
}

func (s *Snapshot) techniques(ids []string) []Technique {
	out := make([]Technique, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.technique(s.store.techniques[id]))
	}
	return out
}

func (s *Snapshot) weaknesses(ids []string) []Weakness {
	out := make([]Weakness, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.weakness(s.store.weaknesses[id]))
	}
	return out
}

func (s *Snapshot) mitigations(ids []string) []Mitigation {
	out := make([]Mitigation, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.mitigation(s.store.mitigations[id]))
	}
	return out
}

// WeaknessesForTechnique returns the weakness records of technique id.
func (s *Snapshot) WeaknessesForTechnique(id string) ([]Weakness, error) {
	ids, err := s.index.WeaknessesForTechnique(id)
	if err != nil {
		return nil, err
	}
	return s.weaknesses(ids), nil
}

// MitigationsForWeakness returns the mitigation records of weakness id.
func (s *Snapshot) MitigationsForWeakness(id string) ([]Mitigation, error) {
	ids, err := s.index.MitigationsForWeakness(id)
	if err != nil {
		return nil, err
	}
	return s.mitigations(ids), nil
}

// TechniquesForWeakness returns the technique records exhibiting weakness id.
func (s *Snapshot) TechniquesForWeakness(id string) ([]Technique, error) {
	ids, err := s.index.TechniquesForWeakness(id)
	if err != nil {
		return nil, err
	}
	return s.techniques(ids), nil
}

// WeaknessesForMitigation returns the weakness records mitigation id addresses.
func (s *Snapshot) WeaknessesForMitigation(id string) ([]Weakness, error) {
	ids, err := s.index.WeaknessesForMitigation(id)
	if err != nil {
		return nil, err
	}
	return s.weaknesses(ids), nil
}

// TechniquesForMitigation returns the technique records reachable from mitigation id.
func (s *Snapshot) TechniquesForMitigation(id string) ([]Technique, error) {
	ids, err := s.index.TechniquesForMitigation(id)
	if err != nil {
		return nil, err
	}
	return s.techniques(ids), nil
}

// Objectives lists the objectives of the active mapping in mapping order.
func (s *Snapshot) Objectives() []ObjectiveSummary {
	out := make([]ObjectiveSummary, 0, len(s.mapping.objectives))
	for _, obj := range s.mapping.objectives {
		out = append(out, ObjectiveSummary{Name: obj.Name, Description: obj.Description, TechniqueCount: len(obj.Techniques)})
	}
	return out
}

// TechniqueIDsForObjective returns the technique IDs of objective name in
// mapping order.
func (s *Snapshot) TechniqueIDsForObjective(name string) ([]string, error) {
	i, ok := s.mapping.byName[name]
	if !ok {
		return nil, toolerr.NotFound(EntityObjective, name)
	}
	return cloneStrings(s.mapping.objectives[i].Techniques), nil
}

// TechniquesForObjective returns the technique records of objective name.
func (s *Snapshot) TechniquesForObjective(name string) ([]Technique, error) {
	ids, err := s.TechniqueIDsForObjective(name)
	if err != nil {
		return nil, err
	}
	return s.techniques(ids), nil
}

// Search runs a keyword or phrase query over the selected item types.
// See the package documentation for the matching rules.
func (s *Snapshot) Search(keywords string, itemTypes []string) ([]Match, error) {
	return s.search.search(keywords, itemTypes)
}

// AllTechniques returns every technique record in natural ID order.
func (s *Snapshot) AllTechniques() []Technique { return s.techniques(s.store.techniqueIDs) }

// AllWeaknesses returns every weakness record in natural ID order.
func (s *Snapshot) AllWeaknesses() []Weakness { return s.weaknesses(s.store.weaknessIDs) }

// AllMitigations returns every mitigation record in natural ID order.
func (s *Snapshot) AllMitigations() []Mitigation { return s.mitigations(s.store.mitigationIDs) }

// TechniqueBriefs returns the id and name of every technique.
func (s *Snapshot) TechniqueBriefs() []Brief {
	out := make([]Brief, 0, len(s.store.techniqueIDs))
	for _, id := range s.store.techniqueIDs {
		out = append(out, Brief{ID: id, Name: s.store.techniques[id].Name})
	}
	return out
}

// WeaknessBriefs returns the id and name of every weakness.
func (s *Snapshot) WeaknessBriefs() []Brief {
	out := make([]Brief, 0, len(s.store.weaknessIDs))
	for _, id := range s.store.weaknessIDs {
		out = append(out, Brief{ID: id, Name: s.store.weaknesses[id].Name})
	}
	return out
}

// MitigationBriefs returns the id and name of every mitigation.
func (s *Snapshot) MitigationBriefs() []Brief {
	out := make([]Brief, 0, len(s.store.mitigationIDs))
	for _, id := range s.store.mitigationIDs {
		out = append(out, Brief{ID: id, Name: s.store.mitigations[id].Name})
	}
	return out
}
