// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package knowledgebase

import (
	"fmt"
	"slices"
	"strings"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"golang.org/x/text/cases"
)

// Item types accepted by [Snapshot.Search].
const (
	ItemTechniques  = "techniques"
	ItemWeaknesses  = "weaknesses"
	ItemMitigations = "mitigations"
)

// AllItemTypes lists the searchable item types in result order.
var AllItemTypes = []string{ItemTechniques, ItemWeaknesses, ItemMitigations}

// searchEntry is the case-folded text of one entity.
type searchEntry struct {
	id, name, description string
	foldedName            string
	foldedDescription     string
}

// searchIndex holds the folded text of every entity, per type, in natural ID order.
type searchIndex struct {
	techniques  []searchEntry
	weaknesses  []searchEntry
	mitigations []searchEntry
}

func fold(s string) string { return cases.Fold().String(s) }

func buildSearchIndex(ds *DataStore) *searchIndex {
	entry := func(id, name, desc string) searchEntry {
		return searchEntry{id: id, name: name, description: desc, foldedName: fold(name), foldedDescription: fold(desc)}
	}

	si := &searchIndex{}
	for _, id := range ds.techniqueIDs {
		t := ds.techniques[id]
		si.techniques = append(si.techniques, entry(id, t.Name, t.Description))
	}
	for _, id := range ds.weaknessIDs {
		w := ds.weaknesses[id]
		si.weaknesses = append(si.weaknesses, entry(id, w.Name, w.Description))
	}
	for _, id := range ds.mitigationIDs {
		m := ds.mitigations[id]
		si.mitigations = append(si.mitigations, entry(id, m.Name, m.Description))
	}
	return si
}

// query is a parsed search input.
type query struct {
	phrase string   // set for quoted input
	tokens []string // set for unquoted input
}

// parseQuery splits keywords into a phrase or a token list.
func parseQuery(keywords string) (query, error) {
	s := strings.TrimSpace(keywords)
	if s == "" {
		return query{}, toolerr.Invalid("keywords", "must not be empty")
	}

	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		phrase := strings.TrimSpace(s[1 : len(s)-1])
		if phrase == "" {
			return query{}, toolerr.Invalid("keywords", "quoted phrase must not be empty")
		}
		return query{phrase: fold(phrase)}, nil
	}

	fields := strings.Fields(s)
	tokens := make([]string, len(fields))
	for i, f := range fields {
		tokens[i] = fold(f)
	}
	return query{tokens: tokens}, nil
}

func (q query) matches(e *searchEntry) bool {
	if q.phrase != "" {
		return strings.Contains(e.foldedName, q.phrase) || strings.Contains(e.foldedDescription, q.phrase)
	}
	for _, tok := range q.tokens {
		if !strings.Contains(e.foldedName, tok) && !strings.Contains(e.foldedDescription, tok) {
			return false
		}
	}
	return true
}

// normalizeItemTypes maps item_types input to the canonical plural names.
// Empty input selects every type.
func normalizeItemTypes(itemTypes []string) (map[string]bool, error) {
	selected := make(map[string]bool, len(AllItemTypes))
	if len(itemTypes) == 0 {
		for _, t := range AllItemTypes {
			selected[t] = true
		}
		return selected, nil
	}

	var bad []toolerr.FieldError
	for _, raw := range itemTypes {
		t := strings.ToLower(strings.TrimSpace(raw))
		if !strings.HasSuffix(t, "s") {
			t += "s"
		}
		if !slices.Contains(AllItemTypes, t) {
			bad = append(bad, toolerr.FieldError{
				Field:   "item_types",
				Message: fmt.Sprintf("unknown item type %q, expected one of %s", raw, strings.Join(AllItemTypes, ", ")),
			})
			continue
		}
		selected[t] = true
	}
	if len(bad) > 0 {
		return nil, toolerr.Validation(bad...)
	}
	return selected, nil
}

// search scans the selected types and returns hits in structural order.
func (si *searchIndex) search(keywords string, itemTypes []string) ([]Match, error) {
	q, err := parseQuery(keywords)
	if err != nil {
		return nil, err
	}
	selected, err := normalizeItemTypes(itemTypes)
	if err != nil {
		return nil, err
	}

	matches := []Match{}
	scan := func(itemType, label string, entries []searchEntry) {
		if !selected[itemType] {
			return
		}
		for i := range entries {
			if q.matches(&entries[i]) {
				e := &entries[i]
				matches = append(matches, Match{ItemType: label, ID: e.id, Name: e.name, Description: e.description})
			}
		}
	}
	scan(ItemTechniques, EntityTechnique, si.techniques)
	scan(ItemWeaknesses, EntityWeakness, si.weaknesses)
	scan(ItemMitigations, EntityMitigation, si.mitigations)
	return matches, nil
}
