// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package knowledgebase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
)

var (
	// ErrNoObjectives is returned for a mapping file that declares nothing.
	ErrNoObjectives = errors.New("mapping defines no objectives")
	// ErrUnknownMappingFormat is returned when the top-level JSON value is neither an object nor a list.
	ErrUnknownMappingFormat = errors.New("mapping must be a JSON object or a list of objectives")
)

// ObjectiveMapping is the resolved, immutable form of an objective mapping file.
type ObjectiveMapping struct {
	name       string
	objectives []Objective
	byName     map[string]int
	// techniqueObjective holds the first objective listing each technique.
	techniqueObjective map[string]string
	anomalies          []Anomaly
}

// Name returns the mapping file name.
func (m *ObjectiveMapping) Name() string { return m.name }

// Len returns the number of objectives.
func (m *ObjectiveMapping) Len() int { return len(m.objectives) }

// ParseMapping decodes a mapping file in either supported format:
//
//	{"Acquire data": ["T1001", "T1002"], ...}
//	[{"name": "Acquire data", "description": "...", "techniques": ["T1001"]}, ...]
//
// The object form yields objectives ordered by name; the list form keeps file
// order. Empty names, duplicate names and empty files are errors.
func ParseMapping(data []byte) ([]Objective, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrNoObjectives
	}

	var objectives []Objective
	switch trimmed[0] {
	case '{':
		var raw map[string][]string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("invalid mapping JSON: %w", err)
		}
		for name, techniques := range raw {
			objectives = append(objectives, Objective{Name: name, Techniques: techniques})
		}
		slices.SortFunc(objectives, func(a, b Objective) int { return strings.Compare(a.Name, b.Name) })
	case '[':
		if err := json.Unmarshal(trimmed, &objectives); err != nil {
			return nil, fmt.Errorf("invalid mapping JSON: %w", err)
		}
	default:
		return nil, ErrUnknownMappingFormat
	}

	if len(objectives) == 0 {
		return nil, ErrNoObjectives
	}

	seen := make(map[string]bool, len(objectives))
	for i, obj := range objectives {
		name := strings.TrimSpace(obj.Name)
		if name == "" {
			return nil, fmt.Errorf("objective %d has an empty name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate objective %q", name)
		}
		seen[name] = true
		objectives[i].Name = name
	}
	return objectives, nil
}

// ValidateMappingName checks that name is a bare *.json file name.
func ValidateMappingName(name string) error {
	switch {
	case name == "":
		return errors.New("filename is empty")
	case strings.ContainsAny(name, `/\`) || filepath.Base(name) != name || name == "." || name == "..":
		return errors.New("filename must not contain path separators")
	case !strings.HasSuffix(strings.ToLower(name), ".json"):
		return errors.New("filename must end in .json")
	}
	return nil
}

// readMapping loads and parses root/name, translating every failure into a
// caller-safe [toolerr.KindMappingLoad] error.
func readMapping(root, name string) ([]Objective, error) {
	if err := ValidateMappingName(name); err != nil {
		return nil, toolerr.MappingLoad(name, err.Error())
	}

	data, err := os.ReadFile(filepath.Join(root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, toolerr.MappingLoad(name, "file does not exist in the data directory")
		}
		return nil, toolerr.MappingLoad(name, "file could not be read").WithCause(err)
	}

	objectives, err := ParseMapping(data)
	if err != nil {
		return nil, toolerr.MappingLoad(name, err.Error())
	}
	return objectives, nil
}

// resolveMapping binds parsed objectives to ds. Technique IDs missing from ds
// are dropped and reported; techniques no objective lists are reported too.
func resolveMapping(name string, objectives []Objective, ds *DataStore, log logger.Logger) *ObjectiveMapping {
	an := &anomalies{log: log}
	m := &ObjectiveMapping{
		name:               name,
		objectives:         make([]Objective, 0, len(objectives)),
		byName:             make(map[string]int, len(objectives)),
		techniqueObjective: make(map[string]string),
	}

	for _, obj := range objectives {
		kept := []string{}
		seen := make(map[string]bool)
		for _, tid := range obj.Techniques {
			if seen[tid] {
				continue
			}
			seen[tid] = true
			if !ds.HasTechnique(tid) {
				an.add(AnomalyDanglingMappingTechnique, name, tid,
					fmt.Sprintf("objective %q references unknown technique %s", obj.Name, tid))
				continue
			}
			if first, ok := m.techniqueObjective[tid]; ok {
				an.add(AnomalyMultipleObjectives, name, tid,
					fmt.Sprintf("technique %s is listed by %q and %q, keeping %q", tid, first, obj.Name, first))
			} else {
				m.techniqueObjective[tid] = obj.Name
			}
			kept = append(kept, tid)
		}
		m.byName[obj.Name] = len(m.objectives)
		m.objectives = append(m.objectives, Objective{Name: obj.Name, Description: obj.Description, Techniques: kept})
	}

	for _, tid := range ds.techniqueIDs {
		if _, ok := m.techniqueObjective[tid]; !ok {
			an.add(AnomalyUnassignedTechnique, name, tid,
				fmt.Sprintf("technique %s is not assigned to any objective", tid))
		}
	}

	m.anomalies = an.items
	return m
}

// ListAvailableMappings returns the sorted names of the mapping files in root
// without loading them.
func ListAvailableMappings(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, toolerr.DataNotFound(root, "SOLVE-IT data directory")
		}
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}
