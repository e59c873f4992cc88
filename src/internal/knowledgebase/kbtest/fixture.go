// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package kbtest writes small SOLVE-IT data directories for tests.
package kbtest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Record is a loosely typed entity file body.
type Record map[string]any

// Data describes a data directory. Mappings and Raw are keyed by file name
// relative to the root; Raw holds literal file contents.
type Data struct {
	Techniques  []Record
	Weaknesses  []Record
	Mitigations []Record
	Mappings    map[string]any
	Raw         map[string]string
}

// Standard is the fixture used across packages.
//
// It contains a dangling weakness reference (T1002 → W9999), a dangling
// mitigation reference (W1002 → M9999), a dangling mapping technique (T8888),
// an unreadable technique file and an invalid mapping file (broken.json).
var Standard = Data{
	Techniques: []Record{
		{"id": "T1001", "name": "Disk imaging", "description": "Create a forensic image of storage media for log analysis and review", "weaknesses": []string{"W1001", "W1002"}, "synonyms": []string{"Acquisition"}},
		{"id": "T1002", "name": "Log analysis", "description": "Review system log files for events", "weaknesses": []string{"W1002", "W9999"}},
		{"id": "T1003", "name": "Memory capture", "description": "Capture volatile RAM contents", "weaknesses": []string{}},
	},
	Weaknesses: []Record{
		{"id": "W1001", "name": "Incomplete image", "description": "Sectors may be skipped during acquisition", "mitigations": []string{"M1001"}, "INCOMP": "x"},
		{"id": "W1002", "name": "Log rotation", "description": "Log entries may be rotated before analysis", "mitigations": []string{"M1001", "M1002", "M9999"}},
		{"id": "W1003", "name": "Clock skew", "description": "Timestamps drift between sources", "mitigations": []string{}},
	},
	Mitigations: []Record{
		{"id": "M1001", "name": "Verify hashes", "description": "Compare hash values after imaging"},
		{"id": "M1002", "name": "Preserve logs early", "description": "Collect LOG files before rotation"},
		{"id": "M1003", "name": "Synchronise clocks", "description": "Use a common time source"},
	},
	Mappings: map[string]any{
		"solve-it.json": []map[string]any{
			{"name": "Acquire data", "description": "Obtain data from sources", "techniques": []string{"T1001", "T1003"}},
			{"name": "Analyse logs", "techniques": []string{"T1002", "T8888"}},
		},
		"carrier.json": map[string][]string{
			"Preserve": {"T1001"},
			"Examine":  {"T1002", "T1003"},
		},
	},
	Raw: map[string]string{
		"broken.json":           "{not json",
		"techniques/T9000.json": "{\"id\": ",
	},
}

// Minimal is a single technique → weakness → mitigation chain.
var Minimal = Data{
	Techniques:  []Record{{"id": "T1001", "name": "Technique", "description": "d", "weaknesses": []string{"W1001"}}},
	Weaknesses:  []Record{{"id": "W1001", "name": "Weakness", "description": "d", "mitigations": []string{"M1001"}}},
	Mitigations: []Record{{"id": "M1001", "name": "Mitigation", "description": "d"}},
	Mappings:    map[string]any{"solve-it.json": map[string][]string{"Objective": {"T1001"}}},
}

// WriteFixture writes [Standard] into a temporary directory and returns its path.
func WriteFixture(tb testing.TB) string { return Write(tb, Standard) }

// Write writes d into a fresh temporary directory and returns its path.
func Write(tb testing.TB, d Data) string {
	tb.Helper()
	root := tb.TempDir()
	WriteInto(tb, root, d)
	return root
}

// WriteInto writes d into root, overwriting files that already exist.
func WriteInto(tb testing.TB, root string, d Data) {
	tb.Helper()
	for dir, records := range map[string][]Record{
		"techniques":  d.Techniques,
		"weaknesses":  d.Weaknesses,
		"mitigations": d.Mitigations,
	} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			tb.Fatalf("mkdir %s: %v", dir, err)
		}
		for _, rec := range records {
			WriteJSON(tb, filepath.Join(root, dir, rec["id"].(string)+".json"), rec)
		}
	}
	for name, body := range d.Mappings {
		WriteJSON(tb, filepath.Join(root, name), body)
	}
	for name, body := range d.Raw {
		if err := os.WriteFile(filepath.Join(root, name), []byte(body), 0o644); err != nil {
			tb.Fatalf("write %s: %v", name, err)
		}
	}
}

// WriteJSON marshals v to path.
func WriteJSON(tb testing.TB, path string, v any) {
	tb.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		tb.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
}
