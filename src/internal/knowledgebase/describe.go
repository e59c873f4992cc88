// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package knowledgebase

import "time"

// DatabaseName is the display name of the knowledge base.
const DatabaseName = "SOLVE-IT Digital Forensics Knowledge Base"

// Statistics summarises a snapshot.
type Statistics struct {
	Counts
	CurrentMapping string              `json:"current_mapping"`
	DataPath       string              `json:"data_path"`
	LoadedAt       string              `json:"loaded_at"`
	Anomalies      map[AnomalyKind]int `json:"anomalies"`
}

// Description is the overview returned by the database description tool and
// the describe command.
type Description struct {
	DatabaseName        string            `json:"database_name"`
	Description         string            `json:"description"`
	Purpose             string            `json:"purpose"`
	Components          map[string]string `json:"components"`
	Statistics          Statistics        `json:"statistics"`
	MCPServerRole       string            `json:"mcp_server_role"`
	AvailableOperations []string          `json:"available_operations"`
}

// Stats returns the statistics of s.
func (s *Snapshot) Stats() Statistics {
	return Statistics{
		Counts:         s.Counts(),
		CurrentMapping: s.MappingName(),
		DataPath:       s.DataPath(),
		LoadedAt:       s.loadedAt.UTC().Format(time.RFC3339),
		Anomalies:      AnomalyCounts(s.Anomalies()),
	}
}

// Describe builds the database overview for s.
func Describe(s *Snapshot) Description {
	return Description{
		DatabaseName: DatabaseName,
		Description:  "A systematic digital forensics knowledge base inspired by MITRE ATT&CK",
		Purpose:      "Maps digital forensic investigation techniques to their weaknesses and to the mitigations that address them",
		Components: map[string]string{
			"techniques":  "Digital forensic investigation methods (T1001, T1002, etc.)",
			"weaknesses":  "Potential problems or limitations of techniques (W1001, W1002, etc.)",
			"mitigations": "Ways to address weaknesses (M1001, M1002, etc.)",
			"objectives":  "Categories that organise techniques by investigation goal",
		},
		Statistics:    s.Stats(),
		MCPServerRole: "Gives language models validated, rate-limited, read-only access to the SOLVE-IT knowledge base",
		AvailableOperations: []string{
			"Search across techniques, weaknesses, and mitigations",
			"Retrieve detailed information by ID",
			"Explore relationships between components",
			"Work with different objective mappings",
			"Bulk retrieval operations",
		},
	}
}
