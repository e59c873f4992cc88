// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package knowledgebase loads the SOLVE-IT digital forensics knowledge base from
// disk and answers read-only queries over it.
//
// The knowledge base is made of four entity kinds:
//   - Techniques: investigative methods, each exhibiting zero or more weaknesses
//   - Weaknesses: limitations of techniques, each addressed by zero or more mitigations
//   - Mitigations: remedies for weaknesses
//   - Objectives: named groupings of techniques, defined by the active objective mapping
//
// A load produces an immutable [Snapshot] holding the records, a [RelationshipIndex]
// with both directions of every edge, the active [ObjectiveMapping] and an anomaly
// report. [KnowledgeBase] publishes the current snapshot through an atomic pointer,
// so queries never block and never observe a half-built reload.
//
// # Data Layout
//
// The data root contains one JSON file per entity, plus objective mapping files:
//
//	data/
//	├── solve-it.json          default objective mapping
//	├── carrier.json           alternative mapping
//	├── techniques/T1001.json
//	├── weaknesses/W1001.json
//	└── mitigations/M1001.json
//
// Relationships are read only in their authoritative direction: technique to
// weakness and weakness to mitigation. The reverse lists are always mirrored by
// the loader. A reference to a missing entity is dropped and recorded as an
// [Anomaly] instead of failing the load.
//
// # Usage
//
//	kb, err := knowledgebase.Open(knowledgebase.Options{
//		DataPath: os.Getenv("SOLVE_IT_DATA_PATH"),
//		Logger:   log,
//	})
//	if err != nil {
//		return err
//	}
//
//	snap := kb.Current()
//	weaknesses, err := snap.WeaknessesForTechnique("T1001")
package knowledgebase
