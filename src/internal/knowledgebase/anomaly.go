// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package knowledgebase

import "github.com/CKE-Proto/solve-it-mcp/src/logger"

// AnomalyKind classifies a non-fatal inconsistency found while loading.
type AnomalyKind string

const (
	// AnomalyDanglingWeakness is a technique referencing a weakness that does not exist.
	AnomalyDanglingWeakness AnomalyKind = "dangling_weakness"
	// AnomalyDanglingMitigation is a weakness referencing a mitigation that does not exist.
	AnomalyDanglingMitigation AnomalyKind = "dangling_mitigation"
	// AnomalyDanglingMappingTechnique is an objective listing a technique that does not exist.
	AnomalyDanglingMappingTechnique AnomalyKind = "dangling_mapping_technique"
	// AnomalyUnassignedTechnique is a technique that no objective in the active mapping lists.
	AnomalyUnassignedTechnique AnomalyKind = "unassigned_technique"
	// AnomalyMultipleObjectives is a technique listed by more than one objective.
	AnomalyMultipleObjectives AnomalyKind = "technique_multiple_objectives"
	// AnomalyDuplicateID is a second record declaring an ID already loaded.
	AnomalyDuplicateID AnomalyKind = "duplicate_id"
	// AnomalyUnreadableRecord is a record file that could not be read or parsed.
	AnomalyUnreadableRecord AnomalyKind = "unreadable_record"
)

// Anomaly is one entry in a snapshot's anomaly report.
//
// Source names the record or file holding the bad reference, Reference the
// value that could not be resolved.
type Anomaly struct {
	Kind      AnomalyKind `json:"kind"`
	Source    string      `json:"source"`
	Reference string      `json:"reference,omitempty"`
	Detail    string      `json:"detail"`
}

// anomalies collects anomalies and mirrors each one to the logger.
type anomalies struct {
	log   logger.Logger
	items []Anomaly
}

func (a *anomalies) add(kind AnomalyKind, source, ref, detail string) {
	a.items = append(a.items, Anomaly{Kind: kind, Source: source, Reference: ref, Detail: detail})
	if kind == AnomalyUnassignedTechnique {
		a.log.Debug(detail, "anomaly", kind, "source", source)
		return
	}
	a.log.Warn(detail, "anomaly", kind, "source", source, "reference", ref)
}

// AnomalyCounts tallies a report by kind.
func AnomalyCounts(report []Anomaly) map[AnomalyKind]int {
	counts := make(map[AnomalyKind]int)
	for _, a := range report {
		counts[a.Kind]++
	}
	return counts
}

// AnomalyTotal sums the tallies produced by [AnomalyCounts].
func AnomalyTotal(counts map[AnomalyKind]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
