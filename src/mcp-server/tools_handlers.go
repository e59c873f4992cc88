// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
)

// mappingLoadResult is returned by load_objective_mapping.
type mappingLoadResult struct {
	Success        bool                             `json:"success"`
	Message        string                           `json:"message"`
	CurrentMapping string                           `json:"current_mapping"`
	Objectives     []knowledgebase.ObjectiveSummary `json:"objectives"`
}

// availableMappings is returned by list_available_mappings.
type availableMappings struct {
	CurrentMapping string   `json:"current_mapping"`
	Mappings       []string `json:"mappings"`
}

// handleDatabaseDescription describes the knowledge base and the snapshot the
// call was dispatched against.
func handleDatabaseDescription(ctx context.Context, inv *Invocation, _ noParams) (any, error) {
	return knowledgebase.Describe(inv.Snapshot), nil
}

// handleSearch runs a keyword or phrase search.
//
// Returns:
//   - Matches ordered techniques, then weaknesses, then mitigations, each in ID order
//   - A validation error for an empty query or an unknown item type
func handleSearch(ctx context.Context, inv *Invocation, p searchParams) (any, error) {
	matches, err := inv.Snapshot.Search(p.Keywords, p.ItemTypes)
	if err != nil {
		return nil, err
	}
	inv.Logger.Debug("search completed", "matches", len(matches))
	return matches, nil
}

func handleTechniqueDetails(ctx context.Context, inv *Invocation, p techniqueParams) (any, error) {
	return inv.Snapshot.Technique(p.TechniqueID)
}

func handleWeaknessDetails(ctx context.Context, inv *Invocation, p weaknessParams) (any, error) {
	return inv.Snapshot.Weakness(p.WeaknessID)
}

func handleMitigationDetails(ctx context.Context, inv *Invocation, p mitigationParams) (any, error) {
	return inv.Snapshot.Mitigation(p.MitigationID)
}

func handleWeaknessesForTechnique(ctx context.Context, inv *Invocation, p techniqueParams) (any, error) {
	return inv.Snapshot.WeaknessesForTechnique(p.TechniqueID)
}

func handleMitigationsForWeakness(ctx context.Context, inv *Invocation, p weaknessParams) (any, error) {
	return inv.Snapshot.MitigationsForWeakness(p.WeaknessID)
}

func handleTechniquesForWeakness(ctx context.Context, inv *Invocation, p weaknessParams) (any, error) {
	return inv.Snapshot.TechniquesForWeakness(p.WeaknessID)
}

func handleWeaknessesForMitigation(ctx context.Context, inv *Invocation, p mitigationParams) (any, error) {
	return inv.Snapshot.WeaknessesForMitigation(p.MitigationID)
}

// handleTechniquesForMitigation follows mitigation -> weakness -> technique.
func handleTechniquesForMitigation(ctx context.Context, inv *Invocation, p mitigationParams) (any, error) {
	return inv.Snapshot.TechniquesForMitigation(p.MitigationID)
}

func handleListObjectives(ctx context.Context, inv *Invocation, _ noParams) (any, error) {
	return inv.Snapshot.Objectives(), nil
}

func handleTechniquesForObjective(ctx context.Context, inv *Invocation, p objectiveParams) (any, error) {
	return inv.Snapshot.TechniquesForObjective(p.ObjectiveName)
}

func handleListAvailableMappings(ctx context.Context, inv *Invocation, _ noParams) (any, error) {
	names, err := inv.KnowledgeBase.ListAvailableMappings()
	if err != nil {
		return nil, err
	}
	return availableMappings{CurrentMapping: inv.Snapshot.MappingName(), Mappings: names}, nil
}

// handleLoadObjectiveMapping activates another mapping file. A failed load
// leaves the previous mapping published and returns the mapping load error.
func handleLoadObjectiveMapping(ctx context.Context, inv *Invocation, p mappingParams) (any, error) {
	snap, err := inv.KnowledgeBase.LoadObjectiveMapping(p.Filename)
	if err != nil {
		inv.Logger.Warn("objective mapping not loaded", "filename", p.Filename, "error", err)
		return nil, err
	}

	inv.Logger.Info("objective mapping loaded", "filename", snap.MappingName(), "objectives", snap.Counts().Objectives)
	return mappingLoadResult{
		Success:        true,
		Message:        fmt.Sprintf("Successfully loaded mapping: %s", snap.MappingName()),
		CurrentMapping: snap.MappingName(),
		Objectives:     snap.Objectives(),
	}, nil
}

// briefs returns a handler listing the id and name of every record of entity.
func briefs(entity string) Handler[noParams] {
	return func(ctx context.Context, inv *Invocation, _ noParams) (any, error) {
		switch entity {
		case knowledgebase.EntityTechnique:
			return inv.Snapshot.TechniqueBriefs(), nil
		case knowledgebase.EntityWeakness:
			return inv.Snapshot.WeaknessBriefs(), nil
		case knowledgebase.EntityMitigation:
			return inv.Snapshot.MitigationBriefs(), nil
		}
		return nil, fmt.Errorf("no brief listing for entity %q", entity)
	}
}

// fullDetail returns a handler listing every record of entity in full.
func fullDetail(entity string) Handler[noParams] {
	return func(ctx context.Context, inv *Invocation, _ noParams) (any, error) {
		switch entity {
		case knowledgebase.EntityTechnique:
			return inv.Snapshot.AllTechniques(), nil
		case knowledgebase.EntityWeakness:
			return inv.Snapshot.AllWeaknesses(), nil
		case knowledgebase.EntityMitigation:
			return inv.Snapshot.AllMitigations(), nil
		}
		return nil, fmt.Errorf("no full listing for entity %q", entity)
	}
}
