// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"time"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/security"
	"github.com/mark3labs/mcp-go/mcp"
)

// fullDetailTimeout is the timeout of the bulk full-detail tools, which
// serialise every record of a type.
const fullDetailTimeout = 45 * time.Second

// createOperations returns every tool the server exposes, in the order they are
// registered and listed.
//
// Parameters:
//   - dataRoot: The resolved knowledge base root; mapping file names must resolve inside it
//
// Returns:
//   - The complete, static operation registry
//
// The function defines the following groups of tools:
//   - Overview and search: get_database_description, search
//   - Record lookups: get_technique_details, get_weakness_details, get_mitigation_details
//   - Relationship traversal: get_weaknesses_for_technique, get_mitigations_for_weakness,
//     get_techniques_for_weakness, get_weaknesses_for_mitigation, get_techniques_for_mitigation
//   - Objectives and mappings: list_objectives, get_techniques_for_objective,
//     list_available_mappings, load_objective_mapping
//   - Bulk retrieval: get_all_*_with_name_and_id, get_all_*_with_full_detail
func createOperations(dataRoot string) []Operation {
	defaults := security.NewToolConfig()
	bulk := security.NewToolConfig(security.WithTimeout(fullDetailTimeout, false))

	return []Operation{
		NewOperation(
			mcp.NewTool("get_database_description",
				mcp.WithDescription("Returns a comprehensive description of the SOLVE-IT database, its statistics and the role of this MCP server."),
			),
			defaults, handleDatabaseDescription,
		),
		NewOperation(
			mcp.NewTool("search",
				mcp.WithDescription("Searches techniques, weaknesses and mitigations for keywords. Every unquoted keyword must match; wrap the input in quotes to search for an exact phrase."),
				mcp.WithString("keywords",
					mcp.Required(),
					mcp.Description("Keywords to search for. Use quotes for exact phrases."),
				),
				mcp.WithArray("item_types",
					mcp.Description("Types of items to search ('techniques', 'weaknesses', 'mitigations'). Omit to search all types."),
					mcp.Items(map[string]any{"type": "string"}),
				),
			),
			defaults, handleSearch,
		),
		NewOperation(
			mcp.NewTool("get_technique_details",
				mcp.WithDescription("Retrieves the full details for a specific SOLVE-IT technique by its ID (e.g., T1002)."),
				mcp.WithString("technique_id",
					mcp.Required(),
					mcp.Description("The ID of the technique (e.g., T1002)"),
				),
			),
			defaults, handleTechniqueDetails,
		),
		NewOperation(
			mcp.NewTool("get_weakness_details",
				mcp.WithDescription("Retrieves the full details for a specific SOLVE-IT weakness by its ID (e.g., W1001). The name field holds the primary description of the weakness."),
				mcp.WithString("weakness_id",
					mcp.Required(),
					mcp.Description("The ID of the weakness (e.g., W1001)"),
				),
			),
			defaults, handleWeaknessDetails,
		),
		NewOperation(
			mcp.NewTool("get_mitigation_details",
				mcp.WithDescription("Retrieves the full details for a specific SOLVE-IT mitigation by its ID (e.g., M1001). The name field holds the primary description of the mitigation."),
				mcp.WithString("mitigation_id",
					mcp.Required(),
					mcp.Description("The ID of the mitigation (e.g., M1001)"),
				),
			),
			defaults, handleMitigationDetails,
		),
		NewOperation(
			mcp.NewTool("get_weaknesses_for_technique",
				mcp.WithDescription("Retrieves all weaknesses associated with a specific SOLVE-IT technique ID."),
				mcp.WithString("technique_id", mcp.Required(), mcp.Description("The ID of the technique")),
			),
			defaults, handleWeaknessesForTechnique,
		),
		NewOperation(
			mcp.NewTool("get_mitigations_for_weakness",
				mcp.WithDescription("Retrieves all mitigations associated with a specific SOLVE-IT weakness ID."),
				mcp.WithString("weakness_id", mcp.Required(), mcp.Description("The ID of the weakness")),
			),
			defaults, handleMitigationsForWeakness,
		),
		NewOperation(
			mcp.NewTool("get_techniques_for_weakness",
				mcp.WithDescription("Retrieves all techniques that reference a specific SOLVE-IT weakness ID."),
				mcp.WithString("weakness_id", mcp.Required(), mcp.Description("The ID of the weakness")),
			),
			defaults, handleTechniquesForWeakness,
		),
		NewOperation(
			mcp.NewTool("get_weaknesses_for_mitigation",
				mcp.WithDescription("Retrieves all weaknesses that reference a specific SOLVE-IT mitigation ID."),
				mcp.WithString("mitigation_id", mcp.Required(), mcp.Description("The ID of the mitigation")),
			),
			defaults, handleWeaknessesForMitigation,
		),
		NewOperation(
			mcp.NewTool("get_techniques_for_mitigation",
				mcp.WithDescription("Retrieves all techniques that reference a specific SOLVE-IT mitigation ID through its weaknesses."),
				mcp.WithString("mitigation_id", mcp.Required(), mcp.Description("The ID of the mitigation")),
			),
			defaults, handleTechniquesForMitigation,
		),
		NewOperation(
			mcp.NewTool("list_objectives",
				mcp.WithDescription("Lists all objectives from the current SOLVE-IT objective mapping."),
			),
			defaults, handleListObjectives,
		),
		NewOperation(
			mcp.NewTool("get_techniques_for_objective",
				mcp.WithDescription("Retrieves all techniques associated with a specific SOLVE-IT objective name, in mapping order."),
				mcp.WithString("objective_name", mcp.Required(), mcp.Description("The name of the objective")),
			),
			defaults, handleTechniquesForObjective,
		),
		NewOperation(
			mcp.NewTool("list_available_mappings",
				mcp.WithDescription("Lists all available SOLVE-IT objective mapping files (solve-it.json, carrier.json, etc.)."),
			),
			defaults, handleListAvailableMappings,
		),
		NewOperation(
			mcp.NewTool("load_objective_mapping",
				mcp.WithDescription("Switches to a different SOLVE-IT objective mapping file. On failure the current mapping stays active."),
				mcp.WithString("filename",
					mcp.Required(),
					mcp.Description("The filename of the mapping to load (e.g., 'carrier.json')"),
				),
			),
			security.NewToolConfig(security.WithPathParams([]string{dataRoot}, "filename")),
			handleLoadObjectiveMapping,
		),
		NewOperation(
			mcp.NewTool("get_all_techniques_with_name_and_id",
				mcp.WithDescription("Retrieves all SOLVE-IT techniques with ID and name only (concise format)."),
			),
			defaults, briefs(knowledgebase.EntityTechnique),
		),
		NewOperation(
			mcp.NewTool("get_all_weaknesses_with_name_and_id",
				mcp.WithDescription("Retrieves all SOLVE-IT weaknesses with ID and name only (concise format)."),
			),
			defaults, briefs(knowledgebase.EntityWeakness),
		),
		NewOperation(
			mcp.NewTool("get_all_mitigations_with_name_and_id",
				mcp.WithDescription("Retrieves all SOLVE-IT mitigations with ID and name only (concise format)."),
			),
			defaults, briefs(knowledgebase.EntityMitigation),
		),
		NewOperation(
			mcp.NewTool("get_all_techniques_with_full_detail",
				mcp.WithDescription("Retrieves all SOLVE-IT techniques with complete details. Warning: may return large amounts of data."),
			),
			bulk, fullDetail(knowledgebase.EntityTechnique),
		),
		NewOperation(
			mcp.NewTool("get_all_weaknesses_with_full_detail",
				mcp.WithDescription("Retrieves all SOLVE-IT weaknesses with complete details. Warning: may return large amounts of data."),
			),
			bulk, fullDetail(knowledgebase.EntityWeakness),
		),
		NewOperation(
			mcp.NewTool("get_all_mitigations_with_full_detail",
				mcp.WithDescription("Retrieves all SOLVE-IT mitigations with complete details. Warning: may return large amounts of data."),
			),
			bulk, fullDetail(knowledgebase.EntityMitigation),
		),
	}
}
