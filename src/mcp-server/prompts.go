// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Prompt names.
const (
	promptTechniqueReview    = "technique-review"
	promptWeaknessAssessment = "weakness-assessment"
	promptInvestigationPlan  = "investigation-plan"
)

// createPrompts creates and returns all MCP prompt definitions with their handlers
func createPrompts() []server.ServerPrompt {
	return []server.ServerPrompt{
		{
			Prompt: mcp.NewPrompt(promptTechniqueReview,
				mcp.WithPromptDescription("Review a technique together with its weaknesses and their mitigations"),
				mcp.WithArgument("technique_id",
					mcp.ArgumentDescription("The technique ID (e.g., T1002)"),
					mcp.RequiredArgument(),
				),
			),
			Handler: handleTechniqueReviewPrompt,
		},
		{
			Prompt: mcp.NewPrompt(promptWeaknessAssessment,
				mcp.WithPromptDescription("Assess a weakness, the techniques it affects and how to mitigate it"),
				mcp.WithArgument("weakness_id",
					mcp.ArgumentDescription("The weakness ID (e.g., W1001)"),
					mcp.RequiredArgument(),
				),
			),
			Handler: handleWeaknessAssessmentPrompt,
		},
		{
			Prompt: mcp.NewPrompt(promptInvestigationPlan,
				mcp.WithPromptDescription("Plan an investigation from the objectives of the active mapping"),
				mcp.WithArgument("objective_name",
					mcp.ArgumentDescription("Objective to plan for; omit to start from the objective list"),
				),
			),
			Handler: handleInvestigationPlanPrompt,
		},
	}
}
