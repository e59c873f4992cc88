// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/security"
	"github.com/CKE-Proto/solve-it-mcp/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/mcp"
)

// promptTemplateData holds the data used to populate prompt templates.
type promptTemplateData struct {
	TechniqueID   string
	WeaknessID    string
	ObjectiveName string
}

// parsePromptTemplate renders a prompt template and converts it to MCP messages.
//
// Lines following a "### Assistant:" or "### User:" marker form one message
// with that role. Other headings and blank lines are dropped.
//
// Parameters:
//   - templateName: Name of the template file (without .md extension)
//   - data: Template data to populate placeholders
//
// Returns:
//   - []mcp.PromptMessage: Parsed MCP messages
//   - error: Any error during template execution or parsing
func parsePromptTemplate(templateName string, data promptTemplateData) ([]mcp.PromptMessage, error) {
	rendered, err := templates.Render(templates.MagicEmbed, templateName+".md", data)
	if err != nil {
		return nil, err
	}

	var (
		messages    []mcp.PromptMessage
		currentRole mcp.Role
		current     strings.Builder
	)
	flush := func() {
		if current.Len() > 0 {
			messages = append(messages, mcp.NewPromptMessage(currentRole, mcp.NewTextContent(current.String())))
			current.Reset()
		}
	}

	for _, line := range strings.Split(rendered, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "### Assistant:"):
			flush()
			currentRole = mcp.RoleAssistant
			continue
		case strings.HasPrefix(line, "### User:"):
			flush()
			currentRole = mcp.RoleUser
			continue
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		}

		if currentRole != "" {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	return messages, nil
}

// promptEntityID reads a required entity ID argument. Control characters are
// stripped before the value reaches the template.
func promptEntityID(request mcp.GetPromptRequest, name string) (string, error) {
	id := strings.TrimSpace(security.StripControl(request.Params.Arguments[name]))
	if err := validateEntityID(name, id); err != nil {
		return "", err
	}
	return id, nil
}

// handleTechniqueReviewPrompt walks a technique to its weaknesses and their
// mitigations.
//
// Expected arguments in request.Params.Arguments:
//   - technique_id: The technique to review
func handleTechniqueReviewPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	id, err := promptEntityID(request, "technique_id")
	if err != nil {
		return nil, err
	}

	messages, err := parsePromptTemplate("technique-review-prompt", promptTemplateData{TechniqueID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to parse technique review template: %w", err)
	}
	return mcp.NewGetPromptResult("Technique Review: "+id, messages), nil
}

// handleWeaknessAssessmentPrompt walks a weakness to the techniques it affects
// and its mitigations.
//
// Expected arguments in request.Params.Arguments:
//   - weakness_id: The weakness to assess
func handleWeaknessAssessmentPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	id, err := promptEntityID(request, "weakness_id")
	if err != nil {
		return nil, err
	}

	messages, err := parsePromptTemplate("weakness-assessment-prompt", promptTemplateData{WeaknessID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to parse weakness assessment template: %w", err)
	}
	return mcp.NewGetPromptResult("Weakness Assessment: "+id, messages), nil
}

// handleInvestigationPlanPrompt plans an investigation from one objective, or
// from the objective list when none is given.
func handleInvestigationPlanPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	// Collapsed to one line so the name cannot start a new message.
	objective := strings.Join(strings.Fields(security.StripControl(request.Params.Arguments["objective_name"])), " ")

	messages, err := parsePromptTemplate("investigation-plan-prompt", promptTemplateData{ObjectiveName: objective})
	if err != nil {
		return nil, fmt.Errorf("failed to parse investigation plan template: %w", err)
	}

	title := "Investigation Plan"
	if objective != "" {
		title += ": " + objective
	}
	return mcp.NewGetPromptResult(title, messages), nil
}
