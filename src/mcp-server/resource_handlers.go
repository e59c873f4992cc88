// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/helper/codec"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/mark3labs/mcp-go/mcp"
)

// anomalyReport is the body of the anomalies resource.
type anomalyReport struct {
	CurrentMapping string                            `json:"current_mapping"`
	Counts         map[knowledgebase.AnomalyKind]int `json:"counts"`
	Anomalies      []knowledgebase.Anomaly           `json:"anomalies"`
}

// handleVersionResource provides server metadata including version and the
// registered tools, prompts and resources.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: MCP resource read request for version information
//
// Returns:
//   - A slice containing version and capability information as JSON content
//   - An error if JSON rendering fails
func (src resourceSource) handleVersionResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	info := map[string]any{
		"name":      serverName,
		"version":   src.version,
		"type":      "MCP Server",
		"tools":     src.tools,
		"prompts":   []string{promptTechniqueReview, promptWeaknessAssessment, promptInvestigationPlan},
		"resources": []string{versionResourceURI, anomaliesResourceURI, statusResourceURI},
		"mappingFormats": []string{
			`object: {"Objective name": ["T1001", ...]}`,
			`list: [{"name": ..., "description": ..., "techniques": [...]}]`,
		},
	}
	return jsonContents(request.Params.URI, info)
}

// handleAnomaliesResource reports the anomalies of the published snapshot.
func (src resourceSource) handleAnomaliesResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snap := src.kb.Current()
	report := snap.Anomalies()
	return jsonContents(request.Params.URI, anomalyReport{
		CurrentMapping: snap.MappingName(),
		Counts:         knowledgebase.AnomalyCounts(report),
		Anomalies:      report,
	})
}

// handleStatusResource renders the server status report as markdown.
func (src resourceSource) handleStatusResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text, err := FormatResourceUsageAsMarkdown(CollectResourceUsage(src.gateway, src.kb.Current()))
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/markdown",
			Text:     text,
		},
	}, nil
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := codec.Render(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
