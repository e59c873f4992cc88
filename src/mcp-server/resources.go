// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/security"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Resource URIs served by the MCP server.
const (
	versionResourceURI   = "info://version"
	anomaliesResourceURI = "solveit://anomalies"
	statusResourceURI    = "status://server"
)

// resourceSource is what the resource handlers read from.
type resourceSource struct {
	version string
	tools   []string
	kb      *knowledgebase.KnowledgeBase
	gateway *security.Gateway
}

// createResources creates all MCP resources with their handlers.
//
// Resources:
//   - info://version: Server name, version, tools, prompts and resources
//   - solveit://anomalies: The anomaly report of the published snapshot
//   - status://server: Process, limiter and knowledge base status as markdown
func createResources(src resourceSource) []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(
				versionResourceURI,
				"Server Version Information",
				mcp.WithResourceDescription("Version and capabilities of the SOLVE-IT MCP server"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: src.handleVersionResource,
		},
		{
			Resource: mcp.NewResource(
				anomaliesResourceURI,
				"Knowledge Base Anomalies",
				mcp.WithResourceDescription("Dangling references, duplicate IDs and other load anomalies of the current snapshot"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: src.handleAnomaliesResource,
		},
		{
			Resource: mcp.NewResource(
				statusResourceURI,
				"Server Status",
				mcp.WithResourceDescription("Resource usage, rate limiter state and knowledge base statistics"),
				mcp.WithMIMEType("text/markdown"),
			),
			Handler: src.handleStatusResource,
		},
	}
}
