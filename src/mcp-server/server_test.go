// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/security"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestServer serves the default tools and resources over an in-memory
// MCP transport.
func startTestServer(t *testing.T, kb *knowledgebase.KnowledgeBase) *mcptest.Server {
	t.Helper()
	d, _ := newTestDispatcher(t, kb, security.DefaultConfig())

	srv := mcptest.NewUnstartedServer(t)
	srv.AddTools(d.ServerTools()...)
	srv.AddResources(createResources(resourceSource{
		version: "test-version",
		tools:   d.Operations(),
		kb:      kb,
		gateway: security.NewGateway(security.DefaultConfig(), nil),
	})...)

	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(srv.Close)
	return srv
}

func callTool(t *testing.T, srv *mcptest.Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	result, err := srv.Client().CallTool(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	return result
}

func TestMCPTools(t *testing.T) {
	srv := startTestServer(t, openKB(t))

	tests := []struct {
		name   string
		tool   string
		args   map[string]any
		assert func(t *testing.T, text string)
	}{
		{
			name: "database description",
			tool: "get_database_description",
			assert: func(t *testing.T, text string) {
				var got knowledgebase.Description
				require.NoError(t, json.Unmarshal([]byte(text), &got))
				assert.Equal(t, knowledgebase.DatabaseName, got.DatabaseName)
				assert.Equal(t, 3, got.Statistics.Techniques)
				assert.Equal(t, 2, got.Statistics.Objectives)
				assert.Equal(t, "solve-it.json", got.Statistics.CurrentMapping)
			},
		},
		{
			name: "keyword search",
			tool: "search",
			args: map[string]any{"keywords": "log analysis"},
			assert: func(t *testing.T, text string) {
				var got []knowledgebase.Match
				require.NoError(t, json.Unmarshal([]byte(text), &got))
				require.NotEmpty(t, got)
				assert.Equal(t, "T1001", got[0].ID)
			},
		},
		{
			name: "search filtered by type",
			tool: "search",
			args: map[string]any{"keywords": "log", "item_types": []any{"mitigations"}},
			assert: func(t *testing.T, text string) {
				var got []knowledgebase.Match
				require.NoError(t, json.Unmarshal([]byte(text), &got))
				require.Len(t, got, 1)
				assert.Equal(t, "M1002", got[0].ID)
			},
		},
		{
			name: "technique details",
			tool: "get_technique_details",
			args: map[string]any{"technique_id": "T1002"},
			assert: func(t *testing.T, text string) {
				var got knowledgebase.Technique
				require.NoError(t, json.Unmarshal([]byte(text), &got))
				assert.Equal(t, "Log analysis", got.Name)
				assert.Equal(t, []string{"W1002"}, got.Weaknesses)
				assert.Equal(t, "Analyse logs", got.Objective)
			},
		},
		{
			name: "weakness details",
			tool: "get_weakness_details",
			args: map[string]any{"weakness_id": "W1001"},
			assert: func(t *testing.T, text string) {
				var got knowledgebase.Weakness
				require.NoError(t, json.Unmarshal([]byte(text), &got))
				assert.Equal(t, "x", got.Incomplete)
			},
		},
		{
			name: "mitigation details",
			tool: "get_mitigation_details",
			args: map[string]any{"mitigation_id": "M1003"},
			assert: func(t *testing.T, text string) {
				assert.Contains(t, text, "Synchronise clocks")
			},
		},
		{
			name:   "weaknesses for technique",
			tool:   "get_weaknesses_for_technique",
			args:   map[string]any{"technique_id": "T1001"},
			assert: assertIDs("W1001", "W1002"),
		},
		{
			name:   "mitigations for weakness",
			tool:   "get_mitigations_for_weakness",
			args:   map[string]any{"weakness_id": "W1002"},
			assert: assertIDs("M1001", "M1002"),
		},
		{
			name:   "techniques for weakness",
			tool:   "get_techniques_for_weakness",
			args:   map[string]any{"weakness_id": "W1002"},
			assert: assertIDs("T1001", "T1002"),
		},
		{
			name:   "weaknesses for mitigation",
			tool:   "get_weaknesses_for_mitigation",
			args:   map[string]any{"mitigation_id": "M1001"},
			assert: assertIDs("W1001", "W1002"),
		},
		{
			name:   "techniques for mitigation",
			tool:   "get_techniques_for_mitigation",
			args:   map[string]any{"mitigation_id": "M1001"},
			assert: assertIDs("T1001", "T1002"),
		},
		{
			name: "list objectives",
			tool: "list_objectives",
			assert: func(t *testing.T, text string) {
				var got []knowledgebase.ObjectiveSummary
				require.NoError(t, json.Unmarshal([]byte(text), &got))
				require.Len(t, got, 2)
				assert.Equal(t, "Acquire data", got[0].Name)
				assert.Equal(t, 2, got[0].TechniqueCount)
			},
		},
		{
			name:   "techniques for objective",
			tool:   "get_techniques_for_objective",
			args:   map[string]any{"objective_name": "Acquire data"},
			assert: assertIDs("T1001", "T1003"),
		},
		{
			name: "available mappings",
			tool: "list_available_mappings",
			assert: func(t *testing.T, text string) {
				var got availableMappings
				require.NoError(t, json.Unmarshal([]byte(text), &got))
				assert.Equal(t, "solve-it.json", got.CurrentMapping)
				assert.ElementsMatch(t, []string{"broken.json", "carrier.json", "solve-it.json"}, got.Mappings)
			},
		},
		{
			name:   "technique briefs",
			tool:   "get_all_techniques_with_name_and_id",
			assert: assertIDs("T1001", "T1002", "T1003"),
		},
		{
			name:   "weakness briefs",
			tool:   "get_all_weaknesses_with_name_and_id",
			assert: assertIDs("W1001", "W1002", "W1003"),
		},
		{
			name:   "mitigation briefs",
			tool:   "get_all_mitigations_with_name_and_id",
			assert: assertIDs("M1001", "M1002", "M1003"),
		},
		{
			name:   "all techniques",
			tool:   "get_all_techniques_with_full_detail",
			assert: assertIDs("T1001", "T1002", "T1003"),
		},
		{
			name:   "all weaknesses",
			tool:   "get_all_weaknesses_with_full_detail",
			assert: assertIDs("W1001", "W1002", "W1003"),
		},
		{
			name:   "all mitigations",
			tool:   "get_all_mitigations_with_full_detail",
			assert: assertIDs("M1001", "M1002", "M1003"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, srv, tt.tool, tt.args)
			text := resultText(t, result)
			require.False(t, result.IsError, "unexpected error result: %s", text)
			tt.assert(t, text)
		})
	}
}

// assertIDs checks that a JSON array result lists exactly ids, in order.
func assertIDs(ids ...string) func(t *testing.T, text string) {
	return func(t *testing.T, text string) {
		var got []struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal([]byte(text), &got))
		gotIDs := make([]string, 0, len(got))
		for _, g := range got {
			gotIDs = append(gotIDs, g.ID)
		}
		assert.Equal(t, ids, gotIDs)
	}
}

func TestMCPToolErrors(t *testing.T) {
	srv := startTestServer(t, openKB(t))

	tests := []struct {
		name string
		tool string
		args map[string]any
		kind string
	}{
		{"unknown technique", "get_technique_details", map[string]any{"technique_id": "T9999"}, "not_found"},
		{"missing argument", "get_weakness_details", map[string]any{}, "validation_error"},
		{"broken mapping", "load_objective_mapping", map[string]any{"filename": "broken.json"}, "mapping_load_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, srv, tt.tool, tt.args)
			require.True(t, result.IsError)

			var payload map[string]any
			require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))
			assert.Equal(t, tt.kind, payload["error"])
			assert.NotEmpty(t, payload["message"])
		})
	}
}

func TestMCPLoadObjectiveMapping(t *testing.T) {
	kb := openKB(t)
	srv := startTestServer(t, kb)

	result := callTool(t, srv, "load_objective_mapping", map[string]any{"filename": "carrier.json"})
	text := resultText(t, result)
	require.False(t, result.IsError, text)

	var got mappingLoadResult
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	assert.True(t, got.Success)
	assert.Equal(t, "carrier.json", got.CurrentMapping)
	assert.Equal(t, "Successfully loaded mapping: carrier.json", got.Message)
	assert.Len(t, got.Objectives, 2)

	// The new mapping is visible to subsequent calls.
	assertIDs("T1002", "T1003")(t, resultText(t, callTool(t, srv, "get_techniques_for_objective",
		map[string]any{"objective_name": "Examine"})))

	// A failed load keeps the active mapping.
	result = callTool(t, srv, "load_objective_mapping", map[string]any{"filename": "broken.json"})
	require.True(t, result.IsError)
	assert.Equal(t, "carrier.json", kb.Current().MappingName())
}

func TestResourceHandlers(t *testing.T) {
	srv := startTestServer(t, openKB(t))

	tests := []struct {
		name           string
		uri            string
		expectError    bool
		expectContains []string
		expectMIMEType string
	}{
		{
			name:           "version info",
			uri:            versionResourceURI,
			expectContains: []string{`"name": "SOLVE-IT MCP Server"`, `"test-version"`, `"get_database_description"`, `"technique-review"`},
			expectMIMEType: "application/json",
		},
		{
			name:           "anomaly report",
			uri:            anomaliesResourceURI,
			expectContains: []string{`"current_mapping": "solve-it.json"`, `"W9999"`, `"M9999"`, `"T8888"`},
			expectMIMEType: "application/json",
		},
		{
			name:           "server status",
			uri:            statusResourceURI,
			expectContains: []string{"# Server Status Report", "## Knowledge Base", "| Techniques", "solve-it.json"},
			expectMIMEType: "text/markdown",
		},
		{
			name:        "unknown resource",
			uri:         "solveit://nothing",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := srv.Client().ReadResource(context.Background(), mcp.ReadResourceRequest{
				Params: mcp.ReadResourceParams{URI: tt.uri},
			})
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, result.Contents)

			content, ok := result.Contents[0].(mcp.TextResourceContents)
			require.True(t, ok, "expected TextResourceContents, got %T", result.Contents[0])
			assert.Equal(t, tt.expectMIMEType, content.MIMEType)
			for _, want := range tt.expectContains {
				assert.Contains(t, content.Text, want)
			}
		})
	}
}
