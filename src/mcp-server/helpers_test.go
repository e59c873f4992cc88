// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase/kbtest"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/security"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

// openKB opens the standard fixture data directory.
func openKB(t *testing.T) *knowledgebase.KnowledgeBase {
	t.Helper()
	return openKBAt(t, kbtest.WriteFixture(t))
}

func openKBAt(t *testing.T, root string) *knowledgebase.KnowledgeBase {
	t.Helper()
	kb, err := knowledgebase.Open(knowledgebase.Options{DataPath: root})
	require.NoError(t, err)
	return kb
}

// newTestDispatcher builds a dispatcher over the default tool set with cfg
// and returns the buffer its logger writes to.
func newTestDispatcher(t *testing.T, kb *knowledgebase.KnowledgeBase, cfg security.Config) (*Dispatcher, *bytes.Buffer) {
	t.Helper()
	log, buf := logger.NewTestLogger()
	d, err := NewDispatcher(kb, security.NewGateway(cfg, log), log, createOperations(kb.Root())...)
	require.NoError(t, err)
	return d, buf
}

// dispatchInto runs name and decodes its JSON result into out.
func dispatchInto(t *testing.T, d *Dispatcher, name string, args map[string]any, out any) {
	t.Helper()
	raw, err := d.Dispatch(context.Background(), name, args)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

// errorKind returns the kind of err, failing the test when err is nil.
func errorKind(t *testing.T, err error) toolerr.Kind {
	t.Helper()
	require.Error(t, err)
	return toolerr.KindOf(err)
}

// resultText returns the text of the first content item of result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return content.Text
}
