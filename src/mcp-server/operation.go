// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/helper/codec"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/security"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
	"github.com/mark3labs/mcp-go/mcp"
)

// Params is implemented by every typed tool parameter struct.
// Validate runs after schema validation and decoding, and should return a
// [toolerr.Validation] error naming each bad field.
//
// [toolerr.Validation]: https://pkg.go.dev/github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr#Validation
type Params interface {
	Validate() error
}

// Invocation is the explicit context handed to every tool handler.
//
// Fields:
//   - ID: Unique invocation ID, also attached to every log line of the call
//   - Operation: Name of the tool being invoked
//   - Logger: Logger carrying the invocation ID and tool name
//   - Security: The tool's effective Layer 2/3 policy
//   - Limits: The gateway's Layer 1 limits
//   - Snapshot: Knowledge base state captured when the call was dispatched
//   - KnowledgeBase: Owner of the snapshot, for tools that replace it
type Invocation struct {
	ID            string
	Operation     string
	Logger        logger.Logger
	Security      security.ToolConfig
	Limits        security.Config
	Snapshot      *knowledgebase.Snapshot
	KnowledgeBase *knowledgebase.KnowledgeBase
}

// Handler is the typed form of a tool implementation.
type Handler[P Params] func(ctx context.Context, inv *Invocation, params P) (any, error)

// call is a handler with its arguments already decoded and validated.
type call func(ctx context.Context, inv *Invocation) (any, error)

// Operation is one registered tool: its MCP declaration, its security policy and
// the function that turns raw arguments into a ready-to-run call.
type Operation struct {
	Tool     mcp.Tool
	Security security.ToolConfig
	bind     func(args map[string]any) (call, error)
}

// Name returns the tool name.
func (o Operation) Name() string { return o.Tool.Name }

// NewOperation pairs a tool declaration with a typed handler. Arguments are
// decoded into P and validated before handler is scheduled.
//
// Example:
//
//	op := NewOperation(
//		mcp.NewTool("get_technique_details", mcp.WithString("technique_id", mcp.Required())),
//		security.NewToolConfig(),
//		handleTechniqueDetails,
//	)
func NewOperation[P Params](tool mcp.Tool, sec security.ToolConfig, handler Handler[P]) Operation {
	return Operation{
		Tool:     tool,
		Security: sec,
		bind: func(args map[string]any) (call, error) {
			var params P
			if err := codec.Decode(args, &params); err != nil {
				return nil, toolerr.Invalid("arguments", "do not match the declared parameter types").WithCause(err)
			}
			if err := params.Validate(); err != nil {
				return nil, err
			}
			return func(ctx context.Context, inv *Invocation) (any, error) {
				return handler(ctx, inv, params)
			}, nil
		},
	}
}
