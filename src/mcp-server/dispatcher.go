// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/helper/codec"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/security"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xeipuuv/gojsonschema"
)

// route is a registered operation with its validated policy and compiled schema.
type route struct {
	op     Operation
	sec    security.ToolConfig
	schema *gojsonschema.Schema
}

// Dispatcher resolves tool calls and runs them through the security gateway.
//
// The pipeline for every call is:
//  1. resolve the operation
//  2. Layer 1 input checks
//  3. JSON schema validation of the arguments
//  4. Layer 2/3 screening
//  5. decoding and typed parameter validation
//  6. the handler, under its timeout
//  7. rendering and Layer 1 output checks
//
// A Dispatcher is safe for concurrent use.
type Dispatcher struct {
	kb      *knowledgebase.KnowledgeBase
	gateway *security.Gateway
	log     logger.Logger
	routes  map[string]*route
	order   []string
}

// NewDispatcher validates every operation's security declaration and compiles
// its input schema. Any invalid declaration fails construction with a
// [toolerr.KindConfiguration] error, so a misconfigured server never starts.
func NewDispatcher(kb *knowledgebase.KnowledgeBase, gateway *security.Gateway, log logger.Logger, ops ...Operation) (*Dispatcher, error) {
	if log == nil {
		log = logger.Nop()
	}
	d := &Dispatcher{
		kb:      kb,
		gateway: gateway,
		log:     log,
		routes:  make(map[string]*route, len(ops)),
	}

	for _, op := range ops {
		name := op.Name()
		if _, dup := d.routes[name]; dup {
			return nil, toolerr.Configuration(name, "registered more than once")
		}
		if op.bind == nil {
			return nil, toolerr.Configuration(name, "has no handler")
		}

		sec, err := op.Security.Validate(name, gateway.Config(), log)
		if err != nil {
			return nil, err
		}

		schema, err := compileSchema(op.Tool)
		if err != nil {
			return nil, toolerr.Configuration(name, "invalid input schema: %v", err)
		}

		d.routes[name] = &route{op: op, sec: sec, schema: schema}
		d.order = append(d.order, name)
	}
	return d, nil
}

// compileSchema turns the tool's declared input schema into a validator that
// also rejects undeclared arguments.
func compileSchema(tool mcp.Tool) (*gojsonschema.Schema, error) {
	raw := tool.RawInputSchema
	if len(raw) == 0 {
		var err error
		if raw, err = json.Marshal(tool.InputSchema); err != nil {
			return nil, err
		}
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	if _, ok := doc["type"]; !ok {
		doc["type"] = "object"
	}
	doc["additionalProperties"] = false

	return gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
}

// validateArgs checks args against schema and reports every violation at once.
func validateArgs(schema *gojsonschema.Schema, args map[string]any) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return toolerr.Invalid("arguments", "could not be validated").WithCause(err)
	}
	if result.Valid() {
		return nil
	}

	fields := make([]toolerr.FieldError, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		fields = append(fields, toolerr.FieldError{Field: schemaField(e), Message: e.Description()})
	}
	return toolerr.Validation(fields...)
}

// schemaField attributes a schema error to an argument name. Errors about
// missing or undeclared properties are reported against the object root, so
// the property name is taken from the error details instead.
func schemaField(e gojsonschema.ResultError) string {
	field := e.Field()
	if field != "(root)" {
		return field
	}
	if prop, ok := e.Details()["property"]; ok {
		return fmt.Sprint(prop)
	}
	return "arguments"
}

// Operations returns the registered tool names in registration order.
func (d *Dispatcher) Operations() []string { return append([]string(nil), d.order...) }

// Dispatch runs the named operation and returns its rendered JSON result.
// Every error it returns is either a [*toolerr.Error] or a context error.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) ([]byte, error) {
	r, ok := d.routes[name]
	if !ok {
		d.log.Warn("unknown operation requested", "tool", name)
		return nil, toolerr.UnknownOperation(name)
	}
	if args == nil {
		args = map[string]any{}
	}

	id := uuid.New().String()
	log := d.log.With("invocation_id", id, "tool", name)
	start := time.Now()

	if err := d.gateway.Admit(name, args); err != nil {
		return nil, err
	}
	if err := validateArgs(r.schema, args); err != nil {
		log.Debug("schema validation failed", "error", err)
		return nil, err
	}

	screened, err := d.gateway.Screen(ctx, name, r.sec, args)
	if err != nil {
		return nil, err
	}

	run, err := r.op.bind(screened)
	if err != nil {
		log.Debug("parameter validation failed", "error", err)
		return nil, err
	}

	inv := &Invocation{
		ID:            id,
		Operation:     name,
		Logger:        log,
		Security:      r.sec,
		Limits:        d.gateway.Config(),
		Snapshot:      d.kb.Current(),
		KnowledgeBase: d.kb,
	}

	timeout := r.sec.EffectiveTimeout(d.gateway.Config())
	value, err := d.gateway.Run(ctx, name, timeout, func(ctx context.Context) (any, error) {
		return run(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	out, err := codec.Render(value)
	if err != nil {
		return nil, toolerr.Internal(err)
	}
	if err := d.gateway.CheckOutput(name, out); err != nil {
		return nil, err
	}

	log.Debug("tool invocation completed", "duration", time.Since(start).String(), "bytes", len(out))
	return out, nil
}

// handle adapts [Dispatcher.Dispatch] to the MCP tool handler signature.
// Domain failures are returned as error results, never as Go errors.
func (d *Dispatcher) handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.Params.Name
	out, err := d.Dispatch(ctx, name, request.GetArguments())
	if err != nil {
		return d.errorResult(name, err), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// errorResult renders err as a caller-safe JSON error payload. Untyped errors
// are logged in full and reported generically.
func (d *Dispatcher) errorResult(name string, err error) *mcp.CallToolResult {
	safe := toolerr.Safe(err)
	switch {
	case safe.Kind == toolerr.KindInternal:
		d.log.Error("tool invocation failed", "tool", name, "error", err)
	case safe.Cause != nil:
		d.log.Warn("tool invocation failed", "tool", name, "error", err)
	}

	payload, rerr := codec.Render(safe.Payload())
	if rerr != nil {
		return mcp.NewToolResultError(safe.Message)
	}
	return mcp.NewToolResultError(string(payload))
}

// ServerTools returns one [server.ServerTool] per registered operation, each
// routed through the dispatcher.
func (d *Dispatcher) ServerTools() []server.ServerTool {
	tools := make([]server.ServerTool, 0, len(d.order))
	for _, name := range d.order {
		tools = append(tools, server.ServerTool{Tool: d.routes[name].op.Tool, Handler: d.handle})
	}
	return tools
}
