// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"errors"
	"fmt"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/security"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
	"github.com/mark3labs/mcp-go/server"
)

// serverName is the name announced to MCP clients.
const serverName = "SOLVE-IT MCP Server"

// ServerDependencies holds all dependencies needed to create the MCP server.
//
// Fields:
//   - Version: Server version string announced to clients
//   - Config: Server configuration; the security section seeds the gateway
//   - Logger: Destination for server, gateway and invocation logs
//   - KnowledgeBase: The opened knowledge base (required)
//   - Gateway: Shared security gateway; built from Config when nil
//   - Operations: Registered tools; defaults to the full SOLVE-IT tool set
//   - Instructions: Text sent at initialisation; rendered from the embedded template when empty
type ServerDependencies struct {
	Version       string
	Config        *Config
	Logger        logger.Logger
	KnowledgeBase *knowledgebase.KnowledgeBase
	Gateway       *security.Gateway
	Operations    []Operation
	Instructions  string
}

// ServerBuilder helps construct the MCP server with proper dependencies.
// It follows the builder pattern: chain With* calls, then call Build.
//
// Example:
//
//	s, err := NewServerBuilder().
//		WithVersion(version.Version).
//		WithConfig(config).
//		WithLogger(log).
//		WithKnowledgeBase(kb).
//		Build()
type ServerBuilder struct {
	deps       ServerDependencies
	dispatcher *Dispatcher
}

// NewServerBuilder creates a new server builder.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithVersion sets the server version.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithConfig sets the server configuration.
func (b *ServerBuilder) WithConfig(config *Config) *ServerBuilder {
	b.deps.Config = config
	return b
}

// WithLogger sets the logger.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.deps.Logger = log
	return b
}

// WithKnowledgeBase sets the knowledge base every tool reads from.
func (b *ServerBuilder) WithKnowledgeBase(kb *knowledgebase.KnowledgeBase) *ServerBuilder {
	b.deps.KnowledgeBase = kb
	return b
}

// WithGateway sets a pre-built security gateway.
func (b *ServerBuilder) WithGateway(gateway *security.Gateway) *ServerBuilder {
	b.deps.Gateway = gateway
	return b
}

// WithOperations adds operations to register instead of the default tool set.
func (b *ServerBuilder) WithOperations(ops ...Operation) *ServerBuilder {
	b.deps.Operations = append(b.deps.Operations, ops...)
	return b
}

// WithInstructions sets the server instructions sent to MCP clients.
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.deps.Instructions = instructions
	return b
}

// Dispatcher returns the dispatcher created by the last successful Build.
func (b *ServerBuilder) Dispatcher() *Dispatcher { return b.dispatcher }

// Build creates the MCP server with all configured dependencies.
//
// Returns:
//   - The configured MCP server, ready to be served over stdio
//   - A configuration error if any tool declares an invalid security policy,
//     or an error if no knowledge base was supplied
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	deps := b.deps
	if deps.KnowledgeBase == nil {
		return nil, errors.New("server builder: knowledge base is required")
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Config == nil {
		deps.Config = defaultConfig()
	}
	if deps.Gateway == nil {
		deps.Gateway = security.NewGateway(deps.Config.SecurityConfig(), deps.Logger)
	}
	if len(deps.Operations) == 0 {
		deps.Operations = createOperations(deps.KnowledgeBase.Root())
	}

	dispatcher, err := NewDispatcher(deps.KnowledgeBase, deps.Gateway, deps.Logger, deps.Operations...)
	if err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	if deps.Instructions == "" {
		if deps.Instructions, err = loadInstructions(deps.Operations); err != nil {
			return nil, err
		}
	}

	s := server.NewMCPServer(
		serverName,
		deps.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithInstructions(deps.Instructions),
		server.WithRecovery(),
	)

	s.AddTools(dispatcher.ServerTools()...)

	resources := createResources(resourceSource{
		version: deps.Version,
		tools:   dispatcher.Operations(),
		kb:      deps.KnowledgeBase,
		gateway: deps.Gateway,
	})
	for _, r := range resources {
		s.AddResource(r.Resource, r.Handler)
	}

	s.AddPrompts(createPrompts()...)

	b.dispatcher = dispatcher
	return s, nil
}
