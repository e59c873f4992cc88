// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides abstraction and implementation for logging operations.
// It defines the Logger interface and a charmbracelet/log backed implementation
// with constructors for human-readable command-line output (NewCLILogger) and
// structured JSON logging in MCP server environments (NewMCPLogger). Both are
// safe for concurrent use.
package logger
