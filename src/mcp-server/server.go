// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/CKE-Proto/solve-it-mcp/src/version"
)

var appVersion = version.Version // default version

// GetVersion returns the current version of the MCP server.
//
// The version is set by [Run] and defaults to [version.Version] until then.
func GetVersion() string {
	return appVersion
}

// Run starts the SOLVE-IT MCP server command line with the given version.
//
// It builds the root command, parses os.Args and, unless --help, --version or
// --instructions was given, serves MCP over stdio until stdin closes or the
// process receives SIGINT or SIGTERM.
//
// Returns:
//   - nil: On clean shutdown or after printing help, version or instructions
//   - error: Configuration, knowledge base, or transport failures
func Run(version string) error {
	appVersion = version

	rootCmd, err := NewCLIFramework("", version).BuildRootCommand()
	if err != nil {
		return err
	}
	return rootCmd.Execute()
}
