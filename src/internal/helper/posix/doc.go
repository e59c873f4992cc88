// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides helpers for locating the running binary.
//
// GetExecutableName gives the name shown in command usage and help text, so
// examples match however the binary was installed or renamed. ExecutableDir
// gives the directory the knowledge base searches for a bundled
// solve-it-main/data checkout.
//
// Both work the same on [Unix-like] systems and on Windows:
//
//   - "/usr/local/bin/solve-it-mcp" → "solve-it-mcp"
//   - "C:\tools\solve-it-mcp.exe" → "solve-it-mcp"
//   - no usable os.Args[0] → "solve-it-mcp"
//
// [Unix-like]: https://grokipedia.com/page/Unix-like
package posix
