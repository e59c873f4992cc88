// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package markdown renders tabular data as GitHub-flavoured markdown tables
// using [tablewriter]. It is shared by the inspection CLI and the MCP status
// resource.
//
// [tablewriter]: https://github.com/olekukonko/tablewriter
package markdown
