// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/helper/codec"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/helper/markdown"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
	"github.com/spf13/cobra"
)

// envDataPath is shared with the MCP server so both binaries find the same data.
const envDataPath = "SOLVE_IT_DATA_PATH"

// options holds the persistent flags shared by every subcommand.
type options struct {
	dataPath string
	asJSON   bool
	log      logger.Logger
}

// Execute runs the solve-it command with the process arguments.
//
// Parameters:
//   - ctx: Context for cancellation; interrupting the process cancels it
//   - version: Version printed by --version
//   - log: Destination for knowledge base load messages and anomalies
//
// Returns:
//   - error: Any error from loading the knowledge base or running a subcommand
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewRootCommand(version, log).ExecuteContext(ctx)
}

// NewRootCommand builds the solve-it command tree without running it.
func NewRootCommand(version string, log logger.Logger) *cobra.Command {
	if log == nil {
		log = logger.Nop()
	}
	opts := &options{log: log}

	rootCmd := &cobra.Command{
		Use:   "solve-it",
		Short: "Inspect the SOLVE-IT digital forensics knowledge base",
		Long: `solve-it reads a SOLVE-IT data directory and prints techniques, weaknesses,
mitigations and objectives as markdown tables, or as JSON with --json.

The data directory is taken from --data or SOLVE_IT_DATA_PATH. Otherwise it is
searched next to the executable and in the working directory.`,
		Version:      version,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.dataPath, "data", os.Getenv(envDataPath), "path to the SOLVE-IT data directory")
	flags.BoolVarP(&opts.asJSON, "json", "j", false, "print JSON instead of markdown tables")

	rootCmd.AddCommand(
		newDescribeCommand(opts),
		newSearchCommand(opts),
		newShowCommand(opts),
		newObjectivesCommand(opts),
		newMappingsCommand(opts),
		newAnomaliesCommand(opts),
	)
	return rootCmd
}

// open loads the knowledge base for one command run.
func (o *options) open() (*knowledgebase.KnowledgeBase, error) {
	kb, err := knowledgebase.Open(knowledgebase.Options{
		DataPath: o.dataPath,
		Logger:   o.log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	return kb, nil
}

// print writes v as JSON when --json is set and calls table otherwise.
func (o *options) print(w io.Writer, v any, table func(w io.Writer) error) error {
	if !o.asJSON {
		return table(w)
	}
	out, err := codec.Render(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}

// section writes a markdown heading followed by a table, or a placeholder
// line when there are no rows.
func section(w io.Writer, title string, headers []string, rows [][]string) error {
	if _, err := fmt.Fprintf(w, "\n### %s\n\n", title); err != nil {
		return err
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "None.")
		return err
	}
	return markdown.WriteTable(w, headers, rows)
}
