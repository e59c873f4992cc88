// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/helper/posix"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/security"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
	"github.com/CKE-Proto/solve-it-mcp/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

// Flag names of the root command.
const (
	flagConfig       = "config"
	flagData         = "data"
	flagWatch        = "watch"
	flagInstructions = "instructions"
	flagLogLevel     = "log-level"
	flagLogFormat    = "log-format"
)

// cliHelpData holds the data used to populate the CLI help template.
//
// Fields:
//   - ExeName: The name of the executable binary for command examples
//   - InstructionsFlagName: The formatted instructions flag name (e.g., "--instructions")
//   - ConfigFlagName: The formatted config flag name (e.g., "--config")
//   - DataFlagName: The formatted data directory flag name (e.g., "--data")
//   - WatchFlagName: The formatted live reload flag name (e.g., "--watch")
//   - HelpFlagName: The formatted help flag name (e.g., "--help")
type cliHelpData struct {
	ExeName              string
	InstructionsFlagName string
	ConfigFlagName       string
	DataFlagName         string
	WatchFlagName        string
	HelpFlagName         string
}

// CLIFramework integrates the Cobra CLI with the MCP server.
//
// Running the root command without arguments starts the server on stdio.
// Flags given on the command line take precedence over the configuration file
// and the environment.
//
// Key features:
//   - Dynamic executable naming based on actual binary path (not hardcoded)
//   - [Gopls-style] --instructions flag for displaying the tool catalogue
//   - Configuration file support via --config flag or SOLVE_IT_MCP_CONFIG_FILE
//   - Optional live reload of the data directory via --watch
//   - Graceful shutdown handling with signal interception
//
// [Gopls-style]: https://tip.golang.org/gopls/features/mcp#instructions-to-the-model
type CLIFramework struct {
	configFile string
	version    string
	embed      templates.EmbedFS

	dataPath         string
	watch            bool
	logLevel         string
	logFormat        string
	showInstructions bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewCLIFramework creates a CLI framework that serves over the process's
// standard streams.
//
// Parameters:
//   - configFile: Default configuration file path; empty defers to SOLVE_IT_MCP_CONFIG_FILE
//   - version: Version announced to clients and printed by --version
func NewCLIFramework(configFile, version string) *CLIFramework {
	return &CLIFramework{
		configFile: configFile,
		version:    version,
		embed:      templates.MagicEmbed,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

// BuildRootCommand creates the root Cobra command.
//
// Command behavior:
//   - With --instructions: Prints the instructions sent to MCP clients and exits
//   - Without arguments: Starts the MCP server on stdio
//   - With arguments: Returns an error
//
// It returns an error if the embedded help template cannot be rendered.
func (cf *CLIFramework) BuildRootCommand() (*cobra.Command, error) {
	exeName := posix.GetExecutableName()

	rootCmd := &cobra.Command{
		Use:           exeName,
		Short:         "SOLVE-IT digital forensics knowledge base MCP server",
		Version:       cf.version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Cobra adds the help flag during Execute; it is needed now for the help text.
	rootCmd.Flags().BoolP("help", "h", false, "help for "+exeName)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cf.configFile, flagConfig, cf.configFile, "path to a JSON or YAML configuration file")
	flags.StringVar(&cf.dataPath, flagData, "", "path to the SOLVE-IT data directory")
	flags.BoolVar(&cf.watch, flagWatch, false, "reload the knowledge base when data files change")
	flags.BoolVar(&cf.showInstructions, flagInstructions, false, "print the instructions sent to MCP clients")
	flags.StringVar(&cf.logLevel, flagLogLevel, "", "log level: debug, info, warn or error")
	flags.StringVar(&cf.logFormat, flagLogFormat, "", "log format: human or json")

	longDesc, examples, err := cf.loadAndExecuteCLIHelpTemplate(cliHelpData{
		ExeName:              exeName,
		InstructionsFlagName: flagName(rootCmd, flagInstructions),
		ConfigFlagName:       flagName(rootCmd, flagConfig),
		DataFlagName:         flagName(rootCmd, flagData),
		WatchFlagName:        flagName(rootCmd, flagWatch),
		HelpFlagName:         flagName(rootCmd, "help"),
	})
	if err != nil {
		return nil, err
	}
	rootCmd.Long = longDesc
	rootCmd.Example = examples

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if cf.showInstructions {
			return cf.printInstructions(cmd.OutOrStdout())
		}
		if len(args) > 0 {
			return fmt.Errorf("unexpected arguments: %s for %q", strings.Join(args, " "), exeName)
		}
		return cf.startMCPServer(cmd)
	}

	return rootCmd, nil
}

// loadAndExecuteCLIHelpTemplate renders the embedded CLI help template and
// splits it into the Long description and the Examples section.
func (cf *CLIFramework) loadAndExecuteCLIHelpTemplate(data cliHelpData) (longDesc, examples string, err error) {
	rendered, err := templates.Render(cf.embed, "cli_help.md", data)
	if err != nil {
		return "", "", err
	}
	return parseTemplateResult(rendered)
}

// parseTemplateResult splits rendered help text at the "## Examples" line.
// Content before the line is the Long description; content after it is the
// Examples section. Both are trimmed.
func parseTemplateResult(templateResult string) (longDesc, examples string, err error) {
	const examplesMarker = "## Examples"
	markerIndex := strings.Index(templateResult, examplesMarker)
	if markerIndex == -1 {
		return "", "", errors.New("CLI help template has invalid format - missing '## Examples' section")
	}

	lineStart := strings.LastIndex(templateResult[:markerIndex], "\n") + 1

	lineEnd := strings.Index(templateResult[markerIndex:], "\n")
	if lineEnd == -1 {
		lineEnd = len(templateResult)
	} else {
		lineEnd += markerIndex
	}

	return strings.TrimSpace(templateResult[:lineStart]), strings.TrimSpace(templateResult[lineEnd:]), nil
}

// flagName returns the "--name" form of a flag registered on cmd, or of name
// itself when the lookup fails.
func flagName(cmd *cobra.Command, name string) string {
	if f := cmd.Flags().Lookup(name); f != nil {
		return "--" + f.Name
	}
	if f := cmd.PersistentFlags().Lookup(name); f != nil {
		return "--" + f.Name
	}
	return "--" + name
}

// printInstructions writes the same instructions the server sends to MCP
// clients, similar to [gopls].
//
// [gopls]: https://tip.golang.org/gopls/features/mcp#instructions-to-the-model
func (cf *CLIFramework) printInstructions(w io.Writer) error {
	instructions, err := loadInstructions(createOperations(""))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, instructions)
	return err
}

// resolveConfig loads the configuration and applies the flags that were set
// on cmd.
func (cf *CLIFramework) resolveConfig(cmd *cobra.Command) (*Config, error) {
	config, err := loadConfig(cf.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed(flagData) {
		config.Data.Path = cf.dataPath
	}
	if flags.Changed(flagWatch) {
		config.Data.Watch = cf.watch
	}
	if flags.Changed(flagLogLevel) {
		config.Log.Level = cf.logLevel
	}
	if flags.Changed(flagLogFormat) {
		config.Log.Format = cf.logFormat
	}
	return config, nil
}

// newServerLogger creates the diagnostic logger. Stdout carries the protocol,
// so logs go to the configured file or to stderr.
func (cf *CLIFramework) newServerLogger(config *Config) (logger.Logger, func() error, error) {
	w := cf.stderr
	closeFn := func() error { return nil }

	if config.Log.File != "" {
		f, err := os.OpenFile(config.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}

	log := logger.New(w, logger.Options{
		Level:      config.Log.Level,
		Format:     logger.ParseFormat(config.Log.Format),
		Timestamps: true,
	})
	return log, closeFn, nil
}

// startMCPServer loads the configuration and the knowledge base and serves
// MCP over stdio until stdin closes or the process is interrupted.
//
// A failure to locate or load the data directory is fatal; there is no
// degraded mode. Interruption by SIGINT or SIGTERM is a clean shutdown.
func (cf *CLIFramework) startMCPServer(cmd *cobra.Command) error {
	config, err := cf.resolveConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := cf.newServerLogger(config)
	if err != nil {
		return err
	}
	defer closeLog()

	kb, err := knowledgebase.Open(knowledgebase.Options{
		DataPath:       config.Data.Path,
		DefaultMapping: config.Data.DefaultMapping,
		Logger:         log,
	})
	if err != nil {
		log.Error("knowledge base could not be loaded", "error", err)
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}

	mcpServer, err := NewServerBuilder().
		WithVersion(cf.version).
		WithConfig(config).
		WithLogger(log).
		WithKnowledgeBase(kb).
		WithGateway(security.NewGateway(config.SecurityConfig(), log)).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build MCP server: %w", err)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	if config.Data.Watch {
		go func() {
			if err := NewWatcher(kb, log, 0).Watch(ctx); err != nil {
				log.Error("live reload disabled", "error", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			log.Info("received signal, initiating graceful shutdown", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Info("SOLVE-IT MCP server started", "version", cf.version, "data_path", kb.Root())

	stdioServer := server.NewStdioServer(mcpServer)
	if err := stdioServer.Listen(ctx, cf.stdin, cf.stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("SOLVE-IT MCP server stopped")
	return nil
}
