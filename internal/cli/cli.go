package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/callgraph/pkg/buildinfo"
	"github.com/matzehuels/callgraph/pkg/callgraph"
	"github.com/matzehuels/callgraph/pkg/config"
	"github.com/matzehuels/callgraph/pkg/errors"
	"github.com/matzehuels/callgraph/pkg/extract"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "callgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string   // --config
	envFiles   []string // --env-file
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "callgraph turns caller/callee relations into a rendered call graph",
		Long:         `callgraph builds a directed call graph from caller/callee relations, exports it as Graphviz DOT and renders it to images with both the embedded Graphviz and the system dot binary.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML config file")
	root.PersistentFlags().StringSliceVar(&c.envFiles, "env-file", nil, "env files to load (default .env if present)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Helpers
// =============================================================================

// loadConfig reads the layered configuration selected by the root flags.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath, c.envFiles...)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "file", c.configPath, "output", cfg.Output)
	return cfg, nil
}

// sourceFlags select where relations come from.
type sourceFlags struct {
	src   string // Go source directory to extract from
	tests bool   // include _test.go files when extracting
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.src, "src", "", "extract relations from the Go sources under this directory")
	cmd.Flags().BoolVar(&f.tests, "tests", false, "include _test.go files when extracting")
}

// loadRelations reads relations from the single file argument or extracts
// them from --src. Exactly one of the two must be given.
func (c *CLI) loadRelations(ctx context.Context, args []string, f sourceFlags) (*callgraph.Relations, error) {
	switch {
	case f.src != "" && len(args) > 0:
		return nil, errors.New(errors.ErrCodeInvalidInput, "give either a relations file or --src, not both")
	case f.src != "":
		prog := newProgress(c.Logger)
		e := extract.New(f.src, c.Logger)
		e.IncludeTests = f.tests
		rel, err := e.Extract(ctx)
		if err != nil {
			return nil, err
		}
		prog.done("extracted relations")
		return rel, nil
	case len(args) == 1:
		rel, err := callgraph.Load(args[0])
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("loaded relations", "file", args[0], "callers", rel.Len(), "calls", rel.Pairs())
		return rel, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "a relations file or --src is required")
	}
}
