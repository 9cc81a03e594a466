package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/callgraph/pkg/callgraph"
	"github.com/matzehuels/callgraph/pkg/config"
	"github.com/matzehuels/callgraph/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command.
// Only flags the user actually set override the loaded configuration.
type renderFlags struct {
	sourceFlags
	output        string        // DOT output path
	width         int           // in-process image width in pixels
	format        string        // external renderer format
	dotBinary     string        // external renderer executable
	inProcessMode string        // tolerant or fatal
	externalMode  string        // tolerant or fatal
	timeout       time.Duration // external renderer timeout
	noInProcess   bool          // skip the in-process renderer
	noExternal    bool          // skip the external renderer
}

// renderCommand creates the render command that runs the full pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [relations-file]",
		Short: "Build, export and render a call graph",
		Long: `Build a call graph from a relations file (.json or .toml) or from Go
sources (--src), write it as DOT to --output and render it twice:
  <output base>/example/ex1.png  embedded Graphviz
  <output base>/example/ex2.png  system dot binary

Without an output path only the graph summary is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg)

			rel, err := c.loadRelations(cmd.Context(), args, flags.sourceFlags)
			if err != nil {
				return err
			}
			return c.runRender(cmd, rel, cfg)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "DOT output file (enables rendering)")
	cmd.Flags().IntVar(&flags.width, "width", pipeline.DefaultWidth, "in-process image width in pixels")
	cmd.Flags().StringVarP(&flags.format, "format", "f", pipeline.DefaultFormat, "external renderer output format")
	cmd.Flags().StringVar(&flags.dotBinary, "dot", pipeline.DefaultDotBinary, "external renderer executable")
	cmd.Flags().StringVar(&flags.inProcessMode, "inprocess-mode", pipeline.DefaultInProcessMode, "in-process failure mode: tolerant, fatal")
	cmd.Flags().StringVar(&flags.externalMode, "external-mode", pipeline.DefaultExternalMode, "external failure mode: tolerant, fatal")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "external renderer timeout (0 = none)")
	cmd.Flags().BoolVar(&flags.noInProcess, "no-inprocess", false, "skip the in-process renderer")
	cmd.Flags().BoolVar(&flags.noExternal, "no-external", false, "skip the external renderer")

	return cmd
}

// apply copies the flags the user set onto cfg.
func (f *renderFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("output") {
		cfg.Output = f.output
	}
	if set("width") {
		cfg.Render.Width = f.width
	}
	if set("format") {
		cfg.Render.Format = f.format
	}
	if set("dot") {
		cfg.Render.DotBinary = f.dotBinary
	}
	if set("inprocess-mode") {
		cfg.Render.InProcessMode = f.inProcessMode
	}
	if set("external-mode") {
		cfg.Render.ExternalMode = f.externalMode
	}
	if set("timeout") {
		cfg.Render.ExternalTimeout = f.timeout
	}
	if set("no-inprocess") {
		cfg.Render.DisableInProcess = f.noInProcess
	}
	if set("no-external") {
		cfg.Render.DisableExternal = f.noExternal
	}
}

func (c *CLI) runRender(cmd *cobra.Command, rel *callgraph.Relations, cfg *config.Config) error {
	runner := pipeline.NewRunner(c.Logger)
	result, err := runner.Execute(cmd.Context(), rel, cfg.Options(c.Logger))
	if result != nil {
		printSummary(cmd.OutOrStdout(), result)
	}
	return err
}
