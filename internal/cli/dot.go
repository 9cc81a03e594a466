package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/callgraph/pkg/callgraph"
	"github.com/matzehuels/callgraph/pkg/dot"
)

// dotCommand creates the dot command that prints the DOT text to stdout.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		src   sourceFlags
		check bool
	)

	cmd := &cobra.Command{
		Use:   "dot [relations-file]",
		Short: "Print the call graph as Graphviz DOT",
		Long: `Print the call graph as Graphviz DOT on stdout without writing files or
rendering. With --check the text is parsed back with the embedded Graphviz and
the node and edge counts are compared with the built graph.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rel, err := c.loadRelations(cmd.Context(), args, src)
			if err != nil {
				return err
			}

			g := callgraph.Build(rel)
			text := dot.Serialize(g)

			if check {
				stats, err := dot.Parse(cmd.Context(), text)
				if err != nil {
					return err
				}
				if stats.Nodes != g.NodeCount() || stats.Edges != g.EdgeCount() {
					return fmt.Errorf("DOT round trip mismatch: built %d nodes/%d edges, parsed %d/%d",
						g.NodeCount(), g.EdgeCount(), stats.Nodes, stats.Edges)
				}
				c.Logger.Info("DOT parsed back", "nodes", stats.Nodes, "edges", stats.Edges)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVar(&check, "check", false, "parse the DOT text back and verify node and edge counts")

	return cmd
}
