package dot

import (
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// Stats summarizes a parsed DOT document.
type Stats struct {
	Nodes int
	Edges int
}

// Parse parses a DOT document with Graphviz and returns its node and edge
// counts. It fails if the text is not valid DOT.
func Parse(ctx context.Context, text string) (Stats, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(text))
	if err != nil {
		return Stats{}, fmt.Errorf("parse DOT: %w", err)
	}
	if g == nil {
		return Stats{}, fmt.Errorf("parse DOT: no graph")
	}
	defer g.Close()

	nodes, err := g.NodeNum()
	if err != nil {
		return Stats{}, fmt.Errorf("count nodes: %w", err)
	}
	edges, err := g.EdgeNum()
	if err != nil {
		return Stats{}, fmt.Errorf("count edges: %w", err)
	}
	return Stats{Nodes: nodes, Edges: edges}, nil
}
