package dot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/callgraph/pkg/callgraph"
)

// GraphName is the name written in the digraph header.
const GraphName = "G"

// Serialize converts a call graph to a DOT document.
//
// Each node is declared with its sanitized identifier as node ID and the
// original identifier as label, in node insertion order. When two identifiers
// sanitize to the same ID, the later node gets a "_2", "_3", ... suffix, so
// every graph node stays a distinct DOT node. Edges follow in edge insertion
// order, referencing endpoints by their node IDs. An empty graph yields a
// digraph with no statements.
//
// Serialize is deterministic: the same graph always produces the same bytes.
func Serialize(g *callgraph.Graph) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", GraphName)

	nodes := g.Nodes()
	ids := nodeIDs(nodes)
	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %s [label=%s];\n", quoteID(ids[n.ID]), quoteLabel(n.ID))
	}

	edges := g.Edges()
	if len(nodes) > 0 && len(edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %s -> %s;\n", quoteID(ids[e.From]), quoteID(ids[e.To]))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeIDs assigns each node its DOT ID in insertion order.
func nodeIDs(nodes []callgraph.Node) map[string]string {
	ids := make(map[string]string, len(nodes))
	taken := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		base := Sanitize(n.ID)
		id := base
		for i := 2; taken[id]; i++ {
			id = fmt.Sprintf("%s_%d", base, i)
		}
		taken[id] = true
		ids[n.ID] = id
	}
	return ids
}

// quoteID quotes a sanitized identifier. Sanitize removes quotes and
// backslashes, so no escaping is needed inside the quotes.
func quoteID(id string) string {
	return `"` + id + `"`
}

var labelEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", "",
)

// quoteLabel quotes an unsanitized identifier for use as a label value.
func quoteLabel(s string) string {
	return `"` + labelEscaper.Replace(s) + `"`
}
