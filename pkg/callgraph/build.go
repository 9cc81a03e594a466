package callgraph

// Build turns extractor output into a call graph.
//
// Entries are visited in rel's insertion order. For each caller the caller
// node is added first, then for each callee in sequence the callee node and
// the caller→callee edge. Both endpoints therefore always exist before their
// edge is added. Repeated nodes and edges are absorbed. An empty identifier
// never becomes a node and drops only the edges it takes part in: the
// callees of an empty caller are still added. A nil or empty rel yields an
// empty graph.
func Build(rel *Relations) *Graph {
	g := New()
	if rel == nil {
		return g
	}
	for caller, callees := range rel.All() {
		g.AddNode(caller)
		for _, callee := range callees {
			g.AddNode(callee)
			// AddEdge rejects an empty endpoint; otherwise both endpoints
			// exist and the edge is added or absorbed.
			_, _ = g.AddEdge(caller, callee)
		}
	}
	return g
}
