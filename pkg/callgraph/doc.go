// Package callgraph provides the directed call graph built from extractor
// output.
//
// # Overview
//
// An extractor (see [github.com/matzehuels/callgraph/pkg/extract]) produces
// [Relations]: an insertion-ordered mapping from a caller identifier to the
// identifiers it calls. [Build] turns that mapping into a [Graph] whose nodes
// are the union of all callers and callees and whose edges are the distinct
// caller→callee pairs.
//
//	rel := callgraph.NewRelations()
//	rel.Add("app.Main", "app.Load", "app.Render")
//	rel.Add("app.Load", "os.ReadFile")
//
//	g := callgraph.Build(rel)
//	g.NodeCount() // 4
//	g.EdgeCount() // 3
//
// # Ordering
//
// Both [Graph.Nodes] and [Graph.Edges] return values in insertion order. The
// DOT serializer relies on this, so the same Relations always produce the
// same document.
//
// # Duplicates
//
// Nodes are unique by identifier. Edges are unique by ordered pair: feeding
// the same caller/callee pair twice, or a self-loop twice, stores one edge.
// [Graph.AddEdge] reports whether an edge was new.
//
// # Input Documents
//
// [Load] reads Relations from .json or .toml files, keeping document order.
package callgraph
