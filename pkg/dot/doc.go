// Package dot serializes call graphs to Graphviz DOT.
//
// # Overview
//
// [Serialize] converts a [callgraph.Graph] into a DOT document. Node IDs are
// quoted and passed through [Sanitize], so identifiers containing quotes or
// semicolons cannot break the document; the original identifier is kept as
// the node's label:
//
//	digraph G {
//	  "app.Main" [label="app.Main"];
//	  "Repo.save(User_ _draft_)" [label="Repo.save(User; \"draft\")"];
//
//	  "app.Main" -> "Repo.save(User_ _draft_)";
//	}
//
// Node statements come first in node insertion order, then edge statements
// in edge insertion order. Identifiers that sanitize to the same ID get a
// numeric suffix, so each graph node is a distinct DOT node.
//
// # Parsing
//
// [Parse] reads a document back with [github.com/goccy/go-graphviz] and
// reports its node and edge counts, which is how the round trip between
// [Serialize] and a standard DOT parser is checked.
//
// [callgraph.Graph]: github.com/matzehuels/callgraph/pkg/callgraph.Graph
package dot
