// Package pkg holds the libraries behind the callgraph tool.
//
// # Overview
//
// callgraph turns caller/callee relations into a directed call graph, writes
// it as Graphviz DOT and renders the file to images. The data flow:
//
//	Go sources ([extract]) or a relations file ([callgraph.Load])
//	         ↓
//	    [callgraph] package (relations → graph)
//	         ↓
//	    [dot] package (graph → DOT text, identifier sanitizing)
//	         ↓
//	    [sink] package (DOT text → file)
//	         ↓
//	    [render] package (file → in-process PNG + external image)
//
// [pipeline] runs the stages end to end and [config] loads the settings that
// drive it.
//
// # Quick Start
//
//	rel := callgraph.NewRelations()
//	rel.Add("A", "B", "C")
//	rel.Add("B", "C")
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, rel, pipeline.Options{Output: "out/graph.dot"})
//
// # Supporting Packages
//
//   - [errors]: coded errors shared across packages
//   - [observability]: the diagnostics sink interface and pipeline hooks
//   - [buildinfo]: version information for the CLI
//
// [extract]: github.com/matzehuels/callgraph/pkg/extract
// [callgraph]: github.com/matzehuels/callgraph/pkg/callgraph
// [callgraph.Load]: github.com/matzehuels/callgraph/pkg/callgraph#Load
// [dot]: github.com/matzehuels/callgraph/pkg/dot
// [sink]: github.com/matzehuels/callgraph/pkg/sink
// [render]: github.com/matzehuels/callgraph/pkg/render
// [pipeline]: github.com/matzehuels/callgraph/pkg/pipeline
// [config]: github.com/matzehuels/callgraph/pkg/config
// [errors]: github.com/matzehuels/callgraph/pkg/errors
// [observability]: github.com/matzehuels/callgraph/pkg/observability
// [buildinfo]: github.com/matzehuels/callgraph/pkg/buildinfo
package pkg
