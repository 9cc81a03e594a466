// Package render turns a persisted DOT file into images.
//
// Two independent render paths run against the same file, in order:
//
//   - [Graphviz] parses the file with the embedded Graphviz library, applies
//     a cosmetic [Style], lays it out and writes a PNG scaled to a fixed width.
//   - [External] runs the system "dot" binary as a subprocess.
//
// Each path runs under its own [Mode]. A Tolerant failure is logged and the
// run continues; a Fatal failure is returned from [Renderer.Run] once both
// paths have finished. By default the in-process path is Tolerant and the
// external path is Fatal.
//
// Output locations are derived from the DOT path by [DerivePaths]:
//
//	out/graph.dot → out/graph/example/ex1.png (in-process)
//	              → out/graph/example/ex2.png (external)
//
// Basic usage:
//
//	r := render.New(logger)
//	report, err := r.Run(ctx, "out/graph.dot")
//	for _, o := range report.Outcomes() {
//	    fmt.Println(o.Name, o.State, o.Output)
//	}
package render
