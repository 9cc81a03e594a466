// Package extract derives caller/callee relations from Go source trees.
//
// The [Extractor] walks a directory, parses every Go file with go/parser and
// records, for each function and method, the calls its body makes. Analysis is
// purely syntactic: there is no type checking, so interface calls and function
// values are not resolved and a call is named by how it is written.
//
// Identifiers:
//
//	pkg/render.Renderer.Run        method Run on Renderer in directory pkg/render
//	pkg/render.DerivePaths         function in pkg/render, or a same-package call
//	path/filepath.Join             call through an import
//	r.logger                       any other selector call
//
// Files in the walk root use the Go package name instead of a directory.
// Hidden and underscore directories, vendor, testdata and anything matched by
// the root .gitignore are skipped.
package extract
