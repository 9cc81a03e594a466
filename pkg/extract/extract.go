package extract

import (
	"context"
	stderrors "errors"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/matzehuels/callgraph/pkg/callgraph"
	"github.com/matzehuels/callgraph/pkg/errors"
	"github.com/matzehuels/callgraph/pkg/observability"
)

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	"vendor":   true,
	"testdata": true,
}

// Extractor walks a Go source tree and collects call relations.
type Extractor struct {
	// Root is the directory to walk.
	Root string

	// IncludeTests also parses _test.go files.
	IncludeTests bool

	// Ignore, when set, replaces the root .gitignore.
	Ignore *ignore.GitIgnore

	Logger observability.Logger
}

// New returns an extractor for root that skips test files.
func New(root string, logger observability.Logger) *Extractor {
	return &Extractor{Root: root, Logger: logger}
}

// Extract walks Root and returns the relations in lexical file order, then
// declaration order. Every declared function appears as a caller, even when
// it calls nothing. A file that fails to parse aborts the walk with an
// INVALID_INPUT error.
func (e *Extractor) Extract(ctx context.Context) (*callgraph.Relations, error) {
	logger := e.Logger
	if logger == nil {
		logger = observability.Discard()
	}

	info, err := os.Stat(e.Root)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "source directory %s", e.Root)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "source directory %s", e.Root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is not a directory", e.Root)
	}

	gi, err := e.gitignore()
	if err != nil {
		return nil, err
	}

	files, err := e.collect(ctx, gi)
	if err != nil {
		return nil, err
	}

	rel := callgraph.NewRelations()
	fset := token.NewFileSet()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.extractFile(fset, file, rel); err != nil {
			return nil, err
		}
	}

	logger.Info("extracted call relations", "root", e.Root, "files", len(files), "callers", rel.Len(), "calls", rel.Pairs())
	return rel, nil
}

func (e *Extractor) gitignore() (*ignore.GitIgnore, error) {
	if e.Ignore != nil {
		return e.Ignore, nil
	}
	gi, err := ignore.CompileIgnoreFile(filepath.Join(e.Root, ".gitignore"))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read .gitignore")
	}
	return gi, nil
}

// collect lists the Go files to parse, relative to Root, slash-separated.
func (e *Extractor) collect(ctx context.Context, gi *ignore.GitIgnore) ([]string, error) {
	var files []string
	err := filepath.WalkDir(e.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(e.Root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if skipDirs[name] || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
				return filepath.SkipDir
			}
			if gi != nil && (gi.MatchesPath(rel) || gi.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(name, ".go") || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			return nil
		}
		if !e.IncludeTests && strings.HasSuffix(name, "_test.go") {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (e *Extractor) extractFile(fset *token.FileSet, rel string, out *callgraph.Relations) error {
	full := filepath.Join(e.Root, filepath.FromSlash(rel))
	f, err := parser.ParseFile(fset, full, nil, parser.SkipObjectResolution)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", rel)
	}

	v := &fileVisitor{
		pkg:     packageID(path.Dir(rel), f.Name.Name),
		imports: importNames(f),
	}
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		caller := v.funcID(fn)
		out.Add(caller, v.calls(fn)...)
	}
	return nil
}

// packageID names a package by its slash directory relative to the walk
// root, or by its package name for the root itself.
func packageID(dir, name string) string {
	if dir == "." || dir == "" {
		return name
	}
	return dir
}

type fileVisitor struct {
	pkg     string
	imports map[string]string // local name → import path
}

func (v *fileVisitor) funcID(fn *ast.FuncDecl) string {
	if fn.Recv != nil && len(fn.Recv.List) > 0 {
		if recv := receiverName(fn.Recv.List[0].Type); recv != "" {
			return v.pkg + "." + recv + "." + fn.Name.Name
		}
	}
	return v.pkg + "." + fn.Name.Name
}

// calls returns the distinct callees of fn in first-call order.
func (v *fileVisitor) calls(fn *ast.FuncDecl) []string {
	if fn.Body == nil {
		return nil
	}
	seen := make(map[string]bool)
	var callees []string
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		if callee := v.callee(call); callee != "" && !seen[callee] {
			seen[callee] = true
			callees = append(callees, callee)
		}
		return true
	})
	return callees
}

func (v *fileVisitor) callee(call *ast.CallExpr) string {
	fun := call.Fun
	// Explicit instantiation: Map[int](xs) or Pair[K, V](a, b).
	switch x := fun.(type) {
	case *ast.IndexExpr:
		fun = x.X
	case *ast.IndexListExpr:
		fun = x.X
	}

	switch x := fun.(type) {
	case *ast.Ident:
		if isBuiltin(x.Name) {
			return ""
		}
		return v.pkg + "." + x.Name
	case *ast.SelectorExpr:
		id, ok := x.X.(*ast.Ident)
		if !ok {
			return ""
		}
		if importPath, ok := v.imports[id.Name]; ok {
			return importPath + "." + x.Sel.Name
		}
		return id.Name + "." + x.Sel.Name
	}
	return ""
}

// receiverName strips pointers and type parameters: *List[T] → List.
func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.ParenExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	}
	return ""
}

// importNames maps each usable local import name to its path. Blank and dot
// imports are left out.
func importNames(f *ast.File) map[string]string {
	names := make(map[string]string, len(f.Imports))
	for _, spec := range f.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := defaultImportName(p)
		if spec.Name != nil {
			name = spec.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		names[name] = p
	}
	return names
}

// defaultImportName guesses the package name of an import path the way the
// go tool's naming conventions usually work out: the last element, skipping
// a major version suffix, without a "go-" prefix or a ".ext" suffix.
func defaultImportName(importPath string) string {
	parts := strings.Split(importPath, "/")
	name := parts[len(parts)-1]
	if len(parts) > 1 && isMajorVersion(name) {
		name = parts[len(parts)-2]
	}
	name = strings.TrimPrefix(name, "go-")
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return strings.ReplaceAll(name, "-", "")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(s[1:])
	return err == nil
}

var builtins = map[string]bool{
	// functions
	"append": true, "cap": true, "clear": true, "close": true, "complex": true,
	"copy": true, "delete": true, "imag": true, "len": true, "max": true, "min": true,
	"make": true, "new": true, "panic": true, "print": true, "println": true,
	"real": true, "recover": true,
	// types, called as conversions
	"bool": true, "byte": true, "complex64": true, "complex128": true,
	"error": true, "float32": true, "float64": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"rune": true, "string": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"any": true,
}

func isBuiltin(name string) bool { return builtins[name] }
