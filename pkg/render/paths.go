package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/callgraph/pkg/errors"
)

const (
	// ImageDir is the folder, under the DOT file's base path, that holds the
	// rendered images.
	ImageDir = "example"

	// InProcessName and ExternalName are the image base names written by the
	// in-process and the external renderer.
	InProcessName = "ex1"
	ExternalName  = "ex2"

	// noExtSuffix is appended to DOT paths without an extension, so the image
	// directory does not collide with the DOT file itself.
	noExtSuffix = ".out"
)

// Paths are the files derived from one DOT file.
type Paths struct {
	Input     string // DOT file
	Dir       string // Directory holding both images
	InProcess string // Image written by the in-process renderer (PNG)
	External  string // Image written by the external renderer
}

// DerivePaths computes the image paths for the DOT file at input.
//
// For "out/graph.dot" and format "png" the result is:
//
//	Dir:       out/graph/example
//	InProcess: out/graph/example/ex1.png
//	External:  out/graph/example/ex2.png
//
// The extension is stripped before adding the image directory; a path without
// one gets ".out" appended instead. The external image extension follows the
// renderer format, ignoring any ":renderer" qualifier ("png:cairo" → ".png").
func DerivePaths(input, format string) (Paths, error) {
	if err := errors.ValidateOutputPath(input); err != nil {
		return Paths{}, err
	}
	if err := errors.ValidateFormat(format); err != nil {
		return Paths{}, err
	}

	base := strings.TrimSuffix(input, filepath.Ext(input))
	if base == input || base == "" || strings.HasSuffix(base, string(filepath.Separator)) {
		base = input + noExtSuffix
	}

	ext, _, _ := strings.Cut(format, ":")
	dir := filepath.Join(base, ImageDir)
	p := Paths{
		Input:     input,
		Dir:       dir,
		InProcess: filepath.Join(dir, InProcessName+".png"),
		External:  filepath.Join(dir, ExternalName+"."+ext),
	}
	if err := p.validate(); err != nil {
		return Paths{}, err
	}
	return p, nil
}

func (p Paths) validate() error {
	clean := filepath.Clean(p.Input)
	for _, out := range []string{p.InProcess, p.External} {
		if filepath.Clean(out) == clean {
			return errors.New(errors.ErrCodeInvalidPath, "image path %s collides with input", out)
		}
	}
	if p.InProcess == p.External {
		return errors.New(errors.ErrCodeInvalidPath, "render paths collide: %s", p.InProcess)
	}
	return nil
}

// Prepare creates the image directory.
func (p Paths) Prepare() error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("create image directory %s: %w", p.Dir, err)
	}
	return nil
}
