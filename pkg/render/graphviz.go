package render

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/disintegration/imaging"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/callgraph/pkg/errors"
)

// DefaultWidth is the pixel width of the in-process image.
const DefaultWidth = 16686

// Graphviz renders in process: it reads the DOT file back, parses it with
// the embedded Graphviz, applies Style, lays the graph out with the dot
// engine and writes a PNG scaled to Width.
type Graphviz struct {
	// Width is the output width in pixels; the height keeps the aspect
	// ratio. Zero keeps Graphviz's native size.
	Width int
	Style Style
}

// NewGraphviz returns an in-process renderer with DefaultWidth and
// DefaultStyle.
func NewGraphviz() *Graphviz {
	return &Graphviz{Width: DefaultWidth, Style: DefaultStyle}
}

// Name implements Backend.
func (*Graphviz) Name() string { return "graphviz" }

// Render implements Backend. A missing input file is reported as
// FILE_NOT_FOUND; any other failure as RENDER_FAILED.
func (r *Graphviz) Render(ctx context.Context, input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "DOT file %s", input)
		}
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "read %s", input)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "parse %s", input)
	}
	if g == nil {
		return errors.New(errors.ErrCodeRenderFailed, "parse %s: no graph", input)
	}
	defer g.Close()

	if err := r.Style.Apply(g); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "style %s", input)
	}

	gv.SetLayout(graphviz.DOT)
	img, err := gv.RenderImage(ctx, g)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", input)
	}

	if r.Width > 0 && img.Bounds().Dx() != r.Width {
		img = imaging.Resize(img, r.Width, 0, imaging.Lanczos)
	}

	if err := imaging.Save(img, output); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", output)
	}
	return nil
}
