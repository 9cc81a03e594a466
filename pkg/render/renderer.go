package render

import (
	"context"
	stderrors "errors"
	"os"
	"time"

	"github.com/matzehuels/callgraph/pkg/observability"
)

// Backend turns a DOT file on disk into an image.
type Backend interface {
	Name() string
	Render(ctx context.Context, input, output string) error
}

// Attempt is one render path: a backend and the mode its failures run under.
// A nil Backend disables the path; its outcome stays NotStarted.
type Attempt struct {
	Backend Backend
	Mode    Mode
}

// Renderer runs the in-process attempt and then the external attempt against
// the same persisted DOT file. The attempts are independent: a failure in one
// never prevents the other.
type Renderer struct {
	InProcess Attempt
	External  Attempt

	// Format names the external image extension; see [DerivePaths].
	Format string

	Logger observability.Logger
}

// New returns a renderer with both paths enabled: the embedded Graphviz in
// Tolerant mode and the system "dot" binary in Fatal mode.
func New(logger observability.Logger) *Renderer {
	return &Renderer{
		InProcess: Attempt{Backend: NewGraphviz(), Mode: Tolerant},
		External:  Attempt{Backend: NewExternal(), Mode: Fatal},
		Format:    DefaultFormat,
		Logger:    logger,
	}
}

// Run renders the DOT file at input with both attempts.
//
// An empty input means nothing was persisted: both attempts stay NotStarted
// and Run returns a zero-error report. When input does not exist, no image
// directory is created and the backends report the missing file. Tolerant failures are logged and
// recorded in the report only. Fatal failures are joined and returned after
// both attempts have finished.
func (r *Renderer) Run(ctx context.Context, input string) (Report, error) {
	logger := r.logger()
	report := Report{
		InProcess: Outcome{Mode: r.InProcess.Mode, Name: backendName(r.InProcess.Backend)},
		External:  Outcome{Mode: r.External.Mode, Name: backendName(r.External.Backend)},
	}
	if input == "" {
		logger.Debug("no DOT file, rendering skipped")
		return report, nil
	}

	format := r.Format
	if format == "" {
		format = DefaultFormat
	}

	paths, err := DerivePaths(input, format)
	if err == nil && exists(input) {
		err = paths.Prepare()
	}
	report.Paths = paths
	report.InProcess.Output = paths.InProcess
	report.External.Output = paths.External

	var fatal []error
	for _, step := range []struct {
		attempt Attempt
		out     *Outcome
	}{
		{r.InProcess, &report.InProcess},
		{r.External, &report.External},
	} {
		if step.attempt.Backend == nil {
			continue
		}
		if err != nil {
			// Paths could not be set up; the backend is never started.
			step.out.State = Failed
			step.out.Err = err
		} else {
			r.attempt(ctx, step.attempt.Backend, input, step.out)
		}
		if step.out.State != Failed {
			continue
		}
		if step.attempt.Mode == Fatal {
			logger.Error("render failed", "renderer", step.out.Name, "mode", step.attempt.Mode, "err", step.out.Err)
			fatal = append(fatal, step.out.Err)
		} else {
			logger.Warn("render failed", "renderer", step.out.Name, "mode", step.attempt.Mode, "err", step.out.Err)
		}
	}
	return report, stderrors.Join(fatal...)
}

func (r *Renderer) attempt(ctx context.Context, b Backend, input string, out *Outcome) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, out.Name, input)
	out.State = Running
	r.logger().Debug("render started", "renderer", out.Name, "output", out.Output)

	start := time.Now()
	err := b.Render(ctx, input, out.Output)
	out.Duration = time.Since(start)

	if err != nil {
		out.State = Failed
		out.Err = err
	} else {
		out.State = Succeeded
		r.logger().Info("image saved", "renderer", out.Name, "path", out.Output, "took", out.Duration.Round(time.Millisecond))
	}
	hooks.OnRenderComplete(ctx, out.Name, out.State.String(), out.Duration, err)
}

func (r *Renderer) logger() observability.Logger {
	if r.Logger == nil {
		return observability.Discard()
	}
	return r.Logger
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func backendName(b Backend) string {
	if b == nil {
		return ""
	}
	return b.Name()
}
