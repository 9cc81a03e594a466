package render

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/callgraph/pkg/errors"
)

const (
	// DefaultBinary is the system Graphviz executable.
	DefaultBinary = "dot"

	// DefaultFormat is the raster format requested from the external renderer.
	DefaultFormat = "png"
)

// External renders by shelling out to a Graphviz binary:
//
//	dot <input> -T<format> -o <output>
//
// The call blocks until the process exits. Timeout bounds it; zero means no
// timeout, so a hung binary hangs the run unless ctx is cancelled.
type External struct {
	Binary   string
	Format   string
	Timeout  time.Duration
	Executor Executor
}

// NewExternal returns an external renderer running DefaultBinary through
// ExecExecutor.
func NewExternal() *External {
	return &External{
		Binary:   DefaultBinary,
		Format:   DefaultFormat,
		Executor: ExecExecutor{},
	}
}

// Name implements Backend.
func (r *External) Name() string { return r.binary() }

// Command returns the invocation for rendering input to output.
func (r *External) Command(input, output string) Command {
	return Command{
		Name: r.binary(),
		Args: []string{input, "-T" + r.format(), "-o", output},
	}
}

// Render implements Backend. A binary that cannot be run, a timeout and a
// non-zero exit are all reported as EXTERNAL_RENDERER errors.
func (r *External) Render(ctx context.Context, input, output string) error {
	if err := errors.ValidateBinary(r.binary()); err != nil {
		return err
	}
	if err := errors.ValidateFormat(r.format()); err != nil {
		return err
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	executor := r.Executor
	if executor == nil {
		executor = ExecExecutor{}
	}

	cmd := r.Command(input, output)
	status, err := executor.Run(ctx, cmd)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExternalRenderer, err, "run %s", cmd)
	}
	if status.Code != 0 {
		msg := strings.TrimSpace(status.Stderr)
		if msg == "" {
			msg = "no output"
		}
		return errors.New(errors.ErrCodeExternalRenderer, "%s exited with status %d: %s", cmd.Name, status.Code, msg)
	}
	return nil
}

func (r *External) binary() string {
	if r.Binary == "" {
		return DefaultBinary
	}
	return r.Binary
}

func (r *External) format() string {
	if r.Format == "" {
		return DefaultFormat
	}
	return r.Format
}
