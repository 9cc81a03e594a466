// Package pipeline runs the call graph pipeline end to end.
//
// # Architecture
//
// One run goes through four stages, in order:
//
//  1. Build: turn caller/callee relations into a [callgraph.Graph]
//  2. Serialize: produce the DOT text
//  3. Persist: write the DOT text to the configured output path
//  4. Render: run the in-process and the external renderer on that file
//
// A persist failure is logged and the run continues. Render failures follow
// the per-path [render.Mode]: tolerant failures only show up in the report,
// fatal ones are returned from [Runner.Execute]. Without an output path the
// run stops after serialization and only the DOT text is produced.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, rel, pipeline.Options{
//	    Output: "out/graph.dot",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.DOT)
package pipeline

import (
	"time"

	"github.com/matzehuels/callgraph/pkg/callgraph"
	"github.com/matzehuels/callgraph/pkg/errors"
	"github.com/matzehuels/callgraph/pkg/observability"
	"github.com/matzehuels/callgraph/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and config
// =============================================================================

const (
	// DefaultWidth is the in-process image width in pixels.
	DefaultWidth = render.DefaultWidth

	// DefaultFormat is the external renderer output format.
	DefaultFormat = render.DefaultFormat

	// DefaultDotBinary is the external renderer executable.
	DefaultDotBinary = render.DefaultBinary

	// DefaultInProcessMode and DefaultExternalMode are the error-handling
	// modes of the two render paths.
	DefaultInProcessMode = "tolerant"
	DefaultExternalMode  = "fatal"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Output is the DOT file path. Empty disables persisting and rendering.
	Output string `json:"output,omitempty"`

	// In-process render options
	Width            int    `json:"width,omitempty"`
	InProcessMode    string `json:"inprocess_mode,omitempty"`
	DisableInProcess bool   `json:"disable_inprocess,omitempty"`

	// External render options
	DotBinary       string        `json:"dot_binary,omitempty"`
	Format          string        `json:"format,omitempty"`
	ExternalMode    string        `json:"external_mode,omitempty"`
	ExternalTimeout time.Duration `json:"external_timeout,omitempty"`
	DisableExternal bool          `json:"disable_external,omitempty"`

	// Runtime options (not serialized)
	Logger   observability.Logger `json:"-"`
	Executor render.Executor      `json:"-"` // nil uses render.ExecExecutor

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Graph is the built call graph.
	Graph *callgraph.Graph

	// DOT is the serialized graph.
	DOT string

	// Output is the configured DOT path; empty when none was set.
	Output string

	// Persisted reports whether DOT was written to Options.Output.
	Persisted bool

	// PersistErr is the sink failure, if any. It never fails the run.
	PersistErr error

	// Report holds the outcome of both render attempts.
	Report render.Report

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	BuildTime   time.Duration
	PersistTime time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	if o.Output != "" {
		if err := errors.ValidateOutputPath(o.Output); err != nil {
			return err
		}
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must not be negative, got %d", o.Width)
	}
	if o.ExternalTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "external timeout must not be negative, got %s", o.ExternalTimeout)
	}
	if err := errors.ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := errors.ValidateBinary(o.DotBinary); err != nil {
		return err
	}
	if _, err := parseMode(o.InProcessMode); err != nil {
		return err
	}
	if _, err := parseMode(o.ExternalMode); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.DotBinary == "" {
		o.DotBinary = DefaultDotBinary
	}
	if o.InProcessMode == "" {
		o.InProcessMode = DefaultInProcessMode
	}
	if o.ExternalMode == "" {
		o.ExternalMode = DefaultExternalMode
	}
	if o.Logger == nil {
		o.Logger = observability.Discard()
	}
}

// Renderer builds the dual renderer described by the options. Call it after
// ValidateAndSetDefaults.
func (o *Options) Renderer() *render.Renderer {
	inMode, _ := parseMode(o.InProcessMode)
	extMode, _ := parseMode(o.ExternalMode)

	r := &render.Renderer{
		InProcess: render.Attempt{Mode: inMode},
		External:  render.Attempt{Mode: extMode},
		Format:    o.Format,
		Logger:    o.Logger,
	}
	if !o.DisableInProcess {
		r.InProcess.Backend = &render.Graphviz{Width: o.Width, Style: render.DefaultStyle}
	}
	if !o.DisableExternal {
		executor := o.Executor
		if executor == nil {
			executor = render.ExecExecutor{}
		}
		r.External.Backend = &render.External{
			Binary:   o.DotBinary,
			Format:   o.Format,
			Timeout:  o.ExternalTimeout,
			Executor: executor,
		}
	}
	return r
}

func parseMode(s string) (render.Mode, error) {
	m, err := render.ParseMode(s)
	if err != nil {
		return m, errors.Wrap(errors.ErrCodeInvalidMode, err, "render mode %q", s)
	}
	return m, nil
}
