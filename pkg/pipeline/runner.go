package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/callgraph/pkg/callgraph"
	"github.com/matzehuels/callgraph/pkg/dot"
	"github.com/matzehuels/callgraph/pkg/observability"
	"github.com/matzehuels/callgraph/pkg/sink"
)

// Runner executes pipeline runs.
//
// The Runner is stateless except for the logger - it doesn't store results.
// Multiple goroutines can safely use the same Runner with different options
// as long as they write to different output paths.
type Runner struct {
	Logger observability.Logger
}

// NewRunner creates a runner. If logger is nil, diagnostics are discarded.
func NewRunner(logger observability.Logger) *Runner {
	if logger == nil {
		logger = observability.Discard()
	}
	return &Runner{Logger: logger}
}

// Execute runs build → serialize → persist → render for rel.
//
// The returned Result is non-nil whenever the options are valid, even when
// err reports a fatal render failure, so callers can still inspect the DOT
// text and both render outcomes.
func (r *Runner) Execute(ctx context.Context, rel *callgraph.Relations, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Pipeline()
	result := &Result{RunID: uuid.NewString(), Output: opts.Output}
	logger := opts.Logger

	// Stage 1: Build
	buildStart := time.Now()
	g := callgraph.Build(rel)
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	hooks.OnBuild(ctx, g.NodeCount(), g.EdgeCount(), result.Stats.BuildTime)

	logger.Info("built call graph",
		"run", result.RunID,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.BuildTime)

	// Stage 2: Serialize
	result.DOT = dot.Serialize(g)

	if opts.Output == "" {
		logger.Debug("no output path, persist and render skipped", "run", result.RunID)
		return result, nil
	}

	// Stage 3: Persist. A failure is reported by the sink and does not stop
	// the render stage.
	persistStart := time.Now()
	result.PersistErr = sink.Persist(result.DOT, opts.Output, logger)
	result.Persisted = result.PersistErr == nil
	result.Stats.PersistTime = time.Since(persistStart)
	hooks.OnPersist(ctx, opts.Output, len(result.DOT), result.PersistErr)

	// Stage 4: Render
	renderStart := time.Now()
	report, err := opts.Renderer().Run(ctx, opts.Output)
	result.Report = report
	result.Stats.RenderTime = time.Since(renderStart)
	if err != nil {
		return result, fmt.Errorf("render: %w", err)
	}

	logger.Debug("pipeline finished",
		"run", result.RunID,
		"inprocess", report.InProcess.State,
		"external", report.External.State,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
