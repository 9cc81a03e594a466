// Package observability provides the diagnostics sink and pipeline hooks.
//
// # Diagnostics
//
// Components never reach for a global logger. They receive a [Logger], the
// narrow interface satisfied by *github.com/charmbracelet/log.Logger, so tests
// can pass a logger that writes to a buffer or to [io.Discard]:
//
//	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
//	runner := pipeline.NewRunner(logger)
//
// # Hooks
//
// Hooks receive events about pipeline execution without adding a dependency
// on a metrics backend. Register them once at startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// The pipeline emits events as it goes:
//
//	observability.Pipeline().OnBuild(ctx, nodes, edges, duration)
//	observability.Pipeline().OnRenderComplete(ctx, "graphviz", state, duration, err)
package observability

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Diagnostics
// =============================================================================

// Logger is the diagnostics sink used by every pipeline component.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Info(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
	Error(msg any, keyvals ...any)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the call graph pipeline.
type PipelineHooks interface {
	// OnBuild fires after the graph is built from the relations.
	OnBuild(ctx context.Context, nodes, edges int, duration time.Duration)

	// OnPersist fires after the DOT text was written (err == nil) or failed.
	// It does not fire when no output path is configured.
	OnPersist(ctx context.Context, path string, bytes int, err error)

	// OnRenderStart and OnRenderComplete bracket one render attempt.
	OnRenderStart(ctx context.Context, renderer, input string)
	OnRenderComplete(ctx context.Context, renderer, state string, duration time.Duration, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuild(context.Context, int, int, time.Duration) {}
func (NoopPipelineHooks) OnPersist(context.Context, string, int, error)    {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, string)    {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, string, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
