package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/callgraph/pkg/callgraph"
	"github.com/matzehuels/callgraph/pkg/errors"
	"github.com/matzehuels/callgraph/pkg/observability"
	"github.com/matzehuels/callgraph/pkg/render"
)

// fakeExecutor stands in for the system dot binary.
type fakeExecutor struct {
	status render.ExitStatus
	calls  []render.Command
}

func (f *fakeExecutor) Run(_ context.Context, cmd render.Command) (render.ExitStatus, error) {
	f.calls = append(f.calls, cmd)
	return f.status, nil
}

func scenarioRelations() *callgraph.Relations {
	rel := callgraph.NewRelations()
	rel.Add("A", "B", "C")
	rel.Add("B", "C")
	return rel
}

func bufferLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}), &buf
}

func TestExecuteWithoutOutput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	exec := &fakeExecutor{}
	runner := NewRunner(nil)
	result, err := runner.Execute(context.Background(), scenarioRelations(), Options{Executor: exec})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Graph.NodeCount() != 3 || result.Graph.EdgeCount() != 3 {
		t.Errorf("graph = %d nodes, %d edges, want 3/3", result.Graph.NodeCount(), result.Graph.EdgeCount())
	}
	for _, e := range [][2]string{{"A", "B"}, {"A", "C"}, {"B", "C"}} {
		if !result.Graph.HasEdge(e[0], e[1]) {
			t.Errorf("missing edge %s -> %s", e[0], e[1])
		}
	}
	if n := strings.Count(result.DOT, "[label="); n != 3 {
		t.Errorf("DOT has %d node statements, want 3", n)
	}
	if n := strings.Count(result.DOT, " -> "); n != 3 {
		t.Errorf("DOT has %d edge statements, want 3", n)
	}

	if result.Persisted {
		t.Error("Persisted = true without an output path")
	}
	for _, o := range result.Report.Outcomes() {
		if o.State != render.NotStarted {
			t.Errorf("%s: state = %v, want not_started", o.Name, o.State)
		}
	}
	if len(exec.calls) != 0 {
		t.Errorf("external renderer ran %d times", len(exec.calls))
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("files written without an output path: %v", entries)
	}
	if result.RunID == "" {
		t.Error("RunID is empty")
	}
}

func TestExecuteUnwritableOutput(t *testing.T) {
	logger, buf := bufferLogger()
	output := filepath.Join(t.TempDir(), "missing", "graph.dot")
	exec := &fakeExecutor{status: render.ExitStatus{Code: 2, Stderr: "Error: cannot open " + output}}

	runner := NewRunner(logger)
	result, err := runner.Execute(context.Background(), scenarioRelations(), Options{
		Output:   output,
		Executor: exec,
	})

	if result == nil {
		t.Fatal("Execute returned no result")
	}
	if result.Persisted {
		t.Error("Persisted = true for an unwritable path")
	}
	if !errors.Is(result.PersistErr, errors.ErrCodePersistFailed) {
		t.Errorf("PersistErr = %v, want PERSIST_FAILED", result.PersistErr)
	}
	if !strings.Contains(buf.String(), "write DOT failed") {
		t.Errorf("persist failure not logged:\n%s", buf.String())
	}

	// In-process is tolerant: it failed but does not fail the run.
	if result.Report.InProcess.State != render.Failed {
		t.Errorf("in-process state = %v, want failed", result.Report.InProcess.State)
	}
	if !errors.Is(result.Report.InProcess.Err, errors.ErrCodeFileNotFound) {
		t.Errorf("in-process err = %v, want FILE_NOT_FOUND", result.Report.InProcess.Err)
	}

	// External is fatal: its failure is the run's error.
	if result.Report.External.State != render.Failed {
		t.Errorf("external state = %v, want failed", result.Report.External.State)
	}
	if !errors.Is(err, errors.ErrCodeExternalRenderer) {
		t.Fatalf("err = %v, want EXTERNAL_RENDERER", err)
	}
	if len(exec.calls) != 1 {
		t.Errorf("external renderer ran %d times, want 1", len(exec.calls))
	}
	if _, err := os.Stat(filepath.Dir(output)); !os.IsNotExist(err) {
		t.Errorf("missing parent %s was created by the run: %v", filepath.Dir(output), err)
	}
}

func TestExecuteRendersBothPaths(t *testing.T) {
	output := filepath.Join(t.TempDir(), "graph.dot")
	exec := &fakeExecutor{}

	result, err := NewRunner(nil).Execute(context.Background(), scenarioRelations(), Options{
		Output:   output,
		Width:    80,
		Executor: exec,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("DOT not persisted: %v", err)
	}
	if string(data) != result.DOT {
		t.Error("persisted file differs from Result.DOT")
	}
	if !result.Persisted {
		t.Error("Persisted = false")
	}

	if result.Report.InProcess.State != render.Succeeded {
		t.Errorf("in-process: %v (%v)", result.Report.InProcess.State, result.Report.InProcess.Err)
	}
	if _, err := os.Stat(result.Report.InProcess.Output); err != nil {
		t.Errorf("in-process image missing: %v", err)
	}

	if len(exec.calls) != 1 {
		t.Fatalf("external renderer ran %d times, want 1", len(exec.calls))
	}
	want := []string{output, "-Tpng", "-o", result.Report.Paths.External}
	if got := exec.calls[0].Args; strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("external args = %v, want %v", got, want)
	}
}

func TestExecuteExternalToleranceConfigurable(t *testing.T) {
	output := filepath.Join(t.TempDir(), "graph.dot")
	exec := &fakeExecutor{status: render.ExitStatus{Code: 1, Stderr: "boom"}}

	result, err := NewRunner(nil).Execute(context.Background(), scenarioRelations(), Options{
		Output:           output,
		ExternalMode:     "tolerant",
		DisableInProcess: true,
		Executor:         exec,
	})
	if err != nil {
		t.Fatalf("tolerant external failure failed the run: %v", err)
	}
	if result.Report.External.State != render.Failed {
		t.Errorf("external state = %v", result.Report.External.State)
	}
	if result.Report.InProcess.State != render.NotStarted {
		t.Errorf("disabled in-process state = %v", result.Report.InProcess.State)
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	_, err := NewRunner(nil).Execute(context.Background(), scenarioRelations(), Options{Width: -5})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
}

func TestExecuteNilRelations(t *testing.T) {
	result, err := NewRunner(nil).Execute(context.Background(), nil, Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.DOT != "digraph G {\n}\n" {
		t.Errorf("DOT = %q", result.DOT)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	builds   int
	persists []string
	renders  []string
}

func (h *countingHooks) OnBuild(context.Context, int, int, time.Duration) { h.builds++ }

func (h *countingHooks) OnPersist(_ context.Context, path string, _ int, _ error) {
	h.persists = append(h.persists, path)
}

func (h *countingHooks) OnRenderComplete(_ context.Context, renderer, state string, _ time.Duration, _ error) {
	h.renders = append(h.renders, renderer+":"+state)
}

func TestExecuteHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	output := filepath.Join(t.TempDir(), "graph.dot")
	_, err := NewRunner(nil).Execute(context.Background(), scenarioRelations(), Options{
		Output:           output,
		DisableInProcess: true,
		Executor:         &fakeExecutor{},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if hooks.builds != 1 {
		t.Errorf("OnBuild fired %d times", hooks.builds)
	}
	if len(hooks.persists) != 1 || hooks.persists[0] != output {
		t.Errorf("OnPersist = %v", hooks.persists)
	}
	if strings.Join(hooks.renders, ",") != "dot:succeeded" {
		t.Errorf("OnRenderComplete = %v", hooks.renders)
	}
}
