package render

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"
)

// Command is a subprocess invocation.
type Command struct {
	Name string   // Executable name or path, resolved through PATH
	Args []string // Arguments, passed without a shell
	Dir  string   // Working directory; empty means the current one
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// ExitStatus is the captured result of a finished subprocess.
type ExitStatus struct {
	Code   int    // Exit code; -1 when the process was killed by a signal
	Stderr string // Captured standard error
}

// Executor runs subprocesses. Implementations block until the process exits
// or ctx is done.
//
// A returned error means the process could not be run to completion (binary
// missing, start failure, cancellation). A process that ran and exited
// non-zero is reported through ExitStatus with a nil error.
type Executor interface {
	Run(ctx context.Context, cmd Command) (ExitStatus, error)
}

// ExecExecutor runs commands with os/exec.
type ExecExecutor struct{}

// Run implements Executor.
func (ExecExecutor) Run(ctx context.Context, c Command) (ExitStatus, error) {
	path, err := exec.LookPath(c.Name)
	if err != nil {
		return ExitStatus{Code: -1}, fmt.Errorf("%s not found in PATH: %w", c.Name, err)
	}

	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = c.Dir
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf

	err = cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ExitStatus{Code: -1, Stderr: errBuf.String()}, fmt.Errorf("%s: %w", c.Name, ctxErr)
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return ExitStatus{Code: exitErr.ExitCode(), Stderr: errBuf.String()}, nil
	}
	if err != nil {
		return ExitStatus{Code: -1, Stderr: errBuf.String()}, fmt.Errorf("%s: %w", c.Name, err)
	}
	return ExitStatus{Code: 0, Stderr: errBuf.String()}, nil
}
