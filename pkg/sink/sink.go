// Package sink persists serialized DOT text to the configured output file.
//
// Persistence is optional: an empty target means no file is wanted, and
// [Persist] does nothing. A write failure is logged through the injected
// diagnostics sink and returned as the caller's success signal, but it is not
// meant to stop the pipeline; the render stage will report the missing file on
// its own.
package sink

import (
	"os"

	"github.com/matzehuels/callgraph/pkg/errors"
	"github.com/matzehuels/callgraph/pkg/observability"
)

// FileMode is the permission used for the written DOT file.
const FileMode os.FileMode = 0o644

// Persist writes text as UTF-8 to target, replacing any existing file.
//
// An empty target is a no-op and returns nil. A failed write (missing parent
// directory, permission, full disk) is logged at error level and returned as
// a PERSIST_FAILED error. Parent directories are not created.
func Persist(text, target string, logger observability.Logger) error {
	if target == "" {
		logger.Debug("no output path configured, skipping DOT export")
		return nil
	}

	if err := os.WriteFile(target, []byte(text), FileMode); err != nil {
		werr := errors.Wrap(errors.ErrCodePersistFailed, err, "write DOT to %s", target)
		logger.Error("write DOT failed", "path", target, "err", err)
		return werr
	}

	logger.Info("DOT saved", "path", target, "bytes", len(text))
	return nil
}
