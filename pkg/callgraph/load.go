package callgraph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/callgraph/pkg/errors"
)

// ReadJSON decodes a relations document from r.
//
// The input must be a JSON object mapping each caller to an array of callees:
//
//	{
//	  "app.Main": ["app.Load", "app.Render"],
//	  "app.Load": ["os.ReadFile"]
//	}
//
// Key order is preserved. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Relations, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	rel := NewRelations()
	if err := json.Unmarshal(data, rel); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse JSON relations")
	}
	return rel, nil
}

// ReadTOML decodes a relations document written as TOML key/array pairs:
//
//	"app.Main" = ["app.Load", "app.Render"]
//	"app.Load" = ["os.ReadFile"]
//
// Callers are ordered as they appear in the document. Dotted keys must be
// quoted, otherwise TOML reads them as nested tables.
func ReadTOML(r io.Reader) (*Relations, error) {
	var raw map[string][]string
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse TOML relations")
	}
	rel := NewRelations()
	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		rel.Add(key[0], raw[key[0]]...)
	}
	return rel, nil
}

// Load reads a relations file, choosing the decoder by file extension
// (.json or .toml).
func Load(path string) (*Relations, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "relations file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ReadJSON(f)
	case ".toml":
		return ReadTOML(f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported relations format %q (want .json or .toml)", ext)
	}
}
