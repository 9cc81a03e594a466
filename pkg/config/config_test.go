package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/callgraph/pkg/errors"
	"github.com/matzehuels/callgraph/pkg/pipeline"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Output != "" {
		t.Errorf("Output = %q, want empty", cfg.Output)
	}
	if cfg.Render.Width != pipeline.DefaultWidth {
		t.Errorf("Width = %d", cfg.Render.Width)
	}
	if cfg.Render.InProcessMode != "tolerant" || cfg.Render.ExternalMode != "fatal" {
		t.Errorf("modes = %q/%q", cfg.Render.InProcessMode, cfg.Render.ExternalMode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestMergeFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "callgraph.toml", `
output = "out/graph.dot"

[render]
width = 2048
dot_binary = "/usr/local/bin/dot"
external_mode = "tolerant"
external_timeout = "30s"
disable_inprocess = true
`)
	cfg := Default()
	if err := cfg.MergeFile(path); err != nil {
		t.Fatalf("MergeFile: %v", err)
	}

	if cfg.Output != "out/graph.dot" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.Render.Width != 2048 {
		t.Errorf("Width = %d", cfg.Render.Width)
	}
	if cfg.Render.DotBinary != "/usr/local/bin/dot" {
		t.Errorf("DotBinary = %q", cfg.Render.DotBinary)
	}
	if cfg.Render.ExternalMode != "tolerant" {
		t.Errorf("ExternalMode = %q", cfg.Render.ExternalMode)
	}
	if cfg.Render.ExternalTimeout != 30*time.Second {
		t.Errorf("ExternalTimeout = %s", cfg.Render.ExternalTimeout)
	}
	if !cfg.Render.DisableInProcess {
		t.Error("DisableInProcess = false")
	}
	// Keys the file does not set keep their defaults.
	if cfg.Render.Format != pipeline.DefaultFormat || cfg.Render.InProcessMode != "tolerant" {
		t.Errorf("defaults lost: %+v", cfg.Render)
	}
}

func TestMergeFileErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join(dir, "nope.toml"), errors.ErrCodeFileNotFound},
		{"syntax", writeFile(t, dir, "bad.toml", "output = "), errors.ErrCodeInvalidInput},
		{"unknown key", writeFile(t, dir, "unknown.toml", "colour = \"red\"\n"), errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Default().MergeFile(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvOutput:          " graph.dot ",
		EnvWidth:           "1024",
		EnvDotBinary:       "dot2",
		EnvExternalMode:    "tolerant",
		EnvInProcessMode:   "fatal",
		EnvExternalTimeout: "5s",
	}
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Output != "graph.dot" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.Render.Width != 1024 {
		t.Errorf("Width = %d", cfg.Render.Width)
	}
	if cfg.Render.DotBinary != "dot2" {
		t.Errorf("DotBinary = %q", cfg.Render.DotBinary)
	}
	if cfg.Render.ExternalMode != "tolerant" || cfg.Render.InProcessMode != "fatal" {
		t.Errorf("modes = %q/%q", cfg.Render.InProcessMode, cfg.Render.ExternalMode)
	}
	if cfg.Render.ExternalTimeout != 5*time.Second {
		t.Errorf("ExternalTimeout = %s", cfg.Render.ExternalTimeout)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	for _, key := range []string{EnvWidth, EnvExternalTimeout} {
		err := Default().ApplyEnv(func(k string) (string, bool) {
			if k == key {
				return "lots", true
			}
			return "", false
		})
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("%s: err = %v, want INVALID_INPUT", key, err)
		}
	}
}

func TestApplyEnvNothingSet(t *testing.T) {
	cfg := Default()
	if err := cfg.ApplyEnv(noEnv); err != nil {
		t.Fatal(err)
	}
	if *cfg != *Default() {
		t.Errorf("ApplyEnv with no variables changed the config: %+v", cfg)
	}
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "callgraph.toml", `
output = "from-file.dot"

[render]
width = 100
dot_binary = "file-dot"
`)
	envPath := writeFile(t, dir, "test.env", "CALLGRAPH_WIDTH=200\nCALLGRAPH_DOT_BINARY=envfile-dot\n")
	t.Setenv(EnvDotBinary, "process-dot")

	cfg, err := Load(cfgPath, envPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output != "from-file.dot" {
		t.Errorf("Output = %q, want file value", cfg.Output)
	}
	if cfg.Render.Width != 200 {
		t.Errorf("Width = %d, want env file value 200", cfg.Render.Width)
	}
	if cfg.Render.DotBinary != "process-dot" {
		t.Errorf("DotBinary = %q, want process env value", cfg.Render.DotBinary)
	}
}

func TestLoadWithoutEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Width != pipeline.DefaultWidth {
		t.Errorf("Width = %d", cfg.Render.Width)
	}
}

func TestLoadDefaultEnvFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultEnvFile, "CALLGRAPH_OUTPUT=dotenv.dot\n")
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output != "dotenv.dot" {
		t.Errorf("Output = %q", cfg.Output)
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Output = "g.dot"
	cfg.Render.ExternalTimeout = time.Minute
	cfg.Render.DisableExternal = true

	opts := cfg.Options(nil)
	if opts.Output != "g.dot" || opts.ExternalTimeout != time.Minute || !opts.DisableExternal {
		t.Errorf("Options() = %+v", opts)
	}
	if opts.ExternalMode != "fatal" || opts.Width != pipeline.DefaultWidth {
		t.Errorf("Options() defaults = %+v", opts)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Render.ExternalMode = "sometimes"
	if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("err = %v, want INVALID_MODE", err)
	}
}
