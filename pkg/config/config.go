// Package config loads callgraph settings.
//
// Settings are layered, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. An optional TOML file
//  3. Variables from a .env file
//  4. Process environment variables
//
// Command-line flags are applied on top by the CLI.
//
// Example file:
//
//	output = "out/graph.dot"
//
//	[render]
//	width = 4096
//	dot_binary = "/usr/local/bin/dot"
//	external_mode = "tolerant"
//	external_timeout = "30s"
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/callgraph/pkg/errors"
	"github.com/matzehuels/callgraph/pkg/observability"
	"github.com/matzehuels/callgraph/pkg/pipeline"
)

// Environment variables read by [Load].
const (
	EnvOutput          = "CALLGRAPH_OUTPUT"
	EnvWidth           = "CALLGRAPH_WIDTH"
	EnvFormat          = "CALLGRAPH_FORMAT"
	EnvDotBinary       = "CALLGRAPH_DOT_BINARY"
	EnvInProcessMode   = "CALLGRAPH_INPROCESS_MODE"
	EnvExternalMode    = "CALLGRAPH_EXTERNAL_MODE"
	EnvExternalTimeout = "CALLGRAPH_EXTERNAL_TIMEOUT"
)

// DefaultEnvFile is read when Load is given no env files. It may be absent.
const DefaultEnvFile = ".env"

// Config is the full set of user settings.
type Config struct {
	// Output is the DOT file path. Empty disables persisting and rendering.
	Output string       `toml:"output"`
	Render RenderConfig `toml:"render"`
}

// RenderConfig holds the settings of both render paths.
type RenderConfig struct {
	Width            int           `toml:"width"`
	Format           string        `toml:"format"`
	DotBinary        string        `toml:"dot_binary"`
	InProcessMode    string        `toml:"inprocess_mode"`
	ExternalMode     string        `toml:"external_mode"`
	ExternalTimeout  time.Duration `toml:"external_timeout"`
	DisableInProcess bool          `toml:"disable_inprocess"`
	DisableExternal  bool          `toml:"disable_external"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:         pipeline.DefaultWidth,
			Format:        pipeline.DefaultFormat,
			DotBinary:     pipeline.DefaultDotBinary,
			InProcessMode: pipeline.DefaultInProcessMode,
			ExternalMode:  pipeline.DefaultExternalMode,
		},
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty), the env files and the process environment.
//
// With no envFiles, DefaultEnvFile is read if it exists. Explicitly named env
// files must exist. Process environment variables win over env file entries,
// matching godotenv.Load.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.MergeFile(path); err != nil {
			return nil, err
		}
	}

	dotenv, err := readEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeFile decodes the TOML file at path over c. Keys the file sets replace
// the current values; unknown keys are rejected.
func (c *Config) MergeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overrides c with the environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	str(EnvOutput, &c.Output)
	str(EnvFormat, &c.Render.Format)
	str(EnvDotBinary, &c.Render.DotBinary)
	str(EnvInProcessMode, &c.Render.InProcessMode)
	str(EnvExternalMode, &c.Render.ExternalMode)

	if v, ok := lookup(EnvWidth); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", EnvWidth)
		}
		c.Render.Width = n
	}
	if v, ok := lookup(EnvExternalTimeout); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", EnvExternalTimeout)
		}
		c.Render.ExternalTimeout = d
	}
	return nil
}

// Options converts c to pipeline options.
func (c *Config) Options(logger observability.Logger) pipeline.Options {
	return pipeline.Options{
		Output:           c.Output,
		Width:            c.Render.Width,
		InProcessMode:    c.Render.InProcessMode,
		DisableInProcess: c.Render.DisableInProcess,
		DotBinary:        c.Render.DotBinary,
		Format:           c.Render.Format,
		ExternalMode:     c.Render.ExternalMode,
		ExternalTimeout:  c.Render.ExternalTimeout,
		DisableExternal:  c.Render.DisableExternal,
		Logger:           logger,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	opts := c.Options(nil)
	return opts.ValidateAndSetDefaults()
}

func readEnvFiles(files []string) (map[string]string, error) {
	if len(files) == 0 {
		env, err := godotenv.Read(DefaultEnvFile)
		if stderrors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", DefaultEnvFile)
		}
		return env, nil
	}
	env, err := godotenv.Read(files...)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "env file")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read env files")
	}
	return env, nil
}
