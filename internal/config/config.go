// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config implements the configuration file of unitgen.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file.
const FileName = "unitgen.yaml"

// Config is the unitgen configuration.
type Config struct {

	// Output is the root directory of the generated code.
	Output string `yaml:"output"`

	// Inputs is the directory of the catalog documents. If empty, the
	// embedded catalog is used.
	Inputs string `yaml:"inputs"`

	// Templates is the directory of the templates. If empty, the embedded
	// templates are used.
	Templates string `yaml:"templates"`

	// Dimensionless is the name of the dimensionless kind.
	Dimensionless string `yaml:"dimensionless"`

	// Format reports whether the generated files are formatted.
	Format bool `yaml:"format"`

	// Workers is the number of documents generated concurrently.
	Workers int `yaml:"workers"`

	// Only restricts the generation to the output paths matching at least
	// one of these patterns.
	Only []string `yaml:"only"`

	// Module, if not empty, is the module path of the generated code. A
	// go.mod file is written in the output root.
	Module string `yaml:"module"`

	// Runtime is the module of the unit runtime required by the generated
	// code.
	Runtime Runtime `yaml:"runtime"`

	// Dir is the directory of the configuration file, if any. Relative
	// paths are resolved against it.
	Dir string `yaml:"-"`
}

// Runtime is the module of the unit runtime.
type Runtime struct {
	Path    string `yaml:"path"`
	Version string `yaml:"version"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output:        "generated-code",
		Dimensionless: "Dimensionless",
		Format:        true,
		Workers:       1,
		Runtime: Runtime{
			Path:    "github.com/open2b/units",
			Version: "v0.1.0",
		},
	}
}

// Error is returned by Validate for an invalid field.
type Error struct {
	Field  string
	Reason string
}

func (err *Error) Error() string {
	return "config: " + err.Field + ": " + err.Reason
}

// Load reads the configuration file at path. Fields not present in the
// file keep their default values; unknown fields are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	c.Dir = filepath.Dir(path)
	return c, nil
}

// Find looks for the configuration file in dir and its parents. It returns
// the path of the file, or the empty string if there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	for {
		name := filepath.Join(dir, FileName)
		_, err := os.Stat(name)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config: %w", err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Resolve returns path resolved against the directory of the
// configuration file. Empty and absolute paths are returned unchanged.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.Dir == "" {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// Validate validates the configuration. It returns an *Error for the first
// invalid field.
func (c *Config) Validate() error {
	if c.Output == "" {
		return &Error{Field: "output", Reason: "cannot be empty"}
	}
	if c.Dimensionless == "" {
		return &Error{Field: "dimensionless", Reason: "cannot be empty"}
	}
	if c.Workers < 0 {
		return &Error{Field: "workers", Reason: fmt.Sprintf("invalid number of workers %d", c.Workers)}
	}
	for _, pattern := range c.Only {
		if !doublestar.ValidatePattern(pattern) {
			return &Error{Field: "only", Reason: fmt.Sprintf("invalid pattern %q", pattern)}
		}
	}
	if c.Module != "" {
		if err := module.CheckPath(c.Module); err != nil {
			return &Error{Field: "module", Reason: err.Error()}
		}
	}
	if err := module.CheckPath(c.Runtime.Path); err != nil {
		return &Error{Field: "runtime.path", Reason: err.Error()}
	}
	if !semver.IsValid(c.Runtime.Version) {
		return &Error{Field: "runtime.version", Reason: fmt.Sprintf("invalid semantic version %q", c.Runtime.Version)}
	}
	return nil
}

// RuntimeVersion returns the unit runtime as a module version.
func (c *Config) RuntimeVersion() module.Version {
	return module.Version{Path: c.Runtime.Path, Version: semver.Canonical(c.Runtime.Version)}
}
