// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/tools/imports"

	"github.com/open2b/unitgen/internal/engine"
)

const (
	dirPerm  = 0775 // default new directory permission.
	filePerm = 0644 // default new file permission.
)

// goVersion is the Go version declared in the emitted go.mod files.
const goVersion = "1.22"

// Writer writes generated units under a root directory.
type Writer struct {
	Root   string      // output root.
	Format bool        // format the generated sources.
	Logger *zap.Logger // receives a progress line per file; nil for none.
}

func (w *Writer) logger() *zap.Logger {
	if w.Logger == nil {
		return zap.NewNop()
	}
	return w.Logger
}

// Prepare creates the output root.
func (w *Writer) Prepare() error {
	err := os.MkdirAll(w.Root, dirPerm)
	if err != nil {
		return fmt.Errorf("generator: cannot create the output root: %w", err)
	}
	return nil
}

// Write writes u. If the source cannot be formatted, it is written as is
// and a warning is logged.
func (w *Writer) Write(u engine.GeneratedUnit) error {
	name := filepath.Join(w.Root, filepath.FromSlash(u.Path))
	src := []byte(u.Source)
	if w.Format {
		formatted, err := imports.Process(name, src, &imports.Options{
			Comments:   true,
			TabIndent:  true,
			TabWidth:   8,
			FormatOnly: true,
		})
		if err != nil {
			w.logger().Warn("cannot format", zap.String("path", u.Path), zap.Error(err))
		} else {
			src = formatted
		}
	}
	err := os.MkdirAll(filepath.Dir(name), dirPerm)
	if err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	err = os.WriteFile(name, src, filePerm)
	if err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	w.logger().Info("built", zap.String("path", u.Path))
	return nil
}

// WriteAll writes units, stopping at the first error.
func (w *Writer) WriteAll(units []engine.GeneratedUnit) error {
	for _, u := range units {
		if err := w.Write(u); err != nil {
			return err
		}
	}
	return nil
}

// WriteModule writes a go.mod file in the output root for the module
// path, requiring the unit runtime.
func (w *Writer) WriteModule(path string, runtime module.Version) error {
	f := new(modfile.File)
	if err := f.AddModuleStmt(path); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	if err := f.AddGoStmt(goVersion); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	if err := f.AddRequire(runtime.Path, runtime.Version); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	data, err := f.Format()
	if err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	err = os.WriteFile(filepath.Join(w.Root, "go.mod"), data, filePerm)
	if err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	w.logger().Info("built", zap.String("path", "go.mod"))
	return nil
}
