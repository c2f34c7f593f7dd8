// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memfs

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
)

func TestFS(t *testing.T) {
	fsys := FS{
		"TYPES_REL.txt":                    "Speed\n",
		"templates/scalar/double_rel.tmpl": "%Type%",
		"templates/scalar/float_rel.tmpl":  "Float%Type%",
		"templates/siscalar/double.tmpl":   "%%ASMETHODS%%",
	}
	err := fstest.TestFS(fsys,
		"TYPES_REL.txt",
		"templates/scalar/double_rel.tmpl",
		"templates/scalar/float_rel.tmpl",
		"templates/siscalar/double.tmpl")
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadDir(t *testing.T) {
	fsys := FS{
		"a/b/c.txt": "c",
		"a/d.txt":   "d",
		"e.txt":     "e",
	}
	entries, err := fs.ReadDir(fsys, "a")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 2 || names[0] != "b" || names[1] != "d.txt" {
		t.Fatalf("expected [b d.txt], got %v", names)
	}
	if !entries[0].IsDir() || entries[1].IsDir() {
		t.Fatal("unexpected entry types")
	}
	_, err = fs.ReadFile(fsys, "a/x.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}
