// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resources embeds the default catalog and the templates.
package resources

import (
	"embed"
	"io/fs"
)

//go:embed catalog templates
var files embed.FS

// Catalog returns the file system of the default catalog documents.
func Catalog() fs.FS {
	return sub("catalog")
}

// Templates returns the file system of the templates. Template paths have
// the form "<family>/<precision>_<variant>.go.tmpl".
func Templates() fs.FS {
	return sub("templates")
}

func sub(dir string) fs.FS {
	fsys, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return fsys
}
