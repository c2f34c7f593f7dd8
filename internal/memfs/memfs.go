// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memfs implements an in-memory file system used to give catalog
// documents and templates to the generator without touching the disk.
package memfs

import (
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// FS is a file system that maps slash-separated file paths to their
// content. Directories are implied by the paths of the files they contain.
type FS map[string]string

// Open implements fs.FS.
func (fsys FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if data, ok := fsys[name]; ok {
		return &file{info: info{name: path.Base(name), size: len(data)}, data: data}, nil
	}
	if fsys.isDir(name) {
		return &dir{info: info{name: path.Base(name), dir: true}, entries: fsys.entries(name)}, nil
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// ReadFile implements fs.ReadFileFS.
func (fsys FS) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	data, ok := fsys[name]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return []byte(data), nil
}

// ReadDir implements fs.ReadDirFS.
func (fsys FS) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) || !fsys.isDir(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	return fsys.entries(name), nil
}

// isDir reports whether name is the root or the prefix of a file path.
func (fsys FS) isDir(name string) bool {
	if name == "." {
		return true
	}
	prefix := name + "/"
	for n := range fsys {
		if strings.HasPrefix(n, prefix) {
			return true
		}
	}
	return false
}

// entries returns the sorted entries of the directory name.
func (fsys FS) entries(name string) []fs.DirEntry {
	var prefix string
	if name != "." {
		prefix = name + "/"
	}
	seen := map[string]bool{}
	var entries []fs.DirEntry
	for n, data := range fsys {
		if !strings.HasPrefix(n, prefix) {
			continue
		}
		rest := n[len(prefix):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			sub := rest[:i]
			if !seen[sub] {
				seen[sub] = true
				entries = append(entries, &info{name: sub, dir: true})
			}
			continue
		}
		entries = append(entries, &info{name: rest, size: len(data)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries
}

// info implements fs.FileInfo and fs.DirEntry.
type info struct {
	name string
	size int
	dir  bool
}

func (i *info) Name() string               { return i.name }
func (i *info) Size() int64                { return int64(i.size) }
func (i *info) ModTime() time.Time         { return time.Time{} }
func (i *info) IsDir() bool                { return i.dir }
func (i *info) Sys() any                   { return nil }
func (i *info) Type() fs.FileMode          { return i.Mode().Type() }
func (i *info) Info() (fs.FileInfo, error) { return i, nil }

func (i *info) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0555
	}
	return 0444
}

// file is an open regular file.
type file struct {
	info   info
	data   string
	offset int
	closed bool
}

func (f *file) Stat() (fs.FileInfo, error) { return &f.info, nil }

func (f *file) Read(p []byte) (int, error) {
	if f.closed {
		return 0, &fs.PathError{Op: "read", Path: f.info.name, Err: fs.ErrClosed}
	}
	if f.offset >= len(f.data) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.offset:])
	f.offset += n
	return n, nil
}

func (f *file) Close() error {
	f.closed = true
	return nil
}

// dir is an open directory.
type dir struct {
	info    info
	entries []fs.DirEntry
	offset  int
}

func (d *dir) Stat() (fs.FileInfo, error) { return &d.info, nil }

func (d *dir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.info.name, Err: fs.ErrInvalid}
}

func (d *dir) Close() error { return nil }

// ReadDir implements fs.ReadDirFile.
func (d *dir) ReadDir(n int) ([]fs.DirEntry, error) {
	rest := d.entries[d.offset:]
	if n <= 0 {
		d.offset = len(d.entries)
		return rest, nil
	}
	if len(rest) == 0 {
		return nil, io.EOF
	}
	if n > len(rest) {
		n = len(rest)
	}
	d.offset += n
	return rest[:n], nil
}
