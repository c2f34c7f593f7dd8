// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// watcher watches the files read through the file systems it returns.
// The directories of the files are watched, so a file replaced by a
// rename is still notified. The names of the changed files are sent on
// Changed.
type watcher struct {
	watcher *fsnotify.Watcher
	Changed chan string
	Errors  chan error

	done      chan struct{}
	closeOnce sync.Once

	sync.Mutex
	files map[string]bool
	dirs  map[string]bool
}

func newWatcher() (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{
		watcher: fw,
		Changed: make(chan string),
		Errors:  make(chan error),
		done:    make(chan struct{}),
		files:   map[string]bool{},
		dirs:    map[string]bool{},
	}
	go func() {
		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				name := filepath.Clean(event.Name)
				if !w.isWatched(name) {
					continue
				}
				select {
				case w.Changed <- name:
				case <-w.done:
					return
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				select {
				case w.Errors <- err:
				case <-w.done:
					return
				}
			case <-w.done:
				return
			}
		}
	}()
	return w, nil
}

// FS returns a file system that reads the files in the directory root and
// watches them.
func (w *watcher) FS(root string) fs.FS {
	return watchedDir{w: w, root: root, fsys: os.DirFS(root)}
}

func (w *watcher) Close() error {
	w.closeOnce.Do(func() { close(w.done) })
	return w.watcher.Close()
}

// watch watches the file name, adding its directory to the watched
// directories if it is not already watched.
func (w *watcher) watch(name string) error {
	name = filepath.Clean(name)
	dir := filepath.Dir(name)
	w.Lock()
	defer w.Unlock()
	if !w.dirs[dir] {
		err := w.watcher.Add(dir)
		if err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	w.files[name] = true
	return nil
}

func (w *watcher) isWatched(name string) bool {
	w.Lock()
	defer w.Unlock()
	return w.files[name]
}

// watchedDir is a directory whose opened files are watched.
type watchedDir struct {
	w    *watcher
	root string
	fsys fs.FS
}

func (d watchedDir) Open(name string) (fs.File, error) {
	f, err := d.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	err = d.w.watch(filepath.Join(d.root, filepath.FromSlash(name)))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func (d watchedDir) ReadFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		return nil, err
	}
	err = d.w.watch(filepath.Join(d.root, filepath.FromSlash(name)))
	if err != nil {
		return nil, err
	}
	return data, nil
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the code when a catalog document or a template changes",
		Long: `Watch generates the code, then regenerates it every time a catalog document
or a template is written. Only the directories set by the inputs and
templates fields of the configuration are watched.

Press Ctrl+C to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := a.config()
			if err != nil {
				return err
			}
			if conf.Inputs == "" && conf.Templates == "" {
				return errors.New("watch: there is nothing to watch, set inputs or templates in the configuration")
			}
			w, err := newWatcher()
			if err != nil {
				return err
			}
			defer w.Close()
			catalogFS, templatesFS := sources(conf)
			if conf.Inputs != "" {
				catalogFS = w.FS(conf.Resolve(conf.Inputs))
			}
			if conf.Templates != "" {
				templatesFS = w.FS(conf.Resolve(conf.Templates))
			}
			ctx := cmd.Context()
			run := func() {
				_, err := generate(ctx, conf, catalogFS, templatesFS, a.logger)
				if err != nil {
					a.logger.Error("generation failed", zap.Error(err))
				}
			}
			run()
			stderr("Watching for changes. Press Ctrl+C to stop.")
			for {
				select {
				case <-ctx.Done():
					return nil
				case name := <-w.Changed:
					a.logger.Info("changed", zap.String("file", name))
					run()
				case err := <-w.Errors:
					a.logger.Warn("watch error", zap.Error(err))
				}
			}
		},
	}
}
