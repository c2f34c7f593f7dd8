// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open2b/unitgen/internal/catalog"
	"github.com/open2b/unitgen/internal/docgen"
)

func newDocCmd(a *app) *cobra.Command {
	var html bool
	var file string
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Write the documentation of the catalog",
		Long: `Doc writes the documentation of the catalog, its quantity kinds, their units
and their formulas, as Markdown or, with --html, as HTML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := a.config()
			if err != nil {
				return err
			}
			catalogFS, _ := sources(conf)
			c, err := catalog.Load(catalogFS, catalog.DefaultSources)
			if err != nil {
				return err
			}
			if file == "" {
				return render(cmd.OutOrStdout(), c, html)
			}
			f, err := os.Create(file)
			if err != nil {
				return err
			}
			return renderClose(f, c, html)
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "write HTML instead of Markdown")
	cmd.Flags().StringVarP(&file, "file", "f", "", "destination file (default: standard output)")
	return cmd
}

// render writes the documentation of c to w.
func render(w io.Writer, c *catalog.Catalog, html bool) error {
	if html {
		return docgen.HTML(w, c)
	}
	return docgen.Markdown(w, c)
}

// renderClose writes the documentation of c to w and closes it. It returns
// the error of Close if the documentation has been written.
func renderClose(w io.WriteCloser, c *catalog.Catalog, html bool) error {
	err := render(w, c, html)
	if err2 := w.Close(); err == nil {
		err = err2
	}
	return err
}
