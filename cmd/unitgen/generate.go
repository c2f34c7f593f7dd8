// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/open2b/unitgen/internal/catalog"
	"github.com/open2b/unitgen/internal/config"
	"github.com/open2b/unitgen/internal/generator"
	"github.com/open2b/unitgen/resources"
)

// sources returns the file systems of the catalog documents and of the
// templates. The embedded resources are used for the directories that are
// not configured.
func sources(conf *config.Config) (catalogFS, templatesFS fs.FS) {
	catalogFS = resources.Catalog()
	if conf.Inputs != "" {
		catalogFS = os.DirFS(conf.Resolve(conf.Inputs))
	}
	templatesFS = resources.Templates()
	if conf.Templates != "" {
		templatesFS = os.DirFS(conf.Resolve(conf.Templates))
	}
	return catalogFS, templatesFS
}

// generate loads the catalog, generates the code and writes it in the
// output root. The catalog is loaded entirely before the generation
// starts.
func generate(ctx context.Context, conf *config.Config, catalogFS, templatesFS fs.FS, logger *zap.Logger) (generator.Report, error) {
	c, err := catalog.Load(catalogFS, catalog.DefaultSources)
	if err != nil {
		return generator.Report{}, err
	}
	w := &generator.Writer{
		Root:   conf.Resolve(conf.Output),
		Format: conf.Format,
		Logger: logger,
	}
	err = w.Prepare()
	if err != nil {
		return generator.Report{}, err
	}
	g := generator.New(c, templatesFS, generator.Options{
		Logger:        logger,
		Workers:       conf.Workers,
		Only:          conf.Only,
		Dimensionless: conf.Dimensionless,
	})
	report, err := g.Run(ctx)
	if err != nil {
		return generator.Report{}, err
	}
	err = w.WriteAll(report.Units)
	if err != nil {
		return generator.Report{}, err
	}
	if conf.Module != "" {
		err = w.WriteModule(conf.Module, conf.RuntimeVersion())
		if err != nil {
			return generator.Report{}, err
		}
	}
	logger.Info("generation completed",
		zap.Int("files", len(report.Units)),
		zap.Int("warnings", report.Warnings))
	return report, nil
}
