// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package generator drives the generation of the unit types of a catalog
// across families, precisions and members, and the generation of the
// any-dimension scalar types.
package generator

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/open2b/unitgen/internal/catalog"
	"github.com/open2b/unitgen/internal/engine"
)

// DefaultDimensionless is the default name of the dimensionless kind.
const DefaultDimensionless = "Dimensionless"

// Options are the generator options.
type Options struct {

	// Logger receives the diagnostics. If nil, nothing is logged.
	Logger *zap.Logger

	// Workers is the number of documents generated concurrently. Values
	// less than two generate the documents sequentially.
	Workers int

	// Only, if not empty, restricts the generation to the documents whose
	// output path matches at least one of these doublestar patterns.
	Only []string

	// Dimensionless is the name of the dimensionless kind, augmented with
	// the transcendental functions. If empty, DefaultDimensionless is used.
	Dimensionless string

	// Generator is the generator name written in the generation comment.
	Generator string

	// Now returns the generation time. If nil, time.Now is used.
	Now func() time.Time
}

// Generator generates the documents of a catalog.
type Generator struct {
	catalog   *catalog.Catalog
	templates fs.FS
	options   Options
	logger    *zap.Logger
	pipeline  engine.Pipeline
}

// New returns a generator for the catalog c that reads the templates from
// the file system templates.
func New(c *catalog.Catalog, templates fs.FS, options Options) *Generator {
	if options.Dimensionless == "" {
		options.Dimensionless = DefaultDimensionless
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		catalog:   c,
		templates: templates,
		options:   options,
		logger:    logger,
		pipeline: engine.Pipeline{
			Formulas: c,
			Replacer: engine.Replacer{
				Rules:     c.Rules(),
				Generator: options.Generator,
				Now:       options.Now,
			},
		},
	}
}

// Report is the result of a generation.
type Report struct {
	Units    []engine.GeneratedUnit // generated units, in job order.
	Warnings int                    // number of non-fatal diagnostics.
}

// Jobs returns the generation jobs in a deterministic order: for each
// family and precision, the absolute and relative members of the paired
// kinds, then the singleton kinds; last the any-dimension scalars.
func (g *Generator) Jobs() ([]engine.Job, error) {
	templates := map[string]string{}
	load := func(name string) (string, error) {
		if t, ok := templates[name]; ok {
			return t, nil
		}
		data, err := fs.ReadFile(g.templates, name)
		if err != nil {
			return "", fmt.Errorf("generator: %w", err)
		}
		templates[name] = string(data)
		return templates[name], nil
	}
	var jobs []engine.Job
	add := func(f Family, p engine.Precision, variant, kind string, b engine.Bindings) error {
		template, err := load(templatePath(f, p, variant))
		if err != nil {
			return err
		}
		typ := p.Prefix() + kind + f.Suffix
		out := outputPath(f, p, typ)
		augmentation := engine.AugmentNone
		if kind == g.options.Dimensionless {
			augmentation = engine.AugmentTranscendental
		}
		jobs = append(jobs, engine.Job{
			Name:         out,
			Path:         out,
			Kind:         kind,
			Template:     template,
			Bindings:     b,
			Augmentation: augmentation,
			Flavor:       engine.Flavor{TypeName: typ, Precision: p, Style: f.Style},
		})
		return nil
	}
	for _, f := range Families {
		for _, p := range engine.Precisions {
			for _, pair := range g.catalog.Paired() {
				b := engine.PairedBindings(pair)
				if err := add(f, p, variantAbs, pair.Abs, b); err != nil {
					return nil, err
				}
				if err := add(f, p, variantRelPair, pair.Rel, b); err != nil {
					return nil, err
				}
			}
			for _, kind := range g.catalog.Singletons() {
				if err := add(f, p, variantRel, kind, engine.SingletonBindings(kind)); err != nil {
					return nil, err
				}
			}
		}
	}
	targets := CastTargets(g.catalog)
	for _, p := range engine.Precisions {
		template, err := load(castTemplatePath(p))
		if err != nil {
			return nil, err
		}
		typ := p.Prefix() + castKind
		out := outputPath(Families[0], p, typ)
		jobs = append(jobs, engine.Job{
			Name:     out,
			Path:     out,
			Kind:     castKind,
			Template: strings.Replace(template, CastMarker, Casts(targets, p), 1),
			Bindings: engine.SingletonBindings(castKind),
			Flavor:   engine.Flavor{TypeName: typ, Precision: p, Style: engine.StyleScalar},
		})
	}
	return g.filter(jobs)
}

// filter returns the jobs whose path matches the Only patterns.
func (g *Generator) filter(jobs []engine.Job) ([]engine.Job, error) {
	if len(g.options.Only) == 0 {
		return jobs, nil
	}
	for _, pattern := range g.options.Only {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("generator: invalid pattern %q", pattern)
		}
	}
	selected := jobs[:0]
	for _, job := range jobs {
		for _, pattern := range g.options.Only {
			ok, err := doublestar.Match(pattern, job.Path)
			if err != nil {
				return nil, fmt.Errorf("generator: invalid pattern %q: %w", pattern, err)
			}
			if ok {
				selected = append(selected, job)
				break
			}
		}
	}
	return selected, nil
}

// Run generates the documents. Formula diagnostics are logged as warnings
// and counted in the report; any other error stops the generation and is
// returned.
func (g *Generator) Run(ctx context.Context) (Report, error) {
	jobs, err := g.Jobs()
	if err != nil {
		return Report{}, err
	}
	units := make([]engine.GeneratedUnit, len(jobs))
	if g.options.Workers < 2 {
		for i, job := range jobs {
			if err := ctx.Err(); err != nil {
				return Report{}, err
			}
			units[i], err = g.pipeline.Run(job)
			if err != nil {
				return Report{}, err
			}
		}
	} else {
		group, ctx := errgroup.WithContext(ctx)
		group.SetLimit(g.options.Workers)
		for i, job := range jobs {
			group.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				u, err := g.pipeline.Run(job)
				if err != nil {
					return err
				}
				units[i] = u
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return Report{}, err
		}
	}
	report := Report{Units: units}
	for _, u := range units {
		for _, d := range u.Diagnostics {
			fields := []zap.Field{zap.String("document", u.Path), zap.Error(d)}
			if fe, ok := d.(*engine.FormulaError); ok && fe.Kind != "" {
				fields = append(fields, zap.String("kind", fe.Kind))
			}
			g.logger.Warn("formula resolution", fields...)
			report.Warnings++
		}
	}
	return report, nil
}
