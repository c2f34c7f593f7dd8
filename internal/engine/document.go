// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
)

// State is the state of a document.
type State int

const (
	Loaded State = iota
	MarkerExpanded
	DimensionlessAugmented
	FormulasResolved
	ScopedReplaced
	Emitted
)

var stateNames = [...]string{
	Loaded:                 "loaded",
	MarkerExpanded:         "marker expanded",
	DimensionlessAugmented: "dimensionless augmented",
	FormulasResolved:       "formulas resolved",
	ScopedReplaced:         "scoped replaced",
	Emitted:                "emitted",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// StateError is returned when a step is applied to a document that is not
// in a state that allows it.
type StateError struct {
	Document string
	Step     string
	State    State
}

func (err *StateError) Error() string {
	return fmt.Sprintf("engine: cannot %s document %s in state %s", err.Step, err.Document, err.State)
}

// Document is a document being generated. Its steps must be applied in
// order: Expand, Augment, ResolveFormulas, Replace and Emit.
type Document struct {
	name        string
	kind        string
	text        string
	state       State
	diagnostics []error
}

// NewDocument returns a loaded document with the given name and text.
// kind is the current kind, the kind bound to the primary role.
func NewDocument(name, kind, text string) *Document {
	return &Document{name: name, kind: kind, text: text}
}

// Name returns the name of the document.
func (d *Document) Name() string { return d.name }

// Kind returns the current kind of the document.
func (d *Document) Kind() string { return d.kind }

// Text returns the current text of the document.
func (d *Document) Text() string { return d.text }

// State returns the state of the document.
func (d *Document) State() State { return d.state }

// Diagnostics returns the non-fatal diagnostics collected so far.
func (d *Document) Diagnostics() []error {
	return append([]error(nil), d.diagnostics...)
}

func (d *Document) check(step string, allowed ...State) error {
	for _, s := range allowed {
		if d.state == s {
			return nil
		}
	}
	return &StateError{Document: d.name, Step: step, State: d.state}
}

// Expand expands the markers of the roles bound by b.
func (d *Document) Expand(b Bindings) error {
	if err := d.check("expand", Loaded); err != nil {
		return err
	}
	text, err := Expand(d.text, b)
	if err != nil {
		return err
	}
	d.text = text
	d.state = MarkerExpanded
	return nil
}

// Augment applies the augmentation a. The document moves to the
// DimensionlessAugmented state only if a is not AugmentNone.
func (d *Document) Augment(a Augmentation, f Flavor) error {
	if err := d.check("augment", MarkerExpanded); err != nil {
		return err
	}
	d.text = Augment(d.text, a, f)
	if a != AugmentNone {
		d.state = DimensionlessAugmented
	}
	return nil
}

// ResolveFormulas resolves the operator-block markers with r. The
// resolution diagnostics are added to the document diagnostics.
func (d *Document) ResolveFormulas(r Resolver) error {
	if err := d.check("resolve formulas of", MarkerExpanded, DimensionlessAugmented); err != nil {
		return err
	}
	text, diagnostics := r.Resolve(d.text, d.name)
	for _, diag := range diagnostics {
		d.diagnostics = append(d.diagnostics, diag)
	}
	d.text = text
	d.state = FormulasResolved
	return nil
}

// Replace applies the replacement rules of r for the document kind.
func (d *Document) Replace(r Replacer) error {
	if err := d.check("replace tags of", FormulasResolved); err != nil {
		return err
	}
	text, err := r.Apply(d.text, d.kind)
	if err != nil {
		return err
	}
	d.text = text
	d.state = ScopedReplaced
	return nil
}

// Emit returns the generated unit with destination path.
func (d *Document) Emit(path string) (GeneratedUnit, error) {
	if err := d.check("emit", ScopedReplaced); err != nil {
		return GeneratedUnit{}, err
	}
	d.state = Emitted
	return GeneratedUnit{Path: path, Source: d.text, Diagnostics: d.Diagnostics()}, nil
}

// GeneratedUnit is the result of the generation of a document.
type GeneratedUnit struct {
	Path        string  // slash-separated path relative to the output root.
	Source      string  // generated source.
	Diagnostics []error // non-fatal diagnostics.
}

// Job is the generation of a document from a template.
type Job struct {
	Name         string // document name used in diagnostics.
	Path         string // destination path.
	Kind         string // current kind.
	Template     string // template text.
	Bindings     Bindings
	Augmentation Augmentation
	Flavor       Flavor
}

// Pipeline runs jobs through all the document steps.
type Pipeline struct {
	Formulas FormulaSource
	Replacer Replacer
}

// Run runs job and returns the generated unit. Formula diagnostics are
// returned in the unit; the returned error is always fatal.
func (p Pipeline) Run(job Job) (GeneratedUnit, error) {
	d := NewDocument(job.Name, job.Kind, job.Template)
	if err := d.Expand(job.Bindings); err != nil {
		return GeneratedUnit{}, fmt.Errorf("%s: %w", job.Name, err)
	}
	if err := d.Augment(job.Augmentation, job.Flavor); err != nil {
		return GeneratedUnit{}, err
	}
	r := Resolver{Formulas: p.Formulas, Precision: job.Flavor.Precision, Style: job.Flavor.Style}
	if err := d.ResolveFormulas(r); err != nil {
		return GeneratedUnit{}, err
	}
	if err := d.Replace(p.Replacer); err != nil {
		return GeneratedUnit{}, fmt.Errorf("%s: %w", job.Name, err)
	}
	return d.Emit(job.Path)
}
