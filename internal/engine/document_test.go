// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/open2b/unitgen/internal/catalog"
)

const testTemplate = GenerationMarker + `

package scalar

// %Type% is a %type% value.
type %Type% struct{}
%DIMLESS%
%FORMULAS%%Type%%
##EXTRAS##`

func TestDocumentStates(t *testing.T) {
	d := NewDocument("scalar/length.go", "Length", testTemplate)
	if d.State() != Loaded {
		t.Fatalf("expected state %s, got %s", Loaded, d.State())
	}
	var stateErr *StateError
	if err := d.Replace(Replacer{}); !errors.As(err, &stateErr) {
		t.Fatalf("expected *StateError, got %v", err)
	}
	if err := d.Expand(SingletonBindings("Length")); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d.State() != MarkerExpanded {
		t.Fatalf("expected state %s, got %s", MarkerExpanded, d.State())
	}
	if err := d.Expand(SingletonBindings("Length")); !errors.As(err, &stateErr) {
		t.Fatalf("expected *StateError, got %v", err)
	}
	if err := d.Augment(AugmentNone, Flavor{TypeName: "Length"}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d.State() != MarkerExpanded {
		t.Fatalf("expected state %s after AugmentNone, got %s", MarkerExpanded, d.State())
	}
	if _, err := d.Emit("x"); !errors.As(err, &stateErr) {
		t.Fatalf("expected *StateError, got %v", err)
	}
	if expected := "engine: cannot emit document scalar/length.go in state marker expanded"; stateErr.Error() != expected {
		t.Fatalf("expected %q, got %q", expected, stateErr.Error())
	}
	if err := d.ResolveFormulas(Resolver{Formulas: testCatalog(t), Style: StyleScalar}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := d.Replace(Replacer{Now: testNow}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	u, err := d.Emit("scalar/length.go")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d.State() != Emitted {
		t.Fatalf("expected state %s, got %s", Emitted, d.State())
	}
	if u.Path != "scalar/length.go" || !strings.HasPrefix(u.Source, testAnnotation) {
		t.Fatalf("unexpected unit %#v", u)
	}
}

func TestPipelineRun(t *testing.T) {
	rules := []catalog.Rule{{Tag: "##EXTRAS##", Scope: "Dimensionless", Text: "// extras\n"}}
	p := Pipeline{Formulas: testCatalog(t), Replacer: Replacer{Rules: rules, Now: testNow}}

	u, err := p.Run(Job{
		Name:     "scalar/length.go",
		Path:     "value/vdouble/scalar/length.go",
		Kind:     "Length",
		Template: testTemplate,
		Bindings: SingletonBindings("Length"),
		Flavor:   Flavor{TypeName: "Length", Precision: Double, Style: StyleScalar},
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(u.Diagnostics) > 0 {
		t.Fatalf("unexpected diagnostics: %v", u.Diagnostics)
	}
	for _, s := range []string{"%", "##", "MathFunctions", "// extras"} {
		if strings.Contains(u.Source, s) {
			t.Fatalf("unexpected %q in:\n%s", s, u.Source)
		}
	}
	if !strings.Contains(u.Source, "func (s Length) DivideByDuration(v Duration) Speed {") {
		t.Fatalf("missing operator method in:\n%s", u.Source)
	}

	u, err = p.Run(Job{
		Name:         "scalar/float_dimensionless.go",
		Path:         "value/vfloat/scalar/float_dimensionless.go",
		Kind:         "Dimensionless",
		Template:     strings.Replace(testTemplate, "type %Type%", "type Float%Type%", 1),
		Bindings:     SingletonBindings("Dimensionless"),
		Augmentation: AugmentTranscendental,
		Flavor:       Flavor{TypeName: "FloatDimensionless", Precision: Float, Style: StyleScalar},
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	for _, s := range []string{
		"type FloatDimensionless struct{}",
		"var _ value.MathFunctions[FloatDimensionless] = FloatDimensionless{}",
		"func (s FloatDimensionless) Tanh() FloatDimensionless {",
		"// extras\n",
	} {
		if !strings.Contains(u.Source, s) {
			t.Fatalf("expected %q in:\n%s", s, u.Source)
		}
	}
}

// TestPipelineIsolation checks that a missing formula kind only degrades
// the document that names it.
func TestPipelineIsolation(t *testing.T) {
	p := Pipeline{Formulas: testCatalog(t), Replacer: Replacer{Now: testNow}}
	var units []GeneratedUnit
	for _, kind := range []string{"Area", "Speed"} {
		u, err := p.Run(Job{
			Name:     kind,
			Kind:     kind,
			Template: testTemplate,
			Bindings: SingletonBindings(kind),
			Flavor:   Flavor{TypeName: kind, Style: StyleScalar},
		})
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		units = append(units, u)
	}
	if len(units[0].Diagnostics) != 1 || !errors.Is(units[0].Diagnostics[0], ErrUnknownFormulaKind) {
		t.Fatalf("expected an unknown formula kind diagnostic, got %v", units[0].Diagnostics)
	}
	if strings.Contains(units[0].Source, "%FORMULAS%") {
		t.Fatalf("marker is left in:\n%s", units[0].Source)
	}
	if len(units[1].Diagnostics) != 0 || strings.Count(units[1].Source, "\nfunc (s Speed) ") != 3 {
		t.Fatalf("unexpected Speed unit %#v", units[1])
	}
}

func TestPipelineUnknownRole(t *testing.T) {
	p := Pipeline{Formulas: testCatalog(t)}
	_, err := p.Run(Job{Name: "abs", Template: "%TypeAbs%", Bindings: SingletonBindings("Length")})
	var roleErr *UnknownRoleError
	if !errors.As(err, &roleErr) {
		t.Fatalf("expected *UnknownRoleError, got %v", err)
	}
}
