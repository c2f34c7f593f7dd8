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

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		[]catalog.Paired{{Abs: "Position", Rel: "Length", AbsUnit: "PositionUnit", RelUnit: "LengthUnit"}},
		[]string{"Duration", "Speed", "Area", "Dimensionless"},
		[]catalog.FormulaBlock{
			{Kind: "Length", Formulas: []catalog.Formula{{Op: catalog.Divide, Operand: "Duration", Result: "Speed"}}},
			{Kind: "Speed", Formulas: []catalog.Formula{
				{Op: catalog.Multiply, Operand: "Duration", Result: "Length"},
				{Op: catalog.Divide, Operand: "Length", Result: "Frequency"},
				{Op: catalog.Divide, Operand: "Speed", Result: "Dimensionless"},
			}},
			{Kind: "Dimensionless"},
		},
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return c
}

func TestResolveLengthDividedByDuration(t *testing.T) {
	r := Resolver{Formulas: testCatalog(t), Precision: Double, Style: StyleScalar}
	got, diagnostics := r.Resolve("type Length struct{}\n%FORMULAS%Length%\n// end\n", "Length")
	if len(diagnostics) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diagnostics)
	}
	expected := "type Length struct{}\n" +
		"\n// DivideByDuration calculates the division of Length and Duration,\n" +
		"// which results in a Speed scalar.\n" +
		"func (s Length) DivideByDuration(v Duration) Speed {\n" +
		"\treturn NewSpeed(s.SI()/v.SI(), unit.SpeedUnitSI)\n" +
		"}\n" +
		"\n// end\n"
	if got != expected {
		t.Fatalf("expected:\n%s\ngot:\n%s", expected, got)
	}
	if n := strings.Count(got, "func (s Length) DivideBy"); n != 1 {
		t.Fatalf("expected one DivideBy method, got %d", n)
	}
}

func TestResolveFloatPrefix(t *testing.T) {
	r := Resolver{Formulas: testCatalog(t), Precision: Float, Style: StyleScalar}
	got, _ := r.Resolve("%FORMULAS%Length%", "FloatLength")
	for _, s := range []string{
		"func (s FloatLength) DivideByDuration(v FloatDuration) FloatSpeed {",
		"return NewFloatSpeed(s.SI()/v.SI(), unit.SpeedUnitSI)",
		"calculates the division of FloatLength and FloatDuration",
	} {
		if !strings.Contains(got, s) {
			t.Fatalf("expected %q in:\n%s", s, got)
		}
	}
}

// TestResolveSynthesisCount checks that a kind with n formulas gets n
// methods, named after the operator of each formula.
func TestResolveSynthesisCount(t *testing.T) {
	c := testCatalog(t)
	for _, kind := range []string{"Length", "Speed", "Dimensionless"} {
		formulas, _ := c.Formulas(kind)
		r := Resolver{Formulas: c, Precision: Double, Style: StyleScalar}
		got, diagnostics := r.Resolve("%FORMULAS%"+kind+"%", kind)
		if len(diagnostics) > 0 {
			t.Fatalf("unexpected diagnostics: %v", diagnostics)
		}
		if n := strings.Count(got, "\nfunc "); n != len(formulas) {
			t.Fatalf("kind %s: expected %d methods, got %d", kind, len(formulas), n)
		}
		for _, f := range formulas {
			name := "MultiplyBy"
			if f.Op == catalog.Divide {
				name = "DivideBy"
			}
			if !strings.Contains(got, ") "+name+f.Operand+"(v "+f.Operand+") "+f.Result+" {") {
				t.Fatalf("kind %s: missing method %s%s in:\n%s", kind, name, f.Operand, got)
			}
		}
	}
}

// TestResolveResultUnit checks that the result unit of an operator method
// is the unit declared by the catalog for the result kind.
func TestResolveResultUnit(t *testing.T) {
	c, err := catalog.New(
		[]catalog.Paired{{Abs: "Position", Rel: "Length", AbsUnit: "PlaceUnit", RelUnit: "DistanceUnit"}},
		[]string{"Duration", "Speed"},
		[]catalog.FormulaBlock{{Kind: "Speed", Formulas: []catalog.Formula{{Op: catalog.Multiply, Operand: "Duration", Result: "Length"}}}},
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	r := Resolver{Formulas: c, Precision: Double, Style: StyleScalar}
	got, diagnostics := r.Resolve("%FORMULAS%Speed%", "Speed")
	if len(diagnostics) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diagnostics)
	}
	if s := "return NewLength(s.SI()*v.SI(), unit.DistanceUnitSI)"; !strings.Contains(got, s) {
		t.Fatalf("expected %q in:\n%s", s, got)
	}
}

func TestResolveContainers(t *testing.T) {
	for _, style := range []Style{StyleVector, StyleMatrix} {
		r := Resolver{Formulas: testCatalog(t), Precision: Double, Style: style}
		got, diagnostics := r.Resolve("a\n%FORMULAS%Length%\nb", "LengthVector")
		if len(diagnostics) > 0 {
			t.Fatalf("%s: unexpected diagnostics: %v", style, diagnostics)
		}
		if got != "a\n\nb" {
			t.Fatalf("%s: expected %q, got %q", style, "a\n\nb", got)
		}
	}
}

func TestResolveDiagnostics(t *testing.T) {
	cases := []struct {
		text     string
		expected string
		err      error
		kind     string
	}{
		{"a %FORMULAS%Mass% b", "a  b", ErrUnknownFormulaKind, "Mass"},
		{"a %FORMULAS%Length", "a Length", ErrUnterminatedOperatorMarker, ""},
	}
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			r := Resolver{Formulas: testCatalog(t), Precision: Double, Style: StyleScalar}
			got, diagnostics := r.Resolve(c.text, "Doc")
			if got != c.expected {
				t.Fatalf("input: %q, expected %q, got %q", c.text, c.expected, got)
			}
			if len(diagnostics) != 1 {
				t.Fatalf("input: %q, expected one diagnostic, got %v", c.text, diagnostics)
			}
			d := diagnostics[0]
			if !errors.Is(d, c.err) || d.Kind != c.kind || d.Document != "Doc" {
				t.Fatalf("input: %q, unexpected diagnostic %#v", c.text, d)
			}
		})
	}
}

func TestResolveWithoutMarker(t *testing.T) {
	r := Resolver{Precision: Double, Style: StyleScalar}
	text := "package scalar\n\n// 100% safe\n"
	got, diagnostics := r.Resolve(text, "Speed")
	if got != text || diagnostics != nil {
		t.Fatalf("expected unchanged text, got %q and %v", got, diagnostics)
	}
}

func TestFormulaErrorMessage(t *testing.T) {
	err := &FormulaError{Document: "scalar/mass.go", Kind: "Mass", Err: ErrUnknownFormulaKind}
	if expected := `scalar/mass.go: unknown formula kind "Mass"`; err.Error() != expected {
		t.Fatalf("expected %q, got %q", expected, err.Error())
	}
	err = &FormulaError{Document: "scalar/mass.go", Err: ErrUnterminatedOperatorMarker}
	if expected := "scalar/mass.go: unterminated operator marker"; err.Error() != expected {
		t.Fatalf("expected %q, got %q", expected, err.Error())
	}
}
