// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"strings"
	"testing"
)

func TestAugmentNone(t *testing.T) {
	text := "type Speed struct{}\n%DIMLESS%\n%FORMULAS%Speed%\n"
	got := Augment(text, AugmentNone, Flavor{TypeName: "Speed"})
	if expected := "type Speed struct{}\n\n%FORMULAS%Speed%\n"; got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestAugmentTranscendental(t *testing.T) {
	text := "type Dimensionless struct{}\n%DIMLESS%\n// ops\n%FORMULAS%Dimensionless%\n"
	got := Augment(text, AugmentTranscendental, Flavor{TypeName: "Dimensionless", Precision: Double, Style: StyleScalar})
	if strings.Contains(got, InterfaceMarker) {
		t.Fatalf("interface marker is left in:\n%s", got)
	}
	clause := "// Dimensionless implements value.MathFunctions.\nvar _ value.MathFunctions[Dimensionless] = Dimensionless{}\n"
	if !strings.HasPrefix(got, "type Dimensionless struct{}\n"+clause) {
		t.Fatalf("expected the interface clause after the type, got:\n%s", got)
	}
	if !strings.HasSuffix(got, "}\n%FORMULAS%Dimensionless%\n") {
		t.Fatalf("expected the methods before the operator marker, got:\n%s", got)
	}
	if n := strings.Count(got, "\nfunc (s Dimensionless) "); n != len(transcendental) {
		t.Fatalf("expected %d methods, got %d", len(transcendental), n)
	}
	for _, s := range []string{
		"// Acos returns the arc cosine of s.\nfunc (s Dimensionless) Acos() Dimensionless {\n\treturn NewDimensionless(math.Acos(s.InUnit()), s.Unit())\n}\n",
		"func (s Dimensionless) Pow(x float64) Dimensionless {\n\treturn NewDimensionless(math.Pow(s.InUnit(), x), s.Unit())\n}\n",
		"return NewDimensionless(value.Signum(s.InUnit()), s.Unit())",
		"return NewDimensionless(1 / s.InUnit(), s.Unit())",
	} {
		if !strings.Contains(got, s) {
			t.Fatalf("expected %q in:\n%s", s, got)
		}
	}
}

func TestAugmentFlavors(t *testing.T) {
	cases := []struct {
		flavor   Flavor
		expected []string
	}{
		{
			Flavor{TypeName: "FloatDimensionless", Precision: Float, Style: StyleScalar},
			[]string{
				"func (s FloatDimensionless) Sqrt() FloatDimensionless {\n\treturn NewFloatDimensionless(float32(math.Sqrt(float64(s.InUnit()))), s.Unit())\n}",
				"func (s FloatDimensionless) Pow(x float32) FloatDimensionless {\n\treturn NewFloatDimensionless(float32(math.Pow(float64(s.InUnit()), float64(x))), s.Unit())\n}",
			},
		},
		{
			Flavor{TypeName: "DimensionlessVector", Precision: Double, Style: StyleVector},
			[]string{
				"func (v DimensionlessVector) Exp() DimensionlessVector {\n\treturn DimensionlessVector{v.Map(func(e float64) float64 { return math.Exp(e) })}\n}",
				"var _ value.MathFunctions[DimensionlessVector] = DimensionlessVector{}",
			},
		},
		{
			Flavor{TypeName: "FloatDimensionlessMatrix", Precision: Float, Style: StyleMatrix},
			[]string{
				"func (m FloatDimensionlessMatrix) Inv() FloatDimensionlessMatrix {\n\treturn FloatDimensionlessMatrix{m.Map(func(e float32) float32 { return float32(1 / float64(e)) })}\n}",
			},
		},
	}
	for _, c := range cases {
		t.Run(c.flavor.TypeName, func(t *testing.T) {
			got := Augment("%DIMLESS%\n", AugmentTranscendental, c.flavor)
			for _, s := range c.expected {
				if !strings.Contains(got, s) {
					t.Fatalf("expected %q in:\n%s", s, got)
				}
			}
		})
	}
}

func TestAugmentationString(t *testing.T) {
	if AugmentNone.String() != "none" || AugmentTranscendental.String() != "transcendentalMath" {
		t.Fatalf("unexpected names %q and %q", AugmentNone, AugmentTranscendental)
	}
}
