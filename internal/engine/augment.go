// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"strings"
)

// InterfaceMarker marks where a template declares the capabilities of
// its type.
const InterfaceMarker = "%DIMLESS%"

// Augmentation is the augmentation strategy of a document.
type Augmentation int

const (
	AugmentNone           Augmentation = iota // no augmentation.
	AugmentTranscendental                     // transcendental math functions.
)

func (a Augmentation) String() string {
	if a == AugmentTranscendental {
		return "transcendentalMath"
	}
	return "none"
}

// Flavor identifies the generated type of a document.
type Flavor struct {
	TypeName  string // name of the generated type, as "FloatDimensionlessVector".
	Precision Precision
	Style     Style
}

// transcendental contains the transcendental functions. In the docs, [r]
// is the receiver; in the expressions, [v] is the value and [x] is the
// argument of the method.
var transcendental = []struct {
	name string
	doc  string
	expr string
	arg  bool
}{
	{"Acos", "the arc cosine of [r]", "math.Acos([v])", false},
	{"Asin", "the arc sine of [r]", "math.Asin([v])", false},
	{"Atan", "the arc tangent of [r]", "math.Atan([v])", false},
	{"Cbrt", "the cube root of [r]", "math.Cbrt([v])", false},
	{"Cos", "the cosine of [r]", "math.Cos([v])", false},
	{"Cosh", "the hyperbolic cosine of [r]", "math.Cosh([v])", false},
	{"Exp", "e raised to the power of [r]", "math.Exp([v])", false},
	{"Expm1", "e raised to the power of [r], minus one", "math.Expm1([v])", false},
	{"Log", "the natural logarithm of [r]", "math.Log([v])", false},
	{"Log10", "the base 10 logarithm of [r]", "math.Log10([v])", false},
	{"Log1p", "the natural logarithm of one plus [r]", "math.Log1p([v])", false},
	{"Pow", "[r] raised to the power x", "math.Pow([v], [x])", true},
	{"Signum", "the sign of [r]", "value.Signum([v])", false},
	{"Sin", "the sine of [r]", "math.Sin([v])", false},
	{"Sinh", "the hyperbolic sine of [r]", "math.Sinh([v])", false},
	{"Sqrt", "the square root of [r]", "math.Sqrt([v])", false},
	{"Tan", "the tangent of [r]", "math.Tan([v])", false},
	{"Tanh", "the hyperbolic tangent of [r]", "math.Tanh([v])", false},
	{"Inv", "the inverse of [r]", "1 / [v]", false},
}

// Augment applies the augmentation a to text. With AugmentTranscendental
// the interface marker is replaced with the assertion that the type
// implements value.MathFunctions and the transcendental methods are
// inserted before the operator-block marker, or at the end if there is no
// such marker. With AugmentNone the interface marker is removed.
func Augment(text string, a Augmentation, f Flavor) string {
	var b strings.Builder
	inserted := false
	for _, s := range tokenize(text, []string{InterfaceMarker, OperatorMarker}) {
		switch {
		case !s.marker:
			b.WriteString(s.text)
		case s.text == InterfaceMarker:
			if a == AugmentTranscendental {
				b.WriteString(interfaceClause(f.TypeName))
			}
		default:
			if a == AugmentTranscendental && !inserted {
				b.WriteString(transcendentalMethods(f))
				inserted = true
			}
			b.WriteString(s.text)
		}
	}
	if a == AugmentTranscendental && !inserted {
		b.WriteString(transcendentalMethods(f))
	}
	return b.String()
}

// interfaceClause returns the declaration asserting that typ implements
// the math functions.
func interfaceClause(typ string) string {
	return "// " + typ + " implements value.MathFunctions.\nvar _ value.MathFunctions[" + typ + "] = " + typ + "{}\n"
}

// transcendentalMethods returns the transcendental methods of f.
func transcendentalMethods(f Flavor) string {
	recv := f.Style.receiver()
	elem, conv := "float64", ""
	if f.Precision == Float {
		elem, conv = "float32", "float32"
	}
	var b strings.Builder
	for _, fn := range transcendental {
		var v, x string
		if f.Style == StyleScalar {
			v = recv + ".InUnit()"
		} else {
			v = "e"
		}
		x = "x"
		if f.Precision == Float {
			v, x = "float64("+v+")", "float64(x)"
		}
		expr := strings.NewReplacer("[v]", v, "[x]", x).Replace(fn.expr)
		if conv != "" {
			expr = conv + "(" + expr + ")"
		}
		var param string
		if fn.arg {
			param = "x " + elem
		}
		doc := strings.Replace(fn.doc, "[r]", recv, 1)
		b.WriteString("\n// " + fn.name + " returns " + doc + ".\n")
		b.WriteString("func (" + recv + " " + f.TypeName + ") " + fn.name + "(" + param + ") " + f.TypeName + " {\n")
		if f.Style == StyleScalar {
			b.WriteString("\treturn New" + f.TypeName + "(" + expr + ", " + recv + ".Unit())\n")
		} else {
			b.WriteString("\treturn " + f.TypeName + "{" + recv + ".Map(func(e " + elem + ") " + elem + " { return " + expr + " })}\n")
		}
		b.WriteString("}\n")
	}
	return b.String()
}
