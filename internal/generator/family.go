// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package generator

import (
	"path"
	"strings"
	"unicode"

	"github.com/open2b/unitgen/internal/engine"
)

// Family is a family of generated types sharing the same container.
type Family struct {
	Name   string       // template directory and package name.
	Style  engine.Style // container style.
	Suffix string       // suffix of the type names.
}

// Families contains the families of generated types.
var Families = []Family{
	{Name: "scalar", Style: engine.StyleScalar},
	{Name: "vector", Style: engine.StyleVector, Suffix: "Vector"},
	{Name: "matrix", Style: engine.StyleMatrix, Suffix: "Matrix"},
}

// Template variants.
const (
	variantRel     = "rel"      // relative member of a singleton kind.
	variantRelPair = "rel_pair" // relative member of a paired kind.
	variantAbs     = "abs"      // absolute member of a paired kind.
)

// templatePath returns the path of the template of family f with
// precision p and the given variant.
func templatePath(f Family, p engine.Precision, variant string) string {
	return f.Name + "/" + p.String() + "_" + variant + ".go.tmpl"
}

// castTemplatePath returns the path of the any-dimension scalar template
// with precision p.
func castTemplatePath(p engine.Precision) string {
	return "siscalar/" + p.String() + ".go.tmpl"
}

// precisionDir returns the output directory of the types with precision p.
func precisionDir(p engine.Precision) string {
	if p == engine.Float {
		return "vfloat"
	}
	return "vdouble"
}

// outputPath returns the slash-separated output path, relative to the
// output root, of the type typ of family f with precision p.
func outputPath(f Family, p engine.Precision, typ string) string {
	return path.Join("value", precisionDir(p), f.Name, snakeCase(typ)+".go")
}

// snakeCase converts a type name to snake case. A sequence of upper case
// letters is kept as a single word, as in "SIScalar" to "si_scalar".
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			next := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && next) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
