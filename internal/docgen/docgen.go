// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package docgen writes the documentation of a catalog, as Markdown or as
// HTML.
package docgen

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/open2b/unitgen/internal/catalog"
)

// Markdown writes the documentation of c in Markdown to w.
func Markdown(w io.Writer, c *catalog.Catalog) error {
	var b bytes.Buffer
	b.WriteString("# Quantity kinds\n\n")
	b.WriteString("| Kind | Variant | Counterpart | Unit | Formulas |\n")
	b.WriteString("|------|---------|-------------|------|----------|\n")
	for _, kind := range c.Kinds() {
		variant, counterpart := "relative", ""
		if p, ok := c.PairOf(kind); ok {
			if kind == p.Abs {
				variant, counterpart = "absolute", p.Rel
			} else {
				counterpart = p.Abs
			}
		}
		unit := c.Unit(kind)
		formulas, _ := c.Formulas(kind)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d |\n", kind, variant, counterpart, unit, len(formulas))
	}
	for _, kind := range c.Kinds() {
		formulas, _ := c.Formulas(kind)
		if len(formulas) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", kind)
		b.WriteString("| Operation | Result |\n")
		b.WriteString("|-----------|--------|\n")
		for _, f := range formulas {
			fmt.Fprintf(&b, "| `%s %s %s` | %s |\n", kind, f.Op, f.Operand, f.Result)
		}
	}
	if rules := c.Rules(); len(rules) > 0 {
		b.WriteString("\n## Extensions\n\n")
		b.WriteString("| Tag | Kind |\n")
		b.WriteString("|-----|------|\n")
		for _, r := range rules {
			fmt.Fprintf(&b, "| `%s` | %s |\n", r.Tag, r.Scope)
		}
	}
	_, err := w.Write(b.Bytes())
	return err
}

// HTML writes the documentation of c in HTML to w.
func HTML(w io.Writer, c *catalog.Catalog) error {
	var src bytes.Buffer
	err := Markdown(&src, c)
	if err != nil {
		return err
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	return md.Convert(src.Bytes(), w)
}
