// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalog implements the declarative input model of the generator:
// the quantity kinds, their formulas and the kind-scoped replacement rules.
//
// A Catalog is built once by Load and is never modified afterwards. Every
// accessor returns a copy, so a Catalog can be shared by concurrent
// generation jobs without synchronization.
package catalog

import (
	"sort"
)

// Paired describes a quantity that has both an absolute and a relative
// flavor, as a position and a length.
type Paired struct {
	Abs     string // absolute type name, as "Position".
	Rel     string // relative type name, as "Length".
	AbsUnit string // absolute unit type name, as "PositionUnit".
	RelUnit string // relative unit type name, as "LengthUnit".
}

// Operator is the arithmetic operator of a formula.
type Operator int

const (
	Multiply Operator = iota
	Divide
)

// String returns the operator symbol.
func (op Operator) String() string {
	if op == Divide {
		return "/"
	}
	return "*"
}

// Formula reads "owner Op Operand = Result", where the owner is the kind
// whose formula list contains the formula.
type Formula struct {
	Op      Operator
	Operand string
	Result  string
}

// Rule is a replacement rule. Its tag expands to Text in documents of
// the Scope kind and to the empty string in every other document.
type Rule struct {
	Tag   string
	Scope string
	Text  string
}

// Catalog is the immutable result of a load.
type Catalog struct {
	paired     []Paired
	singletons []string
	formulas   map[string][]Formula
	kinds      []string // formula kinds in source order.
	rules      []Rule
}

// Paired returns the paired descriptors in source order.
func (c *Catalog) Paired() []Paired {
	return append([]Paired(nil), c.paired...)
}

// Singletons returns the singleton kind names in source order.
func (c *Catalog) Singletons() []string {
	return append([]string(nil), c.singletons...)
}

// Formulas returns the formulas of kind and reports whether the formula
// table has a block for kind. A declared kind can have no formulas.
func (c *Catalog) Formulas(kind string) ([]Formula, bool) {
	formulas, ok := c.formulas[kind]
	if !ok {
		return nil, false
	}
	return append([]Formula(nil), formulas...), true
}

// FormulaKinds returns the kinds of the formula table in source order.
func (c *Catalog) FormulaKinds() []string {
	return append([]string(nil), c.kinds...)
}

// Rules returns the replacement rules in source order.
func (c *Catalog) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// RelativeKinds returns, sorted, the singleton kinds and the relative
// members of the paired descriptors.
func (c *Catalog) RelativeKinds() []string {
	kinds := make([]string, 0, len(c.singletons)+len(c.paired))
	kinds = append(kinds, c.singletons...)
	for _, p := range c.paired {
		kinds = append(kinds, p.Rel)
	}
	sort.Strings(kinds)
	return kinds
}

// Kinds returns, sorted, every quantity kind of the catalog.
func (c *Catalog) Kinds() []string {
	kinds := c.RelativeKinds()
	for _, p := range c.paired {
		kinds = append(kinds, p.Abs)
	}
	sort.Strings(kinds)
	return kinds
}

// Has reports whether kind is a quantity kind of the catalog.
func (c *Catalog) Has(kind string) bool {
	for _, p := range c.paired {
		if p.Abs == kind || p.Rel == kind {
			return true
		}
	}
	for _, s := range c.singletons {
		if s == kind {
			return true
		}
	}
	return false
}

// PairOf returns the paired descriptor that has kind as its absolute or
// relative member.
func (c *Catalog) PairOf(kind string) (Paired, bool) {
	for _, p := range c.paired {
		if p.Abs == kind || p.Rel == kind {
			return p, true
		}
	}
	return Paired{}, false
}

// Unit returns the name of the unit type of kind: the unit declared by its
// paired descriptor or, for the singleton kinds, the kind name followed by
// "Unit".
func (c *Catalog) Unit(kind string) string {
	if p, ok := c.PairOf(kind); ok {
		if p.Abs == kind {
			return p.AbsUnit
		}
		return p.RelUnit
	}
	return kind + "Unit"
}
