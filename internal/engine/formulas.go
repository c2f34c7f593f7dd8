// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/open2b/unitgen/internal/catalog"
)

// OperatorMarker is the operator-block marker. In a document it is
// immediately followed by a kind name and by the closing delimiter '%',
// as in "%FORMULAS%Length%".
const OperatorMarker = "%FORMULAS%"

var (
	ErrUnterminatedOperatorMarker = errors.New("unterminated operator marker")
	ErrUnknownFormulaKind         = errors.New("unknown formula kind")
)

// FormulaError is a diagnostic of the resolution of the operator-block
// marker of a document. It is not fatal: the marker is dropped and the
// document is generated without operator methods.
type FormulaError struct {
	Document string // kind, or name, of the document.
	Kind     string // kind named by the marker; empty if unterminated.
	Err      error
}

func (err *FormulaError) Error() string {
	if err.Kind == "" {
		return fmt.Sprintf("%s: %s", err.Document, err.Err)
	}
	return fmt.Sprintf("%s: %s %q", err.Document, err.Err, err.Kind)
}

func (err *FormulaError) Unwrap() error {
	return err.Err
}

// FormulaSource is the source of the formulas of the kinds and of the
// names of their unit types. *catalog.Catalog implements it.
type FormulaSource interface {
	Formulas(kind string) ([]catalog.Formula, bool)
	Unit(kind string) string
}

// Resolver resolves the operator-block markers of documents.
type Resolver struct {
	Formulas  FormulaSource
	Precision Precision
	Style     Style
}

// Resolve replaces the operator-block markers in text with the operator
// methods of the named kinds. owner identifies the document in the
// returned diagnostics.
//
// Only scalars get operator methods; for vectors and matrices the marker
// is replaced with nothing.
func (r Resolver) Resolve(text, owner string) (string, []*FormulaError) {
	var diagnostics []*FormulaError
	// Every iteration removes one marker.
	for n := strings.Count(text, OperatorMarker); n > 0; n-- {
		segments := tokenize(text, []string{OperatorMarker})
		i := 0
		for i < len(segments) && !segments[i].marker {
			i++
		}
		if i == len(segments) {
			break
		}
		before := join(segments[:i])
		after := join(segments[i+1:])
		end := strings.IndexByte(after, '%')
		if end < 0 {
			diagnostics = append(diagnostics, &FormulaError{Document: owner, Err: ErrUnterminatedOperatorMarker})
			text = before + after
			continue
		}
		kind, rest := after[:end], after[end+1:]
		formulas, ok := r.Formulas.Formulas(kind)
		if !ok {
			diagnostics = append(diagnostics, &FormulaError{Document: owner, Kind: kind, Err: ErrUnknownFormulaKind})
			text = before + rest
			continue
		}
		text = before + r.methods(kind, formulas) + rest
	}
	return text, diagnostics
}

// scalarMethodSkeleton is the skeleton of a scalar operator method.
const scalarMethodSkeleton = `
// [method] calculates the [operation] of [type] and [operand],
// which results in a [result] scalar.
func (s [type]) [method](v [operand]) [result] {
	return New[result](s.SI()[op]v.SI(), unit.[unit]SI)
}
`

// methods returns the operator methods of kind.
func (r Resolver) methods(kind string, formulas []catalog.Formula) string {
	if r.Style != StyleScalar {
		return ""
	}
	prefix := r.Precision.Prefix()
	var b strings.Builder
	for _, f := range formulas {
		method, operation := "MultiplyBy", "multiplication"
		if f.Op == catalog.Divide {
			method, operation = "DivideBy", "division"
		}
		b.WriteString(strings.NewReplacer(
			"[method]", method+f.Operand,
			"[operation]", operation,
			"[type]", prefix+kind,
			"[operand]", prefix+f.Operand,
			"[result]", prefix+f.Result,
			"[op]", f.Op.String(),
			"[unit]", r.Formulas.Unit(f.Result),
		).Replace(scalarMethodSkeleton))
	}
	return b.String()
}
