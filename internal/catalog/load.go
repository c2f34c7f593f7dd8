// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

// Sources names the four catalog documents in a file system.
type Sources struct {
	Paired     string // paired quantity descriptors.
	Singletons string // singleton quantity names.
	Formulas   string // formula table.
	Rules      string // replacement rules.
}

// DefaultSources are the names of the catalog documents in the resources.
var DefaultSources = Sources{
	Paired:     "TYPES_ABS_REL.txt",
	Singletons: "TYPES_REL.txt",
	Formulas:   "FORMULAS.txt",
	Rules:      "REPLACE.txt",
}

// Files returns the names of the sources.
func (s Sources) Files() []string {
	return []string{s.Paired, s.Singletons, s.Formulas, s.Rules}
}

// FormulaBlock is a kind of the formula table with its formulas.
type FormulaBlock struct {
	Kind     string
	Formulas []Formula
}

// MalformedError is returned when a catalog document is not well formed.
type MalformedError struct {
	Source string // document name.
	Line   int    // line number, starting from 1. 0 if not related to a line.
	Reason string
}

func (err *MalformedError) Error() string {
	switch {
	case err.Line > 0:
		return fmt.Sprintf("%s:%d: %s", err.Source, err.Line, err.Reason)
	case err.Source != "":
		return fmt.Sprintf("%s: %s", err.Source, err.Reason)
	}
	return "catalog: " + err.Reason
}

// Load reads and parses the catalog documents src from fsys.
// It returns a *MalformedError if a document is not well formed; no
// partial catalog is returned.
func Load(fsys fs.FS, src Sources) (*Catalog, error) {
	paired, err := parseFile(fsys, src.Paired, ParsePaired)
	if err != nil {
		return nil, err
	}
	singletons, err := parseFile(fsys, src.Singletons, ParseSingletons)
	if err != nil {
		return nil, err
	}
	formulas, err := parseFile(fsys, src.Formulas, ParseFormulas)
	if err != nil {
		return nil, err
	}
	rules, err := parseFile(fsys, src.Rules, ParseRules)
	if err != nil {
		return nil, err
	}
	// Each document is free of duplicates, so New can only report a kind
	// declared in both the paired and the singleton documents.
	c, err := New(paired, singletons, formulas, rules)
	if err != nil {
		if e, ok := err.(*MalformedError); ok && e.Source == "" {
			e.Source = src.Paired + " and " + src.Singletons
		}
		return nil, err
	}
	return c, nil
}

// New returns a catalog with the given tables. It returns a
// *MalformedError if a quantity kind is declared more than once or a
// formula block is declared more than once.
func New(paired []Paired, singletons []string, formulas []FormulaBlock, rules []Rule) (*Catalog, error) {
	c := &Catalog{
		paired:     append([]Paired(nil), paired...),
		singletons: append([]string(nil), singletons...),
		formulas:   make(map[string][]Formula, len(formulas)),
		kinds:      make([]string, 0, len(formulas)),
		rules:      append([]Rule(nil), rules...),
	}
	declared := map[string]bool{}
	declare := func(name string) error {
		if declared[name] {
			return &MalformedError{Reason: fmt.Sprintf("quantity kind %q is declared twice", name)}
		}
		declared[name] = true
		return nil
	}
	for _, p := range paired {
		if err := declare(p.Abs); err != nil {
			return nil, err
		}
		if err := declare(p.Rel); err != nil {
			return nil, err
		}
	}
	for _, s := range singletons {
		if err := declare(s); err != nil {
			return nil, err
		}
	}
	for _, b := range formulas {
		if _, ok := c.formulas[b.Kind]; ok {
			return nil, &MalformedError{Reason: fmt.Sprintf("formula kind %q is declared twice", b.Kind)}
		}
		c.formulas[b.Kind] = append([]Formula{}, b.Formulas...)
		c.kinds = append(c.kinds, b.Kind)
	}
	tags := map[string]bool{}
	for _, r := range rules {
		if tags[r.Tag] {
			return nil, &MalformedError{Reason: fmt.Sprintf("rule tag %q is declared twice", r.Tag)}
		}
		tags[r.Tag] = true
	}
	return c, nil
}

// parseFile opens the file name in fsys and parses it with parse.
func parseFile[T any](fsys fs.FS, name string, parse func(io.Reader, string) (T, error)) (T, error) {
	var zero T
	f, err := fsys.Open(name)
	if err != nil {
		return zero, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()
	return parse(f, name)
}

// ParsePaired parses a paired-type document. Every non-empty line holds
// the four comma-separated fields
//
//	AbsoluteName,RelativeName,AbsoluteUnitName,RelativeUnitName
func ParsePaired(r io.Reader, source string) ([]Paired, error) {
	var paired []Paired
	declared := map[string]bool{}
	err := scanLines(r, func(ln int, line string) error {
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}
		fields := strings.Split(line, ",")
		if len(fields) != 4 {
			return &MalformedError{Source: source, Line: ln, Reason: "bad paired-type line"}
		}
		for i, f := range fields {
			fields[i] = strings.TrimSpace(f)
			if fields[i] == "" {
				return &MalformedError{Source: source, Line: ln, Reason: "bad paired-type line"}
			}
		}
		for _, name := range fields[:2] {
			if declared[name] {
				return &MalformedError{Source: source, Line: ln, Reason: fmt.Sprintf("quantity kind %q is declared twice", name)}
			}
			declared[name] = true
		}
		paired = append(paired, Paired{Abs: fields[0], Rel: fields[1], AbsUnit: fields[2], RelUnit: fields[3]})
		return nil
	})
	if err != nil {
		return nil, wrapReadError(err, source)
	}
	return paired, nil
}

// ParseSingletons parses a singleton-type document: one name per line.
func ParseSingletons(r io.Reader, source string) ([]string, error) {
	var names []string
	declared := map[string]bool{}
	err := scanLines(r, func(ln int, line string) error {
		name := strings.TrimSpace(line)
		if name == "" {
			return nil
		}
		if declared[name] {
			return &MalformedError{Source: source, Line: ln, Reason: fmt.Sprintf("quantity kind %q is declared twice", name)}
		}
		declared[name] = true
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, wrapReadError(err, source)
	}
	return names, nil
}

// ParseFormulas parses a formula document. A line starting with '%' opens
// the block of the kind it names, as "%Length%". The other non-blank lines
// are formulas of the open block, as "/Duration=Speed" or "*Length=Area".
func ParseFormulas(r io.Reader, source string) ([]FormulaBlock, error) {
	var blocks []FormulaBlock
	declared := map[string]bool{}
	err := scanLines(r, func(ln int, line string) error {
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}
		if line[0] == '%' {
			kind := strings.TrimSpace(strings.ReplaceAll(line, "%", ""))
			if kind == "" {
				return &MalformedError{Source: source, Line: ln, Reason: "missing kind name in formula header"}
			}
			if declared[kind] {
				return &MalformedError{Source: source, Line: ln, Reason: fmt.Sprintf("formula kind %q is declared twice", kind)}
			}
			declared[kind] = true
			blocks = append(blocks, FormulaBlock{Kind: kind})
			return nil
		}
		if len(blocks) == 0 {
			return &MalformedError{Source: source, Line: ln, Reason: "formula line outside of a kind block"}
		}
		f, err := parseFormula(line)
		if err != nil {
			return &MalformedError{Source: source, Line: ln, Reason: err.Error()}
		}
		b := &blocks[len(blocks)-1]
		b.Formulas = append(b.Formulas, f)
		return nil
	})
	if err != nil {
		return nil, wrapReadError(err, source)
	}
	return blocks, nil
}

// parseFormula parses a formula line. The first character is the operator.
func parseFormula(line string) (Formula, error) {
	f := Formula{Op: Multiply}
	if line[0] == '/' {
		f.Op = Divide
	}
	rest := line[1:]
	if strings.Count(rest, "=") != 1 {
		return f, fmt.Errorf("formula %q must contain exactly one '='", line)
	}
	operand, result, _ := strings.Cut(rest, "=")
	f.Operand = strings.TrimSpace(operand)
	f.Result = strings.TrimSpace(result)
	if f.Operand == "" || f.Result == "" {
		return f, fmt.Errorf("formula %q has an empty operand or result", line)
	}
	return f, nil
}

// ParseRules parses a replacement-rule document. A rule starts with a
// header line holding its tag, as "##DURATION_EXTRAS##", followed by a line
// with the scope kind and by the lines of its text, up to the next header
// or the end of the document.
func ParseRules(r io.Reader, source string) ([]Rule, error) {
	var rules []Rule
	var body strings.Builder
	var header int // line of the open header, 0 if there is no open header.
	var wantScope bool
	declared := map[string]bool{}
	flush := func() {
		if len(rules) > 0 {
			rules[len(rules)-1].Text = body.String()
		}
		body.Reset()
	}
	err := scanLines(r, func(ln int, line string) error {
		if wantScope {
			scope := strings.TrimSpace(line)
			if scope == "" || strings.HasPrefix(scope, "##") {
				return &MalformedError{Source: source, Line: header, Reason: "unterminated rule block"}
			}
			rules[len(rules)-1].Scope = scope
			wantScope = false
			return nil
		}
		if tag := strings.TrimSpace(line); strings.HasPrefix(tag, "##") {
			flush()
			if declared[tag] {
				return &MalformedError{Source: source, Line: ln, Reason: fmt.Sprintf("rule tag %q is declared twice", tag)}
			}
			declared[tag] = true
			rules = append(rules, Rule{Tag: tag})
			header = ln
			wantScope = true
			return nil
		}
		if header == 0 {
			if strings.TrimSpace(line) != "" {
				return &MalformedError{Source: source, Line: ln, Reason: "text before the first rule header"}
			}
			return nil
		}
		body.WriteString(line)
		body.WriteByte('\n')
		return nil
	})
	if err != nil {
		return nil, wrapReadError(err, source)
	}
	if wantScope {
		return nil, &MalformedError{Source: source, Line: header, Reason: "unterminated rule block"}
	}
	flush()
	return rules, nil
}

// scanLines calls f for every line of r with its line number.
func scanLines(r io.Reader, f func(ln int, line string) error) error {
	scanner := bufio.NewScanner(r)
	ln := 0
	for scanner.Scan() {
		ln++
		if err := f(ln, scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// wrapReadError adds the source name to a read error. A *MalformedError is
// returned unchanged.
func wrapReadError(err error, source string) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*MalformedError); ok {
		return err
	}
	return fmt.Errorf("catalog: cannot read %s: %w", source, err)
}
