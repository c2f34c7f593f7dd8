// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package generator

import (
	"strings"

	"github.com/open2b/unitgen/internal/catalog"
	"github.com/open2b/unitgen/internal/engine"
)

// CastMarker is the marker of the any-dimension scalar templates replaced
// with the cast methods.
const CastMarker = "%%ASMETHODS%%"

// castKind is the current kind of the any-dimension scalar documents.
const castKind = "SIScalar"

// CastTarget is a quantity kind an any-dimension scalar can be cast to.
type CastTarget struct {
	Kind string // kind name.
	Unit string // unit type name.
}

// CastTargets returns the cast targets of the relative kinds of c, sorted
// by kind name.
func CastTargets(c *catalog.Catalog) []CastTarget {
	kinds := c.RelativeKinds()
	targets := make([]CastTarget, len(kinds))
	for i, kind := range kinds {
		targets[i] = CastTarget{Kind: kind, Unit: c.Unit(kind)}
	}
	return targets
}

// castSkeleton is the skeleton of the pair of cast methods of a kind.
const castSkeleton = `
// As[kind] returns s as a [type]. It returns an error wrapping
// value.ErrDimensionMismatch if s does not have the dimension of [kind].
func (s [self]) As[kind]() ([type], error) {
	if !s.Unit().SIDimensions().Equal(unit.[unit]SI.SIDimensions()) {
		return [type]{}, fmt.Errorf("%w: cannot cast %s with dimensions %v to [kind] with dimensions %v", value.ErrDimensionMismatch, s, s.Unit().SIDimensions(), unit.[unit]SI.SIDimensions())
	}
	return New[type](s.SI(), unit.[unit]SI), nil
}

// As[kind]In returns s as a [type] displayed in displayUnit. It returns an
// error wrapping value.ErrDimensionMismatch if s does not have the
// dimension of [kind].
func (s [self]) As[kind]In(displayUnit *unit.[unit]) ([type], error) {
	if !s.Unit().SIDimensions().Equal(unit.[unit]SI.SIDimensions()) {
		return [type]{}, fmt.Errorf("%w: cannot cast %s with dimensions %v to [kind] with dimensions %v", value.ErrDimensionMismatch, s, s.Unit().SIDimensions(), unit.[unit]SI.SIDimensions())
	}
	return [type]FromSI(s.SI(), displayUnit), nil
}
`

// Casts returns the cast methods of the any-dimension scalar with
// precision p, two for each target.
func Casts(targets []CastTarget, p engine.Precision) string {
	prefix := p.Prefix()
	var b strings.Builder
	for _, t := range targets {
		b.WriteString(strings.NewReplacer(
			"[self]", prefix+castKind,
			"[kind]", t.Kind,
			"[type]", prefix+t.Kind,
			"[unit]", t.Unit,
		).Replace(castSkeleton))
	}
	return b.String()
}
