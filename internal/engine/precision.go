// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

// Precision is the numeric precision of a generated type.
type Precision int

const (
	Double Precision = iota // float64 values, unprefixed names.
	Float                   // float32 values, names prefixed with "Float".
)

// Precisions contains all the precisions.
var Precisions = []Precision{Double, Float}

func (p Precision) String() string {
	if p == Float {
		return "float"
	}
	return "double"
}

// Prefix returns the prefix of the names of the types with precision p.
func (p Precision) Prefix() string {
	if p == Float {
		return "Float"
	}
	return ""
}

// Style is the container of a generated type.
type Style int

const (
	StyleScalar Style = iota
	StyleVector
	StyleMatrix
)

func (s Style) String() string {
	switch s {
	case StyleVector:
		return "vector"
	case StyleMatrix:
		return "matrix"
	}
	return "scalar"
}

// receiver returns the receiver name used by the templates of style s.
func (s Style) receiver() string {
	switch s {
	case StyleVector:
		return "v"
	case StyleMatrix:
		return "m"
	}
	return "s"
}
