// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lit(s string) segment { return segment{text: s} }
func mrk(s string) segment { return segment{text: s, marker: true} }

func TestTokenize(t *testing.T) {
	cases := []struct {
		src        string
		vocabulary []string
		expected   []segment
	}{
		{"", []string{"%A%"}, nil},
		{"abc", nil, []segment{lit("abc")}},
		{"abc", []string{"%A%"}, []segment{lit("abc")}},
		{"%A%", []string{"%A%"}, []segment{mrk("%A%")}},
		{"x%A%y%A%", []string{"%A%"}, []segment{lit("x"), mrk("%A%"), lit("y"), mrk("%A%")}},
		{"%A%%B%", []string{"%B%", "%A%"}, []segment{mrk("%A%"), mrk("%B%")}},
		{"##AB##", []string{"##A", "##AB##"}, []segment{mrk("##AB##")}},
		{"##A##", []string{"##A", "##AB##"}, []segment{mrk("##A"), lit("##")}},
		{"%A%A%", []string{"%A%"}, []segment{mrk("%A%"), lit("A%")}},
		{"%FORMULAS%%Type%%", []string{"%Type%"}, []segment{lit("%FORMULAS%"), mrk("%Type%"), lit("%")}},
		{"a", []string{""}, []segment{lit("a")}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			got := tokenize(c.src, c.vocabulary)
			if diff := cmp.Diff(c.expected, got, cmp.AllowUnexported(segment{})); diff != "" {
				t.Fatalf("input: %q, unexpected segments (-expected +got):\n%s", c.src, diff)
			}
			if s := join(got); s != c.src {
				t.Fatalf("input: %q, joined segments are %q", c.src, s)
			}
		})
	}
}
