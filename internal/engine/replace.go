// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/open2b/unitgen/internal/catalog"
)

// GenerationMarker is replaced, in every document, with a comment that
// names the generator and the generation time.
const GenerationMarker = "// Code generated by unitgen. DO NOT EDIT."

// CycleError is returned by Replacer.Apply when the replacement rules do
// not reach a fixpoint, as when a rule text contains its own tag.
type CycleError struct {
	Kind   string
	Passes int
}

func (err *CycleError) Error() string {
	return fmt.Sprintf("engine: replacement rules for %s do not terminate after %d passes", err.Kind, err.Passes)
}

// Replacer applies the replacement rules to documents.
type Replacer struct {
	Rules     []catalog.Rule
	Generator string           // generator name in the generation comment; "unitgen" if empty.
	Now       func() time.Time // generation time; time.Now if nil.
}

// annotation returns the replacement of the generation marker.
func (r Replacer) annotation() string {
	generator := r.Generator
	if generator == "" {
		generator = "unitgen"
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return fmt.Sprintf("// Code generated by %s on %s. DO NOT EDIT.", generator, now().UTC().Format(time.RFC3339))
}

// Apply replaces the tags of the rules in text. The tag of a rule with
// scope kind is replaced with the rule text, the tag of any other rule
// with the empty string. Replacements are repeated until no tag is left,
// as a rule text can contain other tags. The generation marker is always
// replaced.
//
// Apply returns a *CycleError if the tags are still present after
// len(r.Rules)+1 passes.
func (r Replacer) Apply(text, kind string) (string, error) {
	vocabulary := make([]string, 0, len(r.Rules)+1)
	replacements := make(map[string]string, len(r.Rules)+1)
	for _, rule := range r.Rules {
		vocabulary = append(vocabulary, rule.Tag)
		if rule.Scope == kind {
			replacements[rule.Tag] = rule.Text
		} else {
			replacements[rule.Tag] = ""
		}
	}
	vocabulary = append(vocabulary, GenerationMarker)
	replacements[GenerationMarker] = r.annotation()

	maxPasses := len(r.Rules) + 1
	for pass := 0; ; pass++ {
		segments := tokenize(text, vocabulary)
		if !hasMarker(segments) {
			return text, nil
		}
		if pass == maxPasses {
			return "", &CycleError{Kind: kind, Passes: maxPasses}
		}
		var b strings.Builder
		for _, s := range segments {
			if s.marker {
				b.WriteString(replacements[s.text])
			} else {
				b.WriteString(s.text)
			}
		}
		text = b.String()
	}
}
