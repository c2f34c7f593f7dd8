// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"strings"
)

// segment is a span of a document. It is either literal text or a marker,
// that is one of the words of the vocabulary used to tokenize the document.
type segment struct {
	text   string
	marker bool
}

// tokenize splits src into literal and marker segments. Markers are found
// from left to right; when two words start at the same position the longest
// one is taken. Empty words are ignored.
func tokenize(src string, vocabulary []string) []segment {

	// next[i] is the position of the next occurrence of vocabulary[i] not
	// before pos, or -1 if there are no more occurrences.
	next := make([]int, len(vocabulary))
	for i, word := range vocabulary {
		if word == "" {
			next[i] = -1
			continue
		}
		next[i] = indexFrom(src, word, 0)
	}

	var segments []segment
	pos := 0
	for {
		best := -1
		for i, word := range vocabulary {
			if next[i] >= 0 && next[i] < pos {
				next[i] = indexFrom(src, word, pos)
			}
			if next[i] < 0 {
				continue
			}
			if best < 0 || next[i] < next[best] || next[i] == next[best] && len(word) > len(vocabulary[best]) {
				best = i
			}
		}
		if best < 0 {
			break
		}
		start := next[best]
		end := start + len(vocabulary[best])
		if start > pos {
			segments = append(segments, segment{text: src[pos:start]})
		}
		segments = append(segments, segment{text: src[start:end], marker: true})
		pos = end
	}
	if pos < len(src) {
		segments = append(segments, segment{text: src[pos:]})
	}

	return segments
}

// indexFrom returns the index of the first occurrence of word in s at or
// after from, or -1 if word is not present.
func indexFrom(s, word string, from int) int {
	i := strings.Index(s[from:], word)
	if i < 0 {
		return -1
	}
	return from + i
}

// join concatenates the text of segments.
func join(segments []segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.text)
	}
	return b.String()
}

// hasMarker reports whether segments contains a marker.
func hasMarker(segments []segment) bool {
	for _, s := range segments {
		if s.marker {
			return true
		}
	}
	return false
}
