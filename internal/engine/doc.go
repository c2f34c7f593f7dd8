// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine implements the expansion of a template into a generated
// document.
//
// A template is plain text with markers. Name markers, as "%Type%",
// "%type%" and "%TYPE%", are replaced with the names bound to their roles.
// The operator-block marker "%FORMULAS%Kind%" is replaced with the
// operator methods of the kind, as read from the formula table. The
// interface marker "%DIMLESS%" declares the transcendental math
// capability of the dimensionless kind. Finally the tags of the
// replacement rules are replaced with the text of the rule scoped to the
// document kind, and the generation marker with the generation comment.
//
// Every transformation tokenizes the text into literal and marker
// segments and then rebuilds it, so no step depends on the positions of
// the markers in the original text.
package engine
