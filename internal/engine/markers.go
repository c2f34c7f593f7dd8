// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"strings"

	"github.com/open2b/unitgen/internal/catalog"
)

// Role is a name slot of a template. Every role has three markers: the
// exact case marker, as "%TypeAbs%", the lower case marker, as
// "%typeabs%", and the upper case marker, as "%TYPEABS%".
type Role int

const (
	RoleType        Role = iota // name of a singleton kind.
	RoleTypeAbs                 // absolute name of a paired kind.
	RoleTypeRel                 // relative name of a paired kind.
	RoleTypeAbsUnit             // absolute unit name of a paired kind.
	RoleTypeRelUnit             // relative unit name of a paired kind.
)

var roleNames = [...]string{
	RoleType:        "Type",
	RoleTypeAbs:     "TypeAbs",
	RoleTypeRel:     "TypeRel",
	RoleTypeAbsUnit: "TypeAbsUnit",
	RoleTypeRelUnit: "TypeRelUnit",
}

func (r Role) String() string {
	if r.valid() {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r Role) valid() bool {
	return r >= 0 && int(r) < len(roleNames)
}

// Markers returns the exact, lower and upper case markers of r.
func (r Role) Markers() [3]string {
	name := r.String()
	return [3]string{
		"%" + name + "%",
		"%" + strings.ToLower(name) + "%",
		"%" + strings.ToUpper(name) + "%",
	}
}

// Bindings binds roles to names.
type Bindings map[Role]string

// SingletonBindings returns the bindings of a singleton template.
func SingletonBindings(name string) Bindings {
	return Bindings{RoleType: name}
}

// PairedBindings returns the bindings of the templates of a paired kind.
func PairedBindings(p catalog.Paired) Bindings {
	return Bindings{
		RoleTypeAbs:     p.Abs,
		RoleTypeRel:     p.Rel,
		RoleTypeAbsUnit: p.AbsUnit,
		RoleTypeRelUnit: p.RelUnit,
	}
}

// markerCase is the case of a marker.
type markerCase int

const (
	exactCase markerCase = iota
	lowerCase
	upperCase
)

// markerInfo is the role and the case of a marker.
type markerInfo struct {
	role Role
	mc   markerCase
}

// markerRole maps every marker to its role and case.
var markerRole = map[string]markerInfo{}

// markerVocabulary contains the markers of all the roles.
var markerVocabulary []string

func init() {
	for r := range roleNames {
		for c, m := range Role(r).Markers() {
			markerRole[m] = markerInfo{Role(r), markerCase(c)}
			markerVocabulary = append(markerVocabulary, m)
		}
	}
}

// UnknownRoleError is returned by Expand when a template uses a marker of
// a role that is not bound, or when a binding refers to a role that does
// not exist.
type UnknownRoleError struct {
	Role   string
	Marker string // marker found in the template; empty for an undeclared role.
}

func (err *UnknownRoleError) Error() string {
	if err.Marker == "" {
		return fmt.Sprintf("engine: unknown role %s", err.Role)
	}
	return fmt.Sprintf("engine: marker %s refers to the unbound role %s", err.Marker, err.Role)
}

// Expand replaces every marker of the bound roles in template with the
// name bound to the role, in the case of the marker. It returns an
// *UnknownRoleError if template contains a marker of an unbound role.
func Expand(template string, b Bindings) (string, error) {
	for r := range b {
		if !r.valid() {
			return "", &UnknownRoleError{Role: r.String()}
		}
	}
	var s strings.Builder
	s.Grow(len(template))
	for _, seg := range tokenize(template, markerVocabulary) {
		if !seg.marker {
			s.WriteString(seg.text)
			continue
		}
		m := markerRole[seg.text]
		name, ok := b[m.role]
		if !ok {
			return "", &UnknownRoleError{Role: m.role.String(), Marker: seg.text}
		}
		switch m.mc {
		case lowerCase:
			name = strings.ToLower(name)
		case upperCase:
			name = strings.ToUpper(name)
		}
		s.WriteString(name)
	}
	return s.String(), nil
}
