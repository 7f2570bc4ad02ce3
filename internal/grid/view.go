// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the View, the leaf content unit of a part, and its
// navigation descriptor.
package grid

import (
	"maps"
	"slices"
	"strings"
)

// View is a content unit stacked in a part.
type View struct {
	ID         string
	Alias      string
	Navigation *Navigation
	CSSClass   []string
	// MarkedForRemoval is the tombstone set by a soft removal awaiting
	// confirmation.
	MarkedForRemoval bool
}

// NewView creates a view with the given id.
func NewView(id string) *View {
	return &View{ID: id}
}

// Clone returns a deep copy of the view. Nil fields stay nil.
func (v *View) Clone() *View {
	c := *v
	c.Navigation = v.Navigation.Clone()
	c.CSSClass = slices.Clone(v.CSSClass)
	return &c
}

// Navigation describes where a view points to.
type Navigation struct {
	// ID changes on every navigation of the view.
	ID   string
	Path []Segment
	Hint string
	Data map[string]string
}

// Clone returns a deep copy of the descriptor; nil stays nil.
func (n *Navigation) Clone() *Navigation {
	if n == nil {
		return nil
	}
	c := *n
	c.Path = cloneSegments(n.Path)
	c.Data = maps.Clone(n.Data)
	return &c
}

func cloneSegments(segs []Segment) []Segment {
	if segs == nil {
		return nil
	}
	c := make([]Segment, len(segs))
	for i, s := range segs {
		c[i] = Segment{Path: s.Path, Params: maps.Clone(s.Params)}
	}
	return c
}

// Segment is one element of a navigation path with optional matrix
// parameters.
type Segment struct {
	Path   string
	Params map[string]string
}

// Segments builds parameterless segments from plain path elements.
func Segments(paths ...string) []Segment {
	segs := make([]Segment, len(paths))
	for i, p := range paths {
		segs[i] = Segment{Path: p}
	}
	return segs
}

// PathString renders segments as a slash-separated path, parameters
// included in matrix notation (e.g. "users/42;tab=info").
func PathString(segs []Segment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		var sb strings.Builder
		sb.WriteString(s.Path)
		keys := make([]string, 0, len(s.Params))
		for k := range s.Params {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			sb.WriteString(";" + k + "=" + s.Params[k])
		}
		parts[i] = sb.String()
	}
	return strings.Join(parts, "/")
}

// EqualPath reports whether two paths are identical, parameters included.
func EqualPath(a, b []Segment) bool {
	return PathString(a) == PathString(b)
}
