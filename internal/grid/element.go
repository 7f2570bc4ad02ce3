// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the tree entities: the Element sum type and its two
// variants, Node and Part.
package grid

import (
	"fmt"
	"maps"
	"slices"
)

// Well-known grid names and part ids.
const (
	// GridMain is the name of the primary grid.
	GridMain = "main"
	// GridMainArea is the name of the grid embedded by the main-area part.
	GridMainArea = "mainArea"
	// MainAreaPartID identifies the designated container part of the main grid.
	MainAreaPartID = "part.main-area"
	// InitialPartID identifies the part a fresh grid starts with.
	InitialPartID = "part.initial"
)

// Direction is the axis along which a node splits its space.
type Direction string

const (
	// Row places the children side by side.
	Row Direction = "row"
	// Column stacks the children on top of each other.
	Column Direction = "column"
)

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == Row || d == Column
}

// Element is a position in the tree: either a *Node or a *Part.
type Element interface {
	// ElementID returns the id of the node or part.
	ElementID() string
	// Parent returns the node holding this element, or nil for a grid root.
	Parent() *Node

	setParent(n *Node)
	element()
}

// Node is a binary split of two elements.
type Node struct {
	ID        string
	Child1    Element
	Child2    Element
	Direction Direction
	// Ratio is the proportion of space given to Child1.
	Ratio float64

	parent *Node
}

// NewNode creates a split node and links both children to it.
func NewNode(id string, child1, child2 Element, direction Direction, ratio float64) (*Node, error) {
	if isNilElement(child1) || isNilElement(child2) {
		return nil, &IllegalArgumentError{Msg: fmt.Sprintf("node %q requires two children", id)}
	}
	if !direction.Valid() {
		return nil, &IllegalArgumentError{Msg: fmt.Sprintf("node %q has invalid direction %q", id, direction)}
	}
	if !ValidRatio(ratio) {
		return nil, &IllegalArgumentError{Msg: fmt.Sprintf("node %q has ratio %v outside [0,1]", id, ratio)}
	}
	n := &Node{ID: id, Child1: child1, Child2: child2, Direction: direction, Ratio: ratio}
	child1.setParent(n)
	child2.setParent(n)
	return n, nil
}

func (n *Node) ElementID() string { return n.ID }
func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) setParent(p *Node) { n.parent = p }
func (n *Node) element()          {}

// ReplaceChild swaps old for replacement, linking the replacement to n.
// It reports whether old was a child of n.
func (n *Node) ReplaceChild(old, replacement Element) bool {
	switch {
	case n.Child1 == old:
		n.Child1 = replacement
	case n.Child2 == old:
		n.Child2 = replacement
	default:
		return false
	}
	replacement.setParent(n)
	return true
}

// Sibling returns the other child of n.
func (n *Node) Sibling(child Element) Element {
	if n.Child1 == child {
		return n.Child2
	}
	return n.Child1
}

// Part is a container holding an ordered stack of views.
type Part struct {
	ID           string
	Alias        string
	Views        []*View
	ActiveViewID string
	// Structural parts are kept when their last view goes away.
	Structural bool
	Navigation *PartNavigation
	CSSClass   []string

	parent *Node
}

// NewPart creates a part holding the given views.
func NewPart(id string, structural bool, views ...*View) (*Part, error) {
	if id == "" {
		return nil, &IllegalArgumentError{Msg: "part id must not be empty"}
	}
	seen := make(map[string]struct{}, len(views))
	for _, v := range views {
		if v == nil {
			return nil, &IllegalArgumentError{Msg: fmt.Sprintf("part %q contains a nil view", id)}
		}
		if _, dup := seen[v.ID]; dup {
			return nil, &ViewAddError{ID: v.ID}
		}
		seen[v.ID] = struct{}{}
	}
	return &Part{ID: id, Structural: structural, Views: views}, nil
}

func (p *Part) ElementID() string { return p.ID }
func (p *Part) Parent() *Node     { return p.parent }
func (p *Part) setParent(n *Node) { p.parent = n }
func (p *Part) element()          {}

// ViewIndex returns the position of the view in the stack, or -1.
func (p *Part) ViewIndex(viewID string) int {
	return slices.IndexFunc(p.Views, func(v *View) bool { return v.ID == viewID })
}

// View returns the contained view with the given id.
func (p *Part) View(viewID string) (*View, bool) {
	if i := p.ViewIndex(viewID); i >= 0 {
		return p.Views[i], true
	}
	return nil, false
}

// ViewIDs lists the ids of the contained views in stack order.
func (p *Part) ViewIDs() []string {
	ids := make([]string, len(p.Views))
	for i, v := range p.Views {
		ids[i] = v.ID
	}
	return ids
}

// Clone returns a deep copy of the part without a parent link.
func (p *Part) Clone() *Part {
	c := &Part{
		ID:           p.ID,
		Alias:        p.Alias,
		ActiveViewID: p.ActiveViewID,
		Structural:   p.Structural,
		CSSClass:     slices.Clone(p.CSSClass),
		Navigation:   p.Navigation.Clone(),
	}
	if p.Views != nil {
		c.Views = make([]*View, len(p.Views))
		for i, v := range p.Views {
			c.Views[i] = v.Clone()
		}
	}
	return c
}

// PartNavigation is the optional navigation target of a part.
type PartNavigation struct {
	ID   string
	Hint string
	Data map[string]string
}

// Clone returns a deep copy of the descriptor; nil stays nil.
func (n *PartNavigation) Clone() *PartNavigation {
	if n == nil {
		return nil
	}
	c := *n
	c.Data = maps.Clone(n.Data)
	return &c
}

// ValidRatio reports whether r lies in the closed range [0,1].
func ValidRatio(r float64) bool {
	return r >= 0 && r <= 1
}

func isNilElement(el Element) bool {
	switch e := el.(type) {
	case *Node:
		return e == nil
	case *Part:
		return e == nil
	default:
		return true
	}
}
