// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Grid, the root container of one named tree, and the
// structural operations every grid supports: linking, cloning and
// validation.
package grid

import (
	"fmt"
)

// Grid is one named tree of parts.
type Grid struct {
	Root         Element
	ActivePartID string
}

// New creates a grid rooted at root after validating and linking the tree.
func New(root Element, activePartID string) (*Grid, error) {
	g := &Grid{Root: root, ActivePartID: activePartID}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	Link(g.Root)
	return g, nil
}

// Single creates a grid consisting of one part, which is also active.
func Single(p *Part) *Grid {
	p.setParent(nil)
	return &Grid{Root: p, ActivePartID: p.ID}
}

// Link rebuilds every parent pointer below root in a single post-order pass.
// The root itself ends up without a parent.
func Link(root Element) {
	var link func(el Element, parent *Node)
	link = func(el Element, parent *Node) {
		switch e := el.(type) {
		case *Node:
			link(e.Child1, e)
			link(e.Child2, e)
			e.parent = parent
		case *Part:
			e.parent = parent
		}
	}
	link(root, nil)
}

// Clone returns a deep copy of the grid with freshly linked parents.
func (g *Grid) Clone() *Grid {
	c := &Grid{Root: cloneElement(g.Root), ActivePartID: g.ActivePartID}
	Link(c.Root)
	return c
}

func cloneElement(el Element) Element {
	switch e := el.(type) {
	case *Node:
		return &Node{
			ID:        e.ID,
			Child1:    cloneElement(e.Child1),
			Child2:    cloneElement(e.Child2),
			Direction: e.Direction,
			Ratio:     e.Ratio,
		}
	case *Part:
		return e.Clone()
	default:
		panic(fmt.Sprintf("grid: unexpected element type %T", el))
	}
}

// Validate checks the structural invariants of the grid: every node has two
// children and a valid ratio, ids are unique, and the active pointers refer
// to existing entities.
func (g *Grid) Validate() error {
	if isNilElement(g.Root) {
		return &IllegalArgumentError{Msg: "grid has no root"}
	}
	ids := make(map[string]struct{})
	claim := func(kind, id string) error {
		if _, dup := ids[id]; dup {
			return &IllegalArgumentError{Msg: fmt.Sprintf("duplicate %s id %q", kind, id)}
		}
		ids[id] = struct{}{}
		return nil
	}

	var check func(el Element) error
	check = func(el Element) error {
		switch e := el.(type) {
		case *Node:
			if isNilElement(e.Child1) || isNilElement(e.Child2) {
				return &IllegalArgumentError{Msg: fmt.Sprintf("node %q requires two children", e.ID)}
			}
			if !e.Direction.Valid() {
				return &IllegalArgumentError{Msg: fmt.Sprintf("node %q has invalid direction %q", e.ID, e.Direction)}
			}
			if !ValidRatio(e.Ratio) {
				return &IllegalArgumentError{Msg: fmt.Sprintf("node %q has ratio %v outside [0,1]", e.ID, e.Ratio)}
			}
			if e.ID != "" {
				if err := claim("node", e.ID); err != nil {
					return err
				}
			}
			if err := check(e.Child1); err != nil {
				return err
			}
			return check(e.Child2)
		case *Part:
			if err := claim("part", e.ID); err != nil {
				return err
			}
			for _, v := range e.Views {
				if err := claim("view", v.ID); err != nil {
					return err
				}
			}
			if e.ActiveViewID != "" && e.ViewIndex(e.ActiveViewID) < 0 {
				return &IllegalArgumentError{Msg: fmt.Sprintf("part %q activates unknown view %q", e.ID, e.ActiveViewID)}
			}
			return nil
		default:
			return &IllegalArgumentError{Msg: fmt.Sprintf("unexpected element type %T", el)}
		}
	}
	if err := check(g.Root); err != nil {
		return err
	}

	if g.ActivePartID != "" {
		if _, ok := g.Part(g.ActivePartID); !ok {
			return &IllegalArgumentError{Msg: fmt.Sprintf("grid activates unknown part %q", g.ActivePartID)}
		}
	}
	return nil
}

// Part returns the part with the given id.
func (g *Grid) Part(id string) (*Part, bool) {
	found := Find(g.Root, func(el Element) bool {
		p, ok := el.(*Part)
		return ok && p.ID == id
	}, FindOptions{First: true})
	if len(found) == 0 {
		return nil, false
	}
	return found[0].(*Part), true
}

// Node returns the node with the given id.
func (g *Grid) Node(id string) (*Node, bool) {
	found := Find(g.Root, func(el Element) bool {
		n, ok := el.(*Node)
		return ok && n.ID == id
	}, FindOptions{First: true})
	if len(found) == 0 {
		return nil, false
	}
	return found[0].(*Node), true
}

// Element returns the node or part with the given id.
func (g *Grid) Element(id string) (Element, bool) {
	found := Find(g.Root, func(el Element) bool { return el.ElementID() == id }, FindOptions{First: true})
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

// Parts lists all parts in depth-first order.
func (g *Grid) Parts() []*Part {
	return Parts(g.Root)
}

// Replace puts replacement where old currently sits: either as a child of
// old's parent or as the grid root.
func (g *Grid) Replace(old, replacement Element) {
	parent := old.Parent()
	if parent == nil {
		replacement.setParent(nil)
		g.Root = replacement
		return
	}
	parent.ReplaceChild(old, replacement)
}
