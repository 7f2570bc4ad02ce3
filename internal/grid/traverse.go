// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file provides depth-first traversal of the tree. Traversal is
// pre-order: a node is visited before its first child subtree, which is
// visited before the second.
package grid

// FindOptions controls a Find traversal.
type FindOptions struct {
	// First stops the traversal at the first match.
	First bool
}

// Walk visits every element below root. Returning false from fn stops the
// walk; Walk reports whether it ran to completion.
func Walk(root Element, fn func(el Element) bool) bool {
	switch e := root.(type) {
	case *Node:
		if !fn(e) {
			return false
		}
		return Walk(e.Child1, fn) && Walk(e.Child2, fn)
	case *Part:
		return fn(e)
	default:
		return true
	}
}

// Find collects the elements matching pred.
func Find(root Element, pred func(el Element) bool, opts FindOptions) []Element {
	var found []Element
	Walk(root, func(el Element) bool {
		if pred(el) {
			found = append(found, el)
			if opts.First {
				return false
			}
		}
		return true
	})
	return found
}

// Parts lists the parts below root in depth-first order.
func Parts(root Element) []*Part {
	var parts []*Part
	Walk(root, func(el Element) bool {
		if p, ok := el.(*Part); ok {
			parts = append(parts, p)
		}
		return true
	})
	return parts
}

// Nodes lists the split nodes below root in depth-first order.
func Nodes(root Element) []*Node {
	var nodes []*Node
	Walk(root, func(el Element) bool {
		if n, ok := el.(*Node); ok {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// Views lists every view below root, part by part.
func Views(root Element) []*View {
	var views []*View
	for _, p := range Parts(root) {
		views = append(views, p.Views...)
	}
	return views
}
