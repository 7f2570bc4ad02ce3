// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package grid

// IsVisible reports whether el should be shown. A part is visible if it is
// the main-area part or holds at least one view; a node is visible if either
// child is. Callers use it to hide empty splits without touching the tree.
func IsVisible(el Element) bool {
	switch e := el.(type) {
	case *Part:
		return e.ID == MainAreaPartID || len(e.Views) > 0
	case *Node:
		return IsVisible(e.Child1) || IsVisible(e.Child2)
	default:
		return false
	}
}
