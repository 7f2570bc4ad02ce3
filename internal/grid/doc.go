// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package grid provides the tree data model of a workbench layout. A grid is
// a binary tree whose leaves are parts (rectangular containers holding a
// stack of views) and whose inner nodes are splits dividing the available
// space between exactly two children.
//
// # Core Concepts
//
//   - Element: the sum type of a tree position. It is implemented by *Node and
//     *Part only; every traversal in this module switches over both variants.
//
//   - Node: a split with a direction (row or column) and a ratio in [0,1]
//     giving the share of its first child.
//
//   - Part: a container of views. A structural part survives when its last
//     view is removed; a non-structural part is removed together with it.
//
//   - View: the content unit. It belongs to exactly one part at a time and
//     carries its navigation descriptor and a tombstone flag used for
//     deferred, confirmable removal.
//
//   - Grid: a root element plus the id of the active part. Several grids live
//     side by side under names; the designated main-area part of the "main"
//     grid embeds the "mainArea" grid.
//
// # Parent links
//
// Children are owned top-down. The parent pointer of an element is a
// navigation shortcut only: it is never serialized and is rebuilt by [Link]
// after every clone or deserialization.
package grid
