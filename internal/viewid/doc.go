// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

/*
Package viewid centralizes the format of generated view identifiers.

Generated ids have the canonical form `view.<n>`, where n is a positive
integer without leading zeros, e.g. `view.1` or `view.42`. Views may also carry
arbitrary ids (aliases or ids chosen by a layout definition); those are
ignored when computing the next free id.
*/
package viewid
