// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package viewid

import (
	"regexp"
	"strconv"
)

// Prefix starts every generated view id.
const Prefix = "view."

// generatedRegex matches a generated id and captures its number.
var generatedRegex = regexp.MustCompile(`^view\.([1-9]\d*)$`)

// Parse extracts the number of a generated view id. It reports false for
// ids that were not generated.
func Parse(id string) (int, bool) {
	matches := generatedRegex.FindStringSubmatch(id)
	if matches == nil {
		return 0, false
	}
	n, err := strconv.Atoi(matches[1])
	if err != nil {
		// Only reachable on overflow.
		return 0, false
	}
	return n, true
}

// Format builds the generated id for n.
func Format(n int) string {
	return Prefix + strconv.Itoa(n)
}

// IsGenerated reports whether id has the generated form.
func IsGenerated(id string) bool {
	_, ok := Parse(id)
	return ok
}

// Next returns the generated id with the smallest positive number not used
// by any of the given ids. Gaps are filled before the range is extended.
func Next(existing []string) string {
	used := make(map[int]struct{}, len(existing))
	for _, id := range existing {
		if n, ok := Parse(id); ok {
			used[n] = struct{}{}
		}
	}
	for n := 1; ; n++ {
		if _, taken := used[n]; !taken {
			return Format(n)
		}
	}
}
