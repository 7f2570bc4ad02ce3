// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the error taxonomy of layout operations. Every error is a
// plain struct so callers can match it with errors.As.
package grid

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

// NullPartError reports a part lookup that found nothing.
type NullPartError struct {
	ID string
	// Suggestion is a known part id close to ID, if any.
	Suggestion string
}

func (e *NullPartError) Error() string {
	return withSuggestion(fmt.Sprintf("part %q not found", e.ID), e.Suggestion)
}

// NullViewError reports a view lookup that found nothing.
type NullViewError struct {
	ID         string
	Suggestion string
}

func (e *NullViewError) Error() string {
	return withSuggestion(fmt.Sprintf("view %q not found", e.ID), e.Suggestion)
}

// NullNodeError reports a split node lookup that found nothing.
type NullNodeError struct {
	ID string
}

func (e *NullNodeError) Error() string {
	return fmt.Sprintf("node %q not found", e.ID)
}

// NullElementError reports a reference element that does not resolve.
type NullElementError struct {
	ID         string
	Suggestion string
}

func (e *NullElementError) Error() string {
	return withSuggestion(fmt.Sprintf("element %q not found", e.ID), e.Suggestion)
}

// PartAddError reports a part id that is already taken.
type PartAddError struct {
	ID string
}

func (e *PartAddError) Error() string {
	return fmt.Sprintf("part %q already exists", e.ID)
}

// ViewAddError reports a view id that is already taken.
type ViewAddError struct {
	ID string
}

func (e *ViewAddError) Error() string {
	return fmt.Sprintf("view %q already exists", e.ID)
}

// IllegalArgumentError reports an argument the operation cannot accept.
type IllegalArgumentError struct {
	Msg string
}

func (e *IllegalArgumentError) Error() string {
	return "illegal argument: " + e.Msg
}

func withSuggestion(msg, suggestion string) string {
	if suggestion == "" {
		return msg
	}
	return fmt.Sprintf("%s; did you mean %q?", msg, suggestion)
}

// Suggest returns the candidate closest to id by edit distance, provided it
// is close enough to be a plausible typo. It returns "" otherwise.
func Suggest(id string, candidates []string) string {
	if id == "" || len(candidates) == 0 {
		return ""
	}
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	best, bestDist := "", -1
	for _, c := range sorted {
		if c == id {
			continue
		}
		d := levenshtein.ComputeDistance(id, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	limit := len(id) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}
