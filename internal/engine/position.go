package engine

import (
	"fmt"
	"strconv"

	"github.com/specialistvlad/layoutgrid/internal/grid"
)

type positionKind int

const (
	positionEnd positionKind = iota
	positionStart
	positionIndex
	positionBeforeActive
	positionAfterActive
)

// Position is where a view is inserted into the view stack of a part. The
// zero value is End.
type Position struct {
	kind  positionKind
	index int
}

var (
	// Start inserts before all views.
	Start = Position{kind: positionStart}
	// End appends after all views.
	End = Position{kind: positionEnd}
	// BeforeActiveView inserts just before the active view, or at the end
	// when the part has no active view.
	BeforeActiveView = Position{kind: positionBeforeActive}
	// AfterActiveView inserts just after the active view, or at the end
	// when the part has no active view.
	AfterActiveView = Position{kind: positionAfterActive}
)

// At inserts at an explicit index, clamped to the view stack.
func At(i int) Position {
	return Position{kind: positionIndex, index: i}
}

// resolve computes the insertion index against the given views.
func (pos Position) resolve(views []*grid.View, activeViewID string) int {
	switch pos.kind {
	case positionStart:
		return 0
	case positionIndex:
		return max(0, min(pos.index, len(views)))
	case positionBeforeActive, positionAfterActive:
		for i, v := range views {
			if v.ID == activeViewID {
				if pos.kind == positionAfterActive {
					return i + 1
				}
				return i
			}
		}
		return len(views)
	default:
		return len(views)
	}
}

func (pos Position) String() string {
	switch pos.kind {
	case positionStart:
		return "start"
	case positionIndex:
		return strconv.Itoa(pos.index)
	case positionBeforeActive:
		return "before-active-view"
	case positionAfterActive:
		return "after-active-view"
	default:
		return "end"
	}
}

// ParsePosition parses the textual form produced by Position.String.
func ParsePosition(s string) (Position, error) {
	switch s {
	case "", "end":
		return End, nil
	case "start":
		return Start, nil
	case "before-active-view":
		return BeforeActiveView, nil
	case "after-active-view":
		return AfterActiveView, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return Position{}, &grid.IllegalArgumentError{Msg: fmt.Sprintf("unknown position %q", s)}
	}
	return At(i), nil
}
