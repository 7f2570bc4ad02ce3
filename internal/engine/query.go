package engine

import (
	"github.com/specialistvlad/layoutgrid/internal/grid"
)

// PartFilter selects parts. Empty fields match everything.
type PartFilter struct {
	// ID matches the part id or its alias.
	ID string
	// ViewID matches the part containing this view.
	ViewID string
	// Grid restricts the search to one named grid.
	Grid string
}

func (f PartFilter) matches(p *grid.Part) bool {
	if f.ID != "" && p.ID != f.ID && p.Alias != f.ID {
		return false
	}
	if f.ViewID != "" && p.ViewIndex(f.ViewID) < 0 {
		return false
	}
	return true
}

// ViewFilter selects views. Empty fields match everything.
type ViewFilter struct {
	// ID matches the view id or its alias.
	ID     string
	PartID string
	// Path matches views navigated to exactly this path.
	Path []grid.Segment
	Hint string
	// MarkedForRemoval, when set, matches the tombstone state.
	MarkedForRemoval *bool
	Grid             string
}

func (f ViewFilter) matches(p *grid.Part, v *grid.View) bool {
	if f.ID != "" && v.ID != f.ID && v.Alias != f.ID {
		return false
	}
	if f.PartID != "" && p.ID != f.PartID {
		return false
	}
	if f.Path != nil && (v.Navigation == nil || !grid.EqualPath(v.Navigation.Path, f.Path)) {
		return false
	}
	if f.Hint != "" && (v.Navigation == nil || v.Navigation.Hint != f.Hint) {
		return false
	}
	if f.MarkedForRemoval != nil && v.MarkedForRemoval != *f.MarkedForRemoval {
		return false
	}
	return true
}

func (l *Layout) scope(gridName string) []*grid.Grid {
	if gridName != "" {
		if g, ok := l.grids[gridName]; ok {
			return []*grid.Grid{g}
		}
		return nil
	}
	grids := make([]*grid.Grid, 0, len(l.names))
	for _, name := range l.names {
		grids = append(grids, l.grids[name])
	}
	return grids
}

// Parts lists the parts matching the filter in grid then depth-first order.
func (l *Layout) Parts(f PartFilter) []*grid.Part {
	var parts []*grid.Part
	for _, g := range l.scope(f.Grid) {
		for _, p := range g.Parts() {
			if f.matches(p) {
				parts = append(parts, p)
			}
		}
	}
	return parts
}

// LookupPart returns the first part matching the filter.
func (l *Layout) LookupPart(f PartFilter) (*grid.Part, bool) {
	parts := l.Parts(f)
	if len(parts) == 0 {
		return nil, false
	}
	return parts[0], true
}

// FindPart is LookupPart reporting a miss as an error: NullViewError when
// the requested view does not exist, NullPartError otherwise.
func (l *Layout) FindPart(f PartFilter) (*grid.Part, error) {
	if p, ok := l.LookupPart(f); ok {
		return p, nil
	}
	if f.ViewID != "" {
		if _, ok := l.LookupView(ViewFilter{ID: f.ViewID, Grid: f.Grid}); !ok {
			return nil, &grid.NullViewError{ID: f.ViewID, Suggestion: grid.Suggest(f.ViewID, l.viewIDs())}
		}
	}
	return nil, &grid.NullPartError{ID: f.ID, Suggestion: grid.Suggest(f.ID, l.partIDs())}
}

// Views lists the views matching the filter.
func (l *Layout) Views(f ViewFilter) []*grid.View {
	var views []*grid.View
	for _, g := range l.scope(f.Grid) {
		for _, p := range g.Parts() {
			for _, v := range p.Views {
				if f.matches(p, v) {
					views = append(views, v)
				}
			}
		}
	}
	return views
}

// LookupView returns the first view matching the filter.
func (l *Layout) LookupView(f ViewFilter) (*grid.View, bool) {
	views := l.Views(f)
	if len(views) == 0 {
		return nil, false
	}
	return views[0], true
}

// FindView is LookupView reporting a miss as NullViewError.
func (l *Layout) FindView(f ViewFilter) (*grid.View, error) {
	if v, ok := l.LookupView(f); ok {
		return v, nil
	}
	return nil, &grid.NullViewError{ID: f.ID, Suggestion: grid.Suggest(f.ID, l.viewIDs())}
}

func (l *Layout) partIDs() []string {
	var ids []string
	for _, p := range l.Parts(PartFilter{}) {
		ids = append(ids, p.ID)
	}
	return ids
}

func (l *Layout) viewIDs() []string {
	var ids []string
	for _, v := range l.Views(ViewFilter{}) {
		ids = append(ids, v.ID)
	}
	return ids
}
