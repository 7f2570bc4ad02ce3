package engine

import (
	"maps"

	"github.com/specialistvlad/layoutgrid/internal/grid"
)

// working is the mutable copy an operation edits before it is frozen into
// a new Layout. It never escapes the operation that created it.
type working struct {
	env      Env
	grids    map[string]*grid.Grid
	navState map[string]State
}

func (l *Layout) edit() *working {
	w := &working{
		env:      l.env,
		grids:    make(map[string]*grid.Grid, len(l.grids)),
		navState: maps.Clone(l.navState),
	}
	for name, g := range l.grids {
		w.grids[name] = g.Clone()
	}
	return w
}

func (w *working) freeze() *Layout {
	for _, g := range w.grids {
		grid.Link(g.Root)
	}
	return newLayout(w.env, w.grids, w.navState)
}

// apply runs step against a working copy and freezes it on success.
func (l *Layout) apply(step func(w *working) error) (*Layout, error) {
	w := l.edit()
	if err := step(w); err != nil {
		return nil, err
	}
	return w.freeze(), nil
}

// partRef locates a part inside the working copy.
type partRef struct {
	gridName string
	grid     *grid.Grid
	part     *grid.Part
}

func (w *working) findPart(id string) (partRef, bool) {
	for _, name := range sortedNames(w.grids) {
		g := w.grids[name]
		if p, ok := g.Part(id); ok {
			return partRef{gridName: name, grid: g, part: p}, true
		}
	}
	return partRef{}, false
}

func (w *working) mustPart(id string) (partRef, error) {
	ref, ok := w.findPart(id)
	if !ok {
		return partRef{}, &grid.NullPartError{ID: id, Suggestion: grid.Suggest(id, w.partIDs())}
	}
	return ref, nil
}

// findView locates the part holding a view.
func (w *working) findView(id string) (partRef, *grid.View, bool) {
	for _, name := range sortedNames(w.grids) {
		g := w.grids[name]
		for _, p := range g.Parts() {
			if v, ok := p.View(id); ok {
				return partRef{gridName: name, grid: g, part: p}, v, true
			}
		}
	}
	return partRef{}, nil, false
}

func (w *working) mustView(id string) (partRef, *grid.View, error) {
	ref, v, ok := w.findView(id)
	if !ok {
		return partRef{}, nil, &grid.NullViewError{ID: id, Suggestion: grid.Suggest(id, w.viewIDs())}
	}
	return ref, v, nil
}

func (w *working) partIDs() []string {
	var ids []string
	for _, g := range w.grids {
		for _, p := range g.Parts() {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func (w *working) viewIDs() []string {
	var ids []string
	for _, g := range w.grids {
		for _, v := range grid.Views(g.Root) {
			ids = append(ids, v.ID)
		}
	}
	return ids
}

// mostRecent returns the candidate with the greatest activation instant.
// Candidates keep their order on ties, so the first one wins.
func (w *working) mostRecent(ids []string) string {
	best, bestInstant := "", int64(-1)
	for _, id := range ids {
		if instant := w.env.Activation.ActivationInstant(id); instant > bestInstant {
			best, bestInstant = id, instant
		}
	}
	return best
}
