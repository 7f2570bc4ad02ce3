package engine

import (
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/layoutgrid/internal/grid"
	"github.com/specialistvlad/layoutgrid/internal/viewid"
)

// AddViewOptions controls AddView.
type AddViewOptions struct {
	// PartID is the target part. Defaults to the active part of the
	// main-area grid, or of the main grid when there is no main area.
	PartID       string
	Position     Position
	ActivateView bool
	ActivatePart bool
	CSSClass     []string
	// Navigation seeds the navigation descriptor of the new view.
	Navigation *grid.Navigation
}

// AddView inserts a new view into a part.
func (l *Layout) AddView(id string, opts AddViewOptions) (*Layout, error) {
	return l.apply(func(w *working) error {
		if id == "" {
			return &grid.IllegalArgumentError{Msg: "view id must not be empty"}
		}
		if _, _, exists := w.findView(id); exists {
			return &grid.ViewAddError{ID: id}
		}
		if _, exists := w.findPart(id); exists {
			return &grid.ViewAddError{ID: id}
		}
		ref, err := w.targetPart(opts.PartID)
		if err != nil {
			return err
		}
		v := &grid.View{ID: id, CSSClass: slices.Clone(opts.CSSClass), Navigation: opts.Navigation.Clone()}
		w.insertView(ref, v, opts.Position)
		w.activate(ref, id, opts.ActivateView, opts.ActivatePart)
		w.env.Logger.Debug("View added.", "view", id, "part", ref.part.ID, "position", opts.Position.String())
		return nil
	})
}

func (w *working) targetPart(partID string) (partRef, error) {
	if partID != "" {
		return w.mustPart(partID)
	}
	for _, name := range []string{grid.GridMainArea, grid.GridMain} {
		if g, ok := w.grids[name]; ok && g.ActivePartID != "" {
			return w.mustPart(g.ActivePartID)
		}
	}
	return partRef{}, &grid.IllegalArgumentError{Msg: "no target part given and no part is active"}
}

func (w *working) insertView(ref partRef, v *grid.View, pos Position) {
	p := ref.part
	i := pos.resolve(p.Views, p.ActiveViewID)
	p.Views = slices.Insert(p.Views, i, v)
}

func (w *working) activate(ref partRef, viewID string, view, part bool) {
	if view {
		ref.part.ActiveViewID = viewID
	}
	if part {
		ref.grid.ActivePartID = ref.part.ID
	}
}

// NavigateOptions controls NavigateView.
type NavigateOptions struct {
	Hint string
	// RelativeTo names a view whose path the commands are resolved against.
	RelativeTo string
	Data       map[string]string
	// State is stored in the navigation-state side table; nil clears it.
	State State
}

// NavigateView points a view to a new target and stamps it with a fresh
// navigation id. At least one of commands, hint or relative view is required.
func (l *Layout) NavigateView(id string, commands []grid.Segment, opts NavigateOptions) (*Layout, error) {
	if len(commands) == 0 && opts.Hint == "" && opts.RelativeTo == "" {
		return nil, &grid.IllegalArgumentError{Msg: fmt.Sprintf("navigation of view %q requires commands, a hint or a relative view", id)}
	}
	return l.apply(func(w *working) error {
		_, v, err := w.mustView(id)
		if err != nil {
			return err
		}
		var base []grid.Segment
		if opts.RelativeTo != "" {
			_, rel, err := w.mustView(opts.RelativeTo)
			if err != nil {
				return err
			}
			if rel.Navigation != nil {
				base = rel.Navigation.Path
			}
		}

		var path []grid.Segment
		if len(commands) > 0 {
			if path, err = w.env.Paths.Resolve(commands, base); err != nil {
				return fmt.Errorf("failed to resolve path of view %q: %w", id, err)
			}
		} else {
			path = base
		}

		nav := &grid.Navigation{
			ID:   w.env.IDs.NavigationID(),
			Path: path,
			Hint: opts.Hint,
			Data: maps.Clone(opts.Data),
		}
		v.Navigation = nav.Clone()
		if opts.State != nil {
			w.navState[id] = maps.Clone(opts.State)
		} else {
			delete(w.navState, id)
		}
		w.env.Logger.Debug("View navigated.", "view", id, "path", grid.PathString(path), "hint", opts.Hint)
		return nil
	})
}

// RemoveViewOptions controls RemoveView.
type RemoveViewOptions struct {
	// Force removes the view immediately instead of marking it.
	Force bool
}

// RemoveView marks a view for removal or, with Force, removes it. A
// non-structural part left empty by a forced removal is removed as well.
func (l *Layout) RemoveView(id string, opts RemoveViewOptions) (*Layout, error) {
	return l.apply(func(w *working) error {
		ref, v, err := w.mustView(id)
		if err != nil {
			return err
		}
		if !opts.Force {
			v.MarkedForRemoval = true
			return nil
		}
		delete(w.navState, id)
		return w.detachView(ref, id)
	})
}

// detachView splices a view out of its part. It reactivates the most
// recently activated remaining view and removes the part when it ends up
// empty and is not structural.
func (w *working) detachView(ref partRef, id string) error {
	p := ref.part
	i := p.ViewIndex(id)
	if i < 0 {
		return &grid.NullViewError{ID: id}
	}
	p.Views = slices.Delete(p.Views, i, i+1)
	if len(p.Views) == 0 {
		p.Views = nil
	}
	if p.ActiveViewID == id {
		p.ActiveViewID = w.mostRecent(p.ViewIDs())
	}
	if len(p.Views) == 0 && !p.Structural && p.ID != grid.MainAreaPartID {
		if _, err := w.removePart(p.ID); err != nil {
			return err
		}
	}
	return nil
}

// MoveViewOptions controls MoveView.
type MoveViewOptions struct {
	Position     Position
	ActivateView bool
	ActivatePart bool
}

// MoveView moves a view to a position in the target part. The view keeps
// its navigation and state.
func (l *Layout) MoveView(id, targetPartID string, opts MoveViewOptions) (*Layout, error) {
	return l.apply(func(w *working) error {
		source, v, err := w.mustView(id)
		if err != nil {
			return err
		}
		if _, err := w.mustPart(targetPartID); err != nil {
			return err
		}

		if source.part.ID == targetPartID {
			p := source.part
			from := p.ViewIndex(id)
			rest := slices.Delete(slices.Clone(p.Views), from, from+1)
			to := opts.Position.resolve(rest, p.ActiveViewID)
			if p.ActiveViewID == id && (opts.Position == BeforeActiveView || opts.Position == AfterActiveView) {
				to = from
			}
			p.Views = slices.Insert(rest, to, v)
			w.activate(source, id, opts.ActivateView, opts.ActivatePart)
			return nil
		}

		if err := w.detachView(source, id); err != nil {
			return err
		}
		// Detaching may have removed the source part and reshaped its grid.
		target, err := w.mustPart(targetPartID)
		if err != nil {
			return err
		}
		w.insertView(target, v, opts.Position)
		w.activate(target, id, opts.ActivateView, opts.ActivatePart)
		w.env.Logger.Debug("View moved.", "view", id, "from", source.part.ID, "to", targetPartID)
		return nil
	})
}

// ActivateViewOptions controls ActivateView and ActivateAdjacentView.
type ActivateViewOptions struct {
	// ActivatePart also activates the part holding the view.
	ActivatePart bool
}

// ActivateView makes the view the active view of its part.
func (l *Layout) ActivateView(id string, opts ActivateViewOptions) (*Layout, error) {
	return l.apply(func(w *working) error {
		ref, _, err := w.mustView(id)
		if err != nil {
			return err
		}
		w.activate(ref, id, true, opts.ActivatePart)
		return nil
	})
}

// ActivateAdjacentView activates the view preceding the given one, or the
// following one if it is the first. A view alone in its part leaves the
// layout unchanged.
func (l *Layout) ActivateAdjacentView(id string, opts ActivateViewOptions) (*Layout, error) {
	w := l.edit()
	ref, _, err := w.mustView(id)
	if err != nil {
		return nil, err
	}
	views := ref.part.Views
	i := ref.part.ViewIndex(id)
	var adjacent string
	switch {
	case i > 0:
		adjacent = views[i-1].ID
	case i+1 < len(views):
		adjacent = views[i+1].ID
	default:
		return l, nil
	}
	w.activate(ref, adjacent, true, opts.ActivatePart)
	return w.freeze(), nil
}

// RenameView changes the id of a view, keeping its active references and
// navigation state.
func (l *Layout) RenameView(oldID, newID string) (*Layout, error) {
	if oldID == newID {
		return l, nil
	}
	return l.apply(func(w *working) error {
		ref, v, err := w.mustView(oldID)
		if err != nil {
			return err
		}
		if newID == "" {
			return &grid.IllegalArgumentError{Msg: "view id must not be empty"}
		}
		if _, _, taken := w.findView(newID); taken {
			return &grid.IllegalArgumentError{Msg: fmt.Sprintf("view id %q is already in use", newID)}
		}
		if _, taken := w.findPart(newID); taken {
			return &grid.IllegalArgumentError{Msg: fmt.Sprintf("id %q is already used by a part", newID)}
		}
		v.ID = newID
		if ref.part.ActiveViewID == oldID {
			ref.part.ActiveViewID = newID
		}
		if s, ok := w.navState[oldID]; ok {
			delete(w.navState, oldID)
			w.navState[newID] = s
		}
		return nil
	})
}

// ComputeNextViewID returns the generated view id with the smallest unused
// number.
func (l *Layout) ComputeNextViewID() string {
	return viewid.Next(l.viewIDs())
}
