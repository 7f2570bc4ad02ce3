package engine

import (
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/layoutgrid/internal/grid"
	"github.com/specialistvlad/layoutgrid/internal/serializer"
)

// State is the ephemeral, non-persisted navigation state of a view.
type State map[string]any

// Layout is an immutable collection of named grids together with the
// navigation-state side table. Entities returned by its queries belong to
// the layout and must not be modified.
type Layout struct {
	env      Env
	names    []string
	grids    map[string]*grid.Grid
	navState map[string]State
}

type options struct {
	mainArea bool
}

// Option configures New.
type Option func(*options)

// WithMainArea roots the main grid at the main-area part, which embeds a
// second grid named grid.GridMainArea holding the initial part.
func WithMainArea() Option {
	return func(o *options) { o.mainArea = true }
}

// New creates the default layout: a main grid consisting of the structural
// initial part.
func New(env Env, opts ...Option) *Layout {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	initial := &grid.Part{ID: grid.InitialPartID, Structural: true}
	grids := map[string]*grid.Grid{}
	if o.mainArea {
		grids[grid.GridMain] = grid.Single(&grid.Part{ID: grid.MainAreaPartID, Structural: true})
		grids[grid.GridMainArea] = grid.Single(initial)
	} else {
		grids[grid.GridMain] = grid.Single(initial)
	}
	return newLayout(env.withDefaults(), grids, nil)
}

// FromGrids creates a layout from existing grids, e.g. deserialized ones.
// The layout takes ownership of the grids; callers must not modify them
// afterwards.
func FromGrids(env Env, grids map[string]*grid.Grid) (*Layout, error) {
	if _, ok := grids[grid.GridMain]; !ok {
		return nil, &grid.IllegalArgumentError{Msg: fmt.Sprintf("layout requires a %q grid", grid.GridMain)}
	}
	seen := make(map[string]string)
	for _, name := range sortedNames(grids) {
		g := grids[name]
		if g == nil {
			return nil, &grid.IllegalArgumentError{Msg: fmt.Sprintf("grid %q is nil", name)}
		}
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("grid %q: %w", name, err)
		}
		for _, p := range g.Parts() {
			ids := append([]string{p.ID}, p.ViewIDs()...)
			for _, id := range ids {
				if other, dup := seen[id]; dup {
					return nil, &grid.IllegalArgumentError{Msg: fmt.Sprintf("id %q appears in grids %q and %q", id, other, name)}
				}
				seen[id] = name
			}
		}
		grid.Link(g.Root)
	}
	return newLayout(env.withDefaults(), grids, nil), nil
}

func newLayout(env Env, grids map[string]*grid.Grid, navState map[string]State) *Layout {
	if navState == nil {
		navState = map[string]State{}
	}
	return &Layout{env: env, names: sortedNames(grids), grids: grids, navState: navState}
}

// sortedNames orders grid names with the main grid first.
func sortedNames(grids map[string]*grid.Grid) []string {
	names := make([]string, 0, len(grids))
	for name := range grids {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == grid.GridMain:
			return -1
		case b == grid.GridMain:
			return 1
		case a < b:
			return -1
		default:
			return 1
		}
	})
	return names
}

// Env returns the collaborators of the layout.
func (l *Layout) Env() Env { return l.env }

// WithEnv returns a copy of the layout using other collaborators.
func (l *Layout) WithEnv(env Env) *Layout {
	return newLayout(env.withDefaults(), l.grids, l.navState)
}

// Grid returns the grid with the given name.
func (l *Layout) Grid(name string) (*grid.Grid, bool) {
	g, ok := l.grids[name]
	return g, ok
}

// GridNames lists the grid names, main grid first.
func (l *Layout) GridNames() []string {
	return slices.Clone(l.names)
}

// Grids returns the named grids of the layout.
func (l *Layout) Grids() map[string]*grid.Grid {
	return maps.Clone(l.grids)
}

// NavigationState returns the ephemeral state stored for a view.
func (l *Layout) NavigationState(viewID string) (State, bool) {
	s, ok := l.navState[viewID]
	return maps.Clone(s), ok
}

// Equal reports whether both layouts are structurally equal, ignoring node
// ids, navigation ids and tombstones.
func (l *Layout) Equal(other *Layout) bool {
	if other == nil || !slices.Equal(l.names, other.names) {
		return false
	}
	for _, name := range l.names {
		a, errA := serializer.SerializeGrid(l.grids[name], serializer.EqualityFlags)
		b, errB := serializer.SerializeGrid(other.grids[name], serializer.EqualityFlags)
		if errA != nil || errB != nil || a != b {
			return false
		}
	}
	return true
}
