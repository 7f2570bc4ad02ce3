package engine

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/layoutgrid/internal/grid"
)

// Align places a new part relative to its reference element.
type Align string

const (
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignTop    Align = "top"
	AlignBottom Align = "bottom"
)

// DefaultRatio is the split ratio used when AddPartOptions.Ratio is nil.
const DefaultRatio = 0.5

// AddPartOptions controls AddPart.
type AddPartOptions struct {
	// Align defaults to AlignRight.
	Align Align
	// Ratio is the share of the new part; nil means DefaultRatio.
	Ratio      *float64
	Activate   bool
	Structural bool
	// Grid is the grid whose root is used when no reference is given.
	// Defaults to the main grid.
	Grid string
}

// AddPart splits the reference element (or the root of opts.Grid when ref
// is empty) and places a new part next to it.
func (l *Layout) AddPart(id, ref string, opts AddPartOptions) (*Layout, error) {
	return l.apply(func(w *working) error {
		return w.addPart(id, ref, opts)
	})
}

func (w *working) addPart(id, ref string, opts AddPartOptions) error {
	if _, exists := w.findPart(id); exists {
		return &grid.PartAddError{ID: id}
	}
	if _, _, exists := w.findView(id); exists {
		return &grid.PartAddError{ID: id}
	}

	align := opts.Align
	if align == "" {
		align = AlignRight
	}
	var direction grid.Direction
	var first bool
	switch align {
	case AlignLeft:
		direction, first = grid.Row, true
	case AlignRight:
		direction, first = grid.Row, false
	case AlignTop:
		direction, first = grid.Column, true
	case AlignBottom:
		direction, first = grid.Column, false
	default:
		return &grid.IllegalArgumentError{Msg: fmt.Sprintf("unknown alignment %q", align)}
	}

	ratio := DefaultRatio
	if opts.Ratio != nil {
		ratio = *opts.Ratio
	}
	if !grid.ValidRatio(ratio) {
		return &grid.IllegalArgumentError{Msg: fmt.Sprintf("ratio %v outside [0,1]", ratio)}
	}

	g, refEl, err := w.resolveReference(ref, opts.Grid)
	if err != nil {
		return err
	}

	part, err := grid.NewPart(id, opts.Structural)
	if err != nil {
		return err
	}
	parent := refEl.Parent()
	var node *grid.Node
	if first {
		node, err = grid.NewNode(w.env.IDs.NodeID(), part, refEl, direction, ratio)
	} else {
		node, err = grid.NewNode(w.env.IDs.NodeID(), refEl, part, direction, 1-ratio)
	}
	if err != nil {
		return err
	}
	if parent == nil {
		g.Root = node
	} else {
		parent.ReplaceChild(refEl, node)
	}
	grid.Link(g.Root)

	if opts.Activate {
		g.ActivePartID = id
	}
	w.env.Logger.Debug("Part added.", "part", id, "reference", refEl.ElementID(), "align", align, "ratio", ratio)
	return nil
}

func (w *working) resolveReference(ref, gridName string) (*grid.Grid, grid.Element, error) {
	if ref == "" {
		if gridName == "" {
			gridName = grid.GridMain
		}
		g, ok := w.grids[gridName]
		if !ok {
			return nil, nil, &grid.IllegalArgumentError{Msg: fmt.Sprintf("unknown grid %q", gridName)}
		}
		return g, g.Root, nil
	}
	for _, name := range sortedNames(w.grids) {
		g := w.grids[name]
		if el, ok := g.Element(ref); ok {
			return g, el, nil
		}
	}
	var candidates []string
	for _, g := range w.grids {
		grid.Walk(g.Root, func(el grid.Element) bool {
			candidates = append(candidates, el.ElementID())
			return true
		})
	}
	return nil, nil, &grid.NullElementError{ID: ref, Suggestion: grid.Suggest(ref, candidates)}
}

// RemovePart removes a part and lets its sibling take the freed space.
// Removing the last part of a grid is a no-op; the main-area part can never
// be removed.
func (l *Layout) RemovePart(id string) (*Layout, error) {
	w := l.edit()
	removed, err := w.removePart(id)
	if err != nil {
		return nil, err
	}
	if !removed {
		return l, nil
	}
	return w.freeze(), nil
}

func (w *working) removePart(id string) (bool, error) {
	ref, err := w.mustPart(id)
	if err != nil {
		return false, err
	}
	if id == grid.MainAreaPartID {
		return false, &grid.IllegalArgumentError{Msg: "the main-area part cannot be removed"}
	}
	g, p := ref.grid, ref.part
	parent := p.Parent()
	if parent == nil {
		w.env.Logger.Debug("Ignoring removal of the last part.", "part", id, "grid", ref.gridName)
		return false, nil
	}

	g.Replace(parent, parent.Sibling(p))
	grid.Link(g.Root)
	for _, v := range p.Views {
		delete(w.navState, v.ID)
	}

	if g.ActivePartID == id {
		var candidates []string
		for _, remaining := range g.Parts() {
			candidates = append(candidates, remaining.ID)
		}
		g.ActivePartID = w.mostRecent(candidates)
	}
	w.env.Logger.Debug("Part removed.", "part", id, "grid", ref.gridName, "active_part", g.ActivePartID)
	return true, nil
}

// ActivatePart makes the part the active part of its grid.
func (l *Layout) ActivatePart(id string) (*Layout, error) {
	return l.apply(func(w *working) error {
		ref, err := w.mustPart(id)
		if err != nil {
			return err
		}
		ref.grid.ActivePartID = id
		return nil
	})
}

// SetSplitRatio changes the share of the first child of a node.
func (l *Layout) SetSplitRatio(nodeID string, ratio float64) (*Layout, error) {
	if !grid.ValidRatio(ratio) {
		return nil, &grid.IllegalArgumentError{Msg: fmt.Sprintf("ratio %v outside [0,1]", ratio)}
	}
	return l.apply(func(w *working) error {
		for _, g := range w.grids {
			if n, ok := g.Node(nodeID); ok {
				n.Ratio = ratio
				return nil
			}
		}
		return &grid.NullNodeError{ID: nodeID}
	})
}

// SetPartNavigation points a part to a navigation target. An empty hint
// with no data clears it.
func (l *Layout) SetPartNavigation(partID, hint string, data map[string]string) (*Layout, error) {
	return l.apply(func(w *working) error {
		ref, err := w.mustPart(partID)
		if err != nil {
			return err
		}
		if hint == "" && len(data) == 0 {
			ref.part.Navigation = nil
			return nil
		}
		nav := &grid.PartNavigation{ID: w.env.IDs.NavigationID(), Hint: hint, Data: data}
		ref.part.Navigation = nav.Clone()
		return nil
	})
}

// SetPartAlias assigns a human readable alias to a part.
func (l *Layout) SetPartAlias(partID, alias string) (*Layout, error) {
	return l.apply(func(w *working) error {
		ref, err := w.mustPart(partID)
		if err != nil {
			return err
		}
		ref.part.Alias = alias
		return nil
	})
}

// SetPartCSSClass replaces the CSS classes of a part.
func (l *Layout) SetPartCSSClass(partID string, classes []string) (*Layout, error) {
	return l.apply(func(w *working) error {
		ref, err := w.mustPart(partID)
		if err != nil {
			return err
		}
		ref.part.CSSClass = slices.Clone(classes)
		return nil
	})
}
