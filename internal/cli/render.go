package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/specialistvlad/layoutgrid/internal/engine"
	"github.com/specialistvlad/layoutgrid/internal/grid"
	"gopkg.in/yaml.v3"
)

// outliner renders grids as trees. Styles are bound to the output writer,
// so they degrade to plain text when w is not a terminal.
type outliner struct {
	active lipgloss.Style
	muted  lipgloss.Style
}

// writeOutline prints every grid of l as a tree.
func writeOutline(w io.Writer, l *engine.Layout) error {
	r := lipgloss.NewRenderer(w)
	o := outliner{
		active: r.NewStyle().Bold(true),
		muted:  r.NewStyle().Faint(true),
	}
	for _, name := range l.GridNames() {
		g, _ := l.Grid(name)
		t := tree.Root("grid " + name).
			Enumerator(tree.RoundedEnumerator).
			Child(o.element(g, g.Root))
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}
	return nil
}

func (o outliner) element(g *grid.Grid, el grid.Element) any {
	switch e := el.(type) {
	case *grid.Node:
		label := fmt.Sprintf("%s %.2f", e.Direction, e.Ratio)
		if e.ID != "" {
			label += " " + o.muted.Render(e.ID)
		}
		return tree.Root(label).Child(o.element(g, e.Child1), o.element(g, e.Child2))
	case *grid.Part:
		label := e.ID
		if e.Alias != "" {
			label += fmt.Sprintf(" (%s)", e.Alias)
		}
		if e.ID == g.ActivePartID {
			label = o.active.Render(label + " *")
		}
		if !grid.IsVisible(e) {
			label += " " + o.muted.Render("[hidden]")
		}
		t := tree.Root(label)
		for _, v := range e.Views {
			t.Child(o.view(e, v))
		}
		return t
	default:
		return fmt.Sprintf("%T", el)
	}
}

func (o outliner) view(p *grid.Part, v *grid.View) string {
	label := v.ID
	if v.ID == p.ActiveViewID {
		label = o.active.Render(label + " *")
	}
	if v.Navigation != nil && len(v.Navigation.Path) > 0 {
		label += " /" + grid.PathString(v.Navigation.Path)
	}
	if v.MarkedForRemoval {
		label += " " + o.muted.Render("[marked for removal]")
	}
	return label
}

// layoutDoc is the read-only document rendered by the json and yaml formats.
type layoutDoc struct {
	Grids []gridDoc `json:"grids" yaml:"grids"`
}

type gridDoc struct {
	Name         string     `json:"name" yaml:"name"`
	ActivePartID string     `json:"activePartId,omitempty" yaml:"activePartId,omitempty"`
	Root         elementDoc `json:"root" yaml:"root"`
}

type elementDoc struct {
	Kind         string       `json:"kind" yaml:"kind"`
	ID           string       `json:"id,omitempty" yaml:"id,omitempty"`
	Direction    string       `json:"direction,omitempty" yaml:"direction,omitempty"`
	Ratio        *float64     `json:"ratio,omitempty" yaml:"ratio,omitempty"`
	Children     []elementDoc `json:"children,omitempty" yaml:"children,omitempty"`
	Alias        string       `json:"alias,omitempty" yaml:"alias,omitempty"`
	Structural   bool         `json:"structural,omitempty" yaml:"structural,omitempty"`
	Visible      *bool        `json:"visible,omitempty" yaml:"visible,omitempty"`
	ActiveViewID string       `json:"activeViewId,omitempty" yaml:"activeViewId,omitempty"`
	CSSClass     []string     `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
	Views        []viewDoc    `json:"views,omitempty" yaml:"views,omitempty"`
}

type viewDoc struct {
	ID               string            `json:"id" yaml:"id"`
	Path             string            `json:"path,omitempty" yaml:"path,omitempty"`
	Hint             string            `json:"hint,omitempty" yaml:"hint,omitempty"`
	Data             map[string]string `json:"data,omitempty" yaml:"data,omitempty"`
	CSSClass         []string          `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
	MarkedForRemoval bool              `json:"markedForRemoval,omitempty" yaml:"markedForRemoval,omitempty"`
}

func newLayoutDoc(l *engine.Layout) layoutDoc {
	var doc layoutDoc
	for _, name := range l.GridNames() {
		g, _ := l.Grid(name)
		doc.Grids = append(doc.Grids, gridDoc{Name: name, ActivePartID: g.ActivePartID, Root: newElementDoc(g.Root)})
	}
	return doc
}

func newElementDoc(el grid.Element) elementDoc {
	switch e := el.(type) {
	case *grid.Node:
		ratio := e.Ratio
		return elementDoc{
			Kind:      "node",
			ID:        e.ID,
			Direction: string(e.Direction),
			Ratio:     &ratio,
			Children:  []elementDoc{newElementDoc(e.Child1), newElementDoc(e.Child2)},
		}
	case *grid.Part:
		visible := grid.IsVisible(e)
		doc := elementDoc{
			Kind:         "part",
			ID:           e.ID,
			Alias:        e.Alias,
			Structural:   e.Structural,
			Visible:      &visible,
			ActiveViewID: e.ActiveViewID,
			CSSClass:     e.CSSClass,
		}
		for _, v := range e.Views {
			vd := viewDoc{ID: v.ID, CSSClass: v.CSSClass, MarkedForRemoval: v.MarkedForRemoval}
			if v.Navigation != nil {
				vd.Path = grid.PathString(v.Navigation.Path)
				vd.Hint = v.Navigation.Hint
				vd.Data = v.Navigation.Data
			}
			doc.Views = append(doc.Views, vd)
		}
		return doc
	default:
		return elementDoc{Kind: strings.ToLower(fmt.Sprintf("%T", el))}
	}
}

func writeJSON(w io.Writer, l *engine.Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newLayoutDoc(l))
}

func writeYAML(w io.Writer, l *engine.Layout) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newLayoutDoc(l)); err != nil {
		return err
	}
	return enc.Close()
}
