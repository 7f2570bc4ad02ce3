package definition

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot decodes all top-level blocks of a definition file.
type fileRoot struct {
	Layout *LayoutBlock `hcl:"layout,block"`
	Parts  []*PartBlock `hcl:"part,block"`
}

// LayoutBlock holds layout wide settings.
type LayoutBlock struct {
	MainArea bool `hcl:"main_area,optional"`
}

// PartBlock declares a part and the views it holds.
type PartBlock struct {
	ID         string       `hcl:"id,label"`
	RelativeTo string       `hcl:"relative_to,optional"`
	Align      string       `hcl:"align,optional"`
	Ratio      *float64     `hcl:"ratio,optional"`
	Structural *bool        `hcl:"structural,optional"`
	Activate   bool         `hcl:"activate,optional"`
	CSSClass   []string     `hcl:"css_class,optional"`
	Views      []*ViewBlock `hcl:"view,block"`

	// DefRange and RelativeToRange locate the block for diagnostics.
	DefRange        hcl.Range
	RelativeToRange hcl.Range
}

// ViewBlock declares a view and its initial navigation.
type ViewBlock struct {
	ID       string    `hcl:"id,label"`
	Path     []string  `hcl:"path,optional"`
	Hint     string    `hcl:"hint,optional"`
	Data     cty.Value `hcl:"data,optional"`
	Activate bool      `hcl:"activate,optional"`
	CSSClass []string  `hcl:"css_class,optional"`

	DefRange hcl.Range
}

// Definition is the merged content of one or more definition files.
type Definition struct {
	MainArea bool
	Parts    []*PartBlock
	// Files lists the files the definition was read from.
	Files []string
}
