package serializer

const (
	typeNode = "MTreeNode"
	typePart = "MPart"
)

type layoutDTO struct {
	Grids map[string]*gridDTO `json:"grids"`
}

type gridDTO struct {
	Root         *elementDTO `json:"root"`
	ActivePartID string      `json:"activePartId,omitempty"`
}

// elementDTO holds either a node or a part, told apart by Type.
type elementDTO struct {
	Type string `json:"type"`

	NodeID    string      `json:"nodeId,omitempty"`
	Child1    *elementDTO `json:"child1,omitempty"`
	Child2    *elementDTO `json:"child2,omitempty"`
	Direction string      `json:"direction,omitempty"`
	Ratio     *float64    `json:"ratio,omitempty"`

	ID           string      `json:"id,omitempty"`
	Alias        string      `json:"alias,omitempty"`
	Structural   *bool       `json:"structural,omitempty"`
	Views        []*viewDTO  `json:"views,omitempty"`
	ActiveViewID string      `json:"activeViewId,omitempty"`
	Navigation   *partNavDTO `json:"navigation,omitempty"`
	CSSClass     []string    `json:"cssClass,omitempty"`
}

type viewDTO struct {
	ID               string         `json:"id"`
	Alias            string         `json:"alias,omitempty"`
	Navigation       *navigationDTO `json:"navigation,omitempty"`
	CSSClass         []string       `json:"cssClass,omitempty"`
	MarkedForRemoval bool           `json:"markedForRemoval,omitempty"`
}

type navigationDTO struct {
	ID   string            `json:"id,omitempty"`
	Path []segmentDTO      `json:"path,omitempty"`
	Hint string            `json:"hint,omitempty"`
	Data map[string]string `json:"data,omitempty"`
}

type partNavDTO struct {
	ID   string            `json:"id,omitempty"`
	Hint string            `json:"hint,omitempty"`
	Data map[string]string `json:"data,omitempty"`
}

type segmentDTO struct {
	Path   string            `json:"path"`
	Params map[string]string `json:"params,omitempty"`
}
