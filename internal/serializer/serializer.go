package serializer

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"

	"github.com/specialistvlad/layoutgrid/internal/grid"
)

// CurrentVersion is the version written by this package.
const CurrentVersion = 4

const versionSeparator = "//"

// Result is a deserialized grid.
type Result struct {
	Grid *grid.Grid
	// Version is the version the payload was written with.
	Version int
	// Migrated reports that at least one migration ran; the payload should
	// be persisted again in the current version.
	Migrated bool
}

// LayoutResult is a deserialized collection of named grids.
type LayoutResult struct {
	Grids    map[string]*grid.Grid
	Version  int
	Migrated bool
}

// SerializeGrid encodes one grid into a transport string.
func SerializeGrid(g *grid.Grid, flags Flags) (string, error) {
	counter := 0
	dto, err := encodeGrid(g, flags, &counter)
	if err != nil {
		return "", err
	}
	return pack(dto)
}

// SerializeLayout encodes a collection of named grids into one transport
// string. Positional node ids continue across grids in name order.
func SerializeLayout(grids map[string]*grid.Grid, flags Flags) (string, error) {
	names := make([]string, 0, len(grids))
	for name := range grids {
		names = append(names, name)
	}
	sort.Strings(names)

	counter := 0
	dto := layoutDTO{Grids: make(map[string]*gridDTO, len(grids))}
	for _, name := range names {
		gdto, err := encodeGrid(grids[name], flags, &counter)
		if err != nil {
			return "", fmt.Errorf("grid %q: %w", name, err)
		}
		dto.Grids[name] = gdto
	}
	return pack(dto)
}

func pack(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", &SerializeError{Msg: "failed to encode payload", Err: err}
	}
	text := string(raw) + versionSeparator + strconv.Itoa(CurrentVersion)
	return base64.StdEncoding.EncodeToString([]byte(text)), nil
}

func encodeGrid(g *grid.Grid, flags Flags, counter *int) (*gridDTO, error) {
	if g == nil {
		return nil, &SerializeError{Msg: "grid is nil"}
	}
	root, err := encodeElement(g.Root, flags, counter)
	if err != nil {
		return nil, err
	}
	return &gridDTO{Root: root, ActivePartID: g.ActivePartID}, nil
}

func encodeElement(el grid.Element, flags Flags, counter *int) (*elementDTO, error) {
	switch e := el.(type) {
	case *grid.Node:
		id := e.ID
		if flags.AssignStableNodeIDs {
			*counter++
			id = "node." + strconv.Itoa(*counter)
		}
		if flags.ExcludeNodeID {
			id = ""
		}
		c1, err := encodeElement(e.Child1, flags, counter)
		if err != nil {
			return nil, err
		}
		c2, err := encodeElement(e.Child2, flags, counter)
		if err != nil {
			return nil, err
		}
		ratio := e.Ratio
		return &elementDTO{
			Type:      typeNode,
			NodeID:    id,
			Child1:    c1,
			Child2:    c2,
			Direction: string(e.Direction),
			Ratio:     &ratio,
		}, nil
	case *grid.Part:
		structural := e.Structural
		dto := &elementDTO{
			Type:         typePart,
			ID:           e.ID,
			Alias:        e.Alias,
			Structural:   &structural,
			ActiveViewID: e.ActiveViewID,
			CSSClass:     e.CSSClass,
		}
		if e.Navigation != nil {
			dto.Navigation = &partNavDTO{Hint: e.Navigation.Hint, Data: e.Navigation.Data}
			if !flags.ExcludeNavigationID {
				dto.Navigation.ID = e.Navigation.ID
			}
		}
		for _, v := range e.Views {
			dto.Views = append(dto.Views, encodeView(v, flags))
		}
		return dto, nil
	default:
		return nil, &SerializeError{Msg: fmt.Sprintf("unexpected element type %T", el)}
	}
}

func encodeView(v *grid.View, flags Flags) *viewDTO {
	dto := &viewDTO{ID: v.ID, Alias: v.Alias, CSSClass: v.CSSClass}
	if !flags.ExcludeMarkedForRemoval {
		dto.MarkedForRemoval = v.MarkedForRemoval
	}
	if n := v.Navigation; n != nil {
		dto.Navigation = &navigationDTO{Hint: n.Hint, Data: n.Data}
		if !flags.ExcludeNavigationID {
			dto.Navigation.ID = n.ID
		}
		for _, s := range n.Path {
			dto.Navigation.Path = append(dto.Navigation.Path, segmentDTO{Path: s.Path, Params: s.Params})
		}
	}
	return dto
}

// DeserializeGrid decodes a transport string holding one grid, migrating
// it to the current version first.
func DeserializeGrid(s string) (Result, error) {
	doc, version, migrated, err := unpack(s)
	if err != nil {
		return Result{}, err
	}
	if _, ok := doc["root"]; !ok {
		return Result{}, &SerializeError{Msg: "payload does not describe a grid"}
	}
	var dto gridDTO
	if err := remarshal(doc, &dto); err != nil {
		return Result{}, err
	}
	g, err := decodeGrid(&dto)
	if err != nil {
		return Result{}, err
	}
	return Result{Grid: g, Version: version, Migrated: migrated}, nil
}

// DeserializeLayout decodes a transport string holding named grids. A
// payload holding a single grid is returned under grid.GridMain.
func DeserializeLayout(s string) (LayoutResult, error) {
	doc, version, migrated, err := unpack(s)
	if err != nil {
		return LayoutResult{}, err
	}

	var dto layoutDTO
	switch {
	case doc["grids"] != nil:
		if err := remarshal(doc, &dto); err != nil {
			return LayoutResult{}, err
		}
	case doc["root"] != nil:
		var single gridDTO
		if err := remarshal(doc, &single); err != nil {
			return LayoutResult{}, err
		}
		dto.Grids = map[string]*gridDTO{grid.GridMain: &single}
	default:
		return LayoutResult{}, &SerializeError{Msg: "payload holds neither a grid nor a layout"}
	}

	res := LayoutResult{Grids: make(map[string]*grid.Grid, len(dto.Grids)), Version: version, Migrated: migrated}
	for name, gdto := range dto.Grids {
		g, err := decodeGrid(gdto)
		if err != nil {
			return LayoutResult{}, fmt.Errorf("grid %q: %w", name, err)
		}
		res.Grids[name] = g
	}
	return res, nil
}

// unpack decodes the transport string and migrates the payload document to
// the current version.
func unpack(s string) (map[string]any, int, bool, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, 0, false, &SerializeError{Msg: "payload is not base64", Err: err}
	}
	text := string(raw)
	i := strings.LastIndex(text, versionSeparator)
	if i < 0 {
		return nil, 0, false, &SerializeError{Msg: "payload has no version tag"}
	}
	version, err := strconv.Atoi(text[i+len(versionSeparator):])
	if err != nil {
		return nil, 0, false, &SerializeError{Msg: "payload has an invalid version tag", Err: err}
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(text[:i]), &doc); err != nil {
		return nil, 0, false, &SerializeError{Msg: "payload is not valid JSON", Err: err}
	}
	migrated, err := migrate(doc, version)
	if err != nil {
		return nil, 0, false, err
	}
	return doc, version, migrated, nil
}

func remarshal(doc map[string]any, into any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return &SerializeError{Msg: "failed to re-encode migrated payload", Err: err}
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return &SerializeError{Msg: "payload does not match the current shape", Err: err}
	}
	return nil
}

func decodeGrid(dto *gridDTO) (*grid.Grid, error) {
	if dto == nil {
		return nil, &SerializeError{Msg: "grid is missing"}
	}
	root, err := decodeElement(dto.Root)
	if err != nil {
		return nil, err
	}
	g, err := grid.New(root, dto.ActivePartID)
	if err != nil {
		return nil, &SerializeError{Msg: "invalid grid", Err: err}
	}
	return g, nil
}

func decodeElement(dto *elementDTO) (grid.Element, error) {
	if dto == nil {
		return nil, &SerializeError{Msg: "element is missing"}
	}
	switch dto.Type {
	case typeNode:
		c1, err := decodeElement(dto.Child1)
		if err != nil {
			return nil, err
		}
		c2, err := decodeElement(dto.Child2)
		if err != nil {
			return nil, err
		}
		ratio := 0.5
		if dto.Ratio != nil {
			ratio = *dto.Ratio
		}
		n, err := grid.NewNode(dto.NodeID, c1, c2, grid.Direction(dto.Direction), ratio)
		if err != nil {
			return nil, &SerializeError{Msg: "invalid node", Err: err}
		}
		return n, nil
	case typePart:
		structural := true
		if dto.Structural != nil {
			structural = *dto.Structural
		}
		views := make([]*grid.View, 0, len(dto.Views))
		for _, vdto := range dto.Views {
			if vdto == nil {
				return nil, &SerializeError{Msg: fmt.Sprintf("part %q holds a null view", dto.ID)}
			}
			views = append(views, decodeView(vdto))
		}
		if len(views) == 0 {
			views = nil
		}
		p, err := grid.NewPart(dto.ID, structural, views...)
		if err != nil {
			return nil, &SerializeError{Msg: "invalid part", Err: err}
		}
		p.Alias = dto.Alias
		p.ActiveViewID = dto.ActiveViewID
		p.CSSClass = dto.CSSClass
		if dto.Navigation != nil {
			p.Navigation = &grid.PartNavigation{ID: dto.Navigation.ID, Hint: dto.Navigation.Hint, Data: maps.Clone(dto.Navigation.Data)}
		}
		return p, nil
	default:
		return nil, &SerializeError{Msg: fmt.Sprintf("unknown element type %q", dto.Type)}
	}
}

func decodeView(dto *viewDTO) *grid.View {
	v := &grid.View{ID: dto.ID, Alias: dto.Alias, CSSClass: dto.CSSClass, MarkedForRemoval: dto.MarkedForRemoval}
	if n := dto.Navigation; n != nil {
		v.Navigation = &grid.Navigation{ID: n.ID, Hint: n.Hint, Data: n.Data}
		for _, s := range n.Path {
			v.Navigation.Path = append(v.Navigation.Path, grid.Segment{Path: s.Path, Params: s.Params})
		}
	}
	return v
}
