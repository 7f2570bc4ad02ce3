package serializer

import (
	"strings"
)

// migrator upgrades an element of the payload by one version in place.
type migrator func(el map[string]any)

// migrations maps a source version to the step upgrading it to the next
// version. The chain must reach CurrentVersion without gaps.
var migrations = map[int]migrator{
	1: migrateV1ToV2,
	2: migrateV2ToV3,
	3: migrateV3ToV4,
}

// migrate runs the chain from version up to CurrentVersion and reports
// whether any step ran.
func migrate(doc map[string]any, version int) (bool, error) {
	if version > CurrentVersion || version < 1 {
		return false, &WorkbenchLayoutError{Version: version}
	}
	migrated := false
	for v := version; v < CurrentVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			return false, &WorkbenchLayoutError{Version: v}
		}
		forEachElement(doc, step)
		migrated = true
	}
	return migrated, nil
}

// forEachElement visits every element of a grid or layout document.
func forEachElement(doc map[string]any, fn func(el map[string]any)) {
	var visit func(v any)
	visit = func(v any) {
		el, ok := v.(map[string]any)
		if !ok {
			return
		}
		fn(el)
		visit(el["child1"])
		visit(el["child2"])
	}

	if grids, ok := doc["grids"].(map[string]any); ok {
		for _, g := range grids {
			if gm, ok := g.(map[string]any); ok {
				visit(gm["root"])
			}
		}
		return
	}
	visit(doc["root"])
}

func isPart(el map[string]any) bool {
	return el["type"] == typePart
}

// migrateV1ToV2 renames "partId" to "id" and turns the "viewIds" list into
// view objects.
func migrateV1ToV2(el map[string]any) {
	if !isPart(el) {
		return
	}
	if id, ok := el["partId"]; ok {
		el["id"] = id
		delete(el, "partId")
	}
	if ids, ok := el["viewIds"].([]any); ok {
		views := make([]any, 0, len(ids))
		for _, id := range ids {
			views = append(views, map[string]any{"id": id})
		}
		el["views"] = views
	}
	delete(el, "viewIds")
}

// migrateV2ToV3 makes parts structural unless stated otherwise and moves
// the "navigationHint" of views into a navigation descriptor.
func migrateV2ToV3(el map[string]any) {
	if !isPart(el) {
		return
	}
	if _, ok := el["structural"]; !ok {
		el["structural"] = true
	}
	views, _ := el["views"].([]any)
	for _, v := range views {
		view, ok := v.(map[string]any)
		if !ok {
			continue
		}
		hint, ok := view["navigationHint"]
		if !ok {
			continue
		}
		delete(view, "navigationHint")
		nav, _ := view["navigation"].(map[string]any)
		if nav == nil {
			nav = map[string]any{}
		}
		nav["hint"] = hint
		view["navigation"] = nav
	}
}

// migrateV3ToV4 turns space separated "cssClass" strings of parts and
// views into lists.
func migrateV3ToV4(el map[string]any) {
	if !isPart(el) {
		return
	}
	splitCSSClass(el)
	views, _ := el["views"].([]any)
	for _, v := range views {
		if view, ok := v.(map[string]any); ok {
			splitCSSClass(view)
		}
	}
}

func splitCSSClass(m map[string]any) {
	s, ok := m["cssClass"].(string)
	if !ok {
		return
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		delete(m, "cssClass")
		return
	}
	classes := make([]any, len(fields))
	for i, f := range fields {
		classes[i] = f
	}
	m["cssClass"] = classes
}
