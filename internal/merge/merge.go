package merge

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/layoutgrid/internal/engine"
	"github.com/specialistvlad/layoutgrid/internal/grid"
)

// Input holds the three snapshots of a merge.
type Input struct {
	Local  *engine.Layout
	Base   *engine.Layout
	Remote *engine.Layout
}

// Merge reconciles Local with the changes Remote made to Base.
func Merge(in Input) (*engine.Layout, error) {
	if in.Local == nil || in.Base == nil || in.Remote == nil {
		return nil, &grid.IllegalArgumentError{Msg: "merge requires local, base and remote layouts"}
	}
	logger := in.Local.Env().Logger

	if in.Base.Equal(in.Remote) {
		logger.Debug("Remote layout unchanged, keeping local layout.")
		return in.Local, nil
	}
	if reason, replace := requiresReplace(in.Base, in.Remote); replace {
		// TODO: merge structural divergence instead of replacing the local
		// layout once parts can be matched across snapshots.
		logger.Info("Replacing local layout with remote layout.", "reason", reason)
		return in.Remote.WithEnv(in.Local.Env()), nil
	}

	added, removed := Diff(viewIDs(in.Base), viewIDs(in.Remote))
	logger.Debug("Merging remote view changes.", "added", added, "removed", removed)

	merged := in.Local
	var err error
	for _, id := range added {
		if merged, err = addRemoteView(merged, in.Remote, id); err != nil {
			return nil, fmt.Errorf("failed to merge added view %q: %w", id, err)
		}
	}
	for _, id := range removed {
		if _, ok := merged.LookupView(engine.ViewFilter{ID: id}); !ok {
			continue
		}
		if merged, err = merged.RemoveView(id, engine.RemoveViewOptions{Force: true}); err != nil {
			return nil, fmt.Errorf("failed to merge removed view %q: %w", id, err)
		}
	}
	return merged, nil
}

// requiresReplace reports the divergences the merge does not reconcile.
func requiresReplace(base, remote *engine.Layout) (string, bool) {
	if !slices.Equal(base.GridNames(), remote.GridNames()) {
		return "grid names differ", true
	}
	for _, bv := range base.Views(engine.ViewFilter{}) {
		rv, ok := remote.LookupView(engine.ViewFilter{ID: bv.ID})
		if !ok {
			continue
		}
		if !grid.EqualPath(path(bv), path(rv)) {
			return fmt.Sprintf("path of view %q differs", bv.ID), true
		}
		if hint(bv) != hint(rv) {
			return fmt.Sprintf("hint of view %q differs", bv.ID), true
		}
	}
	return "", false
}

func addRemoteView(local, remote *engine.Layout, id string) (*engine.Layout, error) {
	if _, exists := local.LookupView(engine.ViewFilter{ID: id}); exists {
		return local, nil
	}
	rv, err := remote.FindView(engine.ViewFilter{ID: id})
	if err != nil {
		return nil, err
	}
	host, err := remote.FindPart(engine.PartFilter{ViewID: id})
	if err != nil {
		return nil, err
	}
	opts := engine.AddViewOptions{Navigation: rv.Navigation, CSSClass: rv.CSSClass}

	if target, ok := containerFor(local, host.ID); ok {
		opts.PartID = target
		return local.AddView(id, opts)
	}
	local, err = local.AddPart(host.ID, "", engine.AddPartOptions{Align: engine.AlignRight, Structural: true})
	if err != nil {
		return nil, err
	}
	opts.PartID = host.ID
	return local.AddView(id, opts)
}

// containerFor picks the local part receiving a view hosted by hostID
// upstream: the same part if it exists locally, else the first part that is
// not the main area.
func containerFor(local *engine.Layout, hostID string) (string, bool) {
	if _, ok := local.LookupPart(engine.PartFilter{ID: hostID}); ok && hostID != grid.MainAreaPartID {
		return hostID, true
	}
	for _, p := range local.Parts(engine.PartFilter{}) {
		if p.ID != grid.MainAreaPartID {
			return p.ID, true
		}
	}
	return "", false
}

func viewIDs(l *engine.Layout) []string {
	var ids []string
	for _, v := range l.Views(engine.ViewFilter{}) {
		ids = append(ids, v.ID)
	}
	return ids
}

func path(v *grid.View) []grid.Segment {
	if v.Navigation == nil {
		return nil
	}
	return v.Navigation.Path
}

func hint(v *grid.View) string {
	if v.Navigation == nil {
		return ""
	}
	return v.Navigation.Hint
}
