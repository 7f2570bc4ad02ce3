package app

import (
	"fmt"

	"github.com/specialistvlad/layoutgrid/internal/ctxlog"
	"github.com/specialistvlad/layoutgrid/internal/definition"
	"github.com/specialistvlad/layoutgrid/internal/engine"
	"github.com/specialistvlad/layoutgrid/internal/merge"
	"github.com/specialistvlad/layoutgrid/internal/persist"
	"github.com/specialistvlad/layoutgrid/internal/serializer"
)

// ApplyOptions controls ApplyDefinition.
type ApplyOptions struct {
	// Reset builds the layout from scratch instead of applying the
	// definition on top of the stored one.
	Reset bool
}

func (a *App) layoutOptions(mainArea bool) []engine.Option {
	if mainArea || a.config.Layout.MainArea {
		return []engine.Option{engine.WithMainArea()}
	}
	return nil
}

// LoadLayout reads the layout stored under key, falling back to the default
// layout as persist.Load does.
func (a *App) LoadLayout(key string) (persist.Loaded, error) {
	return persist.Load(a.ctx, a.store, key, a.env, a.layoutOptions(false)...)
}

// SaveLayout persists l under key and waits for the write to complete.
func (a *App) SaveLayout(key string, l *engine.Layout) error {
	if err := a.writer.WriteLayout(key, l); err != nil {
		return err
	}
	return a.writer.Flush(a.ctx)
}

// ApplyDefinition loads the definition files below paths, applies them to
// the layout stored under key and stores the result.
func (a *App) ApplyDefinition(key string, paths []string, opts ApplyOptions) (*engine.Layout, error) {
	ctx := ctxlog.With(a.ctx, "key", key)
	def, err := definition.Load(ctx, paths...)
	if err != nil {
		return nil, err
	}

	base := engine.New(a.env, a.layoutOptions(def.MainArea)...)
	if !opts.Reset {
		loaded, err := a.LoadLayout(key)
		if err != nil {
			return nil, err
		}
		if loaded.Found {
			base = loaded.Layout
		}
	}
	l, err := def.Apply(ctx, base)
	if err != nil {
		return nil, err
	}

	if err := a.SaveLayout(key, l); err != nil {
		return nil, err
	}
	a.logger.Info("Layout definition applied.", "key", key, "files", len(def.Files), "parts", len(def.Parts))
	return l, nil
}

// MigrateLayout loads the layout stored under key and writes it back when
// loading upgraded or replaced it.
func (a *App) MigrateLayout(key string) (persist.Loaded, error) {
	loaded, err := a.LoadLayout(key)
	if err != nil {
		return persist.Loaded{}, err
	}
	if loaded.Found && loaded.Migrated {
		if err := a.SaveLayout(key, loaded.Layout); err != nil {
			return persist.Loaded{}, err
		}
		a.logger.Info("Migrated layout written back.", "key", key, "version", serializer.CurrentVersion)
	}
	return loaded, nil
}

// MergeLayout reconciles the layout stored under key with a remote layout,
// given the base both diverged from, and stores the result. Base and remote
// are transport strings.
func (a *App) MergeLayout(key, base, remote string) (*engine.Layout, error) {
	loaded, err := a.LoadLayout(key)
	if err != nil {
		return nil, err
	}
	baseLayout, err := a.DecodeLayout(base)
	if err != nil {
		return nil, fmt.Errorf("base: %w", err)
	}
	remoteLayout, err := a.DecodeLayout(remote)
	if err != nil {
		return nil, fmt.Errorf("remote: %w", err)
	}

	merged, err := merge.Merge(merge.Input{Local: loaded.Layout, Base: baseLayout, Remote: remoteLayout})
	if err != nil {
		return nil, fmt.Errorf("failed to merge layout '%s': %w", key, err)
	}
	if err := a.SaveLayout(key, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// DecodeLayout deserializes a transport string into a layout, migrating it
// to the current version when needed.
func (a *App) DecodeLayout(s string) (*engine.Layout, error) {
	res, err := serializer.DeserializeLayout(s)
	if err != nil {
		return nil, err
	}
	if res.Migrated {
		a.logger.Debug("Decoded layout was migrated.", "from_version", res.Version)
	}
	return engine.FromGrids(a.env, res.Grids)
}

// EncodeLayout serializes l into a transport string.
func EncodeLayout(l *engine.Layout) (string, error) {
	return serializer.SerializeLayout(l.Grids(), serializer.PersistFlags)
}
