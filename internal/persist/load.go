package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/layoutgrid/internal/ctxlog"
	"github.com/specialistvlad/layoutgrid/internal/engine"
	"github.com/specialistvlad/layoutgrid/internal/layoutstore"
	"github.com/specialistvlad/layoutgrid/internal/serializer"
)

// Loaded is the outcome of Load.
type Loaded struct {
	Layout *engine.Layout
	// Found reports that a value was stored under the key.
	Found bool
	// Migrated reports that the stored value should be written again,
	// either because it was upgraded or because it was replaced by a
	// default layout.
	Migrated bool
}

// Load reads the layout stored under key. A missing key yields the default
// layout. A malformed payload is logged and replaced by the default layout
// tagged as migrated; an unsupported version is returned as an error.
func Load(ctx context.Context, store layoutstore.Store, key string, env engine.Env, opts ...engine.Option) (Loaded, error) {
	logger := ctxlog.FromContext(ctx)

	value, found, err := store.Load(ctx, key)
	if err != nil {
		return Loaded{}, fmt.Errorf("failed to load layout '%s': %w", key, err)
	}
	if !found {
		logger.Debug("No stored layout, using default.", "key", key)
		return Loaded{Layout: engine.New(env, opts...)}, nil
	}

	res, err := serializer.DeserializeLayout(value)
	var serializeErr *serializer.SerializeError
	switch {
	case errors.As(err, &serializeErr):
		logger.Warn("Stored layout is malformed, falling back to default.", "key", key, "error", err)
		return Loaded{Layout: engine.New(env, opts...), Found: true, Migrated: true}, nil
	case err != nil:
		return Loaded{}, fmt.Errorf("failed to read layout '%s': %w", key, err)
	}

	l, err := engine.FromGrids(env, res.Grids)
	if err != nil {
		logger.Warn("Stored layout is inconsistent, falling back to default.", "key", key, "error", err)
		return Loaded{Layout: engine.New(env, opts...), Found: true, Migrated: true}, nil
	}
	if res.Migrated {
		logger.Info("Stored layout was migrated.", "key", key, "from_version", res.Version, "to_version", serializer.CurrentVersion)
	}
	return Loaded{Layout: l, Found: true, Migrated: res.Migrated}, nil
}
