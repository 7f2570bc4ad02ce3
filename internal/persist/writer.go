package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/specialistvlad/layoutgrid/internal/ctxlog"
	"github.com/specialistvlad/layoutgrid/internal/engine"
	"github.com/specialistvlad/layoutgrid/internal/layoutstore"
	"github.com/specialistvlad/layoutgrid/internal/serializer"
)

// keyState tracks the writes of one key.
type keyState struct {
	pending *string
	// idle is closed when the in-flight write and everything pending
	// behind it has completed. nil while the key is idle.
	idle chan struct{}
	err  error
}

// Writer serializes writes per key on top of a store.
type Writer struct {
	ctx    context.Context
	store  layoutstore.Store
	logger *slog.Logger

	mu   sync.Mutex
	keys map[string]*keyState
}

// NewWriter creates a writer issuing writes with ctx. The logger is taken
// from ctx.
func NewWriter(ctx context.Context, store layoutstore.Store) *Writer {
	return &Writer{
		ctx:    ctx,
		store:  store,
		logger: ctxlog.FromContext(ctx),
		keys:   make(map[string]*keyState),
	}
}

// Write schedules value to be stored under key and returns immediately. If
// a write for key is in flight, value replaces any value waiting behind it.
func (w *Writer) Write(key, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	st, ok := w.keys[key]
	if !ok {
		st = &keyState{}
		w.keys[key] = st
	}
	if st.idle != nil {
		if st.pending != nil {
			w.logger.Debug("Dropping superseded pending write.", "key", key)
		}
		st.pending = &value
		return
	}
	st.idle = make(chan struct{})
	go w.run(key, value, st)
}

// WriteLayout serializes l with PersistFlags and schedules the write.
func (w *Writer) WriteLayout(key string, l *engine.Layout) error {
	s, err := serializer.SerializeLayout(l.Grids(), serializer.PersistFlags)
	if err != nil {
		return fmt.Errorf("failed to serialize layout '%s': %w", key, err)
	}
	w.Write(key, s)
	return nil
}

func (w *Writer) run(key, value string, st *keyState) {
	for {
		err := w.store.Store(w.ctx, key, value)
		if err != nil {
			w.logger.Error("Failed to persist layout.", "key", key, "error", err)
		} else {
			w.logger.Debug("Persisted layout.", "key", key, "bytes", len(value))
		}

		w.mu.Lock()
		if err != nil {
			st.err = err
		}
		if st.pending != nil {
			value = *st.pending
			st.pending = nil
			w.mu.Unlock()
			continue
		}
		close(st.idle)
		st.idle = nil
		w.mu.Unlock()
		return
	}
}

// Flush waits until every scheduled write has completed and returns the
// errors of failed writes since the previous Flush.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	var waits []chan struct{}
	for _, st := range w.keys {
		if st.idle != nil {
			waits = append(waits, st.idle)
		}
	}
	w.mu.Unlock()

	for _, idle := range waits {
		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	for key, st := range w.keys {
		if st.err != nil {
			errs = append(errs, fmt.Errorf("layout '%s': %w", key, st.err))
			st.err = nil
		}
	}
	return errors.Join(errs...)
}
