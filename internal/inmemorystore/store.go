package inmemorystore

import (
	"context"
	"slices"
	"sync"

	"github.com/specialistvlad/layoutgrid/internal/layoutstore"
)

// Store is an in-memory implementation of layoutstore.Store.
type Store struct {
	values sync.Map // Key: layout key, Value: serialized layout string
}

// New creates a new, empty in-memory layout store.
func New() layoutstore.Store {
	return &Store{}
}

// Load retrieves the value stored under key.
func (s *Store) Load(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	v, ok := s.values.Load(key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

// Store saves value under key.
func (s *Store) Store(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.values.Store(key, value)
	return nil
}

// Keys lists the stored layout keys in ascending order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var keys []string
	s.values.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	slices.Sort(keys)
	return keys, nil
}
