// Package layoutstore defines the interface for persisting serialized
// layouts under string keys.
//
// # Why Layout Store Exists
//
// The layout engine is pure: it never reads or writes storage on its own.
// Persistence is a collaborator that only sees opaque transport strings
// produced by the serializer, which keeps the engine free of I/O and lets
// callers pick a backend:
//   - **inmemorystore:** ephemeral, for tests and one-shot CLI runs
//   - **sqlitestore:** durable, a single sqlite file with versioned schema
//
// # Write Discipline
//
// Backends do not order concurrent writes themselves. Callers are expected
// to issue writes to the same key strictly sequentially and to await each
// write before issuing the next one; persist.Writer implements that
// discipline on top of any Store.
package layoutstore

import (
	"context"
)

// Store is the data contract between the layout engine and storage.
//
// # Thread-Safety Requirements
//
// Implementations MUST be safe for concurrent use. Writes to different keys
// may run in parallel.
type Store interface {
	// Load returns the value stored under key.
	//
	// Returns the value and true if found, or "" and false if nothing was
	// stored under the key. The error is reserved for backend failures; a
	// missing key is not an error.
	Load(ctx context.Context, key string) (string, bool, error)

	// Store saves value under key, replacing any previous value.
	//
	// The write is complete when Store returns; a caller may issue the next
	// write to the same key right after.
	Store(ctx context.Context, key, value string) error
}

// Lister is implemented by stores that can enumerate their keys.
type Lister interface {
	// Keys returns the stored keys in ascending order.
	Keys(ctx context.Context) ([]string, error)
}
