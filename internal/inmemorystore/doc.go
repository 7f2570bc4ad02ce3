// Package inmemorystore provides a thread-safe, in-memory implementation
// of the layoutstore.Store interface. It is suitable for tests, one-shot CLI
// runs, or any scenario where layouts do not need to survive the process.
//
// # Concurrency Model
//
// Values live in a sync.Map: keys are independent, so concurrent writes to
// different keys never contend on a global lock.
package inmemorystore
