// Package persist connects layouts to a layoutstore.Store.
//
// Writer applies the write discipline storage expects: at most one write per
// key is in flight, and writes requested meanwhile collapse into the newest
// pending value. Load applies the recovery policy for stored payloads:
// malformed payloads fall back to a default layout, unsupported versions are
// reported to the caller.
package persist
