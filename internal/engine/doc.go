// Package engine implements the copy-on-write layout engine.
//
// A Layout is an immutable collection of named grids. Every operation clones
// the committed state into an unexported working copy, applies its steps to
// that copy only, and returns the frozen copy as a new Layout. The receiver is
// never modified and stays usable after the call.
//
// Collaborators that would otherwise be ambient services (activation
// instants, id generation, path resolution, logging) are passed explicitly
// through Env.
package engine
