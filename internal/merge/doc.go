// Package merge reconciles a local layout with a remote one that diverged
// from a common base.
//
// The reconciliation is identity-keyed by view id rather than a diff of
// tree shapes. It keeps two legacy behaviors: when the base and remote
// disagree on grid names or on the target of a shared view, the remote
// replaces the local layout wholesale; otherwise only views added or removed
// upstream are applied to the local tree and every other structural change
// upstream is ignored.
package merge
