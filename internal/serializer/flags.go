package serializer

// Flags selects the fields omitted during serialization.
type Flags struct {
	// ExcludeNodeID drops the ids of split nodes.
	ExcludeNodeID bool
	// ExcludeNavigationID drops navigation ids of views and parts.
	ExcludeNavigationID bool
	// ExcludeMarkedForRemoval drops the tombstone flag of views.
	ExcludeMarkedForRemoval bool
	// AssignStableNodeIDs replaces node ids with positional ids
	// ("node.1", "node.2", ...) in depth-first order.
	AssignStableNodeIDs bool
}

var (
	// PersistFlags keeps every field, for durable storage.
	PersistFlags = Flags{}
	// EqualityFlags strips transient fields so that structurally equal
	// grids serialize identically.
	EqualityFlags = Flags{
		ExcludeNavigationID:     true,
		ExcludeMarkedForRemoval: true,
		AssignStableNodeIDs:     true,
	}
)
