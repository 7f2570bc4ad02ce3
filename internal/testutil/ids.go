package testutil

import (
	"fmt"
	"sync"
)

// SeqIDs is a predictable engine.IDGenerator: it numbers node and
// navigation ids from one counter.
type SeqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *SeqIDs) next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n
}

func (s *SeqIDs) NodeID() string       { return fmt.Sprintf("node.%d", s.next()) }
func (s *SeqIDs) NavigationID() string { return fmt.Sprintf("nav.%d", s.next()) }
