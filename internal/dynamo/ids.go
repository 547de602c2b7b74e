package dynamo

import "sync"

// IDAllocator hands out monotonically increasing agent ids. Ids key the
// interaction graph, so every agent in a scenario must draw from the same
// allocator.
type IDAllocator struct {
	mu   sync.Mutex
	next int
}

func (a *IDAllocator) Next() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.next
	a.next++
	return id
}

// Reset rewinds the allocator to zero. Call it at the start of a scenario
// or test so ids are reproducible.
func (a *IDAllocator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next = 0
}

var defaultIDs IDAllocator

// NextID allocates from the package allocator, used by model constructors
// when no explicit id is supplied.
func NextID() int { return defaultIDs.Next() }

// ResetIDs rewinds the package allocator.
func ResetIDs() { defaultIDs.Reset() }
