package cache

// Arena owns the backing storage for every Buffer in the system. All other
// structures (segments, the free list, driver queues) hold BufferIDs and
// look them up here, rather than owning Buffer pointers directly. Per
// spec.md DESIGN NOTES section 9.
type Arena struct {
	buffers []Buffer
}

// NewArena allocates n free buffers, ids 0..n-1.
func NewArena(n int) *Arena {
	a := &Arena{buffers: make([]Buffer, n)}
	for i := range a.buffers {
		a.buffers[i] = *NewBuffer(BufferID(i))
	}
	return a
}

// Len returns the number of buffers in the arena.
func (a *Arena) Len() int {
	return len(a.buffers)
}

// Get returns a pointer to the buffer with the given id. The pointer is
// stable for the arena's lifetime.
func (a *Arena) Get(id BufferID) *Buffer {
	return &a.buffers[id]
}

// All returns every buffer in id order, for diagnostics and flush.
func (a *Arena) All() []*Buffer {
	out := make([]*Buffer, len(a.buffers))
	for i := range a.buffers {
		out[i] = &a.buffers[i]
	}
	return out
}
