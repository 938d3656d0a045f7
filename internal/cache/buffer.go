// Package cache implements the segmented-LFU buffer cache described in
// spec.md section 4.2: a three-segment promotion ladder (left/middle/right)
// backed by a stable arena of buffers, plus the eviction and insertion
// rules the syscall layer and engine depend on.
package cache

// IOOp is the pending disk operation, if any, bound to a buffer. Always
// present (never a pointer/optional), per spec.md section 9's
// normalization of the original's sometimes-absent io_operation field.
type IOOp int

const (
	IOOpNone IOOp = iota
	IOOpRead
	IOOpWrite
)

func (op IOOp) String() string {
	switch op {
	case IOOpRead:
		return "READ"
	case IOOpWrite:
		return "WRITE"
	default:
		return "NONE"
	}
}

// Segment tags where a buffer currently lives, kept on the buffer itself so
// promotion/demotion is O(1) instead of the O(n) "which deque contains
// this object" scan in original_source/cache/lfu_cache.py. Per spec.md
// DESIGN NOTES section 9.
type Segment int

const (
	SegmentFree Segment = iota
	SegmentLeft
	SegmentMiddle
	SegmentRight
	SegmentInDriver
)

// BufferID is a stable index into an Arena's backing storage. Segments,
// queues and the free list hold BufferIDs, never Buffer pointers, per
// spec.md DESIGN NOTES section 9.
type BufferID int

// Buffer is one cache line: identity, optional sector/track binding, dirty
// bit, access counter, and pending I/O state. Grounded on
// original_source/models/buffer.py.
type Buffer struct {
	ID BufferID

	bound         bool
	Sector        int
	Track         int
	Dirty         bool
	AccessCounter uint32
	IO            IOOp
	Seg           Segment
}

// NewBuffer returns a free, unbound buffer with the given id.
func NewBuffer(id BufferID) *Buffer {
	return &Buffer{ID: id, Seg: SegmentFree}
}

// Bound reports whether this buffer currently holds a sector.
func (b *Buffer) Bound() bool {
	return b.bound
}

// LoadSector binds the buffer to a sector/track, resets the access counter
// to 1 and clears dirty, per spec.md section 4.2's access() semantics.
func (b *Buffer) LoadSector(sector, track int) {
	b.bound = true
	b.Sector = sector
	b.Track = track
	b.Dirty = false
	b.AccessCounter = 1
}

// MarkModified sets the dirty bit.
func (b *Buffer) MarkModified() {
	b.Dirty = true
}

// IncrementAccess bumps the LFU access counter.
func (b *Buffer) IncrementAccess() {
	b.AccessCounter++
}

// Reset clears the buffer back to an unbound, clean, zero-counter state.
// Per spec.md section 3, only legal after a completed WRITE.
func (b *Buffer) Reset() {
	b.bound = false
	b.Sector = 0
	b.Track = 0
	b.Dirty = false
	b.AccessCounter = 0
	b.IO = IOOpNone
	b.Seg = SegmentFree
}

// Evictable reports whether this buffer may be chosen for eviction: it must
// have no I/O pending. Per spec.md section 3 invariant 3.
func (b *Buffer) Evictable() bool {
	return b.IO == IOOpNone
}
