package cache

import "fmt"

// Cache is the segmented-LFU buffer cache of spec.md section 4.2: three
// ordered segments (left, middle, right) forming a promotion ladder, a free
// list, and a sector->buffer index. Grounded on
// original_source/cache/lfu_cache.py (LFUCache), restructured to index
// stable BufferIDs through an Arena rather than holding Buffer references
// directly (spec.md DESIGN NOTES section 9).
type Cache struct {
	arena *Arena

	leftMax   int
	middleMax int

	left   []BufferID // front = index 0
	middle []BufferID
	right  []BufferID
	free   []BufferID

	bySector map[int]BufferID
}

// ErrNoEvictableBuffer is returned by GetFree when every right-segment
// buffer currently has I/O pending. Per spec.md section 4.2 and section 7
// ("No-evictable-buffer").
var ErrNoEvictableBuffer = fmt.Errorf("cache: no buffer available for eviction")

// NewCache builds a cache over a fresh arena of n buffers, all initially
// free.
func NewCache(n, leftMax, middleMax int) *Cache {
	arena := NewArena(n)
	free := make([]BufferID, n)
	for i := 0; i < n; i++ {
		free[i] = BufferID(i)
	}
	return &Cache{
		arena:     arena,
		leftMax:   leftMax,
		middleMax: middleMax,
		free:      free,
		bySector:  make(map[int]BufferID),
	}
}

// Arena exposes the backing buffer storage, for flush and diagnostics.
func (c *Cache) Arena() *Arena {
	return c.arena
}

// Find looks up the buffer currently bound to sector, if any. O(1).
func (c *Cache) Find(sector int) (*Buffer, bool) {
	id, ok := c.bySector[sector]
	if !ok {
		return nil, false
	}
	return c.arena.Get(id), true
}

// GetFree returns a free buffer, taking from the free list first and
// falling back to evicting the minimum-access-counter evictable buffer in
// the right segment. Returns ErrNoEvictableBuffer if eviction is needed but
// impossible because every right-segment buffer has I/O pending.
func (c *Cache) GetFree() (*Buffer, error) {
	if len(c.free) > 0 {
		id := c.free[len(c.free)-1]
		c.free = c.free[:len(c.free)-1]
		buf := c.arena.Get(id)
		buf.Seg = SegmentFree
		return buf, nil
	}
	return c.evictFromRight()
}

func (c *Cache) evictFromRight() (*Buffer, error) {
	minIdx := -1
	var minCounter uint32
	for i, id := range c.right {
		buf := c.arena.Get(id)
		if !buf.Evictable() {
			continue
		}
		if minIdx == -1 || buf.AccessCounter < minCounter {
			minIdx = i
			minCounter = buf.AccessCounter
		}
	}
	if minIdx == -1 {
		return nil, ErrNoEvictableBuffer
	}
	id := c.right[minIdx]
	c.right = append(c.right[:minIdx], c.right[minIdx+1:]...)
	buf := c.arena.Get(id)
	if buf.Bound() {
		delete(c.bySector, buf.Sector)
	}
	buf.Seg = SegmentFree
	return buf, nil
}

// Access records an access to sector. If the buffer is already present it
// is promoted to the front of left; otherwise a free buffer is allocated,
// bound to (sector, track), and inserted at the front of left. Per spec.md
// section 4.2.
func (c *Cache) Access(sector, track int) (*Buffer, bool, error) {
	if buf, ok := c.Find(sector); ok {
		c.promoteToLeft(buf)
		buf.IncrementAccess()
		return buf, true, nil
	}
	buf, err := c.GetFree()
	if err != nil {
		return nil, false, err
	}
	buf.LoadSector(sector, track)
	c.addToLeft(buf.ID)
	c.bySector[sector] = buf.ID
	return buf, false, nil
}

// InsertCompleted installs a buffer that was just populated by a completed
// READ: it is not yet in the map, so it is inserted fresh at the front of
// left. Per spec.md section 4.2.
func (c *Cache) InsertCompleted(buf *Buffer) {
	c.addToLeft(buf.ID)
	c.bySector[buf.Sector] = buf.ID
}

// promoteToLeft removes buf from whichever segment currently holds it
// (using its own Segment tag to avoid scanning all three) and re-inserts
// it at the front of left, triggering overflow demotion as usual.
func (c *Cache) promoteToLeft(buf *Buffer) {
	switch buf.Seg {
	case SegmentLeft:
		c.removeFrom(&c.left, buf.ID)
	case SegmentMiddle:
		c.removeFrom(&c.middle, buf.ID)
	case SegmentRight:
		c.removeFrom(&c.right, buf.ID)
	}
	c.addToLeft(buf.ID)
}

func (c *Cache) removeFrom(seg *[]BufferID, id BufferID) {
	s := *seg
	for i, v := range s {
		if v == id {
			*seg = append(s[:i], s[i+1:]...)
			return
		}
	}
}

func (c *Cache) addToLeft(id BufferID) {
	c.arena.Get(id).Seg = SegmentLeft
	c.left = append([]BufferID{id}, c.left...)
	if len(c.left) > c.leftMax {
		tail := c.left[len(c.left)-1]
		c.left = c.left[:len(c.left)-1]
		c.addToMiddle(tail)
	}
}

func (c *Cache) addToMiddle(id BufferID) {
	c.arena.Get(id).Seg = SegmentMiddle
	c.middle = append([]BufferID{id}, c.middle...)
	if len(c.middle) > c.middleMax {
		tail := c.middle[len(c.middle)-1]
		c.middle = c.middle[:len(c.middle)-1]
		c.addToRight(tail)
	}
}

func (c *Cache) addToRight(id BufferID) {
	c.arena.Get(id).Seg = SegmentRight
	c.right = append([]BufferID{id}, c.right...)
}

// PutFree returns a reset, unbound buffer to the free list. Callers must
// have already called buf.Reset().
func (c *Cache) PutFree(buf *Buffer) {
	buf.Seg = SegmentFree
	c.free = append(c.free, buf.ID)
}

// MarkInDriver tags a buffer as owned by the driver's queue/active set, so
// it is no longer a candidate for any segment operation until it returns
// via InsertCompleted or PutFree.
func (c *Cache) MarkInDriver(buf *Buffer) {
	switch buf.Seg {
	case SegmentLeft:
		c.removeFrom(&c.left, buf.ID)
	case SegmentMiddle:
		c.removeFrom(&c.middle, buf.ID)
	case SegmentRight:
		c.removeFrom(&c.right, buf.ID)
	}
	buf.Seg = SegmentInDriver
}

// AllCached returns every buffer currently indexed in left/middle/right, in
// left-then-middle-then-right order, for the final flush.
func (c *Cache) AllCached() []*Buffer {
	out := make([]*Buffer, 0, len(c.left)+len(c.middle)+len(c.right))
	for _, id := range c.left {
		out = append(out, c.arena.Get(id))
	}
	for _, id := range c.middle {
		out = append(out, c.arena.Get(id))
	}
	for _, id := range c.right {
		out = append(out, c.arena.Get(id))
	}
	return out
}

// StateString renders the three segments for trace output, matching the
// structure (not wording) of original_source/cache/lfu_cache.py's
// get_state_string.
func (c *Cache) StateString() string {
	return fmt.Sprintf("left=%v middle=%v right=%v", c.renderSeg(c.left), c.renderSeg(c.middle), c.renderSeg(c.right))
}

func (c *Cache) renderSeg(seg []BufferID) []string {
	out := make([]string, len(seg))
	for i, id := range seg {
		b := c.arena.Get(id)
		out[i] = fmt.Sprintf("(%d:%d)", b.Track, b.Sector)
	}
	return out
}

// Counts returns the current population of each partition, used to check
// the invariant that they sum to the total buffer count.
func (c *Cache) Counts() (left, middle, right, freeN int) {
	return len(c.left), len(c.middle), len(c.right), len(c.free)
}
