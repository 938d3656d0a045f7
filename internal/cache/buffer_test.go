package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferLifecycle(t *testing.T) {
	b := NewBuffer(7)
	assert.False(t, b.Bound())
	assert.Equal(t, IOOpNone, b.IO)
	assert.True(t, b.Evictable())

	b.LoadSector(100, 0)
	assert.True(t, b.Bound())
	assert.Equal(t, 100, b.Sector)
	assert.EqualValues(t, 1, b.AccessCounter)
	assert.False(t, b.Dirty)

	b.MarkModified()
	assert.True(t, b.Dirty)

	b.IncrementAccess()
	assert.EqualValues(t, 2, b.AccessCounter)

	b.IO = IOOpWrite
	assert.False(t, b.Evictable())

	b.Reset()
	assert.False(t, b.Bound())
	assert.False(t, b.Dirty)
	assert.EqualValues(t, 0, b.AccessCounter)
	assert.Equal(t, IOOpNone, b.IO)
	assert.Equal(t, SegmentFree, b.Seg)
}

func TestArenaStableIDs(t *testing.T) {
	a := NewArena(4)
	for i := 0; i < 4; i++ {
		assert.EqualValues(t, i, a.Get(BufferID(i)).ID)
	}
	assert.Len(t, a.All(), 4)
}
