package disk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diskosim/blocksim/internal/config"
)

func testConfig() config.Config {
	return config.Default()
}

func TestTrackOf(t *testing.T) {
	d := New(testConfig())
	assert.Equal(t, 0, d.TrackOf(100))
	assert.Equal(t, 0, d.TrackOf(499))
	assert.Equal(t, 1, d.TrackOf(500))
	assert.Equal(t, 3, d.TrackOf(1500))
}

func TestSeekTimePrefersCheaperPath(t *testing.T) {
	d := New(testConfig())
	// direct: |20-0|*0.5 = 10ms, rewind: 10 + 20*0.5 = 20ms -> direct wins
	require.InDelta(t, 10.0, d.SeekTimeMs(0, 20), 1e-9)

	// direct: |0-9999|*0.5 = 4999.5ms, rewind: 10 + 9999*0.5 = 5009.5ms -> direct wins
	require.InDelta(t, 4999.5, d.SeekTimeMs(0, 9999), 1e-9)
}

func TestSeekToUpdatesPositionAndCounters(t *testing.T) {
	d := New(testConfig())
	spent := d.SeekTo(3)
	assert.Equal(t, 3, d.CurrentTrack())
	assert.Equal(t, 1, d.TotalSeeks())
	assert.InDelta(t, spent, d.TotalSeekTimeMs(), 1e-9)

	spent2 := d.SeekTo(0)
	assert.Equal(t, 0, d.CurrentTrack())
	assert.Equal(t, 2, d.TotalSeeks())
	assert.InDelta(t, spent+spent2, d.TotalSeekTimeMs(), 1e-9)
}

func TestSeekToSameTrackIsZeroButStillCounts(t *testing.T) {
	d := New(testConfig())
	d.SeekTo(5)
	spent := d.SeekTo(5)
	assert.Zero(t, spent)
	assert.Equal(t, 2, d.TotalSeeks())
}
