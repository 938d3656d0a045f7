package blocksim

import (
	"testing"

	"github.com/diskosim/blocksim/internal/telemetry"
	"github.com/stretchr/testify/assert"
)

func TestMetricsSatisfiesObserver(t *testing.T) {
	var _ telemetry.Observer = (*Metrics)(nil)
}

func TestMetricsCountsEvents(t *testing.T) {
	m := NewMetrics()
	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()
	m.Eviction(true)
	m.Eviction(false)
	m.Read()
	m.Write()
	m.Seek(1.5)
	m.Preemption()
	m.Truncation()
	m.Iteration()

	snap := m.Snapshot()
	assert.EqualValues(t, 2, snap.CacheHits)
	assert.EqualValues(t, 1, snap.CacheMisses)
	assert.EqualValues(t, 2, snap.Evictions)
	assert.EqualValues(t, 1, snap.DirtyEvictions)
	assert.EqualValues(t, 1, snap.Reads)
	assert.EqualValues(t, 1, snap.Writes)
	assert.EqualValues(t, 1, snap.Seeks)
	assert.InDelta(t, 1.5, snap.SeekTimeMs, 0.001)
	assert.EqualValues(t, 1, snap.Preemptions)
	assert.EqualValues(t, 1, snap.Truncations)
	assert.EqualValues(t, 1, snap.IterationsRun)
}

func TestSnapshotHitRate(t *testing.T) {
	m := NewMetrics()
	m.CacheHit()
	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()

	assert.InDelta(t, 0.75, m.Snapshot().HitRate(), 0.001)
}

func TestSnapshotHitRateZeroWhenNoAccesses(t *testing.T) {
	m := NewMetrics()
	assert.Equal(t, float64(0), m.Snapshot().HitRate())
}
