package blocksim

import "sync/atomic"

// Metrics accumulates the counters spec.md section 6 names ("Statistics")
// plus the richer per-subsystem event counts the telemetry.Observer
// interface reports, so a caller can watch a run live instead of only
// reading Engine.Stats() once it finishes. Grounded on go-ublk's metrics.go
// atomic-counter shape; satisfies internal/telemetry.Observer structurally.
type Metrics struct {
	CacheHits      atomic.Uint64
	CacheMisses    atomic.Uint64
	Evictions      atomic.Uint64
	DirtyEvictions atomic.Uint64
	Reads          atomic.Uint64
	Writes         atomic.Uint64
	Seeks          atomic.Uint64
	SeekTimeMs     atomic.Uint64 // accumulated as integer microseconds, see SeekTimeMsTotal
	Preemptions    atomic.Uint64
	Truncations    atomic.Uint64
	IterationsRun  atomic.Uint64
}

// NewMetrics returns a zeroed Metrics ready to be passed to NewSimulator.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) CacheHit()  { m.CacheHits.Add(1) }
func (m *Metrics) CacheMiss() { m.CacheMisses.Add(1) }

func (m *Metrics) Eviction(dirty bool) {
	m.Evictions.Add(1)
	if dirty {
		m.DirtyEvictions.Add(1)
	}
}

func (m *Metrics) Read()  { m.Reads.Add(1) }
func (m *Metrics) Write() { m.Writes.Add(1) }

// Seek records one seek and its duration. ms is stored as whole
// microseconds so the accumulator stays an integer atomic.
func (m *Metrics) Seek(ms float64) {
	m.Seeks.Add(1)
	m.SeekTimeMs.Add(uint64(ms * 1000))
}

func (m *Metrics) Preemption() { m.Preemptions.Add(1) }
func (m *Metrics) Truncation() { m.Truncations.Add(1) }
func (m *Metrics) Iteration()  { m.IterationsRun.Add(1) }

// SeekTimeMsTotal returns the accumulated seek time in milliseconds.
func (m *Metrics) SeekTimeMsTotal() float64 {
	return float64(m.SeekTimeMs.Load()) / 1000
}

// Snapshot is a point-in-time, non-atomic copy of Metrics for reporting.
type Snapshot struct {
	CacheHits, CacheMisses    uint64
	Evictions, DirtyEvictions uint64
	Reads, Writes             uint64
	Seeks                     uint64
	SeekTimeMs                float64
	Preemptions, Truncations  uint64
	IterationsRun             uint64
}

// Snapshot copies every counter's current value.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		CacheHits:      m.CacheHits.Load(),
		CacheMisses:    m.CacheMisses.Load(),
		Evictions:      m.Evictions.Load(),
		DirtyEvictions: m.DirtyEvictions.Load(),
		Reads:          m.Reads.Load(),
		Writes:         m.Writes.Load(),
		Seeks:          m.Seeks.Load(),
		SeekTimeMs:     m.SeekTimeMsTotal(),
		Preemptions:    m.Preemptions.Load(),
		Truncations:    m.Truncations.Load(),
		IterationsRun:  m.IterationsRun.Load(),
	}
}

// HitRate returns CacheHits / (CacheHits + CacheMisses), or 0 if neither
// has been observed yet.
func (s Snapshot) HitRate() float64 {
	total := s.CacheHits + s.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(total)
}
