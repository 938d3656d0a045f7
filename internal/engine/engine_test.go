package engine

import (
	"testing"

	"github.com/diskosim/blocksim/internal/config"
	"github.com/diskosim/blocksim/internal/process"
	"github.com/diskosim/blocksim/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingObserver is a telemetry.Observer test double that tallies every
// event kind, standing in for the root Metrics type in package-level tests.
type countingObserver struct {
	hits, misses, evictions, dirtyEvictions int
	reads, writes, preemptions, truncations int
	seeks                                   int
	iterations                              int
}

func (o *countingObserver) CacheHit()  { o.hits++ }
func (o *countingObserver) CacheMiss() { o.misses++ }
func (o *countingObserver) Eviction(dirty bool) {
	o.evictions++
	if dirty {
		o.dirtyEvictions++
	}
}
func (o *countingObserver) Read()        { o.reads++ }
func (o *countingObserver) Write()       { o.writes++ }
func (o *countingObserver) Seek(float64) { o.seeks++ }
func (o *countingObserver) Preemption()  { o.preemptions++ }
func (o *countingObserver) Truncation()  { o.truncations++ }
func (o *countingObserver) Iteration()   { o.iterations++ }

func TestSingleReadMissCompletesWithOneSeek(t *testing.T) {
	obs := &countingObserver{}
	e := New(config.Default(), FIFO, trace.Discard{}, obs)
	e.AddProcess(process.New("p1", []process.Op{{Kind: process.OpRead, Sector: 100}}))

	require.NoError(t, e.Run())
	stats := e.Stats()
	assert.Equal(t, 1, stats.TotalSeeks)
	assert.Equal(t, 1, obs.reads)
	assert.Equal(t, 0, obs.writes)
}

func TestSingleWriteMissReadsBeforeWritingThenFlushesOneWriteback(t *testing.T) {
	obs := &countingObserver{}
	e := New(config.Default(), FIFO, trace.Discard{}, obs)
	e.AddProcess(process.New("p1", []process.Op{{Kind: process.OpWrite, Sector: 100}}))

	require.NoError(t, e.Run())
	stats := e.Stats()
	assert.Equal(t, 2, stats.TotalSeeks, "read-before-write plus the flush writeback")
	assert.Equal(t, 1, obs.reads)
	assert.Equal(t, 1, obs.writes)
}

func TestTwoProcessesSameSectorShareOneDiskRead(t *testing.T) {
	obs := &countingObserver{}
	e := New(config.Default(), FIFO, trace.Discard{}, obs)
	e.AddProcess(process.New("p1", []process.Op{{Kind: process.OpRead, Sector: 100}}))
	e.AddProcess(process.New("p2", []process.Op{{Kind: process.OpRead, Sector: 100}}))

	require.NoError(t, e.Run())
	assert.Equal(t, 1, obs.reads, "only one disk READ should ever be issued for the shared sector")
	assert.GreaterOrEqual(t, obs.hits, 2, "both processes eventually see a cache hit")
}

func TestReadingSameSectorTwiceFromOneProcessCausesOneDiskIO(t *testing.T) {
	obs := &countingObserver{}
	e := New(config.Default(), FIFO, trace.Discard{}, obs)
	e.AddProcess(process.New("p1", []process.Op{
		{Kind: process.OpRead, Sector: 100},
		{Kind: process.OpRead, Sector: 100},
	}))

	require.NoError(t, e.Run())
	assert.Equal(t, 1, obs.reads)
}

func TestEvictionCascadeForcesExactlyOneCleanEviction(t *testing.T) {
	obs := &countingObserver{}
	cfg := config.Default() // BuffersNum=10, LFULeftSegmentMax=3, LFUMiddleSegmentMax=2
	e := New(cfg, FIFO, trace.Discard{}, obs)

	ops := make([]process.Op, 0, 11)
	for s := 100; s <= 190; s += 10 {
		ops = append(ops, process.Op{Kind: process.OpRead, Sector: s})
	}
	ops = append(ops, process.Op{Kind: process.OpWrite, Sector: 200})
	e.AddProcess(process.New("p1", ops))

	require.NoError(t, e.Run())
	assert.Equal(t, 1, obs.evictions, "the eleventh distinct buffer access must force exactly one eviction")
	assert.Equal(t, 0, obs.dirtyEvictions, "every evicted buffer here was only ever read, never written")
}

func TestBuffersNumOneForcesEvictionBetweenTwoDistinctSectorReads(t *testing.T) {
	obs := &countingObserver{}
	cfg := config.Default()
	cfg.BuffersNum = 1
	cfg.LFULeftSegmentMax = 1
	cfg.LFUMiddleSegmentMax = 1
	e := New(cfg, FIFO, trace.Discard{}, obs)
	e.AddProcess(process.New("p1", []process.Op{
		{Kind: process.OpRead, Sector: 100},
		{Kind: process.OpRead, Sector: 200},
	}))

	require.NoError(t, e.Run())
	assert.GreaterOrEqual(t, obs.evictions, 1)
}

func TestLookDirectionFlipServiceOrder(t *testing.T) {
	cfg := config.Default()
	cfg.LookTrackReadMax = 1
	sink := trace.NewRecordingSink()
	e := New(cfg, LOOK, sink, nil)

	e.AddProcess(process.New("p1", []process.Op{{Kind: process.OpRead, Sector: 100}}))  // track 0
	e.AddProcess(process.New("p2", []process.Op{{Kind: process.OpRead, Sector: 110}}))  // track 0
	e.AddProcess(process.New("p3", []process.Op{{Kind: process.OpRead, Sector: 1500}})) // track 3

	require.NoError(t, e.Run())

	var order []int
	for _, ev := range sink.Events {
		if ev.Subsystem == trace.Engine && ev.Message == "buffer added to cache" {
			order = append(order, ev.Fields["sector"].(int))
		}
	}
	require.Len(t, order, 3)
	assert.Equal(t, []int{100, 1500, 110}, order, "track-0 budget exhaustion must force reaching track 3 before returning")
}

func TestScenarioOneIsDeterministicAcrossFreshRuns(t *testing.T) {
	run := func() Stats {
		e := New(config.Default(), FIFO, trace.Discard{}, nil)
		e.AddProcess(process.New("p1", []process.Op{{Kind: process.OpRead, Sector: 100}}))
		require.NoError(t, e.Run())
		return e.Stats()
	}

	first := run()
	second := run()
	assert.Equal(t, first.NowUS, second.NowUS)
	assert.Equal(t, first.TotalSeeks, second.TotalSeeks)
}

func TestMultiProcessRoundRobinAllTerminate(t *testing.T) {
	obs := &countingObserver{}
	cfg := config.Default()
	cfg.QuantumTimeUS = 500 // small quantum to force mid-run preemptions
	e := New(cfg, NLOOK, trace.Discard{}, obs)

	for i, name := range []string{"p1", "p2", "p3", "p4"} {
		sector := 100 + i*300
		e.AddProcess(process.New(name, []process.Op{
			{Kind: process.OpRead, Sector: sector},
			{Kind: process.OpWrite, Sector: sector + 5000},
		}))
	}

	require.NoError(t, e.Run())
	assert.Greater(t, obs.preemptions, 0, "a 500us quantum against 7000us user-mode phases must preempt at least once")
}
