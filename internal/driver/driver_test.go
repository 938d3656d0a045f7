package driver

import (
	"testing"

	"github.com/diskosim/blocksim/internal/cache"
	"github.com/diskosim/blocksim/internal/config"
	"github.com/diskosim/blocksim/internal/disk"
	"github.com/diskosim/blocksim/internal/policy"
	"github.com/diskosim/blocksim/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver() (*Driver, *disk.Disk, *trace.RecordingSink) {
	cfg := config.Default()
	d := disk.New(cfg)
	p := policy.NewFIFO()
	sink := trace.NewRecordingSink()
	return New(d, p, sink, nil), d, sink
}

func TestStartNextIsNoOpWhenBusy(t *testing.T) {
	drv, _, _ := newTestDriver()
	buf := cache.NewBuffer(0)
	buf.LoadSector(100, 0)
	drv.Schedule(buf, cache.IOOpRead)

	op1 := drv.StartNext(0)
	require.NotNil(t, op1)
	require.True(t, drv.Busy())

	buf2 := cache.NewBuffer(1)
	buf2.LoadSector(200, 0)
	drv.Schedule(buf2, cache.IOOpRead)

	op2 := drv.StartNext(op1.CompletionTime)
	assert.Nil(t, op2)
}

func TestStartNextComputesCompletionAndMovesHead(t *testing.T) {
	drv, d, _ := newTestDriver()
	buf := cache.NewBuffer(0)
	buf.LoadSector(500, 1)
	drv.Schedule(buf, cache.IOOpRead)

	op := drv.StartNext(1000)
	require.NotNil(t, op)
	assert.Greater(t, op.CompletionTime, int64(1000))
	assert.Equal(t, d.TrackOf(500), d.CurrentTrack())
	assert.Equal(t, 1, d.TotalSeeks())
}

func TestCompleteClearsOperationAndInFlight(t *testing.T) {
	drv, _, _ := newTestDriver()
	buf := cache.NewBuffer(0)
	buf.LoadSector(100, 0)
	drv.Schedule(buf, cache.IOOpRead)
	require.True(t, drv.InFlight(100))

	drv.StartNext(0)
	require.True(t, drv.Busy())

	op := drv.Complete()
	require.NotNil(t, op)
	assert.False(t, drv.Busy())
	assert.False(t, drv.InFlight(100))
}

func TestStartNextWithNothingPendingReturnsNil(t *testing.T) {
	drv, _, _ := newTestDriver()
	assert.Nil(t, drv.StartNext(0))
	assert.False(t, drv.HasPending())
}

func TestDriverEmitsScheduleAndCompletionTraceEvents(t *testing.T) {
	drv, _, sink := newTestDriver()
	buf := cache.NewBuffer(0)
	buf.LoadSector(100, 0)
	drv.Schedule(buf, cache.IOOpRead)
	drv.StartNext(0)
	drv.Complete()

	assert.GreaterOrEqual(t, sink.CountSubsystem(trace.Driver), 3)
}
