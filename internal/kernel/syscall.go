// Package kernel implements the read/write syscall semantics of spec.md
// section 4.6, the layer that ties the buffer cache and disk driver
// together; it reports whether the caller must block and leaves the
// process scheduler to the caller. Grounded on
// original_source/kernel/syscalls.py (SystemCalls).
package kernel

import (
	"github.com/diskosim/blocksim/internal/cache"
	"github.com/diskosim/blocksim/internal/config"
	"github.com/diskosim/blocksim/internal/disk"
	"github.com/diskosim/blocksim/internal/driver"
	"github.com/diskosim/blocksim/internal/telemetry"
	"github.com/diskosim/blocksim/internal/trace"
)

// Result is what a syscall reports back to the phase machine: whether the
// sector was already resident (Hit), how much time the call itself
// consumed, and whether the calling process must block.
type Result struct {
	Hit         bool
	TimeSpentUS int64
	Blocked     bool
}

// Syscalls wires the cache, driver, and disk geometry together. It never
// touches the process scheduler directly; callers translate a blocked
// Result into a scheduler.Block call themselves.
type Syscalls struct {
	cfg    config.Config
	cache  *cache.Cache
	driver *driver.Driver
	disk   *disk.Disk
	obs    telemetry.Observer
	log    trace.Logger
}

func New(cfg config.Config, c *cache.Cache, d *driver.Driver, dk *disk.Disk, sink trace.Sink, obs telemetry.Observer) *Syscalls {
	if obs == nil {
		obs = telemetry.NoOp{}
	}
	return &Syscalls{cfg: cfg, cache: c, driver: d, disk: dk, obs: obs, log: trace.New(sink, trace.Kernel)}
}

// SysRead performs the read syscall for sector. Per spec.md section 4.6.
func (s *Syscalls) SysRead(sector int) (Result, error) {
	t := s.cfg.SyscallReadTimeUS
	s.log.Emit("syscall entered", "op", "READ", "sector", sector)

	if _, ok := s.cache.Find(sector); ok {
		_, _, _ = s.cache.Access(sector, s.disk.TrackOf(sector))
		s.obs.CacheHit()
		return Result{Hit: true, TimeSpentUS: t}, nil
	}
	s.obs.CacheMiss()
	return s.handleMiss(sector, t, cache.IOOpRead)
}

// SysWrite performs the write syscall for sector. On a hit the buffer is
// marked dirty; on a miss the kernel still issues a READ to populate the
// buffer (read-before-write) — the dirty mark happens on the retried hit.
// Per spec.md section 4.6.
func (s *Syscalls) SysWrite(sector int) (Result, error) {
	t := s.cfg.SyscallWriteTimeUS
	s.log.Emit("syscall entered", "op", "WRITE", "sector", sector)

	if buf, ok := s.cache.Find(sector); ok {
		buf, _, _ = s.cache.Access(sector, s.disk.TrackOf(sector))
		buf.MarkModified()
		s.obs.CacheHit()
		return Result{Hit: true, TimeSpentUS: t}, nil
	}
	s.obs.CacheMiss()
	return s.handleMiss(sector, t, cache.IOOpRead)
}

func (s *Syscalls) handleMiss(sector int, timeSpentUS int64, wantOp cache.IOOp) (Result, error) {
	if s.driver.InFlight(sector) {
		s.log.Emit("sector already scheduled for I/O", "sector", sector)
		return Result{TimeSpentUS: timeSpentUS, Blocked: true}, nil
	}

	buf, err := s.cache.GetFree()
	if err != nil {
		return Result{}, err
	}

	if buf.Bound() {
		// GetFree only ever returns a still-bound buffer by evicting it
		// from the right segment; the free list only ever holds buffers
		// that were already Reset().
		s.obs.Eviction(buf.Dirty)
	}

	if buf.Bound() && buf.Dirty {
		s.cache.MarkInDriver(buf)
		s.driver.Schedule(buf, cache.IOOpWrite)
		s.log.Emit("evicted buffer was dirty, writeback scheduled", "sector", buf.Sector)
		return Result{TimeSpentUS: timeSpentUS, Blocked: true}, nil
	}

	track := s.disk.TrackOf(sector)
	buf.LoadSector(sector, track)
	s.cache.MarkInDriver(buf)
	s.driver.Schedule(buf, wantOp)
	return Result{TimeSpentUS: timeSpentUS, Blocked: true}, nil
}
