// Package engine is the virtual-clock simulator loop of spec.md section
// 4.7: interrupt dispatch, process pick/execute, and the final flush. The
// control flow here is the canonical truncation-aware variant spec.md
// section 9 calls for; original_source/simulation/simulator.py's Simulator
// lacks phase truncation entirely and is used only to confirm wording, not
// copied for control flow.
package engine

import (
	"errors"
	"fmt"

	"github.com/diskosim/blocksim/internal/cache"
	"github.com/diskosim/blocksim/internal/config"
	"github.com/diskosim/blocksim/internal/disk"
	"github.com/diskosim/blocksim/internal/driver"
	"github.com/diskosim/blocksim/internal/kernel"
	"github.com/diskosim/blocksim/internal/policy"
	"github.com/diskosim/blocksim/internal/process"
	"github.com/diskosim/blocksim/internal/procsched"
	"github.com/diskosim/blocksim/internal/telemetry"
	"github.com/diskosim/blocksim/internal/trace"
)

// PolicyKind selects which disk-scheduling policy an Engine uses.
type PolicyKind int

const (
	FIFO PolicyKind = iota
	LOOK
	NLOOK
)

func (k PolicyKind) String() string {
	switch k {
	case LOOK:
		return "LOOK"
	case NLOOK:
		return "NLOOK"
	default:
		return "FIFO"
	}
}

const maxIterations = 1000

// ErrRunaway is returned when the outer loop exceeds maxIterations without
// terminating, per spec.md section 7.
var ErrRunaway = errors.New("engine: runaway, exceeded iteration cap")

// ErrDeadlock is returned when the loop finds READY empty, no active or
// pending I/O, yet BLOCKED is non-empty — there is no event left that could
// ever wake anything, per spec.md section 7's
// no-pending-interrupt-while-idle diagnostic and section 9's final-flush
// assertion.
var ErrDeadlock = errors.New("engine: deadlock, blocked processes with no pending interrupt")

// Stats is the end-of-run statistics snapshot spec.md section 6 names.
type Stats struct {
	NowUS           int64
	TotalSeeks      int
	TotalSeekTimeMs float64
	Iterations      int
}

// Engine owns every subsystem and drives the simulator loop.
type Engine struct {
	cfg    config.Config
	disk   *disk.Disk
	cache  *cache.Cache
	driver *driver.Driver
	sched  *procsched.Scheduler
	sys    *kernel.Syscalls
	obs    telemetry.Observer
	log    trace.Logger

	nowUS            int64
	nextInterruptUS  int64
	hasNextInterrupt bool
	iterations       int
}

// New builds an Engine with its subsystems wired per the config and policy
// choice.
func New(cfg config.Config, kind PolicyKind, sink trace.Sink, obs telemetry.Observer) *Engine {
	if obs == nil {
		obs = telemetry.NoOp{}
	}
	d := disk.New(cfg)
	c := cache.NewCache(cfg.BuffersNum, cfg.LFULeftSegmentMax, cfg.LFUMiddleSegmentMax)
	pol := newPolicy(kind, cfg, d)
	drv := driver.New(d, pol, sink, obs)
	sched := procsched.New(cfg.QuantumTimeUS, sink)
	sys := kernel.New(cfg, c, drv, d, sink, obs)

	eng := &Engine{
		cfg:    cfg,
		disk:   d,
		cache:  c,
		driver: drv,
		sched:  sched,
		sys:    sys,
		obs:    obs,
		log:    trace.New(sink, trace.Engine),
	}
	eng.logSettings(kind)
	return eng
}

// logSettings emits the structured equivalent of original_source's
// simulation/simulator.py::_print_settings: every configured tunable,
// narrated once before the loop begins. Supplemented feature per
// SPEC_FULL.md section 5.
func (e *Engine) logSettings(kind PolicyKind) {
	e.log.Emit("settings",
		"policy", kind.String(),
		"tracks_num", e.cfg.TracksNum,
		"sectors_per_track", e.cfg.SectorsPerTrack,
		"track_seek_time_ms", e.cfg.TrackSeekTimeMs,
		"rewind_seek_time_ms", e.cfg.RewindSeekTimeMs,
		"rotation_speed_rpm", e.cfg.RotationSpeedRPM,
		"buffers_num", e.cfg.BuffersNum,
		"syscall_read_time_us", e.cfg.SyscallReadTimeUS,
		"syscall_write_time_us", e.cfg.SyscallWriteTimeUS,
		"disk_intr_time_us", e.cfg.DiskIntrTimeUS,
		"quantum_time_us", e.cfg.QuantumTimeUS,
		"before_writing_time_us", e.cfg.BeforeWritingTimeUS,
		"after_reading_time_us", e.cfg.AfterReadingTimeUS,
		"lfu_left_segment_max", e.cfg.LFULeftSegmentMax,
		"lfu_middle_segment_max", e.cfg.LFUMiddleSegmentMax,
		"look_track_read_max", e.cfg.LookTrackReadMax,
		"nlook_queue_max_length", e.cfg.NLookQueueMaxLength,
		"rotation_delay_ms", e.cfg.RotationDelayMs(),
		"sector_access_ms", e.cfg.SectorAccessMs(),
	)
}

func newPolicy(kind PolicyKind, cfg config.Config, d *disk.Disk) policy.Policy {
	switch kind {
	case LOOK:
		return policy.NewLook(d.TrackOf, cfg.LookTrackReadMax)
	case NLOOK:
		return policy.NewNLook(d.TrackOf, cfg.NLookQueueMaxLength)
	default:
		return policy.NewFIFO()
	}
}

// AddProcess enqueues p in the READY queue.
func (e *Engine) AddProcess(p *process.Process) {
	e.sched.Add(p)
}

// Stats returns the current statistics snapshot.
func (e *Engine) Stats() Stats {
	return Stats{
		NowUS:           e.nowUS,
		TotalSeeks:      e.disk.TotalSeeks(),
		TotalSeekTimeMs: e.disk.TotalSeekTimeMs(),
		Iterations:      e.iterations,
	}
}

// Run drives the loop to completion: every process terminates and the
// cache is fully flushed, or an error from spec.md section 7 is returned.
func (e *Engine) Run() error {
	for {
		e.iterations++
		if e.iterations > maxIterations {
			e.log.Emit("runaway guard tripped", "iterations", e.iterations)
			return ErrRunaway
		}
		e.obs.Iteration()

		handled, err := e.checkDiskInterrupt()
		if err != nil {
			return err
		}
		if handled {
			continue
		}

		if e.sched.Current() == nil {
			switch {
			case e.sched.HasReady():
				p := e.sched.ScheduleNext()
				e.log.Emit("switch context", "name", p.Name)
			case !e.sched.HasBlocked() && !e.driver.Busy() && !e.driver.HasPending():
				return e.flush()
			default:
				if !e.hasNextInterrupt {
					e.log.Emit("no pending interrupt while idle")
					return ErrDeadlock
				}
				idleUS := e.nextInterruptUS - e.nowUS
				e.log.Emit("idle until interrupt", "idle_us", idleUS)
				e.nowUS = e.nextInterruptUS
				continue
			}
		}

		current := e.sched.Current()
		op, ok := current.NextOp()
		if !ok {
			e.sched.Terminate(current)
			continue
		}

		if err := e.executeStep(current, op); err != nil {
			return err
		}
	}
}

// checkDiskInterrupt completes the active operation if its completion time
// has arrived, wakes the relevant processes, charges DISK_INTR_TIME, and
// starts the next queued I/O. Returns handled=true if an interrupt fired
// (the loop should restart its iteration).
func (e *Engine) checkDiskInterrupt() (bool, error) {
	if !e.hasNextInterrupt || e.nowUS < e.nextInterruptUS {
		return false, nil
	}
	e.log.Emit("disk interrupt handler invoked")

	op := e.driver.Complete()
	e.hasNextInterrupt = false
	if op == nil {
		return false, fmt.Errorf("engine: interrupt fired with no active operation")
	}

	switch op.Op {
	case cache.IOOpRead:
		e.cache.InsertCompleted(op.Buffer)
		e.obs.Read()
		e.log.Emit("buffer added to cache", "sector", op.Buffer.Sector)
		e.sched.UnblockAllOnSector(op.Buffer.Sector)
	case cache.IOOpWrite:
		op.Buffer.Reset()
		e.cache.PutFree(op.Buffer)
		e.obs.Write()
		e.log.Emit("buffer freed after writeback")
		e.sched.UnblockAll()
	}

	e.chargeCurrent(e.cfg.DiskIntrTimeUS)
	e.startNextIO()
	return true, nil
}

// chargeCurrent advances the clock and, if a process is current, consumes
// its quantum for the same duration.
func (e *Engine) chargeCurrent(dtUS int64) {
	e.nowUS += dtUS
	if e.sched.Current() != nil {
		before := e.sched.Current()
		e.sched.Consume(dtUS)
		if e.sched.Current() == nil && before.State == process.Ready {
			e.obs.Preemption()
		}
	}
}

func (e *Engine) startNextIO() {
	if e.driver.Busy() {
		return
	}
	op := e.driver.StartNext(e.nowUS)
	if op == nil {
		return
	}
	e.nextInterruptUS = op.CompletionTime
	e.hasNextInterrupt = true
	e.log.Emit("next interrupt scheduled", "at_us", op.CompletionTime)
}
