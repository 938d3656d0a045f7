// Package driver owns the disk's single active I/O operation and routes
// pending requests through a scheduling policy, per spec.md section 4.4.
// Grounded on original_source/driver/disk_driver.py (DiskDriver).
package driver

import (
	"github.com/diskosim/blocksim/internal/cache"
	"github.com/diskosim/blocksim/internal/disk"
	"github.com/diskosim/blocksim/internal/policy"
	"github.com/diskosim/blocksim/internal/telemetry"
	"github.com/diskosim/blocksim/internal/trace"
)

// Operation is the in-flight or just-dispatched I/O the driver is tracking.
type Operation struct {
	Buffer         *cache.Buffer
	Op             cache.IOOp
	CompletionTime int64
}

// Driver forwards requests to a Policy and computes completion times from
// the disk model, never holding more than one active operation at once.
type Driver struct {
	disk   *disk.Disk
	policy policy.Policy
	obs    telemetry.Observer
	log    trace.Logger

	current  *Operation
	inFlight map[int]cache.IOOp // sector -> op, queued or active
}

func New(d *disk.Disk, p policy.Policy, sink trace.Sink, obs telemetry.Observer) *Driver {
	if obs == nil {
		obs = telemetry.NoOp{}
	}
	return &Driver{
		disk:     d,
		policy:   p,
		obs:      obs,
		log:      trace.New(sink, trace.Driver),
		inFlight: make(map[int]cache.IOOp),
	}
}

// Schedule records buf's sector as in-flight and enqueues it with the
// policy. Per spec.md section 4.4.
func (d *Driver) Schedule(buf *cache.Buffer, op cache.IOOp) {
	d.inFlight[buf.Sector] = op
	d.policy.Add(buf, op)
	d.log.Emit("scheduled for I/O", "sector", buf.Sector, "op", op.String())
	d.log.Emit("policy state", "state", d.policy.StateString())
}

// StartNext begins the next queued operation if the driver is idle,
// returning nil if it was already busy or the policy has nothing pending.
// Computes completion_time = now + (seek + rotation + transfer)*1000 us,
// updating the disk's current_track as a side effect of the seek.
func (d *Driver) StartNext(now int64) *Operation {
	if d.current != nil {
		return nil
	}
	buf := d.policy.Next(d.disk.CurrentTrack())
	if buf == nil {
		d.log.Emit("policy has nothing to do")
		return nil
	}
	op := buf.IO

	d.logBestMove(buf)

	target := d.disk.TrackOf(buf.Sector)
	seekMs := d.disk.SeekTo(target)
	d.obs.Seek(seekMs)
	totalMs := seekMs + d.disk.RotationDelayMs() + d.disk.SectorAccessMs()
	completion := now + int64(totalMs*1000)

	d.current = &Operation{Buffer: buf, Op: op, CompletionTime: completion}
	return d.current
}

// logBestMove records the seek about to be made for the buffer about to be
// serviced: the from/to tracks and the chosen seek time (the smaller of the
// direct and rewind paths). The two candidate times are not logged
// separately. The structured equivalent of
// DiskDriver._print_best_move_decision.
func (d *Driver) logBestMove(buf *cache.Buffer) {
	target := d.disk.TrackOf(buf.Sector)
	current := d.disk.CurrentTrack()
	direct := d.disk.SeekTimeMs(current, target)
	d.log.Emit("best move decision", "from_track", current, "to_track", target, "chosen_seek_ms", direct)
}

// Complete clears the active operation, drops the sector from the
// in-flight map, informs the policy, and clears the buffer's IO field so it
// is evictable again. Per spec.md section 4.4.
func (d *Driver) Complete() *Operation {
	op := d.current
	if op == nil {
		return nil
	}
	delete(d.inFlight, op.Buffer.Sector)
	d.policy.Complete()
	op.Buffer.IO = cache.IOOpNone
	d.current = nil
	d.log.Emit("completed I/O", "sector", op.Buffer.Sector, "op", op.Op.String())
	d.log.Emit("policy state", "state", d.policy.StateString())
	return op
}

// InFlight reports whether sector is queued or actively being serviced.
func (d *Driver) InFlight(sector int) bool {
	_, ok := d.inFlight[sector]
	return ok
}

// Busy reports whether the driver has an active operation.
func (d *Driver) Busy() bool {
	return d.current != nil
}

// HasPending reports whether the policy still holds queued requests, used
// by the final flush to know when it may stop driving completions.
func (d *Driver) HasPending() bool {
	return d.policy.HasPending()
}

// Current exposes the active operation, if any.
func (d *Driver) Current() *Operation {
	return d.current
}
