package engine

import "github.com/diskosim/blocksim/internal/cache"

// flush implements spec.md section 4.9: when the loop would otherwise exit,
// every dirty cached buffer gets a WRITE scheduled, then the pending-I/O
// loop runs to completion (start-next, advance the clock to the next
// interrupt, free the buffer) until the policy queue is empty and the
// driver is idle. No process may be BLOCKED at this point; the source never
// wakes anyone during flush, so a non-empty BLOCKED set here means no event
// will ever unblock it.
func (e *Engine) flush() error {
	if e.sched.HasBlocked() {
		e.log.Emit("flush found blocked processes with no pending interrupt")
		return ErrDeadlock
	}

	e.log.Emit("final flush started")
	for _, buf := range e.cache.AllCached() {
		if buf.Dirty {
			e.cache.MarkInDriver(buf)
			e.driver.Schedule(buf, cache.IOOpWrite)
		}
	}
	e.startNextIO()
	for e.driver.HasPending() || e.driver.Busy() {
		if !e.hasNextInterrupt {
			return ErrDeadlock
		}
		e.nowUS = e.nextInterruptUS

		op := e.driver.Complete()
		e.hasNextInterrupt = false
		if op == nil {
			return ErrDeadlock
		}
		op.Buffer.Reset()
		e.cache.PutFree(op.Buffer)
		e.obs.Write()
		e.nowUS += e.cfg.DiskIntrTimeUS
		e.startNextIO()
	}

	e.log.Emit("final flush complete", "now_us", e.nowUS)
	return nil
}
