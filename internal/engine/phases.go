// Phase machine for one process's current op, per spec.md section 4.8. Every
// user-level step is decomposed into phases that may be truncated by an
// upcoming disk interrupt: a phase has a target duration D; if it would
// overrun next_interrupt_us, only the remainder until the interrupt is
// consumed and the leftover duration is stashed on the process so execution
// resumes exactly where it was cut.
package engine

import "github.com/diskosim/blocksim/internal/process"

// executeStep advances current by one phase of op, truncating against the
// next scheduled interrupt if necessary. Dispatches on op.Kind, resuming
// mid-phase when current.Phase is not PhaseNone.
func (e *Engine) executeStep(current *process.Process, op process.Op) error {
	switch op.Kind {
	case process.OpWrite:
		return e.executeWrite(current, op)
	default:
		return e.executeRead(current, op)
	}
}

// executeRead runs the Read sub-state-machine: (a) syscall phase
// SYSCALL_READ_TIME, on completion a cache consultation; (b) once the
// buffer is resident, user-mode phase AFTER_READING_TIME, then advance pc.
func (e *Engine) executeRead(p *process.Process, op process.Op) error {
	if p.Phase == process.PhaseNone {
		p.EnterPhase(process.PhaseSyscall, e.cfg.SyscallReadTimeUS, op)
	}

	switch p.Phase {
	case process.PhaseSyscall:
		truncated, err := e.runDuration(p)
		if err != nil || truncated {
			return err
		}
		res, err := e.sys.SysRead(p.PendingOp.Sector)
		if err != nil {
			return err
		}
		if res.Blocked {
			e.blockOnMiss(p)
			return nil
		}
		p.EnterPhase(process.PhaseAfterRead, e.cfg.AfterReadingTimeUS, op)
		return nil

	case process.PhaseAfterRead:
		truncated, err := e.runDuration(p)
		if err != nil || truncated {
			return err
		}
		p.ClearPhase()
		p.Advance()
		return nil
	}
	return nil
}

// executeWrite runs the Write sub-state-machine: (a) user-mode phase
// BEFORE_WRITING_TIME; (b) syscall phase SYSCALL_WRITE_TIME, on completion a
// cache consultation (mark dirty on hit), then advance pc.
func (e *Engine) executeWrite(p *process.Process, op process.Op) error {
	if p.Phase == process.PhaseNone {
		p.EnterPhase(process.PhaseBeforeWrite, e.cfg.BeforeWritingTimeUS, op)
	}

	switch p.Phase {
	case process.PhaseBeforeWrite:
		truncated, err := e.runDuration(p)
		if err != nil || truncated {
			return err
		}
		p.EnterPhase(process.PhaseSyscall, e.cfg.SyscallWriteTimeUS, op)
		return nil

	case process.PhaseSyscall:
		truncated, err := e.runDuration(p)
		if err != nil || truncated {
			return err
		}
		res, err := e.sys.SysWrite(p.PendingOp.Sector)
		if err != nil {
			return err
		}
		if res.Blocked {
			e.blockOnMiss(p)
			return nil
		}
		p.ClearPhase()
		p.Advance()
		return nil

	}
	return nil
}

// blockOnMiss moves p into BLOCKED on the sector it just missed on, then
// makes sure the driver has something running so the interrupt that will
// wake it eventually fires.
func (e *Engine) blockOnMiss(p *process.Process) {
	e.sched.Block(p, p.PendingOp.Sector)
	e.log.Emit("process blocked on sector", "name", p.Name, "sector", p.PendingOp.Sector)
	e.startNextIO()
}

// runDuration consumes p's current phase: the full PhaseRemaining if it fits
// before the next scheduled interrupt, otherwise only the slice up to that
// interrupt, leaving the rest stashed on p.PhaseRemaining. Returns
// truncated=true when the phase did not complete this call.
func (e *Engine) runDuration(p *process.Process) (truncated bool, err error) {
	d := p.PhaseRemaining
	if e.hasNextInterrupt && e.nowUS+d > e.nextInterruptUS {
		slice := e.nextInterruptUS - e.nowUS
		e.chargeCurrent(slice)
		p.PhaseRemaining -= slice
		e.obs.Truncation()
		e.log.Emit("phase truncated by interrupt", "name", p.Name, "remaining_us", p.PhaseRemaining)
		return true, nil
	}
	e.chargeCurrent(d)
	p.PhaseRemaining = 0
	return false, nil
}
