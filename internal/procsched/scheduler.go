// Package procsched is the round-robin process scheduler of spec.md
// section 4.5: a FIFO READY queue, a BLOCKED set, and quantum accounting
// for whichever process is current. Grounded on
// original_source/scheduler/process_scheduler.py (ProcessScheduler).
package procsched

import (
	"github.com/diskosim/blocksim/internal/process"
	"github.com/diskosim/blocksim/internal/trace"
)

// Scheduler holds the READY queue, the BLOCKED set, and the current
// process. FIFO ordering is preserved across preemption: a process demoted
// back to READY re-enters at the tail, behind everything that became READY
// while it was running.
type Scheduler struct {
	quantumUS int64
	log       trace.Logger

	ready      []*process.Process
	blocked    []*process.Process
	current    *process.Process
	terminated []*process.Process
}

func New(quantumUS int64, sink trace.Sink) *Scheduler {
	return &Scheduler{quantumUS: quantumUS, log: trace.New(sink, trace.Scheduler)}
}

// Add enqueues a new process at the READY tail.
func (s *Scheduler) Add(p *process.Process) {
	p.State = process.Ready
	s.ready = append(s.ready, p)
	s.log.Emit("process added", "name", p.Name)
}

// ScheduleNext pops the READY head, makes it current, and resets its
// quantum. Returns nil if READY is empty.
func (s *Scheduler) ScheduleNext() *process.Process {
	if len(s.ready) == 0 {
		return nil
	}
	p := s.ready[0]
	s.ready = s.ready[1:]
	p.State = process.Running
	p.RemainingQuantum = s.quantumUS
	s.current = p
	return p
}

// Consume subtracts dtUS from the current process's remaining quantum. If
// it drops to zero or below, the process is preempted: demoted to READY
// and appended to the tail.
func (s *Scheduler) Consume(dtUS int64) {
	if s.current == nil {
		return
	}
	s.current.RemainingQuantum -= dtUS
	if s.current.RemainingQuantum <= 0 {
		s.preemptCurrent()
	}
}

func (s *Scheduler) preemptCurrent() {
	p := s.current
	if p == nil || p.State != process.Running {
		return
	}
	p.State = process.Ready
	s.ready = append(s.ready, p)
	s.current = nil
	s.log.Emit("quantum exhausted, requeued", "name", p.Name)
}

// Block places p into the BLOCKED set, waiting on sector. p is removed from
// wherever it currently sits (current, or the READY tail if quantum
// exhaustion already requeued it in the same step) — the blocking decision
// takes precedence over a same-step preemption.
func (s *Scheduler) Block(p *process.Process, sector int) {
	if s.current == p {
		s.current = nil
	} else {
		s.removeFromReady(p)
	}
	p.Block(sector)
	s.blocked = append(s.blocked, p)
	s.log.Emit("process blocked", "name", p.Name, "sector", sector)
}

func (s *Scheduler) removeFromReady(p *process.Process) {
	for i, r := range s.ready {
		if r == p {
			s.ready = append(s.ready[:i], s.ready[i+1:]...)
			return
		}
	}
}

// Unblock moves p from BLOCKED to the READY tail.
func (s *Scheduler) Unblock(p *process.Process) {
	for i, b := range s.blocked {
		if b == p {
			s.blocked = append(s.blocked[:i], s.blocked[i+1:]...)
			p.Unblock()
			s.ready = append(s.ready, p)
			s.log.Emit("process woken", "name", p.Name)
			return
		}
	}
}

// UnblockAllOnSector wakes every BLOCKED process waiting on sector, in
// BLOCKED-set iteration order, preserving relative READY-tail ordering
// among processes unblocked by the same interrupt.
func (s *Scheduler) UnblockAllOnSector(sector int) {
	for _, p := range append([]*process.Process(nil), s.blocked...) {
		if blockedSector, ok := p.BlockedSector(); ok && blockedSector == sector {
			s.Unblock(p)
		}
	}
}

// UnblockAll wakes every BLOCKED process, used after a WRITE completion
// since any of them may now be able to retry (spec.md section 4.7).
func (s *Scheduler) UnblockAll() {
	for _, p := range append([]*process.Process(nil), s.blocked...) {
		s.Unblock(p)
	}
}

// Terminate finalises p, which must be current.
func (s *Scheduler) Terminate(p *process.Process) {
	if s.current == p {
		s.current = nil
	}
	p.State = process.Terminated
	s.terminated = append(s.terminated, p)
	s.log.Emit("process terminated", "name", p.Name)
}

func (s *Scheduler) Current() *process.Process { return s.current }
func (s *Scheduler) HasReady() bool            { return len(s.ready) > 0 }
func (s *Scheduler) HasBlocked() bool          { return len(s.blocked) > 0 }
func (s *Scheduler) BlockedCount() int         { return len(s.blocked) }
func (s *Scheduler) ReadyCount() int           { return len(s.ready) }

// HasAnyProcesses reports whether any process is still READY, RUNNING, or
// BLOCKED.
func (s *Scheduler) HasAnyProcesses() bool {
	return len(s.ready) > 0 || len(s.blocked) > 0 || s.current != nil
}
