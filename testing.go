package blocksim

import (
	"github.com/diskosim/blocksim/internal/process"
	"github.com/diskosim/blocksim/internal/trace"
)

// RecordingSink is a trace.Sink test double that records every event
// in order, re-exported at the root so callers outside this module can
// assert on structured trace output without reaching into internal/trace
// directly. Grounded on go-ublk's testing.go MockBackend call-counting
// pattern, repurposed here for recording rather than counting backend
// calls.
type RecordingSink = trace.RecordingSink

// NewRecordingSink builds an empty RecordingSink.
func NewRecordingSink() *RecordingSink { return trace.NewRecordingSink() }

// Proc is a convenience builder for a ProcessSpec with a single op list,
// used throughout this module's own tests and available to callers
// building ad hoc scenarios without constructing process.Op values by
// hand outside internal/process.
func Proc(name string, ops ...process.Op) ProcessSpec {
	return ProcessSpec{Name: name, Ops: ops}
}

// Reads builds the ops list for a process that reads every sector in
// sectors, in order.
func Reads(sectors ...int) []process.Op {
	ops := make([]process.Op, len(sectors))
	for i, s := range sectors {
		ops[i] = Read(s)
	}
	return ops
}

// Writes builds the ops list for a process that writes every sector in
// sectors, in order.
func Writes(sectors ...int) []process.Op {
	ops := make([]process.Op, len(sectors))
	for i, s := range sectors {
		ops[i] = Write(s)
	}
	return ops
}
