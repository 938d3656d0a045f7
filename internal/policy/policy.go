// Package policy implements the three pluggable disk-scheduling policies of
// spec.md section 4.3 (FIFO, LOOK, NLOOK) behind one small capability
// interface, per spec.md DESIGN NOTES section 9 ("a tagged variant is
// cleaner than dynamic dispatch given there are exactly three
// implementations") — here expressed as a Go interface since Go has no
// native tagged-union dispatch, which get-ublk's own Backend/Observer/
// Logger interfaces-per-concern style also favors.
package policy

import "github.com/diskosim/blocksim/internal/cache"

// TrackFunc maps a sector number to its track, so a policy never needs to
// import the disk package directly.
type TrackFunc func(sector int) int

// Policy orders pending I/O requests for the driver. Add binds the
// buffer's IO field and enqueues it; Next dequeues according to the
// policy's ordering rule; Complete is called by the driver when the most
// recently dispatched request finishes (the driver itself then clears that
// buffer's IO field).
type Policy interface {
	Add(buf *cache.Buffer, op cache.IOOp)
	Next(headTrack int) *cache.Buffer
	Complete()
	HasPending() bool
	StateString() string
}
