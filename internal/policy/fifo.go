package policy

import "github.com/diskosim/blocksim/internal/cache"

// FIFO serves pending requests strictly in arrival order, ignoring disk
// geometry entirely. Grounded on original_source/strategies/fifo.py.
type FIFO struct {
	pending []*cache.Buffer
}

func NewFIFO() *FIFO {
	return &FIFO{}
}

func (f *FIFO) Add(buf *cache.Buffer, op cache.IOOp) {
	buf.IO = op
	f.pending = append(f.pending, buf)
}

func (f *FIFO) Next(headTrack int) *cache.Buffer {
	if len(f.pending) == 0 {
		return nil
	}
	buf := f.pending[0]
	f.pending = f.pending[1:]
	return buf
}

func (f *FIFO) Complete() {}

func (f *FIFO) HasPending() bool {
	return len(f.pending) > 0
}

func (f *FIFO) StateString() string {
	out := "queue=["
	for i, b := range f.pending {
		if i > 0 {
			out += " "
		}
		out += b.IO.String()
	}
	return out + "]"
}
