package policy

import "github.com/diskosim/blocksim/internal/cache"

type nlookEntry struct {
	buf   *cache.Buffer
	track int
}

// NLook partitions incoming requests into fixed-size sub-queues in arrival
// order. The oldest sub-queue is drained completely, one ascending OUT-bound
// sweep of its tracks, before the next sub-queue is touched at all — so a
// burst of new requests can never cut in front of work that was already
// queued when the burst arrived. Grounded on
// original_source/strategies/nlook.py.
type NLook struct {
	trackOf TrackFunc
	maxLen  int
	queues  [][]nlookEntry
}

func NewNLook(trackOf TrackFunc, maxLen int) *NLook {
	return &NLook{trackOf: trackOf, maxLen: maxLen}
}

func (n *NLook) Add(buf *cache.Buffer, op cache.IOOp) {
	buf.IO = op
	e := nlookEntry{buf: buf, track: n.trackOf(buf.Sector)}
	if len(n.queues) == 0 || len(n.queues[len(n.queues)-1]) >= n.maxLen {
		n.queues = append(n.queues, []nlookEntry{e})
		return
	}
	last := len(n.queues) - 1
	n.queues[last] = append(n.queues[last], e)
}

func (n *NLook) Next(headTrack int) *cache.Buffer {
	n.dropEmptyFront()
	if len(n.queues) == 0 {
		return nil
	}
	q := n.queues[0]

	idx := -1
	bestTrack := 0
	for i, e := range q {
		if e.track < headTrack {
			continue
		}
		if idx == -1 || e.track < bestTrack {
			idx = i
			bestTrack = e.track
		}
	}
	if idx == -1 {
		// Nothing left ahead of the head in this queue: start a fresh sweep
		// from the smallest track the queue still holds.
		for i, e := range q {
			if idx == -1 || e.track < bestTrack {
				idx = i
				bestTrack = e.track
			}
		}
	}

	e := q[idx]
	n.queues[0] = append(q[:idx], q[idx+1:]...)
	n.dropEmptyFront()
	return e.buf
}

func (n *NLook) dropEmptyFront() {
	for len(n.queues) > 0 && len(n.queues[0]) == 0 {
		n.queues = n.queues[1:]
	}
}

func (n *NLook) Complete() {}

func (n *NLook) HasPending() bool {
	for _, q := range n.queues {
		if len(q) > 0 {
			return true
		}
	}
	return false
}

func (n *NLook) StateString() string {
	out := "nlook=["
	for i, q := range n.queues {
		if i > 0 {
			out += " | "
		}
		for j, e := range q {
			if j > 0 {
				out += " "
			}
			out += e.buf.IO.String()
		}
	}
	return out + "]"
}
