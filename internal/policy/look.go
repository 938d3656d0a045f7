package policy

import "github.com/diskosim/blocksim/internal/cache"

type lookEntry struct {
	buf   *cache.Buffer
	track int
	seq   int
}

// Look implements the LOOK elevator algorithm: the head sweeps toward the
// furthest pending request in its current direction, reversing once nothing
// remains ahead of it, never travelling past the outermost pending track
// (unlike plain SCAN). A per-track read budget caps how many consecutive
// requests the same track may claim while the head sits on it, so a track
// under constant reuse cannot starve a pending request on another track
// forever. Grounded on original_source/strategies/look.py.
type Look struct {
	trackOf TrackFunc
	readMax int

	pending []lookEntry
	nextSeq int

	direction int // +1 ascending, -1 descending
	lastTrack int
	haveLast  bool
	sameCount int
}

func NewLook(trackOf TrackFunc, readMax int) *Look {
	return &Look{trackOf: trackOf, readMax: readMax, direction: 1}
}

func (l *Look) Add(buf *cache.Buffer, op cache.IOOp) {
	buf.IO = op
	l.pending = append(l.pending, lookEntry{buf: buf, track: l.trackOf(buf.Sector), seq: l.nextSeq})
	l.nextSeq++
}

func (l *Look) Next(headTrack int) *cache.Buffer {
	if len(l.pending) == 0 {
		return nil
	}
	idx := l.selectIndex(headTrack, l.direction, true)
	if idx == -1 {
		l.direction = -l.direction
		idx = l.selectIndex(headTrack, l.direction, true)
	}
	if idx == -1 {
		// Every remaining request sits on the budget-capped track; serve it
		// anyway rather than stall with pending work and an idle disk.
		idx = l.selectIndex(headTrack, l.direction, false)
	}
	if idx == -1 {
		return nil
	}
	e := l.pending[idx]
	l.pending = append(l.pending[:idx], l.pending[idx+1:]...)

	if l.haveLast && e.track == l.lastTrack {
		l.sameCount++
	} else {
		l.lastTrack = e.track
		l.haveLast = true
		l.sameCount = 1
	}
	return e.buf
}

// selectIndex finds the closest-to-head pending entry ahead of headTrack in
// dir. When respectBudget is true, an entry on the track that has already
// hit readMax consecutive services is skipped in favor of any other
// candidate ahead in the same direction.
func (l *Look) selectIndex(headTrack, dir int, respectBudget bool) int {
	best := -1
	bestDist := 0
	for i, e := range l.pending {
		if dir > 0 && e.track < headTrack {
			continue
		}
		if dir < 0 && e.track > headTrack {
			continue
		}
		if respectBudget && l.haveLast && e.track == l.lastTrack && l.sameCount >= l.readMax {
			continue
		}
		dist := e.track - headTrack
		if dist < 0 {
			dist = -dist
		}
		if best == -1 || dist < bestDist || (dist == bestDist && e.seq < l.pending[best].seq) {
			best = i
			bestDist = dist
		}
	}
	return best
}

func (l *Look) Complete() {}

func (l *Look) HasPending() bool {
	return len(l.pending) > 0
}

func (l *Look) StateString() string {
	out := "look(dir="
	if l.direction > 0 {
		out += "+1"
	} else {
		out += "-1"
	}
	out += ")=["
	for i, e := range l.pending {
		if i > 0 {
			out += " "
		}
		out += e.buf.IO.String()
	}
	return out + "]"
}
