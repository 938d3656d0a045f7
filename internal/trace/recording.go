package trace

// RecordingSink collects every emitted event for assertions, the same
// call-counting-double role go-ublk's testing.go MockBackend plays for
// Backend calls.
type RecordingSink struct {
	Events []Event
}

func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) Emit(ev Event) {
	s.Events = append(s.Events, ev)
}

// CountSubsystem returns how many recorded events carry the given
// subsystem tag.
func (s *RecordingSink) CountSubsystem(sub Subsystem) int {
	n := 0
	for _, ev := range s.Events {
		if ev.Subsystem == sub {
			n++
		}
	}
	return n
}

// Messages returns the Message field of every recorded event, in order.
func (s *RecordingSink) Messages() []string {
	out := make([]string, len(s.Events))
	for i, ev := range s.Events {
		out[i] = ev.Message
	}
	return out
}
