package trace

import (
	"io"

	"github.com/rs/zerolog"
)

// ZerologSink renders events through zerolog, one structured log line per
// event, the subsystem tag carried as the "subsystem" field rather than a
// string prefix.
type ZerologSink struct {
	logger zerolog.Logger
}

// NewZerologSink builds a sink writing to w at info level.
func NewZerologSink(w io.Writer) *ZerologSink {
	return &ZerologSink{logger: zerolog.New(w).With().Timestamp().Logger()}
}

func (s *ZerologSink) Emit(ev Event) {
	e := s.logger.Info().Str("subsystem", string(ev.Subsystem))
	for k, v := range ev.Fields {
		e = e.Interface(k, v)
	}
	e.Msg(ev.Message)
}
