package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerEmitsToBoundSubsystemWithFields(t *testing.T) {
	sink := NewRecordingSink()
	log := New(sink, Driver)

	log.Emit("scheduled for I/O", "sector", 100, "op", "READ")

	require.Len(t, sink.Events, 1)
	ev := sink.Events[0]
	assert.Equal(t, Driver, ev.Subsystem)
	assert.Equal(t, "scheduled for I/O", ev.Message)
	assert.Equal(t, 100, ev.Fields["sector"])
	assert.Equal(t, "READ", ev.Fields["op"])
}

func TestLoggerWithNilSinkDoesNotPanic(t *testing.T) {
	log := New(nil, Cache)
	assert.NotPanics(t, func() { log.Emit("noop") })
}

func TestDiscardSwallowsEvents(t *testing.T) {
	var d Discard
	assert.NotPanics(t, func() { d.Emit(Event{Subsystem: Engine, Message: "x"}) })
}

func TestWithFieldStampsEveryEvent(t *testing.T) {
	sink := NewRecordingSink()
	tagged := WithField(sink, "run_id", "abc-123")
	log := New(tagged, Engine)

	log.Emit("switch context", "name", "p1")
	log.Emit("idle until interrupt")

	require.Len(t, sink.Events, 2)
	for _, ev := range sink.Events {
		assert.Equal(t, "abc-123", ev.Fields["run_id"])
	}
	assert.Equal(t, "p1", sink.Events[0].Fields["name"])
}

func TestRecordingSinkCountsBySubsystem(t *testing.T) {
	sink := NewRecordingSink()
	cacheLog := New(sink, Cache)
	driverLog := New(sink, Driver)

	cacheLog.Emit("hit")
	cacheLog.Emit("miss")
	driverLog.Emit("scheduled")

	assert.Equal(t, 2, sink.CountSubsystem(Cache))
	assert.Equal(t, 1, sink.CountSubsystem(Driver))
	assert.Equal(t, []string{"hit", "miss", "scheduled"}, sink.Messages())
}
