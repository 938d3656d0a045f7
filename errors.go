package blocksim

import (
	"errors"
	"fmt"

	"github.com/diskosim/blocksim/internal/cache"
	"github.com/diskosim/blocksim/internal/engine"
)

// Error wraps a simulator failure with the error code taxonomy of
// spec.md section 7 plus enough context to identify which run produced it.
// Grounded on go-ublk's errors.go structured Error type.
type Error struct {
	Op    string // the call that failed (e.g. "Run", "NewSimulator")
	Code  ErrorCode
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("blocksim: %s (op=%s)", e.Msg, e.Op)
	}
	return fmt.Sprintf("blocksim: %s", e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Inner
}

func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == te.Code
}

// ErrorCode categorizes a simulator failure per spec.md section 7's
// taxonomy, plus two configuration-time codes this implementation adds.
type ErrorCode string

const (
	// ErrCodeRunaway: the outer loop exceeded its iteration cap.
	ErrCodeRunaway ErrorCode = "runaway"
	// ErrCodeNoEvictableBuffer: eviction attempted while every
	// right-segment buffer is in I/O.
	ErrCodeNoEvictableBuffer ErrorCode = "no evictable buffer"
	// ErrCodeDeadlock: READY and active I/O are both empty while BLOCKED
	// is non-empty.
	ErrCodeDeadlock ErrorCode = "deadlock"
	// ErrCodeInvalidScenario: the requested scenario name or number is
	// not in the catalog.
	ErrCodeInvalidScenario ErrorCode = "invalid scenario"
	// ErrCodeInvalidConfig: the configuration failed validation before
	// the engine was even started.
	ErrCodeInvalidConfig ErrorCode = "invalid config"
)

// wrapRunError maps an error returned from Engine.Run into the Error
// taxonomy above. Anything unrecognized, including a config validation
// error from NewSimulator, is classified as ErrCodeInvalidConfig, with the
// original error kept as Inner.
func wrapRunError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, engine.ErrRunaway):
		return &Error{Op: op, Code: ErrCodeRunaway, Msg: err.Error(), Inner: err}
	case errors.Is(err, engine.ErrDeadlock):
		return &Error{Op: op, Code: ErrCodeDeadlock, Msg: err.Error(), Inner: err}
	case errors.Is(err, cache.ErrNoEvictableBuffer):
		return &Error{Op: op, Code: ErrCodeNoEvictableBuffer, Msg: err.Error(), Inner: err}
	default:
		return &Error{Op: op, Code: ErrCodeInvalidConfig, Msg: err.Error(), Inner: err}
	}
}

// IsCode reports whether err is a *Error carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
