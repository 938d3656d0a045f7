package blocksim

import (
	"errors"
	"testing"

	"github.com/diskosim/blocksim/internal/cache"
	"github.com/diskosim/blocksim/internal/engine"
	"github.com/stretchr/testify/assert"
)

func TestWrapRunErrorMapsRunaway(t *testing.T) {
	err := wrapRunError("Run", engine.ErrRunaway)
	assert.True(t, IsCode(err, ErrCodeRunaway))
	assert.True(t, errors.Is(err, &Error{Code: ErrCodeRunaway}))
}

func TestWrapRunErrorMapsDeadlock(t *testing.T) {
	err := wrapRunError("Run", engine.ErrDeadlock)
	assert.True(t, IsCode(err, ErrCodeDeadlock))
}

func TestWrapRunErrorMapsNoEvictableBuffer(t *testing.T) {
	err := wrapRunError("Run", cache.ErrNoEvictableBuffer)
	assert.True(t, IsCode(err, ErrCodeNoEvictableBuffer))
}

func TestWrapRunErrorNilIsNil(t *testing.T) {
	assert.Nil(t, wrapRunError("Run", nil))
}

func TestErrorMessageIncludesOp(t *testing.T) {
	err := wrapRunError("Run", engine.ErrRunaway)
	assert.Contains(t, err.Error(), "op=Run")
}

func TestIsCodeFalseForWrongCode(t *testing.T) {
	err := wrapRunError("Run", engine.ErrRunaway)
	assert.False(t, IsCode(err, ErrCodeDeadlock))
}

func TestIsCodeFalseForNil(t *testing.T) {
	assert.False(t, IsCode(nil, ErrCodeRunaway))
}
