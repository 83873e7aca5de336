package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeError(t *testing.T) {
	err := NewRangeError("nlines: record", 100, 16, 64)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nlines: record")
	assert.Contains(t, err.Error(), "offset 100")
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestBlockError(t *testing.T) {
	err := NewBlockError("NUCL", ErrInvalidEncoding)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NUCL")
	assert.True(t, errors.Is(err, ErrInvalidEncoding))
}

func TestBlockError_WrapsArbitraryCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewBlockError("ACQP", cause)

	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrInvalidEncoding))
}
