package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("WrapsErrorWithContext", func(t *testing.T) {
		err := Wrap(ErrNotFound, "user lookup")
		require.Error(t, err)
		assert.Equal(t, "user lookup: not found", err.Error())
		assert.True(t, Is(err, ErrNotFound))
	})

	t.Run("NilErrorReturnsNil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("PreservesChainAcrossMultipleWraps", func(t *testing.T) {
		err := Wrap(Wrap(ErrConflict, "inner"), "outer")
		assert.True(t, Is(err, ErrConflict))
		assert.Equal(t, "outer: inner: conflict", err.Error())
	})
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("request failed: %w", ErrUnauthorized)
	assert.True(t, Is(err, ErrUnauthorized))
	assert.False(t, Is(err, ErrForbidden))
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrConflict, ErrInvalidInput, ErrUnauthorized, ErrForbidden, ErrLocked}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, Is(a, b), "%v should not match %v", a, b)
		}
	}
}
