package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("matches wrapped domain error", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", New(CodeUnavailable, "directory down"))
		assert.True(t, HasCode(err, CodeUnavailable))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeUnavailable, "user directory unavailable")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeUnavailable, CodeOf(err))
	assert.Equal(t, "service_unavailable: user directory unavailable: connection refused", err.Error())
}
