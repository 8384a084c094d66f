package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	err := New(CodeNotFound, "identity not found")
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
}

func TestHasCode_Wrapped(t *testing.T) {
	inner := New(CodeAlreadyConfirmed, "already confirmed")
	outer := fmt.Errorf("resend: %w", inner)
	assert.True(t, HasCode(outer, CodeAlreadyConfirmed))
}

func TestCodeFor_DefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeFor(errors.New("boom")))
	assert.Equal(t, CodeInvalidInput, CodeFor(New(CodeInvalidInput, "bad")))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "lookup failed")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "lookup failed", MessageFor(err))
}

func TestMessageFor_UncodedErrorIsGeneric(t *testing.T) {
	assert.Equal(t, "internal error", MessageFor(errors.New("pq: ssl off")))
}
