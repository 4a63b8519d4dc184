package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelsMatchByCode(t *testing.T) {
	err := Clone(ErrApplication, "email already registered")
	assert.True(t, stderrors.Is(err, ErrApplication))
	assert.False(t, stderrors.Is(err, ErrTransport))
	assert.Equal(t, "email already registered", err.Message)
}

func TestWrapKeepsTheCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, ErrTransport.Code, ErrTransport.Message)

	assert.True(t, IsTransport(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	e := FromError(Clone(ErrUnauthorized, ""))
	require.NotNil(t, e)
	assert.Equal(t, ErrUnauthorized.Code, e.Code)

	// Plain errors are normalised to internal.
	e = FromError(fmt.Errorf("boom"))
	require.NotNil(t, e)
	assert.Equal(t, ErrInternal.Code, e.Code)

	// Wrapped typed errors are found through the chain.
	e = FromError(fmt.Errorf("refresh: %w", ErrBusy))
	require.NotNil(t, e)
	assert.Equal(t, ErrBusy.Code, e.Code)
}

func TestCloneDefaultsToOriginalMessage(t *testing.T) {
	err := Clone(ErrApplication, "")
	assert.Equal(t, ErrApplication.Message, err.Message)
	// The sentinel itself is never mutated.
	assert.Equal(t, "request declined by server", ErrApplication.Message)
}
