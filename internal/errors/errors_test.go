package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryCodes(t *testing.T) {
	assert.Equal(t, CodeInvalidInput, GetCode(InvalidInput("bad")))
	assert.Equal(t, CodeInvalidInput, GetCode(InvalidInputf("bad %d", 1)))
	assert.Equal(t, CodeMissingKey, GetCode(MissingKey("absent")))
	assert.Equal(t, CodeNotImplemented, GetCode(NotImplemented("nope")))
	assert.Equal(t, CodeConfigInvalid, GetCode(ConfigInvalid("nope")))
}

func TestWrapPreservesCodeAndCause(t *testing.T) {
	base := InvalidInput("negative PSD value")
	wrapped := Wrap(base, "interpolation failed")

	require.Error(t, wrapped)
	assert.Equal(t, CodeInvalidInput, GetCode(wrapped))
	assert.True(t, IsCode(wrapped, CodeInvalidInput))
	assert.True(t, stderrors.Is(wrapped, base))
	assert.Contains(t, wrapped.Error(), "interpolation failed")
	assert.Contains(t, wrapped.Error(), "negative PSD value")
}

func TestWrapForeignErrorDefaultsToInternal(t *testing.T) {
	wrapped := Wrap(stderrors.New("boom"), "context")
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
}

func TestWrapNilIsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "context"))
	assert.NoError(t, Wrapf(nil, "context %d", 1))
}

func TestGetCodeOnForeignError(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
	assert.False(t, IsCode(stderrors.New("plain"), CodeInvalidInput))
	assert.False(t, IsAppError(stderrors.New("plain")))
	assert.True(t, IsAppError(InvalidInput("x")))
}
