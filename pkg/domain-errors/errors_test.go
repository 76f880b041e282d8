package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	err := New(CodeNotFound, "link not found")
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(nil, CodeNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeStoreUnavailable, "insert link")
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeStoreUnavailable))
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, HasCode(wrapped, CodeStoreUnavailable))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeInvalidInput, CodeOf(New(CodeInvalidInput, "empty set")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidInput, http.StatusBadRequest},
		{CodeBadRequest, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeInvariantViolation, http.StatusUnprocessableEntity},
		{CodeStoreUnavailable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
		{Code("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToHTTPStatus(tt.code), string(tt.code))
	}
}
