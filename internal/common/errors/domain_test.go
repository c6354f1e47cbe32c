package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_WithCauseKeepsIdentity(t *testing.T) {
	cause := errors.New("connection reset")
	err := ErrInternalError.WithCause(cause)

	assert.ErrorIs(t, err, ErrInternalError)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal server error: connection reset", err.Error())
	assert.Equal(t, "internal server error", err.Message())
}

func TestDomainError_WithMessageKeepsIdentity(t *testing.T) {
	err := ErrForbidden.WithMessage("a note can be deleted only by the user who created it")

	assert.ErrorIs(t, err, ErrForbidden)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
	assert.Equal(t, http.StatusUnauthorized, err.HTTPStatus())
	assert.Equal(t, "a note can be deleted only by the user who created it", err.Message())
}

func TestAsDomainError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("update note: %w", ErrNotFound)

	de, ok := AsDomainError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", de.Code())
	assert.Equal(t, CategoryNotFound, de.Category())
	assert.True(t, IsDomainError(wrapped))
}

func TestAsDomainError_PlainError(t *testing.T) {
	_, ok := AsDomainError(errors.New("boom"))
	assert.False(t, ok)
}
