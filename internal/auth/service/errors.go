package service

import (
	"errors"

	commonerrors "github.com/AlibekovAA/notes-app/backend/internal/common/errors"
	"github.com/AlibekovAA/notes-app/backend/internal/common/jwtverify"
)

// tokenError maps a jwtverify failure onto the matching domain error and the
// label used for the rejection metric.
func tokenError(err error) (commonerrors.DomainError, string) {
	switch {
	case errors.Is(err, jwtverify.ErrTokenMissing):
		return commonerrors.ErrTokenMissing, "missing"
	case errors.Is(err, jwtverify.ErrTokenExpired):
		return commonerrors.ErrTokenExpired.WithCause(err), "expired"
	default:
		return commonerrors.ErrTokenInvalid.WithCause(err), "invalid"
	}
}
