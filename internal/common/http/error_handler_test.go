package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlibekovAA/notes-app/backend/internal/common/constants"
	commonerrors "github.com/AlibekovAA/notes-app/backend/internal/common/errors"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
)

func TestErrorHandler(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation",
			err:        commonerrors.ErrValidation.WithMessage("note validation failed: content: content is missing"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"note validation failed: content: content is missing"}`,
		},
		{
			name:       "forbidden wrapped",
			err:        fmt.Errorf("delete note: %w", commonerrors.ErrForbidden.WithMessage("a note can be deleted only by the user who created it")),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"a note can be deleted only by the user who created it"}`,
		},
		{
			name:       "malformed id",
			err:        commonerrors.ErrMalformedID,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"malformatted id"}`,
		},
		{
			name:       "not found has no body",
			err:        commonerrors.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   ``,
		},
		{
			name:       "plain error",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error"}`,
		},
	}

	h := NewErrorHandler(logger.NewNop())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.HandleError(rec, httptest.NewRequest(http.MethodDelete, "/api/notes/abc", nil), tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantBody == "" {
				assert.Empty(t, rec.Body.String())
				return
			}
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}

func TestErrorHandler_NilIsNoop(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil, logger.NewNop())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestTraceIDFromContext(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
	ctx := context.WithValue(context.Background(), constants.TraceIDKey, "abc")
	assert.Equal(t, "abc", TraceIDFromContext(ctx))
}
