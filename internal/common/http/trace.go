package http

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/AlibekovAA/notes-app/backend/internal/common/constants"
)

const traceIDHeader = "X-Trace-ID"

// A caller-supplied id ends up in every log line of the request, so only
// short tokens of safe characters are trusted.
var traceIDShape = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

func TraceIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if !traceIDShape.MatchString(traceID) {
			traceID = uuid.NewString()
		}
		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), constants.TraceIDKey, traceID)))
	})
}
