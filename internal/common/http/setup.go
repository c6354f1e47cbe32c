package http

import (
	"net/http"

	"github.com/AlibekovAA/notes-app/backend/internal/common/constants"
	"github.com/AlibekovAA/notes-app/backend/internal/common/httpmetrics"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
)

type middleware = func(http.Handler) http.Handler

// chain applies mws so that the first one listed is the outermost.
func chain(h http.Handler, mws ...middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// BuildBaseHandler wraps the router with what every request passes through.
// Recovery sits outside the trace id so a panic in the metrics wrapper still
// gets a JSON 500, and metrics sit innermost so they see the final status.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	return chain(handler,
		SecurityHeadersMiddleware,
		RecoveryMiddleware(log),
		TraceIDMiddleware,
		MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize),
		httpmetrics.New().Wrap,
	)
}
