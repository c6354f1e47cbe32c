package http

import (
	"net/http"

	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
)

func HealthHandler(log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if log.ShouldLog(logger.DEBUG) {
			log.Debugf("health check request")
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "unknown endpoint")
}

func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
}
