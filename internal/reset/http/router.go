package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	commonhttp "github.com/AlibekovAA/notes-app/backend/internal/common/http"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
	"github.com/AlibekovAA/notes-app/backend/internal/reset/service"
)

type Handler struct {
	reset  *service.ResetService
	errors *commonhttp.ErrorHandler
}

func NewHandler(reset *service.ResetService, log *logger.Logger) *Handler {
	return &Handler{reset: reset, errors: commonhttp.NewErrorHandler(log)}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/reset", h.resetStore)
}

func (h *Handler) resetStore(w http.ResponseWriter, r *http.Request) {
	if err := h.reset.Reset(r.Context()); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteNoContent(w)
}
