package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/notes-app/backend/internal/common/dto"
	commonhttp "github.com/AlibekovAA/notes-app/backend/internal/common/http"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
	"github.com/AlibekovAA/notes-app/backend/internal/common/mapper"
	"github.com/AlibekovAA/notes-app/backend/internal/user/service"
)

type Handler struct {
	users  *service.UserService
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
}

func NewHandler(users *service.UserService, log *logger.Logger) *Handler {
	return &Handler{
		users:  users,
		errors: commonhttp.NewErrorHandler(log),
		log:    log,
	}
}

// Routes mounts the user endpoints on r. signupMiddlewares wrap only
// POST / so that signup can be rate limited separately from listing.
func (h *Handler) Routes(r chi.Router, signupMiddlewares ...func(http.Handler) http.Handler) {
	r.Get("/", h.list)
	r.With(signupMiddlewares...).Post("/", h.create)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.Signup
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), service.SignupInput{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, mapper.UserToDTO(user))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, mapper.ProfilesToDTO(profiles))
}
