package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/notes-app/backend/internal/auth/service"
	"github.com/AlibekovAA/notes-app/backend/internal/common/dto"
	commonhttp "github.com/AlibekovAA/notes-app/backend/internal/common/http"
	"github.com/AlibekovAA/notes-app/backend/internal/common/jwtverify"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
	"github.com/AlibekovAA/notes-app/backend/internal/common/mapper"
	userdomain "github.com/AlibekovAA/notes-app/backend/internal/user/domain"
)

type contextKey string

const userKey contextKey = "auth_user"

type Handler struct {
	auth   *service.AuthService
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
}

func NewHandler(auth *service.AuthService, log *logger.Logger) *Handler {
	return &Handler{
		auth:   auth,
		errors: commonhttp.NewErrorHandler(log),
		log:    log,
	}
}

// Routes mounts POST /login on r; extra middleware such as the login rate
// limiter wraps only that route.
func (h *Handler) Routes(r chi.Router, middlewares ...func(http.Handler) http.Handler) {
	r.With(middlewares...).Post("/login", h.login)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.Credentials
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "login_invalid_json"}).Warnf("login failed: %v", err)
		h.errors.HandleError(w, r, err)
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, mapper.LoginToDTO(result.Token, result.User))
}

// RequireUser rejects the request unless it carries a bearer token for an
// existing user, and stores that user in the request context.
func (h *Handler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _ := jwtverify.BearerToken(r)

		user, err := h.auth.Authenticate(r.Context(), token)
		if err != nil {
			h.errors.HandleError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func UserFromContext(ctx context.Context) (userdomain.User, bool) {
	user, ok := ctx.Value(userKey).(userdomain.User)
	return user, ok
}

func WithUser(ctx context.Context, user userdomain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
