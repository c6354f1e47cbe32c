package bootstrap

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/AlibekovAA/notes-app/backend/internal/auth/http"
	authservice "github.com/AlibekovAA/notes-app/backend/internal/auth/service"
	"github.com/AlibekovAA/notes-app/backend/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/notes-app/backend/internal/common/crypto"
	commonhttp "github.com/AlibekovAA/notes-app/backend/internal/common/http"
	"github.com/AlibekovAA/notes-app/backend/internal/common/resilience"
	notehttp "github.com/AlibekovAA/notes-app/backend/internal/note/http"
	noteservice "github.com/AlibekovAA/notes-app/backend/internal/note/service"
	resethttp "github.com/AlibekovAA/notes-app/backend/internal/reset/http"
	resetservice "github.com/AlibekovAA/notes-app/backend/internal/reset/service"
	userhttp "github.com/AlibekovAA/notes-app/backend/internal/user/http"
	userservice "github.com/AlibekovAA/notes-app/backend/internal/user/service"
)

// NewRouter assembles the HTTP surface of the app. The returned stop func
// releases the rate limiter goroutines.
func NewRouter(app *App) (http.Handler, func()) {
	log := app.Log
	cfg := app.Config
	hasher := commoncrypto.NewBcryptHasher()

	tokens := authservice.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, app.Clock)
	authService := authservice.NewAuthService(app.Stores.Users, hasher, tokens, log).
		WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Threshold:  constants.StoreBreakerThreshold,
			Timeout:    constants.StoreBreakerTimeout,
			ResetAfter: constants.StoreBreakerResetAfter,
			Name:       "user_lookup",
			Clock:      app.Clock,
			Expected:   authservice.IsExpectedLookupError,
			Logger:     log,
		}))
	userService := userservice.NewUserService(app.Stores.Users, hasher, app.Clock, log)
	noteService := noteservice.NewNoteService(app.Stores.Notes, app.Clock, log)

	authHandler := authhttp.NewHandler(authService, log)
	userHandler := userhttp.NewHandler(userService, log)
	noteHandler := notehttp.NewHandler(noteService, log)

	// End-to-end suites sign up dozens of users per run, so the limiter
	// only guards non-test environments.
	var (
		general, login, signup []func(http.Handler) http.Handler
		stop                   = func() {}
	)
	if !cfg.IsTest() {
		limiter := commonhttp.NewStrictRateLimiter()
		general = append(general, limiter.General())
		login = append(login, limiter.Login())
		signup = append(signup, limiter.Signup())
		stop = limiter.Stop
	}

	r := chi.NewRouter()
	r.NotFound(commonhttp.NotFoundHandler)
	r.MethodNotAllowed(commonhttp.MethodNotAllowedHandler)

	r.Get("/health", commonhttp.HealthHandler(log))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(commonhttp.TimeoutMiddleware(cfg.RequestTimeout))
		r.Use(general...)

		authHandler.Routes(r, login...)

		r.Route("/users", func(r chi.Router) {
			userHandler.Routes(r, signup...)
		})

		r.Route("/notes", func(r chi.Router) {
			noteHandler.Routes(r, authHandler.RequireUser)
		})

		if cfg.IsTest() {
			resetService := resetservice.NewResetService(app.Stores.Notes, app.Stores.Users, log)
			r.Route("/testing", func(r chi.Router) {
				resethttp.NewHandler(resetService, log).Routes(r)
			})
			log.Warn("test environment: POST /api/testing/reset is enabled")
		}
	})

	return commonhttp.BuildBaseHandler(log, r), stop
}
