package server

import (
	"log"
	"net/http"
	"time"

	"github.com/AlibekovAA/notes-app/backend/internal/common/constants"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
)

type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

func DefaultServerConfig(port string) ServerConfig {
	return ServerConfig{
		Addr:              ":" + port,
		ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
		ReadTimeout:       constants.ServerReadTimeout,
		WriteTimeout:      constants.ServerWriteTimeout,
		IdleTimeout:       constants.ServerIdleTimeout,
	}
}

// WithRequestTimeout keeps WriteTimeout above the per-request handler
// budget; otherwise a handler that uses its whole budget loses the reply.
func (c ServerConfig) WithRequestTimeout(d time.Duration) ServerConfig {
	if floor := d + time.Second; c.WriteTimeout < floor {
		c.WriteTimeout = floor
	}
	return c
}

// NewServer builds the http.Server. When log is set, errors the server
// cannot hand to a handler (TLS, malformed requests) go to it at warn level.
func NewServer(cfg ServerConfig, handler http.Handler, log *logger.Logger) *http.Server {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
	if log != nil {
		srv.ErrorLog = stdLogger(log)
	}
	return srv
}

func stdLogger(l *logger.Logger) *log.Logger {
	return log.New(l.Writer(), "", 0)
}
