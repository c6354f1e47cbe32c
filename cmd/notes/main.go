package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/AlibekovAA/notes-app/backend/internal/common/bootstrap"
	srv "github.com/AlibekovAA/notes-app/backend/internal/common/server"
)

func main() {
	startCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	app, err := bootstrap.NewNotesApp(startCtx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start notes service: %v\n", err)
		os.Exit(1)
	}

	log := app.Log
	handler, stopLimiter := bootstrap.NewRouter(app)

	serverConfig := srv.DefaultServerConfig(app.Config.HTTPPort).WithRequestTimeout(app.Config.RequestTimeout)
	server := srv.NewServer(serverConfig, handler, log)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("notes service: stopping rate limiter")
			stopLimiter()
			return nil
		},
		func(ctx context.Context) error {
			log.Infof("notes service: closing %s store", app.Stores.Backend)
			return app.Stores.Close(ctx)
		},
	}

	if err := srv.StartWithGracefulShutdownAndHooks(server, log, "notes", shutdownHooks); err != nil {
		_ = app.Stores.Close(context.Background())
		os.Exit(1)
	}
}
