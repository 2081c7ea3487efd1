package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avelkov/sporthub/internal/lib/logger/sl"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	log    *slog.Logger
	server *http.Server
	port   int
}

func New(log *slog.Logger, port int, handler http.Handler) *App {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
	}

	return &App{log: log, server: server, port: port}
}

// MustRun runs the HTTP server and panics if any error occurs
func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

func (a *App) Run() error {
	const op = "httpapp.Run"
	log := a.log.With(slog.String("op", op), slog.Int("port", a.port))

	log.Info("HTTP server is running")

	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (a *App) Stop() error {
	const op = "httpapp.Stop"
	log := a.log.With(slog.String("op", op))
	log.Info("stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown HTTP server", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
