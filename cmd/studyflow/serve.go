package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abushaidislam/study-guide/internal/cli"
	"github.com/abushaidislam/study-guide/internal/httpapi"
	"github.com/abushaidislam/study-guide/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

// serve runs the HTTP API until ctx is cancelled, then drains in-flight
// requests.
func serve(ctx context.Context, addr string, app *cli.App, apiKey string, m *metrics.Metrics, logger *slog.Logger) error {
	handler := httpapi.NewRouter(httpapi.Deps{
		Tasks:    app.Tasks,
		Subjects: app.Subjects,
		Plans:    app.Plans,
		Chat:     app.Chat,
		Logger:   logger,
		APIKey:   apiKey,
		Metrics:  m.Handler(),
		Observe:  m,
	})
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
