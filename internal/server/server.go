package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/mlorentedev/fonttree/internal/analysis"
	"github.com/mlorentedev/fonttree/internal/handler"
	"github.com/mlorentedev/fonttree/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

// New wires the routes with the full middleware chain. provider names the
// configured backend and is reported even when svc has no model.
func New(svc *analysis.Service, provider string, opts middleware.Options) http.Handler {
	r := chi.NewRouter()
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Post("/analyze-design", handler.AnalyzeDesign(svc, provider))
	r.Get("/api/health", handler.Health(svc, provider))
	r.Handle("/metrics", promhttp.Handler())

	return middleware.Chain(r, opts)
}

// Run serves srv until ctx is cancelled or a background task fails, then
// shuts the server down gracefully. Each task receives the group context.
func Run(ctx context.Context, srv *http.Server, tasks ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	for _, task := range tasks {
		task := task
		g.Go(func() error { return task(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
