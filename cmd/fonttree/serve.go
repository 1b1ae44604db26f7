package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlorentedev/fonttree/internal/adapter"
	"github.com/mlorentedev/fonttree/internal/analysis"
	"github.com/mlorentedev/fonttree/internal/config"
	"github.com/mlorentedev/fonttree/internal/logging"
	"github.com/mlorentedev/fonttree/internal/metrics"
	"github.com/mlorentedev/fonttree/internal/middleware"
	"github.com/mlorentedev/fonttree/internal/ratelimit"
	"github.com/mlorentedev/fonttree/internal/server"
)

type serveOptions struct {
	configPath string
	port       int
	mock       bool
}

func (o *serveOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.configPath, "config", "", "path to config.yaml")
	cmd.Flags().IntVar(&o.port, "port", 0, "override listen port")
	cmd.Flags().BoolVar(&o.mock, "mock", false, "use the mock model instead of a real backend")
}

func newServeCmd() *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func runServe(cmd *cobra.Command, opts serveOptions) error {
	cfg, err := loadConfig(opts.configPath, opts.mock)
	if err != nil {
		return err
	}
	if opts.port > 0 {
		cfg.Port = opts.port
	}

	slog.SetDefault(logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr))

	model, err := buildModel(cfg, opts.mock)
	if err != nil {
		return err
	}
	svc := analysis.NewService(model)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter, limiterTask, err := buildLimiter(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.APIKey != "" {
		slog.Info("auth: API key required (X-API-Key header)")
	} else {
		slog.Info("auth: disabled (no api_key configured)")
	}

	handler := server.New(svc, cfg.Provider, middleware.Options{
		Limiter:      limiter,
		APIKey:       cfg.APIKey,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Timeout:      cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.Run(ctx, srv, limiterTask)
}

func loadConfig(path string, mock bool) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if mock {
		cfg.Provider = adapter.ProviderMock
		cfg.Model = adapter.DefaultModel(adapter.ProviderMock)
	}
	return cfg, nil
}

// buildModel returns a nil model, not an error, when the provider lacks its
// credential. The server then runs unconfigured and refuses every analysis.
func buildModel(cfg config.Config, mock bool) (adapter.Model, error) {
	if mock {
		metrics.ModelConfigured.WithLabelValues(adapter.ProviderMock).Set(1)
		slog.Info("mode: mock model enabled")
		return &adapter.MockAdapter{Delay: 500 * time.Millisecond}, nil
	}

	model, err := adapter.New(cfg.ModelSettings())
	switch {
	case errors.Is(err, adapter.ErrMissingCredential):
		metrics.ModelConfigured.WithLabelValues(cfg.Provider).Set(0)
		slog.Error("model credential missing; analysis requests will be refused",
			"provider", cfg.Provider,
			"hint", "set FONTTREE_MODEL_API_KEY or GOOGLE_API_KEY",
		)
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("model: %w", err)
	}

	metrics.ModelConfigured.WithLabelValues(cfg.Provider).Set(1)
	slog.Info("model configured", "provider", model.Provider(), "name", model.Name())
	return model, nil
}

// buildLimiter picks the Redis limiter when redis_addr is set, otherwise an
// in-memory sliding window. The returned task runs for the server lifetime.
func buildLimiter(ctx context.Context, cfg config.Config) (ratelimit.Limiter, func(context.Context) error, error) {
	if cfg.RedisAddr != "" {
		rl, err := ratelimit.NewRedisFixedWindow(cfg.RedisAddr, cfg.RedisPassword, "", cfg.RateLimit, cfg.RateWindow)
		if err != nil {
			return nil, nil, fmt.Errorf("ratelimit: %w", err)
		}
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rl.Ping(pctx); err != nil {
			rl.Close()
			return nil, nil, fmt.Errorf("ratelimit: redis %s: %w", cfg.RedisAddr, err)
		}
		slog.Info("ratelimit: redis", "addr", cfg.RedisAddr, "limit", cfg.RateLimit, "window", cfg.RateWindow)
		return rl, func(ctx context.Context) error {
			<-ctx.Done()
			return rl.Close()
		}, nil
	}

	rl := ratelimit.NewSlidingWindow(cfg.RateLimit, cfg.RateWindow)
	slog.Info("ratelimit: in-memory", "limit", cfg.RateLimit, "window", cfg.RateWindow)
	return rl, func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.RateWindow)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				rl.Sweep()
			}
		}
	}, nil
}
