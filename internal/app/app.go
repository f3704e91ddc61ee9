package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/heartmarshall/studyplanner-backend/internal/adapter/provider/gemini"
	"github.com/heartmarshall/studyplanner-backend/internal/auth"
	"github.com/heartmarshall/studyplanner-backend/internal/config"
	"github.com/heartmarshall/studyplanner-backend/internal/service/assistant"
	"github.com/heartmarshall/studyplanner-backend/internal/service/studyplan"
	"github.com/heartmarshall/studyplanner-backend/internal/transport/middleware"
	"github.com/heartmarshall/studyplanner-backend/internal/transport/rest"
)

// Run starts the HTTP server and blocks until ctx is cancelled, then drains
// in-flight requests within the configured shutdown timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("store", cfg.Store.Driver),
	)

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, cleanup := NewHandler(cfg, logger, store, reg)
	defer cleanup()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// NewHandler wires services and transport over an opened store. The
// returned cleanup stops background work owned by the handler.
func NewHandler(cfg *config.Config, logger *slog.Logger, store *Store, reg *prometheus.Registry) (http.Handler, func()) {
	if store.Collector != nil {
		reg.MustRegister(store.Collector)
	}

	client := gemini.NewClient(cfg.Gemini, logger, gemini.WithMetrics(reg))
	if cfg.Gemini.APIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set; generation requests will fail")
	}

	plans := studyplan.NewService(logger, client, store.Plans, store.Tx, studyplan.Limits{
		MaxTopicLength:  cfg.Planner.MaxTopicLength,
		MaxTasksPerPlan: cfg.Planner.MaxTasksPerPlan,
	})
	chat := assistant.NewService(logger, client)
	jwt := auth.NewJWTManager(cfg.Auth)
	limiter := middleware.NewRateLimiter(5 * time.Minute)

	handler := rest.NewRouter(rest.RouterDeps{
		Log:        logger,
		CORS:       cfg.CORS,
		Auth:       middleware.Auth(jwt),
		Plans:      rest.NewStudyPlanHandler(plans, logger),
		Assistant:  rest.NewAssistantHandler(chat, logger),
		Health:     rest.NewHealthHandler(rest.PingFunc(store.Ping), store.Driver, cfg.Gemini.APIKey != "", Version),
		Limiter:    limiter,
		AIPerMin:   cfg.Planner.AIRatePerMinute,
		AITimeout:  cfg.Server.AIRequestTimeout(),
		Registerer: reg,
		Gatherer:   reg,
	})
	return handler, limiter.Stop
}
