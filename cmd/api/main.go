package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spurtek/spurtek-leads/internal/api/router"
	"github.com/spurtek/spurtek-leads/internal/app/bootstrap"
	appconfig "github.com/spurtek/spurtek-leads/internal/config"
	"github.com/spurtek/spurtek-leads/internal/leads"
	"github.com/spurtek/spurtek-leads/internal/observability/metrics"
	"github.com/spurtek/spurtek-leads/internal/ratelimit"
	"github.com/spurtek/spurtek-leads/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.ForEnv(cfg.Env, cfg.LogLevel)
	logger.Info("starting spurtek leads API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	repo, pool := bootstrap.BuildLeadRepository(ctx, cfg, logger)
	if pool != nil {
		defer pool.Close()
	}

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer redisClient.Close()
	}
	limiter := bootstrap.BuildLimiter(redisClient, cfg, logger)
	notifier := bootstrap.BuildNotifier(ctx, cfg, logger)

	metricsHandler, leadMetrics := setupMetrics()
	handler := buildRouter(cfg, logger, repo, notifier, limiter, leadMetrics, metricsHandler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}

	logger.Info("server exited")
}

// setupMetrics registers the lead collectors on a dedicated registry and
// returns the scrape handler for it.
func setupMetrics() (http.Handler, *metrics.LeadMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	leadMetrics := metrics.NewLeadMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), leadMetrics
}

func buildRouter(
	cfg *appconfig.Config,
	logger *logging.Logger,
	repo leads.Repository,
	notifier leads.Notifier,
	limiter ratelimit.Limiter,
	leadMetrics *metrics.LeadMetrics,
	metricsHandler http.Handler,
) http.Handler {
	svc := leads.NewService(repo, notifier, leadMetrics, logger)
	return router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leads.NewHandler(svc, logger),
		Limiter:            limiter,
		Policies:           bootstrap.BuildPolicies(cfg),
		Metrics:            leadMetrics,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})
}
