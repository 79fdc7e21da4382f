package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/healthpilot/healthpilot-api/internal/api/router"
	"github.com/healthpilot/healthpilot-api/internal/assistant"
	"github.com/healthpilot/healthpilot-api/internal/compliance"
	appconfig "github.com/healthpilot/healthpilot-api/internal/config"
	"github.com/healthpilot/healthpilot-api/internal/observability/metrics"
	"github.com/healthpilot/healthpilot-api/internal/predict"
	"github.com/healthpilot/healthpilot-api/internal/profiles"
	"github.com/healthpilot/healthpilot-api/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting healthpilot API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	registry := prometheus.NewRegistry()
	assistantMetrics := metrics.NewAssistantMetrics(registry)
	predictMetrics := metrics.NewPredictMetrics(registry)

	// Provider clients are constructed once at process start and injected;
	// an absent key simply disables that path.
	var primary *assistant.GeminiClient
	if cfg.GeminiAPIKey != "" {
		client, err := assistant.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		defer func() { _ = client.Close() }()
		primary = client
	} else {
		logger.Warn("GEMINI_API_KEY not set, primary provider disabled")
	}

	var secondary *assistant.AgentClient
	if cfg.AixplainAPIKey != "" && cfg.AixplainAgentModelID != "" {
		client, err := assistant.NewAgentClient(assistant.AgentConfig{
			BaseURL:           cfg.AixplainBaseURL,
			APIKey:            cfg.AixplainAPIKey,
			AgentModelID:      cfg.AixplainAgentModelID,
			SummarizerModelID: cfg.AixplainSummarizerModelID,
		})
		if err != nil {
			logger.Error("failed to create agent client", "error", err)
			os.Exit(1)
		}
		secondary = client
	} else {
		logger.Warn("aiXplain credentials not set, secondary provider disabled")
	}

	opts := assistant.Options{
		Language: cfg.ResponseLanguage,
		Disclaimer: compliance.NewDisclaimer(
			compliance.ParseDisclaimerLevel(cfg.DisclaimerLevel),
			cfg.DisclaimerEnabled,
		),
		Logger:  logger,
		Metrics: assistantMetrics,
	}
	if primary != nil {
		opts.Primary = primary
		opts.PrimarySummarizer = primary
	}
	if secondary != nil {
		opts.Secondary = secondary
		if secondary.HasSummarizer() {
			opts.SecondarySummarizer = secondary
		}
	}
	orchestrator := assistant.NewOrchestrator(opts)

	var profileRepo profiles.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		profileRepo = profiles.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory profile store")
		profileRepo = profiles.NewInMemoryRepository()
	}

	var predictClient *predict.Client
	if cfg.PredictBaseURL != "" {
		client, err := predict.NewClient(predict.ClientConfig{
			BaseURL:         cfg.PredictBaseURL,
			FallbackBaseURL: cfg.PredictFallbackBaseURL,
			Timeout:         cfg.PredictTimeout,
		}, logger)
		if err != nil {
			logger.Error("failed to create predict client", "error", err)
			os.Exit(1)
		}
		predictClient = client
	} else {
		logger.Warn("PREDICT_BASE_URL not set, risk prediction disabled")
	}

	assistantHandler := assistant.NewHandler(orchestrator, profileRepo, cfg.GeminiModelID, logger)
	predictHandler := predict.NewHandler(predictClient, predictMetrics, logger)
	profilesHandler := profiles.NewHandler(profileRepo, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		AssistantHandler:   assistantHandler,
		PredictHandler:     predictHandler,
		ProfilesHandler:    profilesHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
