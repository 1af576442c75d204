package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/config"
	spendHttp "github.com/student-spending/spendboard/internal/http"
	healthHandler "github.com/student-spending/spendboard/internal/http/health"
	ingestHandler "github.com/student-spending/spendboard/internal/http/ingest"
	statsHandler "github.com/student-spending/spendboard/internal/http/stats"
	"github.com/student-spending/spendboard/internal/importer"
	"github.com/student-spending/spendboard/internal/logger"
	"github.com/student-spending/spendboard/internal/stats"
	"github.com/student-spending/spendboard/internal/upload"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Init(os.Stdout, cfg.App.LogLevel)

	client := backend.New(cfg.API.URL, backend.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}))

	var (
		importService = importer.NewService()
		statsService  = stats.NewService(func(token string) stats.Backend {
			return client.ForToken(token)
		}, cfg.Stats.CacheTTL)
	)

	var (
		ingestH = ingestHandler.NewHandler(
			importService,
			func(token string) upload.Client { return client.ForToken(token) },
			statsService.Invalidate,
			cfg.Server.MaxUploadBytes,
		)
		statsH  = statsHandler.NewHandler(statsService)
		healthH = healthHandler.NewHandler(cfg.App.Name, client)
	)

	limiter := rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)
	router := spendHttp.New(cfg.Server.AllowedOrigins, limiter, ingestH, statsH, healthH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "backend", cfg.API.URL)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
