package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dexwatch/screener-backend/internal/api"
	"github.com/dexwatch/screener-backend/internal/config"
	"github.com/dexwatch/screener-backend/internal/db"
	"github.com/dexwatch/screener-backend/internal/external"
	"github.com/dexwatch/screener-backend/internal/logging"
	"github.com/dexwatch/screener-backend/internal/observability"
	"github.com/dexwatch/screener-backend/internal/pipeline"
	"github.com/dexwatch/screener-backend/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Database is required before any traffic is served.
	pool, err := db.Connect(cfg.DSN())
	if err != nil {
		log.Fatalw("database connection failed", "error", err)
	}
	defer func() {
		pool.Close()
		log.Info("connection pool closed")
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalw("schema initialization failed", "error", err)
	}
	log.Infow("database initialized",
		"threshold", cfg.LiquidityThreshold,
		"recency_window_days", cfg.RecencyWindowDays,
		"default_chain", cfg.DefaultChain,
	)

	metrics := observability.NewMetrics()
	fetcher := external.NewDexScreenerClient(cfg.DexAPIURL, cfg.DexAPIKey)
	writer := repository.NewTokenRepo(pool)
	filter := pipeline.NewFilter(cfg.LiquidityThreshold, cfg.RecencyWindow())

	srv := api.NewServer(api.Config{
		Port:         cfg.Port,
		DefaultChain: cfg.DefaultChain,
		CORSOrigin:   cfg.CORSAllowOrigin,
	}, fetcher, writer, filter, metrics, log)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server error", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server shutdown error", "error", err)
	}
	log.Info("shutdown complete")
}
