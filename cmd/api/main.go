package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tommy-vpr/sales-report/api/controllers"
	"github.com/tommy-vpr/sales-report/api/routes"
	"github.com/tommy-vpr/sales-report/internal/comparison"
	"github.com/tommy-vpr/sales-report/internal/importer"
	"github.com/tommy-vpr/sales-report/internal/summary"
	"github.com/tommy-vpr/sales-report/pkg/config"
	"github.com/tommy-vpr/sales-report/pkg/db"
	"github.com/tommy-vpr/sales-report/pkg/logger"
	"github.com/tommy-vpr/sales-report/pkg/metrics"
	"github.com/tommy-vpr/sales-report/pkg/migrate"
	"github.com/tommy-vpr/sales-report/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	registry := prometheus.NewRegistry()
	importMetrics := metrics.NewImportMetrics(registry)

	var importCache importer.SummaryCache
	var summaryCache summary.ReportCache
	if redisClient != nil {
		importCache = redisClient
		summaryCache = redisClient
	}

	importService, err := importer.NewService(
		importer.NewRepository(dbClient.DB()), dbClient, logg, importCache, importMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create import service", err)
		os.Exit(1)
	}

	summaryService, err := summary.NewService(
		summary.NewRepository(dbClient.DB()), logg, summaryCache, cfg.Redis.CacheTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create summary service", err)
		os.Exit(1)
	}

	comparisonService, err := comparison.NewService(comparison.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create comparison service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	var cachePinger controllers.Pinger
	if redisClient != nil {
		cachePinger = redisClient
	}

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Deps{
			Importer:   importService,
			Summary:    summaryService,
			Comparison: comparisonService,
			DB:         dbClient,
			Cache:      cachePinger,
			Registry:   registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
