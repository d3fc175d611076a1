package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tommy-vpr/sales-report/internal/importer"
	"github.com/tommy-vpr/sales-report/pkg/config"
	"github.com/tommy-vpr/sales-report/pkg/db"
	"github.com/tommy-vpr/sales-report/pkg/logger"
	"github.com/tommy-vpr/sales-report/pkg/migrate"
	"github.com/tommy-vpr/sales-report/pkg/redis"
)

func main() {
	filePath := flag.String("file", "", "path to the monthly performance CSV export")
	year := flag.Int("year", 0, "override the reporting year (requires -month)")
	month := flag.Int("month", 0, "override the reporting month 1-12 (requires -year)")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "importer"})

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: importer -file <export.csv> [-year YYYY -month M]")
		os.Exit(2)
	}
	if (*year == 0) != (*month == 0) {
		fmt.Fprintln(os.Stderr, "-year and -month must be provided together")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "importer",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	content, err := os.ReadFile(*filePath)
	if err != nil {
		logg.Error(context.Background(), "failed to read export file", err)
		os.Exit(1)
	}

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

	var importCache importer.SummaryCache
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		importCache = redisClient
	}

	svc, err := importer.NewService(
		importer.NewRepository(dbClient.DB()), dbClient, logg, importCache, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create import service", err)
		os.Exit(1)
	}

	result, err := svc.Import(context.Background(), importer.Input{
		FileContent: string(content),
		FileName:    *filePath,
		Source:      "cli",
		Year:        *year,
		Month:       *month,
	})
	if err != nil {
		logg.Error(context.Background(), "import failed", err)
		os.Exit(1)
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"period":    fmt.Sprintf("%s %d", result.Period.MonthName, result.Period.Year),
		"created":   result.Records.Created,
		"updated":   result.Records.Updated,
		"skipped":   result.Skipped.Total(),
		"summaries": result.Summaries.Count,
	})
	logg.Info(ctx, "import finished")
}
