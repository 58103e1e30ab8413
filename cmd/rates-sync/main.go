// Command rates-sync stores the central bank rate table for a date so the
// pipeline can convert salaries without reaching the bank.
//
// Usage:
//
//	rates-sync [--date=2024-03-01] [--loop]
//
// Without --date today's table is synced. With --loop the command keeps
// running and syncs again every RATES_SYNC_SCHEDULE until interrupted.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres"
	"github.com/heartmarshall/vacancy-normalizer/internal/app"
	"github.com/heartmarshall/vacancy-normalizer/internal/config"
	"github.com/heartmarshall/vacancy-normalizer/internal/service/rates"
)

func main() {
	dateFlag := flag.String("date", "", "rate date as YYYY-MM-DD (default: today)")
	loop := flag.Bool("loop", false, "sync every RATES_SYNC_SCHEDULE until interrupted")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	date := time.Now()
	if *dateFlag != "" {
		date, err = time.Parse(time.DateOnly, *dateFlag)
		if err != nil {
			logger.Error("invalid --date", slog.String("value", *dateFlag))
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	retry := postgres.NewRetrier(pool, cfg.Store.RetryAttempts, cfg.Store.RetryBackoff, logger)
	svc, err := app.NewRateService(cfg, logger, pool, retry)
	if err != nil {
		logger.Error("init rate service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if !*loop {
		if !syncOnce(ctx, svc, date, logger) {
			os.Exit(1)
		}
		return
	}

	ticker := time.NewTicker(cfg.Rates.SyncSchedule)
	defer ticker.Stop()
	for {
		syncOnce(ctx, svc, time.Now(), logger)
		select {
		case <-ctx.Done():
			logger.Info("rates-sync stopped")
			return
		case <-ticker.C:
		}
	}
}

func syncOnce(ctx context.Context, svc *rates.Service, date time.Time, logger *slog.Logger) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if _, err := svc.Sync(ctx, date); err != nil {
		logger.Error("rates sync failed",
			slog.String("error", err.Error()),
			slog.String("date", date.Format(time.DateOnly)),
		)
		return false
	}
	return true
}
