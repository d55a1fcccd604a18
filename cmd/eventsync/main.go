package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"fleet-safety/eventsync/internal/config"
	"fleet-safety/eventsync/internal/export"
	"fleet-safety/eventsync/internal/logging"
	"fleet-safety/eventsync/internal/metrics"
	"fleet-safety/eventsync/internal/pipeline"
	"fleet-safety/eventsync/internal/samsara"
	"fleet-safety/eventsync/internal/store"
	"fleet-safety/eventsync/internal/timeutil"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file — using system environment variables")
	}

	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, "eventsync")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

// run executes one complete cycle. Nothing reaches a sink unless the whole
// pipeline succeeds; any fatal error surfaces here exactly once.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) (err error) {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	now := time.Now()
	start, end := timeutil.DayWindow(now)
	logger.Info("querying events", zap.String("start", start), zap.String("end", end))

	if cfg.RedisAddr != "" {
		lock, lockErr := store.NewRunLock(ctx, cfg)
		if lockErr != nil {
			return lockErr
		}
		defer lock.Close()

		acquired, lockErr := lock.Acquire(ctx, start)
		if lockErr != nil {
			return lockErr
		}
		if !acquired {
			return fmt.Errorf("window starting %s was already ingested (run lock held)", start)
		}
		defer func() {
			if err != nil {
				if relErr := lock.Release(context.Background(), start); relErr != nil {
					logger.Warn("release run lock", zap.Error(relErr))
				}
			}
		}()
	}

	api := samsara.NewClient(cfg.APIBaseURL, cfg.APIAuth, cfg.AlertConfigID, logger)
	rows, report, err := pipeline.New(api, logger).Run(ctx, start, end)
	if err != nil {
		return err
	}
	logger.Info("pipeline finished",
		zap.Int("rows", len(rows)),
		zap.Int("safety_rows", report.SafetyRows),
		zap.Int("alert_rows", report.AlertRows),
		zap.Int("labels_filtered", report.LabelsFiltered),
		zap.Int("skipped", report.TotalSkipped()),
	)

	if cfg.SinkEnabled(config.SinkPostgres) {
		db, err := store.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.NewEventStore(db, logger).InsertBatch(ctx, rows); err != nil {
			return err
		}
		metrics.RowsInserted.Add(int64(len(rows)))
	}

	if cfg.SinkEnabled(config.SinkExcel) {
		path, err := export.WriteReport(rows, cfg.ExportDir, timeutil.ReportDate(now))
		if err != nil {
			return fmt.Errorf("write excel report: %w", err)
		}
		metrics.RowsExported.Add(int64(len(rows)))
		logger.Info("report written", zap.String("path", path))
	}

	logger.Info("run complete", zap.String("metrics", metrics.Snapshot()))
	return nil
}
