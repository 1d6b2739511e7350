package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/amqp"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/backend"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/config"
	applog "github.com/giannigrespan/FInance-tracker-Gemini/internal/log"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentSheets})
	applog.SetDefault(logger)

	logger.Info("Starting familyledger-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the sync worker")
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the sync worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The worker reads the same ledger the server writes.
	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateStore(ctx, backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		DataDir:      cfg.DataDir,
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize ledger backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	sheet, err := worker.NewSheetClient(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	sync := worker.NewSyncWorker(result.Store, sheet)

	// Seed a fresh sheet with the full ledger before consuming live
	// changes. Off by default: the sheet is an append-only journal and a
	// repeat mirror would duplicate every row.
	if cfg.MirrorOnStart {
		startupCtx, cancelStartup := context.WithTimeout(ctx, 2*time.Minute)
		if err := sync.MirrorAll(startupCtx); err != nil {
			logger.Error("Startup mirror failed", "error", err)
		}
		cancelStartup()
	}

	g, gctx := errgroup.WithContext(ctx)

	// Consume until shutdown; transient consume failures retry after the
	// configured sync interval.
	g.Go(func() error {
		for {
			err := amqpClient.ConsumeLedgerChanges(gctx, func(msg *amqp.LedgerChangeMessage) error {
				return sync.HandleChange(gctx, msg)
			})
			if gctx.Err() != nil {
				return gctx.Err()
			}
			logger.Error("Message consumption failed, retrying", "error", err, "retry_in", cfg.SyncInterval)
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-time.After(cfg.SyncInterval):
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
