package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/advisor"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/amqp"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/auth"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/backend"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/config"
	apphttp "github.com/giannigrespan/FInance-tracker-Gemini/internal/http"
	applog "github.com/giannigrespan/FInance-tracker-Gemini/internal/log"
)

func main() {
	// Load .env for local development; absent in production is fine.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ledger store.
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

	// Gemini advisory boundary; runs disabled without an API key.
	adv, err := advisor.New(ctx, advisor.Config{
		APIKey:       cfg.GeminiAPIKey,
		ReceiptModel: cfg.GeminiReceiptModel,
		AdviceModel:  cfg.GeminiAdviceModel,
	})
	if err != nil {
		logger.Error("Failed to initialize advisor", "error", err)
		os.Exit(1)
	}

	gate := auth.NewGate(cfg.AuthJWTSecret, cfg.AuthAllowedEmails)
	if !gate.Enabled() {
		logger.Warn("Access gate disabled - API is open")
	}

	// Optional sync pipeline.
	var publisher apphttp.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - ledger changes stay local")
	}

	srv := apphttp.NewServer(":"+cfg.Port, result.Store, adv, gate, publisher)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting familyledger server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"advisor_enabled", adv.Enabled(),
		"gate_enabled", gate.Enabled())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
