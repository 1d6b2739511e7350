package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/store/file"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/store/sqlite"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateStore(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case SQLiteBackend:
		return f.createSQLiteStore(cfg)
	case FileBackend:
		return f.createFileStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

func (f *DefaultFactory) createSQLiteStore(cfg Config) (*Result, error) {
	repo, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite store: %w", err)
	}

	f.logger.Info("Initialized sqlite ledger backend", "db_path", cfg.SQLiteDBPath)
	return &Result{Store: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createFileStore(cfg Config) (*Result, error) {
	dir := cfg.DataDir
	if dir == "" {
		dir = "data"
	}

	s, err := file.New(dir)
	if err != nil {
		return nil, fmt.Errorf("initialize file store: %w", err)
	}

	f.logger.Info("Initialized file ledger backend", "data_directory", dir)
	return &Result{Store: s, Cleanup: nil}, nil
}
