package backend

import (
	"context"
	"fmt"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/store"
)

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result bundles the selected store with its optional cleanup function.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// Factory creates ledger stores based on configuration.
type Factory interface {
	CreateStore(ctx context.Context, cfg Config) (*Result, error)
}

// Type selects the persistence backend for the ledger.
type Type string

const (
	// FileBackend keeps the ledger as a JSON snapshot under a fixed key.
	FileBackend Type = "file"
	// SQLiteBackend keeps the ledger in a sqlite database.
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Config holds configuration for store creation.
type Config struct {
	Type Type

	// File backend
	DataDir string

	// SQLite backend
	SQLiteDBPath string
}

func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if c.Type == SQLiteBackend && c.SQLiteDBPath == "" {
		return fmt.Errorf("sqlite database path is required for sqlite backend")
	}
	return nil
}
