// Package file persists the ledger as a single JSON-encoded snapshot under
// a fixed key inside a data directory. Mutations replace the whole snapshot
// (read, compute next, write), mirroring the single-writer model the rest
// of the system assumes.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/core"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/store"
)

// SnapshotKey is the fixed storage key for the serialized ledger.
const SnapshotKey = "familyledger_transactions_v2.json"

type Store struct {
	mu    sync.Mutex
	path  string
	items []core.Transaction
}

var _ store.Store = (*Store)(nil)

// New loads the snapshot from dir, seeding the documented initial dataset
// when the file is missing or unreadable. A corrupt snapshot is logged and
// replaced rather than crashing the service.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	s := &Store{path: filepath.Join(dir, SnapshotKey)}

	raw, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
		s.items = store.Seed()
		if err := s.persistLocked(); err != nil {
			return nil, fmt.Errorf("write seed snapshot: %w", err)
		}
		slog.Info("Seeded new ledger snapshot", "path", s.path, "entries", len(s.items))
	case err != nil:
		return nil, fmt.Errorf("read snapshot: %w", err)
	default:
		if jsonErr := json.Unmarshal(raw, &s.items); jsonErr != nil {
			slog.Warn("Ledger snapshot unparsable, falling back to seed data",
				"path", s.path, "error", jsonErr)
			s.items = store.Seed()
			if err := s.persistLocked(); err != nil {
				return nil, fmt.Errorf("replace corrupt snapshot: %w", err)
			}
		}
	}
	return s, nil
}

// Append implements store.Appender. The caller's id is ignored; a fresh
// uuid is assigned before insertion.
func (s *Store) Append(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = uuid.NewString()
	next := make([]core.Transaction, 0, len(s.items)+1)
	next = append(next, t)
	next = append(next, s.items...)

	prev := s.items
	s.items = next
	if err := s.persistLocked(); err != nil {
		s.items = prev
		return core.Transaction{}, fmt.Errorf("persist snapshot: %w", err)
	}
	return t, nil
}

// Remove implements store.Remover.
func (s *Store) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]core.Transaction, 0, len(s.items))
	for _, t := range s.items {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if len(next) == len(s.items) {
		return nil // unknown id, nothing to do
	}

	prev := s.items
	s.items = next
	if err := s.persistLocked(); err != nil {
		s.items = prev
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

// List implements store.Lister.
func (s *Store) List(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, nil
}

// persistLocked writes the snapshot via a temp file and rename so readers
// never observe a partial write. Callers must hold s.mu.
func (s *Store) persistLocked() error {
	raw, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("swap snapshot: %w", err)
	}
	return nil
}
