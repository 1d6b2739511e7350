package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/core"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/store"
)

// Store is the durable sqlite-backed ledger. Insertion order is tracked by
// an autoincrement position column; List reads newest first.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &Store{db: db}
	if err := s.seedIfEmpty(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed ledger: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// seedIfEmpty mirrors the file store's first-run behavior: an empty table
// starts from the documented initial dataset, oldest seed row inserted
// first so positions match the reference ordering.
func (s *Store) seedIfEmpty(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return fmt.Errorf("count transactions: %w", err)
	}
	if n > 0 {
		return nil
	}

	seed := store.Seed()
	for i := len(seed) - 1; i >= 0; i-- {
		if err := s.insert(ctx, seed[i]); err != nil {
			return err
		}
	}
	slog.InfoContext(ctx, "Seeded empty ledger database", "entries", len(seed))
	return nil
}

func (s *Store) insert(ctx context.Context, t core.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, date, merchant, amount, type, category, payer, split_type, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Date, t.Merchant, t.Amount, string(t.Type), string(t.Category),
		string(t.Payer), string(t.Split), t.Notes)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// Append implements store.Appender.
func (s *Store) Append(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.ID = uuid.NewString()
	if err := s.insert(ctx, t); err != nil {
		return core.Transaction{}, err
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"merchant", t.Merchant,
		"amount", t.Amount,
		"category", t.Category,
		"payer", t.Payer,
		"split_type", t.Split)
	return t, nil
}

// Remove implements store.Remover. Deleting an unknown id affects zero rows
// and is not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// List implements store.Lister.
func (s *Store) List(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, merchant, amount, type, category, payer, split_type, notes
		FROM transactions
		ORDER BY position DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var typ, cat, payer, split string
		if err := rows.Scan(&t.ID, &t.Date, &t.Merchant, &t.Amount, &typ, &cat, &payer, &split, &t.Notes); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Type = core.TransactionType(typ)
		t.Category = core.Category(cat)
		t.Payer = core.Payer(payer)
		t.Split = core.SplitType(split)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}
