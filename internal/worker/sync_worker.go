// Package worker mirrors ledger changes into a shared Google Sheet. The
// mirror is append-only infrastructure for the couple's records; ledger
// correctness never depends on it.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/amqp"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/core"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/store"
)

// RowAppender is the slice of the sheet client the worker needs.
type RowAppender interface {
	AppendRow(ctx context.Context, values []interface{}) error
}

type SyncWorker struct {
	store store.Lister
	sheet RowAppender
}

func NewSyncWorker(s store.Lister, sheet RowAppender) *SyncWorker {
	return &SyncWorker{store: s, sheet: sheet}
}

// HandleChange processes one ledger change event. A created row that no
// longer exists (deleted before we caught up) is skipped, not retried.
func (w *SyncWorker) HandleChange(ctx context.Context, msg *amqp.LedgerChangeMessage) error {
	switch msg.Op {
	case amqp.OpCreated:
		txs, err := w.store.List(ctx)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		for _, t := range txs {
			if t.ID == msg.TransactionID {
				return w.sheet.AppendRow(ctx, transactionRow(t))
			}
		}
		slog.WarnContext(ctx, "Created transaction vanished before sync, skipping",
			"transaction_id", msg.TransactionID)
		return nil

	case amqp.OpDeleted:
		return w.sheet.AppendRow(ctx, deletionRow(msg.TransactionID, msg.Timestamp))

	default:
		slog.WarnContext(ctx, "Unknown ledger change op, dropping", "op", msg.Op)
		return nil
	}
}

// MirrorAll appends every current ledger row to the sheet. Run once at
// worker startup so a fresh sheet catches up with the ledger.
func (w *SyncWorker) MirrorAll(ctx context.Context) error {
	txs, err := w.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	// Oldest first so the sheet reads chronologically.
	for i := len(txs) - 1; i >= 0; i-- {
		if err := w.sheet.AppendRow(ctx, transactionRow(txs[i])); err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "Mirrored full ledger to sheet", "entries", len(txs))
	return nil
}

func transactionRow(t core.Transaction) []interface{} {
	return []interface{}{
		string(amqp.OpCreated),
		t.ID,
		t.Date,
		t.Merchant,
		t.Amount,
		string(t.Type),
		string(t.Category),
		string(t.Payer),
		string(t.Split),
	}
}

func deletionRow(id string, at time.Time) []interface{} {
	return []interface{}{
		string(amqp.OpDeleted),
		id,
		at.Format(core.DateLayout),
		"", nil, "", "", "", "",
	}
}
