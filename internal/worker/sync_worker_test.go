package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/amqp"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/core"
)

type fakeLister struct {
	txs []core.Transaction
	err error
}

func (f *fakeLister) List(context.Context) ([]core.Transaction, error) {
	return f.txs, f.err
}

type recordingSheet struct {
	rows [][]interface{}
	err  error
}

func (r *recordingSheet) AppendRow(_ context.Context, values []interface{}) error {
	if r.err != nil {
		return r.err
	}
	r.rows = append(r.rows, values)
	return nil
}

func sampleTx(id string) core.Transaction {
	return core.Transaction{
		ID: id, Date: "2024-03-01", Merchant: "Cafe", Amount: 12.5,
		Type: core.Expense, Category: core.CategoryFood,
		Payer: core.PayerMe, Split: core.SplitShared,
	}
}

func TestHandleChangeCreated(t *testing.T) {
	sheet := &recordingSheet{}
	w := NewSyncWorker(&fakeLister{txs: []core.Transaction{sampleTx("a"), sampleTx("b")}}, sheet)

	msg := &amqp.LedgerChangeMessage{TransactionID: "b", Op: amqp.OpCreated, Timestamp: time.Now()}
	if err := w.HandleChange(context.Background(), msg); err != nil {
		t.Fatalf("HandleChange: %v", err)
	}
	if len(sheet.rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(sheet.rows))
	}
	row := sheet.rows[0]
	if row[0] != amqp.OpCreated || row[1] != "b" || row[3] != "Cafe" {
		t.Fatalf("unexpected row %v", row)
	}
}

func TestHandleChangeCreatedButVanished(t *testing.T) {
	sheet := &recordingSheet{}
	w := NewSyncWorker(&fakeLister{}, sheet)

	msg := &amqp.LedgerChangeMessage{TransactionID: "gone", Op: amqp.OpCreated}
	if err := w.HandleChange(context.Background(), msg); err != nil {
		t.Fatalf("vanished row must not be an error: %v", err)
	}
	if len(sheet.rows) != 0 {
		t.Fatalf("no row should be written for a vanished transaction")
	}
}

func TestHandleChangeDeleted(t *testing.T) {
	sheet := &recordingSheet{}
	w := NewSyncWorker(&fakeLister{}, sheet)

	at := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	msg := &amqp.LedgerChangeMessage{TransactionID: "x", Op: amqp.OpDeleted, Timestamp: at}
	if err := w.HandleChange(context.Background(), msg); err != nil {
		t.Fatal(err)
	}
	row := sheet.rows[0]
	if row[0] != amqp.OpDeleted || row[1] != "x" || row[2] != "2024-03-02" {
		t.Fatalf("unexpected deletion row %v", row)
	}
}

func TestHandleChangeStoreError(t *testing.T) {
	w := NewSyncWorker(&fakeLister{err: errors.New("db down")}, &recordingSheet{})
	msg := &amqp.LedgerChangeMessage{TransactionID: "a", Op: amqp.OpCreated}
	if err := w.HandleChange(context.Background(), msg); err == nil {
		t.Fatal("expected error so the message is requeued")
	}
}

func TestMirrorAllChronological(t *testing.T) {
	// Store order is newest first; the sheet should read oldest first.
	newest, oldest := sampleTx("new"), sampleTx("old")
	sheet := &recordingSheet{}
	w := NewSyncWorker(&fakeLister{txs: []core.Transaction{newest, oldest}}, sheet)

	if err := w.MirrorAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(sheet.rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(sheet.rows))
	}
	if sheet.rows[0][1] != "old" || sheet.rows[1][1] != "new" {
		t.Fatalf("rows not chronological: %v", sheet.rows)
	}
}
