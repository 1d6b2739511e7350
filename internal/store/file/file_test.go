package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/core"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/store"
)

func newTx() core.Transaction {
	return core.Transaction{
		Date:     "2024-03-01",
		Merchant: "Espresso Bar",
		Amount:   4.20,
		Type:     core.Expense,
		Category: core.CategoryFood,
		Payer:    core.PayerMe,
		Split:    core.SplitShared,
	}
}

func TestNewSeedsMissingSnapshot(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	items, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != len(store.Seed()) {
		t.Fatalf("expected %d seed entries, got %d", len(store.Seed()), len(items))
	}
	if _, err := os.Stat(filepath.Join(dir, SnapshotKey)); err != nil {
		t.Fatalf("seed snapshot not written: %v", err)
	}
}

func TestNewFallsBackOnCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SnapshotKey), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New should recover from corruption: %v", err)
	}
	items, _ := s.List(context.Background())
	if len(items) != len(store.Seed()) {
		t.Fatalf("expected seed fallback, got %d entries", len(items))
	}
}

func TestAppendAssignsFreshIDAndPrepends(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	before, _ := s.List(ctx)
	seen := make(map[string]bool, len(before))
	for _, e := range before {
		seen[e.ID] = true
	}

	in := newTx()
	in.ID = "caller-supplied-should-be-ignored"
	created, err := s.Append(ctx, in)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if created.ID == "" || created.ID == in.ID || seen[created.ID] {
		t.Fatalf("expected a fresh unique id, got %q", created.ID)
	}

	after, _ := s.List(ctx)
	if len(after) != len(before)+1 {
		t.Fatalf("expected %d entries, got %d", len(before)+1, len(after))
	}
	if after[0].ID != created.ID {
		t.Fatalf("new entry not at the front: %q", after[0].ID)
	}
}

func TestRemoveIsIdempotentAndOrderPreserving(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	a, _ := s.Append(ctx, newTx())
	b, _ := s.Append(ctx, newTx())
	c, _ := s.Append(ctx, newTx())

	if err := s.Remove(ctx, b.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	items, _ := s.List(ctx)
	if items[0].ID != c.ID || items[1].ID != a.ID {
		t.Fatalf("remaining order disturbed: %q, %q", items[0].ID, items[1].ID)
	}
	for _, e := range items {
		if e.ID == b.ID {
			t.Fatal("removed entry still present")
		}
	}

	// Unknown id is a no-op.
	n := len(items)
	if err := s.Remove(ctx, "no-such-id"); err != nil {
		t.Fatalf("Remove unknown id: %v", err)
	}
	items, _ = s.List(ctx)
	if len(items) != n {
		t.Fatalf("no-op remove changed the ledger: %d -> %d", n, len(items))
	}
}

func TestSnapshotSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	created, err := s1.Append(ctx, newTx())
	if err != nil {
		t.Fatal(err)
	}

	s2, err := New(dir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	items, _ := s2.List(ctx)
	if items[0].ID != created.ID {
		t.Fatalf("reloaded snapshot lost the newest entry")
	}
	if items[0].Merchant != "Espresso Bar" || items[0].Amount != 4.20 {
		t.Fatalf("round-tripped entry mangled: %+v", items[0])
	}
}
