package core

import (
	"fmt"
	"testing"
)

func TestCategoryTotals(t *testing.T) {
	mk := func(c Category, amount float64) Transaction {
		out := tx(PayerMe, SplitShared, amount)
		out.Category = c
		return out
	}

	txs := []Transaction{
		mk(CategoryFood, 10),
		mk(CategoryFood, 5),
		mk(CategoryTransport, 20),
	}
	totals := CategoryTotals(txs)
	if len(totals) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(totals))
	}
	if !almostEqual(totals[CategoryFood], 15) {
		t.Fatalf("food = %v, want 15", totals[CategoryFood])
	}
	if !almostEqual(totals[CategoryTransport], 20) {
		t.Fatalf("transport = %v, want 20", totals[CategoryTransport])
	}

	// Same buckets regardless of list order.
	reversed := []Transaction{txs[2], txs[1], txs[0]}
	again := CategoryTotals(reversed)
	for k, v := range totals {
		if !almostEqual(again[k], v) {
			t.Fatalf("order changed bucket %s: %v vs %v", k, again[k], v)
		}
	}
}

func TestCategoryTotalsEmpty(t *testing.T) {
	if got := CategoryTotals(nil); len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestRecentDailyTotalsPrefixNotCalendar(t *testing.T) {
	// Newest-first snapshot: 14 entries on distinct dates, then a 15th with
	// an even more recent date. The 15th is beyond the prefix and must not
	// appear, even though by calendar it is the most recent of all.
	var txs []Transaction
	for i := 0; i < RecentWindow; i++ {
		e := tx(PayerMe, SplitShared, 1)
		e.Date = fmt.Sprintf("2024-03-%02d", i+1)
		txs = append(txs, e)
	}
	straggler := tx(PayerMe, SplitShared, 100)
	straggler.Date = "2024-03-31"
	txs = append(txs, straggler)

	out := RecentDailyTotals(txs)
	if len(out) != RecentWindow {
		t.Fatalf("expected %d buckets, got %d", RecentWindow, len(out))
	}
	for _, d := range out {
		if d.Date == "2024-03-31" {
			t.Fatalf("entry beyond the prefix leaked into the output")
		}
	}
}

func TestRecentDailyTotalsSortedAscending(t *testing.T) {
	dates := []string{"2024-03-05", "2024-03-01", "2024-03-03", "2024-03-01"}
	var txs []Transaction
	for _, d := range dates {
		e := tx(PayerMe, SplitShared, 10)
		e.Date = d
		txs = append(txs, e)
	}

	out := RecentDailyTotals(txs)
	if len(out) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(out))
	}
	want := []string{"2024-03-01", "2024-03-03", "2024-03-05"}
	for i, d := range out {
		if d.Date != want[i] {
			t.Fatalf("bucket %d = %s, want %s", i, d.Date, want[i])
		}
	}
	if !almostEqual(out[0].Amount, 20) {
		t.Fatalf("same-day amounts not summed: %v", out[0].Amount)
	}
}

func TestRecentDailyTotalsEmpty(t *testing.T) {
	if got := RecentDailyTotals(nil); len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
}

func TestRecentDailyTotalsFewerThanWindow(t *testing.T) {
	txs := []Transaction{tx(PayerMe, SplitShared, 7)}
	out := RecentDailyTotals(txs)
	if len(out) != 1 || !almostEqual(out[0].Amount, 7) {
		t.Fatalf("unexpected output %v", out)
	}
}

func TestDailyTotalsSince(t *testing.T) {
	// 20 entries; the calendar-window variant filters by date, not position.
	var txs []Transaction
	for i := 0; i < 20; i++ {
		e := tx(PayerMe, SplitShared, 1)
		e.Date = fmt.Sprintf("2024-03-%02d", i+1)
		txs = append(txs, e)
	}

	out := DailyTotalsSince(txs, "2024-03-15")
	if len(out) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(out))
	}
	if out[0].Date != "2024-03-15" || out[len(out)-1].Date != "2024-03-20" {
		t.Fatalf("unexpected range %s..%s", out[0].Date, out[len(out)-1].Date)
	}
}
