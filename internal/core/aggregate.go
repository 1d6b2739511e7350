package core

import "sort"

// RecentWindow is how many ledger entries feed the daily trend chart.
const RecentWindow = 14

// DailyTotal is one bucket of the daily spending trend.
type DailyTotal struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// CategoryTotals sums amounts per category over the whole list, ignoring
// payer, split and type. The map carries no ordering; consumers render it
// however they like.
func CategoryTotals(txs []Transaction) map[Category]float64 {
	totals := make(map[Category]float64, len(txs))
	for _, t := range txs {
		totals[t.Category] += t.Amount
	}
	return totals
}

// RecentDailyTotals buckets the first RecentWindow entries of the snapshot
// by date and returns the buckets in ascending date order.
//
// Note the window is a literal prefix of the store-order list (newest
// first), not a last-14-calendar-days filter: an older-dated entry inside
// the prefix is included, a recent-dated entry beyond it is not. See
// DailyTotalsSince for the calendar-window variant.
func RecentDailyTotals(txs []Transaction) []DailyTotal {
	if len(txs) > RecentWindow {
		txs = txs[:RecentWindow]
	}
	return bucketByDate(txs, "")
}

// DailyTotalsSince buckets every entry dated on or after from (YYYY-MM-DD)
// by date, ascending. This is the true calendar-window reading of the daily
// trend, offered alongside the prefix behavior.
func DailyTotalsSince(txs []Transaction, from string) []DailyTotal {
	return bucketByDate(txs, from)
}

func bucketByDate(txs []Transaction, from string) []DailyTotal {
	byDate := make(map[string]float64)
	for _, t := range txs {
		if from != "" && t.Date < from {
			continue
		}
		byDate[t.Date] += t.Amount
	}

	out := make([]DailyTotal, 0, len(byDate))
	for date, amount := range byDate {
		out = append(out, DailyTotal{Date: date, Amount: amount})
	}
	// ISO dates sort correctly as strings.
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
