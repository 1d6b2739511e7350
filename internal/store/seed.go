package store

import "github.com/giannigrespan/FInance-tracker-Gemini/internal/core"

// Seed is the initial dataset a fresh (or unreadable) ledger starts from.
// The rows match the documented first-run state of the app.
func Seed() []core.Transaction {
	return []core.Transaction{
		{ID: "1", Date: "2023-10-25", Merchant: "Whole Foods", Amount: 124.50, Type: core.Expense, Category: core.CategoryFood, Payer: core.PayerMe, Split: core.SplitShared},
		{ID: "2", Date: "2023-10-26", Merchant: "Personal Game", Amount: 59.99, Type: core.Expense, Category: core.CategoryEntertainment, Payer: core.PayerMe, Split: core.SplitPersonal},
		{ID: "3", Date: "2023-10-27", Merchant: "Uber", Amount: 24.00, Type: core.Expense, Category: core.CategoryTransport, Payer: core.PayerPartner, Split: core.SplitShared},
		{ID: "4", Date: "2023-10-28", Merchant: "Gift for Laura", Amount: 45.00, Type: core.Expense, Category: core.CategoryShopping, Payer: core.PayerMe, Split: core.SplitForPartner},
		{ID: "5", Date: "2023-10-29", Merchant: "Utilities", Amount: 150.00, Type: core.Expense, Category: core.CategoryUtilities, Payer: core.PayerPartner, Split: core.SplitShared},
	}
}
