package core

// FinancialSummary is the derived two-party balance. SettlementBalance is
// signed: positive means the partner owes me, negative means I owe the
// partner, zero means settled.
type FinancialSummary struct {
	TotalPaidByMe      float64 `json:"totalPaidByMe"`
	TotalPaidByPartner float64 `json:"totalPaidByPartner"`
	TotalShared        float64 `json:"totalShared"`
	SettlementBalance  float64 `json:"settlementBalance"`
}

// ComputeSummary reduces the full transaction list to payer totals and the
// net settlement balance. It is a total function: any finite list of
// transactions produces a result, an empty list produces all zeros.
//
// Every amount counts toward exactly one payer total regardless of type or
// split. Debt attribution depends on who paid and how the cost splits:
// SHARED moves half the amount across the ledger, FOR_PARTNER moves all of
// it, PERSONAL moves nothing. Amounts are not validated here; a negative
// amount simply reverses the debt direction.
//
// Summation runs in list order, so results are deterministic for a given
// snapshot.
func ComputeSummary(txs []Transaction) FinancialSummary {
	var s FinancialSummary
	for _, t := range txs {
		if t.Payer == PayerMe {
			s.TotalPaidByMe += t.Amount
		} else {
			s.TotalPaidByPartner += t.Amount
		}

		if t.Split == SplitShared {
			s.TotalShared += t.Amount
		}

		switch {
		case t.Payer == PayerMe && t.Split == SplitShared:
			s.SettlementBalance += t.Amount / 2
		case t.Payer == PayerMe && t.Split == SplitForPartner:
			s.SettlementBalance += t.Amount
		case t.Payer != PayerMe && t.Split == SplitShared:
			s.SettlementBalance -= t.Amount / 2
		case t.Payer != PayerMe && t.Split == SplitForPartner:
			// Partner paying "for the partner" means paying for me.
			s.SettlementBalance -= t.Amount
		}
	}
	return s
}
