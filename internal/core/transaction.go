package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

const (
	PayerMe      Payer = "ME"
	PayerPartner Payer = "PARTNER"
)

const (
	// SplitShared means the cost is split 50/50 between the two partners.
	SplitShared SplitType = "SHARED"
	// SplitPersonal means the payer paid for themselves; no debt is created.
	SplitPersonal SplitType = "PERSONAL"
	// SplitForPartner means the payer paid entirely on the other partner's behalf.
	SplitForPartner SplitType = "FOR_PARTNER"
)

const (
	CategoryFood          Category = "Food & Dining"
	CategoryTransport     Category = "Transportation"
	CategoryUtilities     Category = "Utilities"
	CategoryEntertainment Category = "Entertainment"
	CategoryShopping      Category = "Shopping"
	CategoryHealth        Category = "Health"
	CategoryHousing       Category = "Housing"
	CategorySalary        Category = "Salary"
	CategoryInvestment    Category = "Investment"
	CategoryOther         Category = "Other"
)

// DateLayout is the wire format for transaction dates (no time component).
const DateLayout = "2006-01-02"

type (
	TransactionType string
	Payer           string
	SplitType       string
	Category        string

	// Transaction is an immutable ledger entry. Entries are created and
	// deleted, never updated in place.
	Transaction struct {
		ID       string          `json:"id"`
		Date     string          `json:"date"` // YYYY-MM-DD
		Merchant string          `json:"merchant"`
		Amount   float64         `json:"amount"`
		Type     TransactionType `json:"type"`
		Category Category        `json:"category"`
		Payer    Payer           `json:"payer"`
		Split    SplitType       `json:"splitType"`
		Notes    string          `json:"notes,omitempty"`
	}

	// ReceiptDraft holds the fields a receipt scan can pre-fill. Payer and
	// split type are defaulted by the caller, not the extractor.
	ReceiptDraft struct {
		Merchant string   `json:"merchant"`
		Date     string   `json:"date"`
		Amount   float64  `json:"amount"`
		Category Category `json:"category"`
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyMerchant   = errors.New("empty merchant")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidPayer    = errors.New("invalid payer")
	ErrInvalidSplit    = errors.New("invalid split type")
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (p Payer) Valid() bool {
	return p == PayerMe || p == PayerPartner
}

// Other returns the opposite party.
func (p Payer) Other() Payer {
	if p == PayerMe {
		return PayerPartner
	}
	return PayerMe
}

func (s SplitType) Valid() bool {
	return s == SplitShared || s == SplitPersonal || s == SplitForPartner
}

// Categories returns the closed set of spending categories.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryShopping,
		CategoryHealth,
		CategoryHousing,
		CategorySalary,
		CategoryInvestment,
		CategoryOther,
	}
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// NormalizeCategory snaps free text to the closed category set. Unknown
// values fall back to Other. Used at the AI-extraction boundary; the engines
// themselves never see unnormalized values.
func NormalizeCategory(s string) Category {
	s = strings.TrimSpace(s)
	if c := Category(s); c.Valid() {
		return c
	}
	for _, known := range Categories() {
		if strings.EqualFold(s, string(known)) {
			return known
		}
	}
	return CategoryOther
}

// Validate checks a transaction at the input boundary. The settlement and
// aggregation engines do not validate; malformed rows must be rejected here.
func (t Transaction) Validate() error {
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return ErrInvalidDate
	}
	if len(strings.TrimSpace(t.Merchant)) == 0 {
		return ErrEmptyMerchant
	}
	if len(t.Merchant) > 200 {
		return errors.New("merchant too long (max 200 characters)")
	}
	if t.Amount < 0 {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	if !t.Payer.Valid() {
		return ErrInvalidPayer
	}
	if !t.Split.Valid() {
		return ErrInvalidSplit
	}
	return nil
}
