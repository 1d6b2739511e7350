package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/core"
)

func TestCleanModelJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"leading whitespace", "  \n{\"a\":1}\n", `{"a":1}`},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanModelJSON(tc.in); got != tc.want {
				t.Fatalf("cleanModelJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseReceiptPayload(t *testing.T) {
	const today = "2024-03-15"

	t.Run("well-formed", func(t *testing.T) {
		raw := "```json\n" + `{"merchant":"Trader Joe's","date":"2024-03-10","amount":42.17,"category":"Food & Dining"}` + "\n```"
		draft, err := parseReceiptPayload(raw, today)
		if err != nil {
			t.Fatalf("parseReceiptPayload: %v", err)
		}
		if draft.Merchant != "Trader Joe's" || draft.Amount != 42.17 {
			t.Fatalf("unexpected draft %+v", draft)
		}
		if draft.Date != "2024-03-10" {
			t.Fatalf("date = %s", draft.Date)
		}
		if draft.Category != core.CategoryFood {
			t.Fatalf("category = %s", draft.Category)
		}
	})

	t.Run("unknown category snaps to Other", func(t *testing.T) {
		raw := `{"merchant":"m","date":"2024-03-10","amount":1,"category":"Groceries"}`
		draft, err := parseReceiptPayload(raw, today)
		if err != nil {
			t.Fatal(err)
		}
		if draft.Category != core.CategoryOther {
			t.Fatalf("category = %s, want Other", draft.Category)
		}
	})

	t.Run("missing date defaults to today", func(t *testing.T) {
		raw := `{"merchant":"m","amount":1,"category":"Health"}`
		draft, err := parseReceiptPayload(raw, today)
		if err != nil {
			t.Fatal(err)
		}
		if draft.Date != today {
			t.Fatalf("date = %s, want %s", draft.Date, today)
		}
	})

	t.Run("garbage is an error, not fabricated data", func(t *testing.T) {
		for _, raw := range []string{"", "sorry, I cannot read this image", "{truncated"} {
			if _, err := parseReceiptPayload(raw, today); !errors.Is(err, ErrBadModelOutput) {
				t.Fatalf("raw %q: expected ErrBadModelOutput, got %v", raw, err)
			}
		}
	})
}

func TestDisabledClientFailsClearly(t *testing.T) {
	c, err := New(context.Background(), Config{ReceiptModel: "r", AdviceModel: "a"})
	if err != nil {
		t.Fatalf("New without key must not fail: %v", err)
	}
	if c.Enabled() {
		t.Fatal("client without credentials must be disabled")
	}

	if _, err := c.GenerateAdvice(context.Background(), nil); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
	if _, err := c.ExtractReceipt(context.Background(), []byte{1}, "image/png"); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}

func TestInFlightGuards(t *testing.T) {
	c := &Client{receiptModel: "r", adviceModel: "a"}

	// Simulate an outstanding advice call; a second one must fail fast,
	// and a scan must still be admitted (separate guard) before hitting
	// the credentials check.
	if !c.adviceBusy.CompareAndSwap(false, true) {
		t.Fatal("setup failed")
	}
	if _, err := c.GenerateAdvice(context.Background(), nil); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if _, err := c.ExtractReceipt(context.Background(), nil, ""); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("scan should not share the advice guard, got %v", err)
	}
	c.adviceBusy.Store(false)

	// Guard is released after the failed (no credentials) call.
	if _, err := c.GenerateAdvice(context.Background(), nil); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("guard not released: %v", err)
	}
}

func TestReceiptPromptListsEveryCategory(t *testing.T) {
	p := receiptPrompt()
	for _, c := range core.Categories() {
		if !strings.Contains(p, string(c)) {
			t.Fatalf("prompt missing category %q", c)
		}
	}
}
