// Package advisor is the boundary to the Gemini generative model: receipt
// extraction and spending advice. It is best-effort; nothing in
// the ledger or settlement path depends on it.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"google.golang.org/genai"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/core"
)

var (
	// ErrNoCredentials means no API key is configured; callers surface a
	// clear "unavailable" signal instead of crashing.
	ErrNoCredentials = errors.New("gemini api key not configured")
	// ErrBusy means a request of the same kind is already in flight.
	ErrBusy = errors.New("request already in flight")
	// ErrBadModelOutput means the model answered with something that could
	// not be decoded. Never papered over with fabricated data.
	ErrBadModelOutput = errors.New("unparsable model response")
)

// UnavailableMessage is the user-facing text shown when advice cannot be
// produced.
const UnavailableMessage = "Unable to generate advice right now. Please try again later."

// adviceSampleCap bounds how many recent transactions are sent to the
// model, to bound cost and latency.
const adviceSampleCap = 50

type Config struct {
	APIKey       string
	ReceiptModel string
	AdviceModel  string
}

// Client talks to Gemini. At most one advice request and one receipt scan
// may be outstanding at a time; a second call of the same kind fails fast
// with ErrBusy instead of stacking work behind a slow model call.
type Client struct {
	ai           *genai.Client
	receiptModel string
	adviceModel  string

	adviceBusy atomic.Bool
	scanBusy   atomic.Bool
}

// New builds the advisor. A missing API key yields a disabled client whose
// calls fail with ErrNoCredentials rather than an initialization error, so
// the rest of the system starts normally without AI features.
func New(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{
		receiptModel: cfg.ReceiptModel,
		adviceModel:  cfg.AdviceModel,
	}
	if cfg.APIKey == "" {
		slog.WarnContext(ctx, "Gemini API key missing, AI features disabled")
		return c, nil
	}

	ai, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	c.ai = ai
	return c, nil
}

// Enabled reports whether the client can reach the model at all.
func (c *Client) Enabled() bool {
	return c.ai != nil
}

// ExtractReceipt sends a receipt image to the model and decodes the
// merchant/date/amount/category it reports. The category is snapped to the
// closed set, an absent date defaults to today.
func (c *Client) ExtractReceipt(ctx context.Context, image []byte, mimeType string) (core.ReceiptDraft, error) {
	if !c.scanBusy.CompareAndSwap(false, true) {
		return core.ReceiptDraft{}, ErrBusy
	}
	defer c.scanBusy.Store(false)

	if c.ai == nil {
		return core.ReceiptDraft{}, ErrNoCredentials
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
				{Text: receiptPrompt()},
			},
		},
	}

	resp, err := c.ai.Models.GenerateContent(ctx, c.receiptModel, contents, nil)
	if err != nil {
		return core.ReceiptDraft{}, fmt.Errorf("generate content: %w", err)
	}

	draft, err := parseReceiptPayload(resp.Text(), time.Now().Format(core.DateLayout))
	if err != nil {
		slog.ErrorContext(ctx, "Receipt extraction produced unusable output",
			"error", err, "model", c.receiptModel)
		return core.ReceiptDraft{}, err
	}

	slog.InfoContext(ctx, "Receipt extracted",
		"merchant", draft.Merchant,
		"amount", draft.Amount,
		"category", draft.Category,
		"model", c.receiptModel)
	return draft, nil
}

// GenerateAdvice asks the model for spending advice over a bounded sample
// of the most recent transactions.
func (c *Client) GenerateAdvice(ctx context.Context, txs []core.Transaction) (string, error) {
	if !c.adviceBusy.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer c.adviceBusy.Store(false)

	if c.ai == nil {
		return "", ErrNoCredentials
	}

	if len(txs) > adviceSampleCap {
		txs = txs[:adviceSampleCap]
	}
	sample, err := json.Marshal(txs)
	if err != nil {
		return "", fmt.Errorf("marshal transaction sample: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: advicePrompt(string(sample))}},
		},
	}

	resp, err := c.ai.Models.GenerateContent(ctx, c.adviceModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrBadModelOutput
	}

	slog.InfoContext(ctx, "Advice generated",
		"sample_size", len(txs),
		"model", c.adviceModel,
		"chars", len(text))
	return text, nil
}

// receiptPayload mirrors the JSON shape the extraction prompt demands.
type receiptPayload struct {
	Merchant string  `json:"merchant"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

func parseReceiptPayload(raw, today string) (core.ReceiptDraft, error) {
	clean := cleanModelJSON(raw)
	if clean == "" {
		return core.ReceiptDraft{}, ErrBadModelOutput
	}

	var p receiptPayload
	if err := json.Unmarshal([]byte(clean), &p); err != nil {
		return core.ReceiptDraft{}, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
	}

	date := p.Date
	if _, err := time.Parse(core.DateLayout, date); err != nil {
		date = today
	}

	return core.ReceiptDraft{
		Merchant: p.Merchant,
		Date:     date,
		Amount:   p.Amount,
		Category: core.NormalizeCategory(p.Category),
	}, nil
}
