package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/advisor"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/core"
)

type adviceResponse struct {
	Paragraphs []string `json:"paragraphs"`
}

// receiptResponse is a ready-to-edit transaction draft: the scanned fields
// plus the defaults the form starts from.
type receiptResponse struct {
	Merchant string               `json:"merchant"`
	Date     string               `json:"date"`
	Amount   float64              `json:"amount"`
	Category core.Category        `json:"category"`
	Type     core.TransactionType `json:"type"`
	Payer    core.Payer           `json:"payer"`
	Split    core.SplitType       `json:"splitType"`
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	txs, err := s.store.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	text, err := s.advisor.GenerateAdvice(r.Context(), txs)
	if err != nil {
		s.writeAdvisorError(w, r, err, "advice")
		return
	}
	writeJSON(w, http.StatusOK, adviceResponse{Paragraphs: splitParagraphs(text)})
}

func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req scanReceiptRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	image, mimeType, err := parseReceiptImage(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	draft, err := s.advisor.ExtractReceipt(r.Context(), image, mimeType)
	if err != nil {
		s.writeAdvisorError(w, r, err, "receipt")
		return
	}

	writeJSON(w, http.StatusOK, receiptResponse{
		Merchant: draft.Merchant,
		Date:     draft.Date,
		Amount:   draft.Amount,
		Category: draft.Category,
		Type:     core.Expense,
		Payer:    core.PayerMe,
		Split:    core.SplitShared,
	})
}

func (s *Server) writeAdvisorError(w http.ResponseWriter, r *http.Request, err error, kind string) {
	switch {
	case errors.Is(err, advisor.ErrBusy):
		writeError(w, http.StatusConflict, "a "+kind+" request is already in progress")
	case errors.Is(err, advisor.ErrNoCredentials):
		writeError(w, http.StatusServiceUnavailable, advisor.UnavailableMessage)
	case errors.Is(err, advisor.ErrBadModelOutput):
		slog.ErrorContext(r.Context(), "Advisor returned unusable output", "error", err, "kind", kind)
		writeError(w, http.StatusBadGateway, advisor.UnavailableMessage)
	default:
		slog.ErrorContext(r.Context(), "Advisor request failed", "error", err, "kind", kind)
		writeError(w, http.StatusBadGateway, advisor.UnavailableMessage)
	}
}

// splitParagraphs breaks model output into display paragraphs, dropping
// blank lines.
func splitParagraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
