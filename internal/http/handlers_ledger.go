package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/amqp"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/core"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	sum, err := s.getSummary(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary computation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleCategoryAggregates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	txs, err := s.store.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}
	writeJSON(w, http.StatusOK, core.CategoryTotals(txs))
}

// handleDailyAggregates serves the daily trend. Without parameters the
// window is the most recent ledger entries; ?since=YYYY-MM-DD switches to
// a calendar window.
func (s *Server) handleDailyAggregates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	since := strings.TrimSpace(r.URL.Query().Get("since"))
	if since != "" {
		if _, err := time.Parse(core.DateLayout, since); err != nil {
			writeError(w, http.StatusBadRequest, "invalid since date, expected YYYY-MM-DD")
			return
		}
	}

	txs, err := s.store.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	var totals []core.DailyTotal
	if since != "" {
		totals = core.DailyTotalsSince(txs, since)
	} else {
		totals = core.RecentDailyTotals(txs)
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := parseTransaction(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.Append(r.Context(), t)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction append failed", "error", err, "merchant", t.Merchant)
		writeError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}
	s.bumpRevision()
	s.publishChange(r, created.ID, amqp.OpCreated)

	slog.InfoContext(r.Context(), "Transaction created",
		"transaction_id", created.ID,
		"merchant", created.Merchant,
		"amount", created.Amount,
		"payer", created.Payer,
		"split", created.Split)
	writeJSON(w, http.StatusCreated, created)
}

// handleTransactionByID deletes a single entry. Unknown ids still get 204;
// delete is idempotent.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "DELETE")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	if err := s.store.Remove(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Transaction removal failed", "error", err, "transaction_id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	s.bumpRevision()
	s.publishChange(r, id, amqp.OpDeleted)

	slog.InfoContext(r.Context(), "Transaction deleted", "transaction_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// publishChange announces a mutation to the sync pipeline. Publish failures
// are logged, not surfaced: the mirror is best-effort.
func (s *Server) publishChange(r *http.Request, id, op string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerChange(r.Context(), id, op); err != nil {
		slog.ErrorContext(r.Context(), "Failed to publish ledger change",
			"error", err,
			"transaction_id", id,
			"op", op)
	}
}
