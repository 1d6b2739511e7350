// Package http exposes the ledger over a JSON API: the transaction log,
// the derived settlement summary and aggregates, and the AI advisory
// endpoints.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/auth"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/cache"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/core"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/middleware/ratelimit"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/middleware/security"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/middleware/trace"
	"github.com/giannigrespan/FInance-tracker-Gemini/internal/store"
)

// Advisor is the slice of the Gemini client the API needs.
type Advisor interface {
	Enabled() bool
	ExtractReceipt(ctx context.Context, image []byte, mimeType string) (core.ReceiptDraft, error)
	GenerateAdvice(ctx context.Context, txs []core.Transaction) (string, error)
}

// EventPublisher announces ledger mutations to the sync pipeline. A nil
// publisher means sync is not configured and mutations stay local.
type EventPublisher interface {
	PublishLedgerChange(ctx context.Context, transactionID, op string) error
}

type Server struct {
	http.Server

	store     store.Store
	advisor   Advisor
	publisher EventPublisher

	tracer  *trace.Middleware
	limiter *ratelimit.Limiter

	// revision counts mutations; derived-view cache keys include it so a
	// write invalidates every cached view at once.
	revision     atomic.Uint64
	summaryCache *cache.LRUCache[core.FinancialSummary]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
// advisor and publisher may be nil-valued implementations; gate may be
// disabled.
func NewServer(addr string, st store.Store, adv Advisor, gate *auth.Gate, pub EventPublisher) *Server {
	mux := http.NewServeMux()

	s := &Server{
		store:            st,
		advisor:          adv,
		publisher:        pub,
		tracer:           trace.NewMiddleware(),
		limiter:          ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		summaryCache:     cache.NewLRU[core.FinancialSummary](16, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	api := http.NewServeMux()
	api.HandleFunc("/api/summary", s.handleSummary)
	api.HandleFunc("/api/aggregates/categories", s.handleCategoryAggregates)
	api.HandleFunc("/api/aggregates/daily", s.handleDailyAggregates)
	api.HandleFunc("/api/transactions", s.handleTransactions)
	api.HandleFunc("/api/transactions/", s.handleTransactionByID)
	api.HandleFunc("/api/advice", s.handleAdvice)
	api.HandleFunc("/api/receipt", s.handleReceipt)
	mux.Handle("/api/", gate.Middleware(api))

	handler := s.tracer.Middleware(
		security.Headers(security.DefaultHeadersConfig(),
			s.withRateLimit(mux)))

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go s.cacheCleanupLoop()
	return s
}

// bumpRevision invalidates all cached derived views.
func (s *Server) bumpRevision() {
	s.revision.Add(1)
}

func (s *Server) summaryKey() string {
	return strconv.FormatUint(s.revision.Load(), 10)
}

// getSummary returns the settlement summary for the current ledger
// snapshot, cached per revision.
func (s *Server) getSummary(ctx context.Context) (core.FinancialSummary, error) {
	key := s.summaryKey()
	if sum, ok := s.summaryCache.Get(key); ok {
		slog.DebugContext(ctx, "Summary cache hit", "revision", key)
		return sum, nil
	}

	txs, err := s.store.List(ctx)
	if err != nil {
		return core.FinancialSummary{}, fmt.Errorf("list transactions: %w", err)
	}
	sum := core.ComputeSummary(txs)
	s.summaryCache.Set(key, sum)
	return sum, nil
}

// withRateLimit throttles mutating requests per client IP.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && !s.limiter.Allow(trace.ClientIP(r)) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				"client_ip", trace.ClientIP(r),
				"method", r.Method,
				"path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) cacheCleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.summaryCache.CleanExpired(); n > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", n)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops background goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.List(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleMetrics reports plain-text operational counters.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "http_requests_total %d\n", s.tracer.TotalRequests())
	fmt.Fprintf(w, "ratelimit_active_clients %d\n", s.limiter.ActiveClients())
	fmt.Fprintf(w, "summary_cache_entries %d\n", s.summaryCache.Size())
	fmt.Fprintf(w, "ledger_revision %d\n", s.revision.Load())
}
