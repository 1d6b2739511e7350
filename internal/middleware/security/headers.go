// Package security applies response headers appropriate for a JSON API
// fronted by a browser client.
package security

import "net/http"

// HeadersConfig holds security headers configuration.
type HeadersConfig struct {
	CSP                 string
	XFrameOptions       string
	XContentTypeOptions string
	ReferrerPolicy      string
	CrossOriginOpener   string
	CrossOriginResource string
}

// DefaultHeadersConfig returns secure defaults.
func DefaultHeadersConfig() HeadersConfig {
	return HeadersConfig{
		CSP:                 "default-src 'none'; frame-ancestors 'none'; base-uri 'none'",
		XFrameOptions:       "DENY",
		XContentTypeOptions: "nosniff",
		ReferrerPolicy:      "strict-origin-when-cross-origin",
		CrossOriginOpener:   "same-origin",
		CrossOriginResource: "same-origin",
	}
}

// Headers wraps a handler and stamps the configured headers on every
// response.
func Headers(cfg HeadersConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		if cfg.CSP != "" {
			h.Set("Content-Security-Policy", cfg.CSP)
		}
		if cfg.XFrameOptions != "" {
			h.Set("X-Frame-Options", cfg.XFrameOptions)
		}
		if cfg.XContentTypeOptions != "" {
			h.Set("X-Content-Type-Options", cfg.XContentTypeOptions)
		}
		if cfg.ReferrerPolicy != "" {
			h.Set("Referrer-Policy", cfg.ReferrerPolicy)
		}
		if cfg.CrossOriginOpener != "" {
			h.Set("Cross-Origin-Opener-Policy", cfg.CrossOriginOpener)
		}
		if cfg.CrossOriginResource != "" {
			h.Set("Cross-Origin-Resource-Policy", cfg.CrossOriginResource)
		}
		next.ServeHTTP(w, r)
	})
}
