// Package auth implements the access gate: a fixed allow-list of identities
// checked against a verified bearer assertion. There is no session or
// refresh machinery; every request passes the single gate check.
package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken  = errors.New("missing bearer token")
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrNotAllowed    = errors.New("identity not on the allow-list")
	ErrMissingClaims = errors.New("token has no email claim")
)

// Gate verifies HS256 identity assertions and checks the email claim
// against a fixed allow-list. A gate constructed with no secret and no
// allow-list is disabled and lets everything through (local development).
type Gate struct {
	secret  []byte
	allowed map[string]struct{}
}

func NewGate(secret string, allowedEmails []string) *Gate {
	allowed := make(map[string]struct{}, len(allowedEmails))
	for _, e := range allowedEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			allowed[e] = struct{}{}
		}
	}
	return &Gate{secret: []byte(secret), allowed: allowed}
}

// Enabled reports whether the gate actually checks anything.
func (g *Gate) Enabled() bool {
	return len(g.secret) > 0 && len(g.allowed) > 0
}

// Verify parses the assertion and returns the admitted identity.
func (g *Gate) Verify(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", ErrMissingClaims
	}

	if _, ok := g.allowed[strings.ToLower(email)]; !ok {
		return "", ErrNotAllowed
	}
	return email, nil
}

// MintToken issues an assertion for the given identity. Used by ops
// tooling and tests; the production assertion normally comes from the
// login collaborator.
func (g *Gate) MintToken(email string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

// Middleware enforces the gate on the wrapped handler.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			denyJSON(w, http.StatusUnauthorized, "authorization header required")
			return
		}
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			denyJSON(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		email, err := g.Verify(tokenStr)
		if err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, ErrNotAllowed) {
				status = http.StatusForbidden
			}
			slog.DebugContext(r.Context(), "Gate rejected request", "error", err)
			denyJSON(w, status, "access denied")
			return
		}

		slog.DebugContext(r.Context(), "Gate admitted request", "email", email)
		next.ServeHTTP(w, r)
	})
}

func denyJSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
