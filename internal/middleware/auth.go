package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"workshop-registration-api/internal/auth"
	"workshop-registration-api/internal/model"
	"workshop-registration-api/internal/store"
)

type ctxKey string

const UserIDKey ctxKey = "uid"

// TokenCookie is the HTTP-only cookie the login handler sets; the gate also
// accepts the same token via Authorization: Bearer.
const TokenCookie = "token"

// Reason enumerates why the gate denied a request.
type Reason string

const (
	MissingCredential Reason = "missing credential"
	Malformed         Reason = "invalid token"
	Expired           Reason = "token expired"
	Forbidden         Reason = "forbidden"
)

type AuthError struct {
	Reason Reason
}

func (e *AuthError) Error() string { return string(e.Reason) }

// Gate guards admin-only routes. It holds no per-request state; the token
// is the entire session.
type Gate struct {
	store  store.Store
	secret string
}

func NewGate(st store.Store, secret string) *Gate {
	return &Gate{store: st, secret: secret}
}

func extractToken(r *http.Request) string {
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// Authenticate runs extract → verify → resolve and returns either the admin
// user or a single enumerated denial. A valid token bound to a deleted or
// non-admin user is Forbidden, not an internal error.
func (g *Gate) Authenticate(r *http.Request) (*model.User, *AuthError) {
	raw := extractToken(r)
	if raw == "" {
		return nil, &AuthError{Reason: MissingCredential}
	}

	claims, err := auth.ParseToken(raw, g.secret)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, &AuthError{Reason: Expired}
		}
		return nil, &AuthError{Reason: Malformed}
	}

	u, err := g.store.UserByID(r.Context(), claims.UserID)
	if err != nil || !u.IsAdmin {
		return nil, &AuthError{Reason: Forbidden}
	}
	return u, nil
}

// AdminOnly wraps a handler behind the gate. Browser requests are redirected
// to the login page; API clients get a 401 JSON body naming the reason.
func (g *Gate) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, denied := g.Authenticate(r)
		if denied != nil {
			if WantsHTML(r) {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": denied.Error()})
			return
		}
		ctx := context.WithValue(r.Context(), UserIDKey, u.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WantsHTML reports whether the client's Accept header prefers a browser
// page over JSON. API clients either ask for application/json or send no
// Accept header at all.
func WantsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	html := strings.Index(accept, "text/html")
	if html < 0 {
		return false
	}
	j := strings.Index(accept, "application/json")
	return j < 0 || html < j
}
