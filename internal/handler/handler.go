package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"workshop-registration-api/internal/middleware"
	"workshop-registration-api/internal/store"
)

type Handler struct {
	store  store.Store
	secret string
	log    zerolog.Logger
}

func New(st store.Store, secret string, log zerolog.Logger) *Handler {
	return &Handler{store: st, secret: secret, log: log}
}

// Routes builds the full surface: public reads and registration, admin CRUD
// behind the gate, login/logout, and the HTML views.
func (h *Handler) Routes(gate *middleware.Gate, loginLimiter *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	// public API
	mux.HandleFunc("GET /api/workshops", h.ListWorkshops)
	mux.HandleFunc("GET /api/workshops/{id}", h.GetWorkshop)
	mux.HandleFunc("POST /api/workshops/{id}/register", h.RegisterAttendee)
	mux.HandleFunc("POST /api/signup", h.Signup)

	// admin API
	mux.Handle("POST /api/workshops", gate.AdminOnly(http.HandlerFunc(h.CreateWorkshop)))
	mux.Handle("PUT /api/workshops/{id}", gate.AdminOnly(http.HandlerFunc(h.UpdateWorkshop)))
	mux.Handle("DELETE /api/workshops/{id}", gate.AdminOnly(http.HandlerFunc(h.DeleteWorkshop)))

	// session
	mux.Handle("POST /login", loginLimiter.Limit(http.HandlerFunc(h.Login)))
	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("GET /logout", h.Logout)

	// HTML views
	mux.HandleFunc("GET /{$}", h.StudentPage)
	mux.Handle("GET /admin", gate.AdminOnly(http.HandlerFunc(h.AdminPage)))

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// internalError hides store failures behind a generic 500; details go to the
// log only.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error().Err(err).Str("path", r.URL.Path).Str("method", r.Method).Msg("store failure")
	writeError(w, http.StatusInternalServerError, "internal error")
}
