package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"workshop-registration-api/internal/auth"
	"workshop-registration-api/internal/middleware"
	"workshop-registration-api/internal/model"
	"workshop-registration-api/internal/store"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var p struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(p.Username) == "" || p.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password required")
		return
	}
	if len(p.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password too short")
		return
	}

	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Username:     p.Username,
		PasswordHash: hash,
	}
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, "username taken")
			return
		}
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": u.ID, "username": u.Username})
}

// Login accepts either a JSON body or the login page's form post. Success
// sets the HTTP-only token cookie; browsers are then redirected to the
// admin panel while API clients get the token back in the body.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var username, password string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var p struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		username, password = p.Username, p.Password
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form")
			return
		}
		username = r.PostFormValue("username")
		password = r.PostFormValue("password")
	}

	u, err := h.store.UserByUsername(r.Context(), username)
	if err != nil || !auth.CheckPassword(u.PasswordHash, password) {
		// identical outcome whether the username exists or not
		if middleware.WantsHTML(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tok, err := auth.MakeToken(u.ID, h.secret)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(auth.TokenLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if middleware.WantsHTML(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
