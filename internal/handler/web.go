package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"workshop-registration-api/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.Error().Err(err).Str("template", name).Msg("render failure")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// StudentPage lists workshops with a registration form per workshop.
func (h *Handler) StudentPage(w http.ResponseWriter, r *http.Request) {
	ws, err := h.store.ListWorkshops(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.render(w, "index.html", map[string]any{"Workshops": ws})
}

type adminRow struct {
	Workshop  model.Workshop
	Attendees []model.Attendee
}

// AdminPage shows every workshop with its registered attendees. The gate in
// front of this route already resolved an admin identity.
func (h *Handler) AdminPage(w http.ResponseWriter, r *http.Request) {
	ws, err := h.store.ListWorkshops(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	rows := make([]adminRow, 0, len(ws))
	for _, wk := range ws {
		as, err := h.store.ListAttendees(r.Context(), wk.ID)
		if err != nil {
			h.internalError(w, r, err)
			return
		}
		rows = append(rows, adminRow{Workshop: wk, Attendees: as})
	}
	h.render(w, "admin.html", map[string]any{"Rows": rows})
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", nil)
}
