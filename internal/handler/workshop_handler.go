package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"workshop-registration-api/internal/model"
	"workshop-registration-api/internal/store"
)

func (h *Handler) ListWorkshops(w http.ResponseWriter, r *http.Request) {
	ws, err := h.store.ListWorkshops(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if ws == nil {
		ws = []model.Workshop{}
	}
	writeJSON(w, http.StatusOK, ws)
}

func (h *Handler) GetWorkshop(w http.ResponseWriter, r *http.Request) {
	ws, err := h.store.GetWorkshop(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "workshop not found")
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

type workshopPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Category    string `json:"category"`
}

func (h *Handler) CreateWorkshop(w http.ResponseWriter, r *http.Request) {
	var p workshopPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}
	if strings.TrimSpace(p.Location) == "" {
		writeError(w, http.StatusBadRequest, "location required")
		return
	}

	ws := &model.Workshop{
		ID:          uuid.New().String(),
		Name:        p.Name,
		Description: p.Description,
		Date:        p.Date,
		Time:        p.Time,
		Location:    p.Location,
		Category:    p.Category,
	}
	if err := h.store.CreateWorkshop(r.Context(), ws); err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ws)
}

// UpdateWorkshop replaces only the fields present in the payload; absent
// fields keep their stored values.
func (h *Handler) UpdateWorkshop(w http.ResponseWriter, r *http.Request) {
	var p struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Date        *string `json:"date"`
		Time        *string `json:"time"`
		Location    *string `json:"location"`
		Category    *string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws, err := h.store.GetWorkshop(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "workshop not found")
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	if p.Name != nil {
		ws.Name = *p.Name
	}
	if p.Description != nil {
		ws.Description = *p.Description
	}
	if p.Date != nil {
		ws.Date = *p.Date
	}
	if p.Time != nil {
		ws.Time = *p.Time
	}
	if p.Location != nil {
		ws.Location = *p.Location
	}
	if p.Category != nil {
		ws.Category = *p.Category
	}
	if strings.TrimSpace(ws.Name) == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}
	if strings.TrimSpace(ws.Location) == "" {
		writeError(w, http.StatusBadRequest, "location required")
		return
	}

	if err := h.store.UpdateWorkshop(r.Context(), ws); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "workshop not found")
			return
		}
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (h *Handler) DeleteWorkshop(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteWorkshop(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "workshop not found")
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "workshop deleted"})
}

func (h *Handler) RegisterAttendee(w http.ResponseWriter, r *http.Request) {
	var p struct {
		StudentName string `json:"student_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(p.StudentName) == "" {
		writeError(w, http.StatusBadRequest, "student_name required")
		return
	}

	id := r.PathValue("id")
	if _, err := h.store.GetWorkshop(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "workshop not found")
			return
		}
		h.internalError(w, r, err)
		return
	}

	a := &model.Attendee{
		ID:          uuid.New().String(),
		StudentName: p.StudentName,
		WorkshopID:  id,
	}
	if err := h.store.CreateAttendee(r.Context(), a); err != nil {
		// the workshop can disappear between the check and the insert
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "workshop not found")
			return
		}
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}
