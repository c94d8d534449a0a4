package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/newsbot/internal/errors"
	"github.com/pribylovaa/newsbot/internal/models"
)

// sourceRequest — тело POST /sources; enabled по умолчанию true.
type sourceRequest struct {
	ID      string            `json:"id"`
	Type    models.SourceType `json:"type"`
	Name    string            `json:"name"`
	URL     string            `json:"url"`
	Enabled *bool             `json:"enabled"`
}

func (req sourceRequest) toModel() models.Source {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	return models.Source{ID: req.ID, Type: req.Type, Name: req.Name, URL: req.URL, Enabled: enabled}
}

func (h *Handlers) ListSources(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListSources(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if list == nil {
		list = []models.Source{}
	}
	writeJSON(w, http.StatusOK, list)
}

// SaveSource создаёт или заменяет источник (upsert по id).
func (h *Handlers) SaveSource(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.BadRequest(w, r, "invalid json")
		return
	}

	saved, err := h.Service.SaveSource(r.Context(), req.toModel())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

func (h *Handlers) DeleteSource(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteSource(r.Context(), chi.URLParam(r, "id")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}

func (h *Handlers) ToggleSource(w http.ResponseWriter, r *http.Request) {
	src, err := h.Service.ToggleSource(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, src)
}
