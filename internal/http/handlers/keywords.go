package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/newsbot/internal/errors"
)

type keywordRequest struct {
	Keyword string `json:"keyword"`
}

type keywordResponse struct {
	Keyword string `json:"keyword"`
	Status  string `json:"status"`
}

func (h *Handlers) ListKeywords(w http.ResponseWriter, r *http.Request) {
	kws, err := h.Service.ListKeywords(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if kws == nil {
		kws = []string{}
	}
	writeJSON(w, http.StatusOK, kws)
}

// AddKeyword принимает ?keyword= или тело {"keyword": "..."}.
func (h *Handlers) AddKeyword(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" && r.ContentLength != 0 {
		var req keywordRequest
		if err := decodeStrict(r, &req); err != nil {
			apierrors.BadRequest(w, r, "invalid json")
			return
		}
		keyword = req.Keyword
	}

	added, err := h.Service.AddKeyword(r.Context(), keyword)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, keywordResponse{Keyword: added, Status: "added"})
}

func (h *Handlers) DeleteKeyword(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteKeyword(r.Context(), chi.URLParam(r, "keyword")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}
