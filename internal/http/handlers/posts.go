package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/newsbot/internal/errors"
	"github.com/pribylovaa/newsbot/internal/models"
)

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Service.ListPosts(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *Handlers) GetPostByID(w http.ResponseWriter, r *http.Request) {
	post, err := h.Service.PostByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}
