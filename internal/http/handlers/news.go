package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	apierrors "github.com/pribylovaa/newsbot/internal/errors"
	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/pkg/log"
)

// taskResponse — ответ на постановку задачи в фон.
type taskResponse struct {
	Status string `json:"status"`
	TaskID string `json:"task_id"`
}

type publishRequest struct {
	ChannelID string `json:"channel_id"`
}

type generateResponse struct {
	NewsID        string `json:"news_id"`
	GeneratedText string `json:"generated_text"`
}

func (h *Handlers) ListNews(w http.ResponseWriter, r *http.Request) {
	var limit int
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			apierrors.BadRequest(w, r, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	items, err := h.Service.ListNews(r.Context(), limit)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if items == nil {
		items = []models.News{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) GetNewsByID(w http.ResponseWriter, r *http.Request) {
	news, err := h.Service.NewsByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, news)
}

// ScrapePreview собирает и фильтрует новости без сохранения.
func (h *Handlers) ScrapePreview(w http.ResponseWriter, r *http.Request) {
	items := h.Service.PreviewScrape(r.Context())
	if items == nil {
		items = []models.News{}
	}

	writeJSON(w, http.StatusOK, items)
}

// TriggerScrape ставит задачу сбора в фон.
func (h *Handlers) TriggerScrape(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	h.Jobs.TriggerFetch(log.With(r.Context(), slog.String("task_id", id)))

	writeJSON(w, http.StatusAccepted, taskResponse{Status: "Task queued", TaskID: id})
}

// TriggerPublish ставит задачу публикации в фон.
func (h *Handlers) TriggerPublish(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	h.Jobs.TriggerPublish(log.With(r.Context(), slog.String("task_id", id)))

	writeJSON(w, http.StatusAccepted, taskResponse{Status: "Task queued", TaskID: id})
}

// PublishNews публикует новость сразу. Тело {"channel_id"} необязательно.
func (h *Handlers) PublishNews(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := decodeStrict(r, &req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.BadRequest(w, r, "invalid json")
		return
	}

	post, err := h.Service.PublishNews(r.Context(), chi.URLParam(r, "id"), req.ChannelID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// GeneratePost генерирует текст поста без публикации.
func (h *Handlers) GeneratePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	text, err := h.Service.GeneratePreview(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{NewsID: id, GeneratedText: text})
}
