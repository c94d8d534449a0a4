package handlers

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/pribylovaa/newsbot/internal/errors"
)

type toggleRequest struct {
	Enabled *bool `json:"enabled"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type aiStatusResponse struct {
	Provider  string `json:"provider"`
	Available bool   `json:"available"`
}

func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.CurrentSettings(r.Context()))
}

// SetAI включает/выключает генерацию постов: {"enabled": bool}.
func (h *Handlers) SetAI(w http.ResponseWriter, r *http.Request) {
	h.setToggle(w, r, h.Service.SetAIEnabled)
}

// SetChat включает/выключает чат с ИИ: {"enabled": bool}.
func (h *Handlers) SetChat(w http.ResponseWriter, r *http.Request) {
	h.setToggle(w, r, h.Service.SetChatEnabled)
}

func (h *Handlers) setToggle(w http.ResponseWriter, r *http.Request, set func(ctx context.Context, enabled bool) error) {
	var req toggleRequest
	if err := decodeStrict(r, &req); err != nil || req.Enabled == nil {
		apierrors.BadRequest(w, r, `body must be {"enabled": true|false}`)
		return
	}

	if err := set(r.Context(), *req.Enabled); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.Service.CurrentSettings(r.Context()))
}

// AIStatus сообщает провайдера и наличие ключа.
func (h *Handlers) AIStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, aiStatusResponse{Provider: h.Chat.ProviderName(), Available: h.Chat.Available()})
}

// AIChat — разовый вопрос к ИИ. Переключатель генерации постов не учитывается.
func (h *Handlers) AIChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeStrict(r, &req); err != nil || strings.TrimSpace(req.Message) == "" {
		apierrors.BadRequest(w, r, `body must be {"message": "..."}`)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: h.Chat.GenerateChatResponse(r.Context(), req.Message)})
}
