// handlers — REST-обработчики административного API.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/service"
)

// Service — операции сервисного слоя, доступные через API.
type Service interface {
	ListNews(ctx context.Context, limit int) ([]models.News, error)
	NewsByID(ctx context.Context, id string) (*models.News, error)
	PreviewScrape(ctx context.Context) []models.News
	PublishNews(ctx context.Context, id, channelID string) (*models.Post, error)
	GeneratePreview(ctx context.Context, id string) (string, error)

	ListPosts(ctx context.Context) ([]models.Post, error)
	PostByID(ctx context.Context, id string) (*models.Post, error)

	ListSources(ctx context.Context) ([]models.Source, error)
	SaveSource(ctx context.Context, src models.Source) (*models.Source, error)
	DeleteSource(ctx context.Context, id string) error
	ToggleSource(ctx context.Context, id string) (*models.Source, error)

	ListKeywords(ctx context.Context) ([]string, error)
	AddKeyword(ctx context.Context, keyword string) (string, error)
	DeleteKeyword(ctx context.Context, keyword string) error

	CurrentSettings(ctx context.Context) service.Settings
	SetAIEnabled(ctx context.Context, enabled bool) error
	SetChatEnabled(ctx context.Context, enabled bool) error
}

// Jobs — фоновые запуски задач.
type Jobs interface {
	TriggerFetch(ctx context.Context)
	TriggerPublish(ctx context.Context)
}

// Chat — генерация ответов ИИ вне Telegram.
type Chat interface {
	GenerateChatResponse(ctx context.Context, message string) string
	Available() bool
	ProviderName() string
}

// Handlers агрегирует зависимости обработчиков.
type Handlers struct {
	Service Service
	Jobs    Jobs
	Chat    Chat
}

func New(svc Service, jobs Jobs, chat Chat) *Handlers {
	return &Handlers{Service: svc, Jobs: jobs, Chat: chat}
}

// statusResponse — короткий ответ {"status": ...}.
type statusResponse struct {
	Status string `json:"status"`
}

// writeJSON — ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: неизвестные поля запрещены.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// Health — простой health-чек API.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}
