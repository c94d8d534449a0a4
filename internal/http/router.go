package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/newsbot/internal/http/handlers"
	"github.com/pribylovaa/newsbot/internal/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; пустой — роуты на корне.
	Metrics  middleware.Observer
}

// NewRouter собирает http.Handler админ-API.
func NewRouter(h *handlers.Handlers, opts Options) http.Handler {
	root := chi.NewRouter()

	// Внешний -> внутренний; RequestID до Logging, чтобы id попал в логгер.
	root.Use(
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Logging(opts.Logger),
		middleware.Instrument(opts.Metrics),
		middleware.Timeout(opts.Timeout),
	)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	r.Get("/health", h.Health)

	// news; статические пути раньше /news/{id}
	r.Get("/news", h.ListNews)
	r.Get("/news/scrape", h.ScrapePreview)
	r.Get("/news/scrape-task", h.TriggerScrape)
	r.Get("/news/publish", h.TriggerPublish)
	r.Get("/news/{id}", h.GetNewsByID)
	r.Post("/news/{id}/publish", h.PublishNews)
	r.Post("/news/{id}/generate", h.GeneratePost)

	// posts
	r.Get("/posts", h.ListPosts)
	r.Get("/posts/{id}", h.GetPostByID)

	// sources
	r.Get("/sources", h.ListSources)
	r.Post("/sources", h.SaveSource)
	r.Delete("/sources/{id}", h.DeleteSource)
	r.Post("/sources/{id}/toggle", h.ToggleSource)

	// keywords
	r.Get("/keywords", h.ListKeywords)
	r.Post("/keywords", h.AddKeyword)
	r.Delete("/keywords/{keyword}", h.DeleteKeyword)

	// settings / ai
	r.Get("/settings", h.GetSettings)
	r.Put("/settings/ai", h.SetAI)
	r.Put("/settings/chat", h.SetChat)
	r.Get("/ai/status", h.AIStatus)
	r.Post("/ai/chat", h.AIChat)
}
