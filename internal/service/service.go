// service содержит бизнес-логику newsbot: сбор и дедупликацию новостей,
// фильтр по ключевым словам, задачи сбора/публикации и административные операции.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/newsbot/internal/config"
	"github.com/pribylovaa/newsbot/internal/metrics"
	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/storage"
)

var (
	// ErrNotFound — сущность отсутствует.
	// Транспорт: 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument — некорректные входные аргументы.
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDelivery — публикатор не смог доставить сообщение.
	// Транспорт: 502.
	ErrDelivery = errors.New("delivery failed")
	// ErrAlreadyPublished — по новости уже создан пост; повторная публикация запрещена.
	// Транспорт: 409.
	ErrAlreadyPublished = errors.New("already published")
)

// Generator — генерация текста поста и ответов чата.
// Реализация никогда не возвращает пустой пост: при недоступности провайдера
// используется шаблон из полей новости.
type Generator interface {
	GeneratePost(ctx context.Context, news models.News) string
}

// Publisher — доставка поста в канал.
// channelID == "" означает канал из конфигурации.
// Любая ошибка считается ошибкой доставки (ErrDelivery).
type Publisher interface {
	Publish(ctx context.Context, text, sourceURL, channelID string) (string, error)
}

// Deps — зависимости Service.
type Deps struct {
	Storage   storage.Storage
	Adapters  AdapterRegistry
	Generator Generator
	Publisher Publisher
	Metrics   *metrics.Metrics
}

// Service — описывает бизнес-логику newsbot.
type Service struct {
	storage   storage.Storage
	adapters  AdapterRegistry
	generator Generator
	publisher Publisher
	metrics   *metrics.Metrics
	cfg       config.Config

	now   func() time.Time
	newID func() string
}

// New создает новый экземпляр Service.
func New(cfg config.Config, deps Deps) *Service {
	return &Service{
		storage:   deps.Storage,
		adapters:  deps.Adapters,
		generator: deps.Generator,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.NewString() },
	}
}
