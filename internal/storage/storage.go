// storage определяет контракты доступа к хранилищу newsbot.
//
// Раскладка ключей общая для всех реализаций:
//
//	news:<id>               JSON новости, с TTL
//	news:ids                множество ID активных новостей
//	posts:<id>, posts:all   посты и их индекс
//	published_news:ids      ID опубликованных новостей, без TTL
//	sources:<id>, sources:all
//	keywords:all
//	settings:<name>, user:<id>:chat_mode
package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/pribylovaa/newsbot/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable — хранилище недоступно (сеть, таймаут).
	ErrUnavailable = errors.New("storage unavailable")
)

// Ключи настроек.
const (
	SettingAIAgent     = "settings:ai_agent"
	SettingChatEnabled = "settings:ai_chat_enabled"
)

// ChatModeKey — ключ флага чат-режима пользователя.
func ChatModeKey(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10) + ":chat_mode"
}

// NewsStorage описывает операции над models.News.
type NewsStorage interface {
	// NewsExists сообщает, есть ли тело новости с данным ID.
	NewsExists(ctx context.Context, id string) (bool, error)
	// SaveNews записывает тело новости с TTL и добавляет ID в news:ids.
	SaveNews(ctx context.Context, news models.News, ttl time.Duration) error
	// NewsByID возвращает новость или ErrNotFound, если тело отсутствует (в т.ч. истекло).
	NewsByID(ctx context.Context, id string) (*models.News, error)
	// NewsIDs перечисляет news:ids. Порядок не гарантируется.
	NewsIDs(ctx context.Context) ([]string, error)
	// RemoveNewsID удаляет ID из news:ids (ленивая очистка истёкших тел).
	RemoveNewsID(ctx context.Context, id string) error
}

// PostStorage описывает операции над models.Post и множеством опубликованных новостей.
type PostStorage interface {
	// SavePost сохраняет пост, индексирует его и помечает новость опубликованной.
	SavePost(ctx context.Context, post models.Post) error
	PostByID(ctx context.Context, id string) (*models.Post, error)
	PostIDs(ctx context.Context) ([]string, error)
	// MarkPublished добавляет ID новости в published_news:ids.
	MarkPublished(ctx context.Context, newsID string) error
	// IsPublished — проверка членства в published_news:ids.
	IsPublished(ctx context.Context, newsID string) (bool, error)
}

// SourceStorage описывает операции над models.Source.
type SourceStorage interface {
	SaveSource(ctx context.Context, src models.Source) error
	SourceByID(ctx context.Context, id string) (*models.Source, error)
	SourceExists(ctx context.Context, id string) (bool, error)
	ListSources(ctx context.Context) ([]models.Source, error)
	// DeleteSource возвращает ErrNotFound, если источника не было.
	DeleteSource(ctx context.Context, id string) error
}

// KeywordStorage — ключевые слова фильтра, заданные в рантайме.
type KeywordStorage interface {
	AddKeyword(ctx context.Context, keyword string) error
	DeleteKeyword(ctx context.Context, keyword string) error
	ListKeywords(ctx context.Context) ([]string, error)
}

// SettingsStorage — строковые настройки и пользовательские флаги.
type SettingsStorage interface {
	// Setting возвращает значение и признак его наличия.
	Setting(ctx context.Context, key string) (string, bool, error)
	// SetSetting записывает значение; ttl <= 0 — без срока жизни.
	SetSetting(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteSetting(ctx context.Context, key string) error
}

// Storage задаёт полный контракт хранилища newsbot.
type Storage interface {
	NewsStorage
	PostStorage
	SourceStorage
	KeywordStorage
	SettingsStorage
	Ping(ctx context.Context) error
	Close() error
}
