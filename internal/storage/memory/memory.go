// memory — хранилище в памяти процесса с той же семантикой, что и Redis:
// TTL новостей, множества-индексы; ID истёкших новостей остаются в индексе до RemoveNewsID.
// Используется в окружении local и в тестах сервисного слоя.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/storage"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e entry[T]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Storage — потокобезопасная реализация storage.Storage.
type Storage struct {
	mu  sync.RWMutex
	now func() time.Time

	news      map[string]entry[models.News]
	newsIDs   map[string]struct{}
	posts     map[string]models.Post
	published map[string]struct{}
	sources   map[string]models.Source
	keywords  map[string]struct{}
	settings  map[string]entry[string]
}

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		now:       time.Now,
		news:      make(map[string]entry[models.News]),
		newsIDs:   make(map[string]struct{}),
		posts:     make(map[string]models.Post),
		published: make(map[string]struct{}),
		sources:   make(map[string]models.Source),
		keywords:  make(map[string]struct{}),
		settings:  make(map[string]entry[string]),
	}
}

// WithClock подменяет источник времени (для проверки TTL в тестах).
func (s *Storage) WithClock(now func() time.Time) *Storage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

func (s *Storage) Ping(context.Context) error { return nil }
func (s *Storage) Close() error               { return nil }

func (s *Storage) NewsExists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.news[id]
	return ok && !e.expired(s.now()), nil
}

func (s *Storage) SaveNews(_ context.Context, news models.News, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry[models.News]{value: cloneNews(news)}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.news[news.ID] = e
	s.newsIDs[news.ID] = struct{}{}

	return nil
}

func (s *Storage) NewsByID(_ context.Context, id string) (*models.News, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.news[id]
	if !ok || e.expired(s.now()) {
		return nil, fmt.Errorf("storage.memory.NewsByID: %w", storage.ErrNotFound)
	}

	n := cloneNews(e.value)
	return &n, nil
}

// NewsIDs возвращает индекс в отсортированном виде, включая ID истёкших тел.
func (s *Storage) NewsIDs(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedKeys(s.newsIDs), nil
}

func (s *Storage) RemoveNewsID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.newsIDs, id)
	return nil
}

func (s *Storage) SavePost(_ context.Context, post models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts[post.ID] = post
	s.published[post.NewsID] = struct{}{}
	return nil
}

func (s *Storage) MarkPublished(_ context.Context, newsID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.published[newsID] = struct{}{}
	return nil
}

func (s *Storage) PostByID(_ context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("storage.memory.PostByID: %w", storage.ErrNotFound)
	}

	return &p, nil
}

func (s *Storage) PostIDs(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.posts))
	for id := range s.posts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids, nil
}

func (s *Storage) IsPublished(_ context.Context, newsID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.published[newsID]
	return ok, nil
}

func (s *Storage) SaveSource(_ context.Context, src models.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sources[src.ID] = src
	return nil
}

func (s *Storage) SourceByID(_ context.Context, id string) (*models.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src, ok := s.sources[id]
	if !ok {
		return nil, fmt.Errorf("storage.memory.SourceByID: %w", storage.ErrNotFound)
	}

	return &src, nil
}

func (s *Storage) SourceExists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sources[id]
	return ok, nil
}

func (s *Storage) ListSources(context.Context) ([]models.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Source, 0, len(s.sources))
	for _, src := range s.sources {
		out = append(out, src)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (s *Storage) DeleteSource(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sources[id]; !ok {
		return fmt.Errorf("storage.memory.DeleteSource: %w", storage.ErrNotFound)
	}
	delete(s.sources, id)

	return nil
}

func (s *Storage) AddKeyword(_ context.Context, keyword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keywords[keyword] = struct{}{}
	return nil
}

func (s *Storage) DeleteKeyword(_ context.Context, keyword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keywords[keyword]; !ok {
		return fmt.Errorf("storage.memory.DeleteKeyword: %w", storage.ErrNotFound)
	}
	delete(s.keywords, keyword)

	return nil
}

func (s *Storage) ListKeywords(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedKeys(s.keywords), nil
}

func (s *Storage) Setting(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.settings[key]
	if !ok || e.expired(s.now()) {
		return "", false, nil
	}

	return e.value, true, nil
}

func (s *Storage) SetSetting(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry[string]{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.settings[key] = e

	return nil
}

func (s *Storage) DeleteSetting(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.settings, key)
	return nil
}

func cloneNews(n models.News) models.News {
	n.Keywords = append([]string{}, n.Keywords...)
	return n
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

var _ storage.Storage = (*Storage)(nil)
