package service

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pribylovaa/newsbot/internal/config"
	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/storage"
)

// stubAdapter — адаптер с заранее заданным ответом и счётчиком вызовов.
type stubAdapter struct {
	items []models.RawItem
	err   error
	panic bool
	calls atomic.Int32
}

func (a *stubAdapter) Fetch(context.Context, models.Source) ([]models.RawItem, error) {
	a.calls.Add(1)
	if a.panic {
		panic("boom")
	}
	return a.items, a.err
}

// stubChannels — пакетный адаптер каналов, запоминающий запрошенные имена.
type stubChannels struct {
	mu    sync.Mutex
	got   [][]string
	items []models.RawItem
	err   error
}

func (c *stubChannels) FetchChannels(_ context.Context, usernames []string) ([]models.RawItem, error) {
	c.mu.Lock()
	c.got = append(c.got, append([]string(nil), usernames...))
	c.mu.Unlock()
	return c.items, c.err
}

func (c *stubChannels) calls() [][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]string(nil), c.got...)
}

// stubRegistry — реестр адаптеров по ID источника.
type stubRegistry struct {
	byID     map[string]Adapter
	channels ChannelAdapter
}

func (r stubRegistry) Adapter(src models.Source) (Adapter, bool) {
	a, ok := r.byID[src.ID]
	return a, ok
}

func (r stubRegistry) Channels() ChannelAdapter { return r.channels }

// testConfig — конфигурация сервиса для тестов.
func testConfig() config.Config {
	return config.Config{
		News: config.NewsConfig{
			TTL:         48 * time.Hour,
			MaxItems:    100,
			Placeholder: "Нет текста",
			Concurrency: 4,
		},
		AI: config.AIConfig{Agent: "off"},
	}
}

// newTestService — сервис с фиксированным генератором ID.
func newTestService(t *testing.T, st storage.Storage, deps Deps) *Service {
	t.Helper()

	deps.Storage = st
	if deps.Adapters == nil {
		deps.Adapters = stubRegistry{}
	}

	svc := New(testConfig(), deps)

	var seq atomic.Int64
	svc.newID = func() string {
		return "post-" + strconv.FormatInt(seq.Add(1), 10)
	}

	return svc
}

// mkNews — новость с ID, посчитанным по source/url.
func mkNews(source, url, title string) models.News {
	return models.News{
		ID:          NewsID(source, url),
		Title:       title,
		URL:         url,
		Summary:     "summary",
		Source:      source,
		PublishedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Keywords:    []string{},
	}
}
