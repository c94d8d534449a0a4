// sources содержит адаптеры источников новостей: сайты (goquery),
// публичные Telegram-каналы (веб-превью t.me/s) и RSS/Atom-ленты (gofeed),
// а также реестр, по которому коллектор находит адаптер для источника.
package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/service"
)

// DefaultTimeout — таймаут HTTP-клиента, если клиент не передан.
const DefaultTimeout = 10 * time.Second

// defaultHeaders — заголовки обычного браузера: часть сайтов отдаёт заглушку без них.
var defaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language": "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7",
}

// Registry реализует service.AdapterRegistry.
// Адаптер ищется сначала по ID источника, затем по его типу.
type Registry struct {
	mu       sync.RWMutex
	byID     map[string]service.Adapter
	byType   map[models.SourceType]service.Adapter
	channels service.ChannelAdapter
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]service.Adapter),
		byType: make(map[models.SourceType]service.Adapter),
	}
}

// Register привязывает адаптер к ID источника.
func (r *Registry) Register(id string, a service.Adapter) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id] = a
	return r
}

// RegisterType задаёт адаптер по умолчанию для типа источника.
func (r *Registry) RegisterType(t models.SourceType, a service.Adapter) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType[t] = a
	return r
}

// SetChannels задаёт пакетный адаптер каналов.
func (r *Registry) SetChannels(c service.ChannelAdapter) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels = c
	return r
}

func (r *Registry) Adapter(src models.Source) (service.Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.byID[src.ID]; ok {
		return a, true
	}

	a, ok := r.byType[src.Type]
	return a, ok
}

func (r *Registry) Channels() service.ChannelAdapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.channels
}

// Default собирает реестр со всеми встроенными адаптерами.
func Default(client *http.Client) *Registry {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	return NewRegistry().
		Register("habr", NewHabr(client, HabrNewsURL)).
		Register("vc", NewVC(client, VCNewsURL)).
		Register("ixbt", NewIXBT(client, IXBTNewsURL)).
		Register("tproger", NewGeneric(client, TprogerURL, 50)).
		Register("3dnews", NewGeneric(client, ThreeDNewsURL, 50)).
		RegisterType(models.SourceTypeSite, NewGeneric(client, "", 50)).
		RegisterType(models.SourceTypeRSS, NewFeed(client, 20)).
		SetChannels(NewChannels(client, ChannelsBaseURL, 5))
}

// fetchDocument загружает HTML-страницу и разбирает её goquery.
func fetchDocument(ctx context.Context, client *http.Client, pageURL string) (*goquery.Document, error) {
	resp, err := get(ctx, client, pageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return doc, nil
}

// get выполняет GET с браузерными заголовками; не-200 считается ошибкой.
func get(ctx context.Context, client *http.Client, pageURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new_request: %w", err)
	}

	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("status=%d", resp.StatusCode)
	}

	return resp, nil
}
