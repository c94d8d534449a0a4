package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/pkg/log"
)

// Adapter описывает источник, который умеет вернуть сырые записи для одного Source.
//
// Требования к реализации:
//  1. уважать ctx и иметь конечный таймаут на сетевые вызовы;
//  2. не нормализовать записи — это делает сервис;
//  3. RawItem.Source заполнять, только если метка отличается от ID источника.
type Adapter interface {
	Fetch(ctx context.Context, src models.Source) ([]models.RawItem, error)
}

// ChannelAdapter опрашивает все каналы одним вызовом.
// При частичном отказе возвращает собранные записи вместе с ошибкой.
type ChannelAdapter interface {
	FetchChannels(ctx context.Context, usernames []string) ([]models.RawItem, error)
}

// AdapterRegistry сопоставляет источникам адаптеры; новые источники
// добавляются регистрацией, без изменения коллектора.
type AdapterRegistry interface {
	Adapter(src models.Source) (Adapter, bool)
	Channels() ChannelAdapter
}

// fetchResult — результат опроса одного источника.
type fetchResult struct {
	Source models.Source
	Items  []models.RawItem
	Err    error
}

// Collect опрашивает все включённые источники и возвращает нормализованные записи.
//
// Особенности:
//   - сайты и ленты опрашиваются параллельно (не больше cfg.News.Concurrency одновременно);
//   - каналы собираются одним пакетным вызовом;
//   - отказ адаптера логируется и не влияет на остальные;
//   - порядок: источники в порядке перечисления, затем каналы;
//   - дедупликации и фильтрации здесь нет.
func (s *Service) Collect(ctx context.Context) []models.News {
	const op = "service.collector.Collect"

	lg := log.From(ctx)

	sources, err := s.storage.ListSources(ctx)
	if err != nil {
		lg.Error("collect_list_sources_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil
	}

	var (
		sites    []models.Source
		channels []string
	)
	for _, src := range sources {
		if !src.Enabled {
			continue
		}

		if src.Type == models.SourceTypeChannel {
			if name := src.ChannelUsername(); name != "" {
				channels = append(channels, name)
			}
			continue
		}

		sites = append(sites, src)
	}

	now := s.now()
	placeholder := s.cfg.News.Placeholder

	var out []models.News
	var failed int

	for _, res := range s.fetchAll(ctx, sites) {
		if res.Err != nil {
			failed++
			s.metrics.AdapterFailed(res.Source.ID)
			lg.Warn("adapter_failed",
				slog.String("op", op),
				slog.String("source", res.Source.ID),
				slog.String("err", res.Err.Error()),
			)
			continue
		}

		for _, raw := range res.Items {
			if news, ok := normalize(res.Source.ID, raw, placeholder, now); ok {
				out = append(out, news)
			}
		}
	}

	if len(channels) > 0 {
		for _, raw := range s.fetchChannels(ctx, channels) {
			if news, ok := normalize("tg", raw, placeholder, now); ok {
				out = append(out, news)
			}
		}
	}

	s.metrics.ItemsCollected(len(out))
	lg.Info("collect_done",
		slog.String("op", op),
		slog.Int("sources", len(sites)),
		slog.Int("channels", len(channels)),
		slog.Int("failed", failed),
		slog.Int("items", len(out)),
	)

	return out
}

// fetchAll опрашивает источники с ограничением параллелизма семафором.
// Результаты возвращаются в порядке входного среза.
func (s *Service) fetchAll(ctx context.Context, sources []models.Source) []fetchResult {
	results := make([]fetchResult, len(sources))

	maxConc := s.cfg.News.Concurrency
	if maxConc <= 0 {
		maxConc = 1
	}
	sem := make(chan struct{}, maxConc)

	var wg sync.WaitGroup
	for i, src := range sources {
		results[i].Source = src

		adapter, ok := s.adapters.Adapter(src)
		if !ok {
			results[i].Err = fmt.Errorf("no adapter for source %q (type %q)", src.ID, src.Type)
			continue
		}

		sem <- struct{}{}
		wg.Add(1)

		go func() {
			defer func() {
				if rec := recover(); rec != nil {
					results[i].Err = fmt.Errorf("adapter panic: %v", rec)
				}
				<-sem
				wg.Done()
			}()

			results[i].Items, results[i].Err = adapter.Fetch(ctx, src)
		}()
	}
	wg.Wait()

	return results
}

func (s *Service) fetchChannels(ctx context.Context, usernames []string) (items []models.RawItem) {
	const op = "service.collector.fetchChannels"

	lg := log.From(ctx)

	adapter := s.adapters.Channels()
	if adapter == nil {
		lg.Warn("channels_adapter_missing", slog.String("op", op))
		return nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			s.metrics.AdapterFailed("channels")
			lg.Error("channels_adapter_panic", slog.String("op", op), slog.Any("reason", rec))
		}
	}()

	items, err := adapter.FetchChannels(ctx, usernames)
	if err != nil {
		s.metrics.AdapterFailed("channels")
		lg.Warn("channels_adapter_failed",
			slog.String("op", op),
			slog.Int("channels", len(usernames)),
			slog.Int("items", len(items)),
			slog.String("err", err.Error()),
		)
	}

	return items
}
