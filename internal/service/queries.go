package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/pkg/log"
	"github.com/pribylovaa/newsbot/internal/storage"
)

// ListNews возвращает активные новости в порядке перечисления хранилища.
//
// Правила нормализации:
//   - limit <= 0 или limit > cfg.News.MaxItems -> cfg.News.MaxItems.
//
// ID, тела которых истекли, удаляются из индекса по ходу обхода.
func (s *Service) ListNews(ctx context.Context, limit int) ([]models.News, error) {
	const op = "service.queries.ListNews"

	if maxItems := s.cfg.News.MaxItems; limit <= 0 || (maxItems > 0 && limit > maxItems) {
		limit = maxItems
	}

	ids, err := s.storage.NewsIDs(ctx)
	if err != nil {
		log.From(ctx).Error("list_news_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.News, 0, min(limit, len(ids)))
	for _, id := range ids {
		if len(out) >= limit {
			break
		}
		if news, ok := s.activeNews(ctx, id); ok {
			out = append(out, *news)
		}
	}

	return out, nil
}

// NewsByID возвращает новость по идентификатору.
//
// Ошибки:
//   - ErrNotFound — если запись отсутствует (маппинг storage.ErrNotFound);
//   - прочие ошибки стораджа — обёрнутые и прокинуты наверх.
func (s *Service) NewsByID(ctx context.Context, id string) (*models.News, error) {
	return s.newsByID(ctx, "service.queries.NewsByID", id)
}

func (s *Service) newsByID(ctx context.Context, op, id string) (*models.News, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%s: empty id: %w", op, ErrInvalidArgument)
	}

	news, err := s.storage.NewsByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.From(ctx).Warn("news_by_id_not_found",
				slog.String("op", op),
				slog.String("id", id),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return news, nil
}

// ListPosts возвращает посты, новые сначала.
func (s *Service) ListPosts(ctx context.Context) ([]models.Post, error) {
	const op = "service.queries.ListPosts"

	ids, err := s.storage.PostIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		post, err := s.storage.PostByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, *post)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].PublishedAt, out[j].PublishedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	return out, nil
}

// PostByID возвращает пост по идентификатору (ErrNotFound, если его нет).
func (s *Service) PostByID(ctx context.Context, id string) (*models.Post, error) {
	const op = "service.queries.PostByID"

	post, err := s.storage.PostByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

// ListSources возвращает все настроенные источники.
func (s *Service) ListSources(ctx context.Context) ([]models.Source, error) {
	const op = "service.queries.ListSources"

	list, err := s.storage.ListSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

// SaveSource создаёт или заменяет источник.
// ID и URL обязательны; для каналов URL может быть @username.
func (s *Service) SaveSource(ctx context.Context, src models.Source) (*models.Source, error) {
	const op = "service.queries.SaveSource"

	src.ID = strings.TrimSpace(src.ID)
	src.URL = strings.TrimSpace(src.URL)
	src.Name = strings.TrimSpace(src.Name)

	if src.ID == "" || src.URL == "" {
		return nil, fmt.Errorf("%s: id and url are required: %w", op, ErrInvalidArgument)
	}

	t, err := models.ParseSourceType(string(src.Type))
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, ErrInvalidArgument)
	}
	src.Type = t

	if t != models.SourceTypeChannel {
		if u, err := url.Parse(src.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("%s: url must be absolute http(s): %w", op, ErrInvalidArgument)
		}
	} else if src.ChannelUsername() == "" {
		return nil, fmt.Errorf("%s: channel username is empty: %w", op, ErrInvalidArgument)
	}

	if src.Name == "" {
		src.Name = src.ID
	}

	if err := s.storage.SaveSource(ctx, src); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("source_saved",
		slog.String("op", op),
		slog.String("source", src.ID),
		slog.String("type", string(src.Type)),
		slog.Bool("enabled", src.Enabled),
	)

	return &src, nil
}

// DeleteSource удаляет источник (ErrNotFound, если его нет).
func (s *Service) DeleteSource(ctx context.Context, id string) error {
	const op = "service.queries.DeleteSource"

	if err := s.storage.DeleteSource(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SetSourceEnabled включает или выключает источник.
func (s *Service) SetSourceEnabled(ctx context.Context, id string, enabled bool) (*models.Source, error) {
	const op = "service.queries.SetSourceEnabled"

	src, err := s.storage.SourceByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	src.Enabled = enabled
	if err := s.storage.SaveSource(ctx, *src); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return src, nil
}

// ToggleSource инвертирует флаг Enabled источника.
func (s *Service) ToggleSource(ctx context.Context, id string) (*models.Source, error) {
	const op = "service.queries.ToggleSource"

	src, err := s.storage.SourceByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.SetSourceEnabled(ctx, id, !src.Enabled)
}

// ListKeywords возвращает ключевые слова, заданные через хранилище.
func (s *Service) ListKeywords(ctx context.Context) ([]string, error) {
	const op = "service.queries.ListKeywords"

	kws, err := s.storage.ListKeywords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return kws, nil
}

// AddKeyword добавляет ключевое слово фильтра.
func (s *Service) AddKeyword(ctx context.Context, keyword string) (string, error) {
	const op = "service.queries.AddKeyword"

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return "", fmt.Errorf("%s: empty keyword: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.AddKeyword(ctx, keyword); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return keyword, nil
}

// DeleteKeyword удаляет ключевое слово (ErrNotFound, если его нет).
func (s *Service) DeleteKeyword(ctx context.Context, keyword string) error {
	const op = "service.queries.DeleteKeyword"

	if err := s.storage.DeleteKeyword(ctx, keyword); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// PreviewScrape собирает и фильтрует новости, ничего не сохраняя.
func (s *Service) PreviewScrape(ctx context.Context) []models.News {
	return Filter(s.Collect(ctx), s.Keywords(ctx))
}
