package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/pkg/log"
)

// Filter оставляет новости, у которых title + " " + summary (без учёта регистра)
// содержит хотя бы одно ключевое слово. Пустой набор слов — фильтр отключён.
// Порядок сохраняется, входной срез не меняется.
func Filter(items []models.News, keywords []string) []models.News {
	folded := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			folded = append(folded, kw)
		}
	}

	if len(folded) == 0 {
		return items
	}

	out := make([]models.News, 0, len(items))
	for _, item := range items {
		text := strings.ToLower(item.Title + " " + item.Summary)
		for _, kw := range folded {
			if strings.Contains(text, kw) {
				out = append(out, item)
				break
			}
		}
	}

	return out
}

// Keywords возвращает объединение ключевых слов из конфигурации и хранилища
// без повторов (сравнение без учёта регистра). Недоступное хранилище даёт
// только слова из конфигурации.
func (s *Service) Keywords(ctx context.Context) []string {
	const op = "service.filter.Keywords"

	stored, err := s.storage.ListKeywords(ctx)
	if err != nil {
		log.From(ctx).Warn("keywords_list_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}

	seen := make(map[string]struct{})
	var out []string
	for _, kw := range append(append([]string{}, s.cfg.News.Keywords...), stored...) {
		kw = strings.TrimSpace(kw)
		key := strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, kw)
	}

	return out
}
