package service

import (
	"context"
	"log/slog"

	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/pkg/log"
)

// AdmitResult — исход прохождения новости через шлюз дедупликации.
type AdmitResult string

const (
	// Stored — новость записана с TTL и добавлена в news:ids.
	Stored AdmitResult = "stored"
	// AlreadyStored — активная запись с тем же ID уже есть.
	AlreadyStored AdmitResult = "already_stored"
	// AlreadyPublished — ID есть в published_news:ids; повторно не сохраняется.
	AlreadyPublished AdmitResult = "already_published"
	// AdmitFailed — хранилище недоступно; запись не выполнена.
	AdmitFailed AdmitResult = "failed"
)

// Admit пропускает новость через шлюз: проверка существования →
// проверка публикации → запись. Порядок не даёт «воскресить» уже отправленную
// новость, даже если её запись истекла и она собрана снова.
// Ошибки хранилища не пробрасываются: результат AdmitFailed и запись в лог.
func (s *Service) Admit(ctx context.Context, news models.News) AdmitResult {
	const op = "service.gate.Admit"

	res := s.admit(ctx, news)
	s.metrics.ItemAdmitted(string(res))

	if res != Stored {
		log.From(ctx).Debug("news_not_admitted",
			slog.String("op", op),
			slog.String("news_id", news.ID),
			slog.String("result", string(res)),
		)
	}

	return res
}

func (s *Service) admit(ctx context.Context, news models.News) AdmitResult {
	const op = "service.gate.admit"

	lg := log.From(ctx)

	exists, err := s.storage.NewsExists(ctx, news.ID)
	if err != nil {
		lg.Error("gate_exists_failed", slog.String("op", op), slog.String("err", err.Error()))
		return AdmitFailed
	}
	if exists {
		return AlreadyStored
	}

	published, err := s.storage.IsPublished(ctx, news.ID)
	if err != nil {
		lg.Error("gate_published_failed", slog.String("op", op), slog.String("err", err.Error()))
		return AdmitFailed
	}
	if published {
		return AlreadyPublished
	}

	if err := s.storage.SaveNews(ctx, news, s.cfg.News.TTL); err != nil {
		lg.Error("gate_save_failed",
			slog.String("op", op),
			slog.String("news_id", news.ID),
			slog.String("err", err.Error()),
		)
		return AdmitFailed
	}

	return Stored
}
