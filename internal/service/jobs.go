package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/pkg/log"
	"github.com/pribylovaa/newsbot/internal/storage"
)

// FetchResult — итог задачи сбора.
type FetchResult struct {
	Collected int
	Filtered  int
	Stored    int
	Err       error
}

// PublishStatus — исход задачи публикации.
type PublishStatus string

const (
	PublishPublished PublishStatus = "published"
	PublishNothing   PublishStatus = "nothing"
	PublishFailed    PublishStatus = "failed"
)

// PublishResult — итог задачи публикации.
type PublishResult struct {
	Status PublishStatus
	NewsID string
	PostID string
	Err    error
}

// FetchAndStore — задача сбора: Collector → Filter → Gate.
// Никогда не паникует и не возвращает ошибку наружу: сбои попадают в FetchResult.Err.
func (s *Service) FetchAndStore(ctx context.Context) (res FetchResult) {
	const op = "service.jobs.FetchAndStore"

	lg := log.From(ctx)
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			res = FetchResult{Err: fmt.Errorf("%s: panic: %v", op, rec)}
			lg.Error("fetch_job_panic", slog.String("op", op), slog.Any("reason", rec))
		}
		s.metrics.ObserveJob("fetch", start)
	}()

	items := s.Collect(ctx)
	res.Collected = len(items)

	filtered := Filter(items, s.Keywords(ctx))
	res.Filtered = len(filtered)

	var failed int
	for _, item := range filtered {
		switch s.Admit(ctx, item) {
		case Stored:
			res.Stored++
		case AdmitFailed:
			failed++
		}
	}

	if failed > 0 {
		res.Err = fmt.Errorf("%s: %d items not stored: %w", op, failed, storage.ErrUnavailable)
	}

	lg.Info("fetch_job_done",
		slog.String("op", op),
		slog.Int("collected", res.Collected),
		slog.Int("filtered", res.Filtered),
		slog.Int("stored", res.Stored),
		slog.Int("failed", failed),
		slog.Duration("dur", time.Since(start)),
	)

	return res
}

// PublishNext — задача публикации.
//
// Выбирает первую активную неопубликованную новость в порядке перечисления
// хранилища. Если такой нет, один раз синхронно запускает FetchAndStore и
// выбирает снова. Пост создаётся только после успешной доставки; при ошибке
// новость остаётся активной до следующего запуска.
func (s *Service) PublishNext(ctx context.Context) (res PublishResult) {
	const op = "service.jobs.PublishNext"

	lg := log.From(ctx)
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			res = PublishResult{Status: PublishFailed, Err: fmt.Errorf("%s: panic: %v", op, rec)}
			lg.Error("publish_job_panic", slog.String("op", op), slog.Any("reason", rec))
		}
		s.metrics.Published(string(res.Status))
		s.metrics.ObserveJob("publish", start)
	}()

	news := s.nextUnpublished(ctx)
	if news == nil {
		lg.Info("publish_queue_empty", slog.String("op", op))
		s.FetchAndStore(ctx)
		news = s.nextUnpublished(ctx)
	}

	if news == nil {
		lg.Info("publish_nothing", slog.String("op", op))
		return PublishResult{Status: PublishNothing}
	}

	post, err := s.publish(ctx, *news, "")
	if err != nil {
		lg.Warn("publish_failed",
			slog.String("op", op),
			slog.String("news_id", news.ID),
			slog.String("err", err.Error()),
		)
		return PublishResult{Status: PublishFailed, NewsID: news.ID, Err: err}
	}

	return PublishResult{Status: PublishPublished, NewsID: news.ID, PostID: post.ID}
}

// PublishNews немедленно публикует новость по ID (административный вызов).
//
// Ошибки:
//   - ErrNotFound — новости нет в хранилище;
//   - ErrAlreadyPublished — по новости уже есть пост;
//   - ErrDelivery — публикатор отклонил отправку.
func (s *Service) PublishNews(ctx context.Context, id, channelID string) (*models.Post, error) {
	const op = "service.jobs.PublishNews"

	news, err := s.newsByID(ctx, op, id)
	if err != nil {
		return nil, err
	}

	published, err := s.storage.IsPublished(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if published {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyPublished)
	}

	post, err := s.publish(ctx, *news, channelID)
	s.metrics.Published(string(statusOf(err)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

// GeneratePreview генерирует текст поста без публикации.
func (s *Service) GeneratePreview(ctx context.Context, id string) (string, error) {
	const op = "service.jobs.GeneratePreview"

	news, err := s.newsByID(ctx, op, id)
	if err != nil {
		return "", err
	}

	return s.generator.GeneratePost(ctx, *news), nil
}

// publish — генерация текста, доставка и запись поста.
func (s *Service) publish(ctx context.Context, news models.News, channelID string) (*models.Post, error) {
	const op = "service.jobs.publish"

	lg := log.From(ctx)

	text := s.generator.GeneratePost(ctx, news)
	if text == "" {
		return nil, fmt.Errorf("%s: empty post text", op)
	}

	msgID, err := s.publisher.Publish(ctx, text, news.URL, channelID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrDelivery, err)
	}

	// Отметка о публикации пишется раньше поста: без неё новость уйдёт в канал повторно.
	s.markPublished(ctx, news.ID)

	now := s.now()
	post := models.Post{
		ID:            s.newID(),
		NewsID:        news.ID,
		GeneratedText: text,
		PublishedAt:   &now,
		Status:        models.PostStatusPublished,
	}

	if err := s.storage.SavePost(ctx, post); err != nil {
		lg.Error("post_save_failed",
			slog.String("op", op),
			slog.String("news_id", news.ID),
			slog.String("post_id", post.ID),
			slog.String("err", err.Error()),
		)
	}

	lg.Info("news_published",
		slog.String("op", op),
		slog.String("news_id", news.ID),
		slog.String("post_id", post.ID),
		slog.String("message_id", msgID),
	)

	return &post, nil
}

// markPublished добавляет новость в published_news:ids, повторяя запись один раз.
func (s *Service) markPublished(ctx context.Context, newsID string) {
	const op = "service.jobs.markPublished"

	var err error
	for attempt := 1; attempt <= 2; attempt++ {
		if err = s.storage.MarkPublished(ctx, newsID); err == nil {
			return
		}
	}

	log.From(ctx).Error("mark_published_failed",
		slog.String("op", op),
		slog.String("news_id", newsID),
		slog.String("err", err.Error()),
	)
}

// nextUnpublished проходит news:ids в порядке перечисления хранилища,
// попутно удаляя ID с истёкшими телами, и возвращает первую неопубликованную новость.
func (s *Service) nextUnpublished(ctx context.Context) *models.News {
	const op = "service.jobs.nextUnpublished"

	lg := log.From(ctx)

	ids, err := s.storage.NewsIDs(ctx)
	if err != nil {
		lg.Error("news_ids_failed", slog.String("op", op), slog.String("err", err.Error()))
		return nil
	}

	for _, id := range ids {
		news, ok := s.activeNews(ctx, id)
		if !ok {
			continue
		}

		published, err := s.storage.IsPublished(ctx, id)
		if err != nil {
			lg.Error("is_published_failed", slog.String("op", op), slog.String("err", err.Error()))
			return nil
		}
		if !published {
			return news
		}
	}

	return nil
}

// activeNews читает тело новости; отсутствующее тело удаляется из индекса.
func (s *Service) activeNews(ctx context.Context, id string) (*models.News, bool) {
	const op = "service.jobs.activeNews"

	news, err := s.storage.NewsByID(ctx, id)
	if err == nil {
		return news, true
	}

	lg := log.From(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		if err := s.storage.RemoveNewsID(ctx, id); err != nil {
			lg.Warn("news_id_prune_failed", slog.String("op", op), slog.String("err", err.Error()))
		}
		return nil, false
	}

	lg.Warn("news_read_failed", slog.String("op", op), slog.String("news_id", id), slog.String("err", err.Error()))
	return nil, false
}

func statusOf(err error) PublishStatus {
	if err != nil {
		return PublishFailed
	}

	return PublishPublished
}
