// scheduler периодически запускает задачи сбора и публикации.
// Одновременно выполняется не больше одного запуска каждого вида:
// пересекающиеся тики и ручные вызовы присоединяются к текущему.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pribylovaa/newsbot/internal/pkg/log"
	"github.com/pribylovaa/newsbot/internal/service"
	"golang.org/x/sync/singleflight"
)

const (
	jobFetch   = "fetch"
	jobPublish = "publish"
)

// Jobs — задачи, которые запускает планировщик.
type Jobs interface {
	FetchAndStore(ctx context.Context) service.FetchResult
	PublishNext(ctx context.Context) service.PublishResult
}

// Scheduler — два цикла на time.Ticker и ручные запуски.
type Scheduler struct {
	jobs            Jobs
	fetchInterval   time.Duration
	publishInterval time.Duration

	group singleflight.Group
	wg    sync.WaitGroup

	mu   sync.Mutex
	base context.Context
}

// New создаёт планировщик. Интервал <= 0 отключает соответствующий цикл.
func New(jobs Jobs, fetchInterval, publishInterval time.Duration) *Scheduler {
	return &Scheduler{
		jobs:            jobs,
		fetchInterval:   fetchInterval,
		publishInterval: publishInterval,
		base:            context.Background(),
	}
}

// Start запускает циклы; сбор выполняется сразу, публикация — через интервал.
// Циклы останавливаются по ctx, дождаться их можно через Wait.
func (s *Scheduler) Start(ctx context.Context) {
	const op = "scheduler.Start"

	s.mu.Lock()
	s.base = ctx
	s.mu.Unlock()

	log.From(ctx).Info("scheduler_start",
		slog.String("op", op),
		slog.Duration("fetch_interval", s.fetchInterval),
		slog.Duration("publish_interval", s.publishInterval),
	)

	if s.fetchInterval > 0 {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.RunFetch(ctx)
			s.loop(ctx, jobFetch, s.fetchInterval, func(ctx context.Context) { s.RunFetch(ctx) })
		}()
	}

	if s.publishInterval > 0 {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.loop(ctx, jobPublish, s.publishInterval, func(ctx context.Context) { s.RunPublish(ctx) })
		}()
	}
}

// Wait блокируется до завершения циклов и ручных запусков.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job string, interval time.Duration, run func(context.Context)) {
	const op = "scheduler.loop"

	lg := log.From(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			lg.Info("scheduler_stop", slog.String("op", op), slog.String("job", job))
			return
		case <-ticker.C:
			run(ctx)
		}
	}
}

// RunFetch синхронно выполняет сбор или присоединяется к идущему.
func (s *Scheduler) RunFetch(ctx context.Context) service.FetchResult {
	const op = "scheduler.RunFetch"

	v, _, shared := s.group.Do(jobFetch, func() (any, error) {
		return s.jobs.FetchAndStore(log.With(ctx, slog.String("job", jobFetch))), nil
	})
	res := v.(service.FetchResult)

	lg := log.From(ctx)
	if res.Err != nil {
		lg.Warn("fetch_tick_error", slog.String("op", op), slog.Bool("shared", shared), slog.String("err", res.Err.Error()))
	} else {
		lg.Debug("fetch_tick_done", slog.String("op", op), slog.Bool("shared", shared), slog.Int("stored", res.Stored))
	}

	return res
}

// RunPublish синхронно выполняет публикацию или присоединяется к идущей.
func (s *Scheduler) RunPublish(ctx context.Context) service.PublishResult {
	const op = "scheduler.RunPublish"

	v, _, shared := s.group.Do(jobPublish, func() (any, error) {
		return s.jobs.PublishNext(log.With(ctx, slog.String("job", jobPublish))), nil
	})
	res := v.(service.PublishResult)

	lg := log.From(ctx)
	if res.Err != nil {
		lg.Warn("publish_tick_error", slog.String("op", op), slog.Bool("shared", shared), slog.String("err", res.Err.Error()))
	} else {
		lg.Debug("publish_tick_done", slog.String("op", op), slog.Bool("shared", shared), slog.String("status", string(res.Status)))
	}

	return res
}

// TriggerFetch запускает сбор в фоне и сразу возвращает управление.
func (s *Scheduler) TriggerFetch(ctx context.Context) {
	s.trigger(ctx, func(ctx context.Context) { s.RunFetch(ctx) })
}

// TriggerPublish запускает публикацию в фоне и сразу возвращает управление.
func (s *Scheduler) TriggerPublish(ctx context.Context) {
	s.trigger(ctx, func(ctx context.Context) { s.RunPublish(ctx) })
}

// trigger выполняет run в контексте планировщика, сохраняя логгер запроса.
func (s *Scheduler) trigger(ctx context.Context, run func(context.Context)) {
	s.mu.Lock()
	base := s.base
	s.mu.Unlock()

	runCtx := log.Into(base, log.From(ctx))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		run(runCtx)
	}()
}
