// redis реализует storage.Storage поверх Redis (go-redis/v9).
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/storage"
	goredis "github.com/redis/go-redis/v9"
)

const (
	keyNewsIDs      = "news:ids"
	keyPostsAll     = "posts:all"
	keyPublishedIDs = "published_news:ids"
	keySourcesAll   = "sources:all"
	keyKeywordsAll  = "keywords:all"
)

func newsKey(id string) string   { return "news:" + id }
func postKey(id string) string   { return "posts:" + id }
func sourceKey(id string) string { return "sources:" + id }

// Storage — хранилище на Redis.
// Соединение устанавливается лениво: недоступный Redis на старте не мешает
// созданию Storage, ошибки проявятся на операциях.
type Storage struct {
	rdb       *goredis.Client
	opTimeout time.Duration
}

// New создаёт клиент из URL (например, redis://:pass@host:6379/0).
// opTimeout ограничивает каждую операцию; <=0 — без дополнительного дедлайна.
func New(redisURL string, dialTimeout, opTimeout time.Duration) (*Storage, error) {
	const op = "storage.redis.New"

	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse url: %w", op, err)
	}

	if dialTimeout > 0 {
		opt.DialTimeout = dialTimeout
	}

	return &Storage{rdb: goredis.NewClient(opt), opTimeout: opTimeout}, nil
}

// NewWithClient оборачивает готовый клиент (используется в тестах).
func NewWithClient(rdb *goredis.Client, opTimeout time.Duration) *Storage {
	return &Storage{rdb: rdb, opTimeout: opTimeout}
}

func (s *Storage) ctx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, s.opTimeout)
}

// wrap приводит ошибки клиента к ошибкам пакета storage.
func wrap(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, goredis.Nil):
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, storage.ErrUnavailable, err)
	}
}

// Ping проверяет доступность Redis.
func (s *Storage) Ping(ctx context.Context) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	return wrap("storage.redis.Ping", s.rdb.Ping(ctx).Err())
}

// Close закрывает клиент Redis.
func (s *Storage) Close() error { return s.rdb.Close() }

func (s *Storage) NewsExists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	n, err := s.rdb.Exists(ctx, newsKey(id)).Result()
	if err != nil {
		return false, wrap("storage.redis.NewsExists", err)
	}

	return n > 0, nil
}

func (s *Storage) SaveNews(ctx context.Context, news models.News, ttl time.Duration) error {
	const op = "storage.redis.SaveNews"

	payload, err := json.Marshal(news)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	ctx, cancel := s.ctx(ctx)
	defer cancel()

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, newsKey(news.ID), payload, ttl)
	pipe.SAdd(ctx, keyNewsIDs, news.ID)

	_, err = pipe.Exec(ctx)
	return wrap(op, err)
}

func (s *Storage) NewsByID(ctx context.Context, id string) (*models.News, error) {
	const op = "storage.redis.NewsByID"

	var news models.News
	if err := s.getJSON(ctx, newsKey(id), &news); err != nil {
		return nil, wrap(op, err)
	}

	return &news, nil
}

func (s *Storage) NewsIDs(ctx context.Context) ([]string, error) {
	return s.members(ctx, "storage.redis.NewsIDs", keyNewsIDs)
}

func (s *Storage) RemoveNewsID(ctx context.Context, id string) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	return wrap("storage.redis.RemoveNewsID", s.rdb.SRem(ctx, keyNewsIDs, id).Err())
}

func (s *Storage) SavePost(ctx context.Context, post models.Post) error {
	const op = "storage.redis.SavePost"

	payload, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	ctx, cancel := s.ctx(ctx)
	defer cancel()

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, postKey(post.ID), payload, 0)
	pipe.SAdd(ctx, keyPostsAll, post.ID)
	pipe.SAdd(ctx, keyPublishedIDs, post.NewsID)

	_, err = pipe.Exec(ctx)
	return wrap(op, err)
}

func (s *Storage) MarkPublished(ctx context.Context, newsID string) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	return wrap("storage.redis.MarkPublished", s.rdb.SAdd(ctx, keyPublishedIDs, newsID).Err())
}

func (s *Storage) PostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := s.getJSON(ctx, postKey(id), &post); err != nil {
		return nil, wrap("storage.redis.PostByID", err)
	}

	return &post, nil
}

func (s *Storage) PostIDs(ctx context.Context) ([]string, error) {
	return s.members(ctx, "storage.redis.PostIDs", keyPostsAll)
}

func (s *Storage) IsPublished(ctx context.Context, newsID string) (bool, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	ok, err := s.rdb.SIsMember(ctx, keyPublishedIDs, newsID).Result()
	if err != nil {
		return false, wrap("storage.redis.IsPublished", err)
	}

	return ok, nil
}

func (s *Storage) SaveSource(ctx context.Context, src models.Source) error {
	const op = "storage.redis.SaveSource"

	payload, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	ctx, cancel := s.ctx(ctx)
	defer cancel()

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, sourceKey(src.ID), payload, 0)
	pipe.SAdd(ctx, keySourcesAll, src.ID)

	_, err = pipe.Exec(ctx)
	return wrap(op, err)
}

func (s *Storage) SourceByID(ctx context.Context, id string) (*models.Source, error) {
	var src models.Source
	if err := s.getJSON(ctx, sourceKey(id), &src); err != nil {
		return nil, wrap("storage.redis.SourceByID", err)
	}

	return &src, nil
}

func (s *Storage) SourceExists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	n, err := s.rdb.Exists(ctx, sourceKey(id)).Result()
	if err != nil {
		return false, wrap("storage.redis.SourceExists", err)
	}

	return n > 0, nil
}

// ListSources возвращает источники, упорядоченные по ID.
func (s *Storage) ListSources(ctx context.Context) ([]models.Source, error) {
	const op = "storage.redis.ListSources"

	ids, err := s.members(ctx, op, keySourcesAll)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Source{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = sourceKey(id)
	}

	cctx, cancel := s.ctx(ctx)
	defer cancel()

	values, err := s.rdb.MGet(cctx, keys...).Result()
	if err != nil {
		return nil, wrap(op, err)
	}

	out := make([]models.Source, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}

		var src models.Source
		if err := json.Unmarshal([]byte(raw), &src); err != nil {
			continue
		}
		out = append(out, src)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Storage) DeleteSource(ctx context.Context, id string) error {
	const op = "storage.redis.DeleteSource"

	ctx, cancel := s.ctx(ctx)
	defer cancel()

	pipe := s.rdb.Pipeline()
	del := pipe.Del(ctx, sourceKey(id))
	pipe.SRem(ctx, keySourcesAll, id)

	if _, err := pipe.Exec(ctx); err != nil {
		return wrap(op, err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (s *Storage) AddKeyword(ctx context.Context, keyword string) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	return wrap("storage.redis.AddKeyword", s.rdb.SAdd(ctx, keyKeywordsAll, keyword).Err())
}

func (s *Storage) DeleteKeyword(ctx context.Context, keyword string) error {
	const op = "storage.redis.DeleteKeyword"

	ctx, cancel := s.ctx(ctx)
	defer cancel()

	n, err := s.rdb.SRem(ctx, keyKeywordsAll, keyword).Result()
	if err != nil {
		return wrap(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ListKeywords возвращает ключевые слова в алфавитном порядке.
func (s *Storage) ListKeywords(ctx context.Context) ([]string, error) {
	kws, err := s.members(ctx, "storage.redis.ListKeywords", keyKeywordsAll)
	if err != nil {
		return nil, err
	}

	sort.Strings(kws)
	return kws, nil
}

func (s *Storage) Setting(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrap("storage.redis.Setting", err)
	}

	return v, true, nil
}

func (s *Storage) SetSetting(ctx context.Context, key, value string, ttl time.Duration) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	if ttl < 0 {
		ttl = 0
	}

	return wrap("storage.redis.SetSetting", s.rdb.Set(ctx, key, value, ttl).Err())
}

func (s *Storage) DeleteSetting(ctx context.Context, key string) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	return wrap("storage.redis.DeleteSetting", s.rdb.Del(ctx, key).Err())
}

func (s *Storage) getJSON(ctx context.Context, key string, dst any) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}

	return nil
}

func (s *Storage) members(ctx context.Context, op, key string) ([]string, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	ids, err := s.rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, wrap(op, err)
	}

	return ids, nil
}

var _ storage.Storage = (*Storage)(nil)
