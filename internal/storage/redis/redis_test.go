package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/storage"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты пакета redis:
// — поднимают реальный Redis через testcontainers-go (образ redis:7-alpine);
// — проверяют раскладку ключей, TTL новостей, индексы и ErrNotFound.

// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/redis -v -race -count=1

// startRedis — поднимает Redis и возвращает хранилище и «сырой» клиент для проверок ключей.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startRedis(t *testing.T) (*Storage, *goredis.Client) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "6379/tcp")
	url := fmt.Sprintf("redis://%s:%s/0", host, port.Port())

	st, err := New(url, 5*time.Second, 3*time.Second)
	require.NoError(t, err)
	require.NoError(t, st.Ping(ctx))
	t.Cleanup(func() { _ = st.Close() })

	opt, err := goredis.ParseURL(url)
	require.NoError(t, err)
	raw := goredis.NewClient(opt)
	t.Cleanup(func() { _ = raw.Close() })

	return st, raw
}

// TestNew_BadURL — некорректный URL отклоняется без обращения к сети.
func TestNew_BadURL(t *testing.T) {
	t.Parallel()

	_, err := New("postgres://nope", time.Second, time.Second)
	require.Error(t, err)
}

// TestNews_SaveExistsGet — запись новости ставит TTL и индексирует ID.
func TestNews_SaveExistsGet(t *testing.T) {
	st, raw := startRedis(t)
	ctx := context.Background()

	news := models.News{
		ID:          "abc",
		Title:       "Title",
		URL:         "https://habr.com/ru/news/1/",
		Summary:     "Нет текста",
		Source:      "habr",
		PublishedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Keywords:    []string{},
	}

	ok, err := st.NewsExists(ctx, "abc")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, st.SaveNews(ctx, news, time.Hour))

	ok, err = st.NewsExists(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)

	ttl, err := raw.TTL(ctx, "news:abc").Result()
	require.NoError(t, err)
	require.Greater(t, ttl, 59*time.Minute)

	got, err := st.NewsByID(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, news, *got)

	ids, err := st.NewsIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"abc"}, ids)

	require.NoError(t, st.RemoveNewsID(ctx, "abc"))
	ids, err = st.NewsIDs(ctx)
	require.NoError(t, err)
	require.Empty(t, ids)

	_, err = st.NewsByID(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestPosts_SaveMarksPublished — сохранение поста пополняет posts:all и published_news:ids.
func TestPosts_SaveMarksPublished(t *testing.T) {
	st, raw := startRedis(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	post := models.Post{ID: "p1", NewsID: "n1", GeneratedText: "text", PublishedAt: &now, Status: models.PostStatusPublished}
	require.NoError(t, st.SavePost(ctx, post))

	ok, err := st.IsPublished(ctx, "n1")
	require.NoError(t, err)
	require.True(t, ok)

	ttl, err := raw.TTL(ctx, "published_news:ids").Result()
	require.NoError(t, err)
	require.Equal(t, time.Duration(-1), ttl)

	got, err := st.PostByID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, post.NewsID, got.NewsID)
	require.True(t, got.PublishedAt.Equal(now))

	ids, err := st.PostIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"p1"}, ids)

	require.NoError(t, st.MarkPublished(ctx, "n2"))
	ok, err = st.IsPublished(ctx, "n2")
	require.NoError(t, err)
	require.True(t, ok)
}

// TestSources_CRUD — источники сохраняются, перечисляются по ID и удаляются.
func TestSources_CRUD(t *testing.T) {
	st, _ := startRedis(t)
	ctx := context.Background()

	require.NoError(t, st.SaveSource(ctx, models.Source{ID: "vc", Type: models.SourceTypeSite, URL: "https://vc.ru/", Enabled: true}))
	require.NoError(t, st.SaveSource(ctx, models.Source{ID: "habr", Type: models.SourceTypeSite, URL: "https://habr.com/ru/news/", Enabled: true}))

	list, err := st.ListSources(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "habr", list[0].ID)

	ok, err := st.SourceExists(ctx, "vc")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, st.DeleteSource(ctx, "vc"))
	require.ErrorIs(t, st.DeleteSource(ctx, "vc"), storage.ErrNotFound)

	_, err = st.SourceByID(ctx, "vc")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestKeywordsAndSettings — множество ключевых слов и строковые настройки с TTL.
func TestKeywordsAndSettings(t *testing.T) {
	st, raw := startRedis(t)
	ctx := context.Background()

	require.NoError(t, st.AddKeyword(ctx, "rust"))
	require.NoError(t, st.AddKeyword(ctx, "go"))
	require.NoError(t, st.AddKeyword(ctx, "go"))

	kws, err := st.ListKeywords(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"go", "rust"}, kws)

	require.NoError(t, st.DeleteKeyword(ctx, "go"))
	require.ErrorIs(t, st.DeleteKeyword(ctx, "go"), storage.ErrNotFound)

	_, ok, err := st.Setting(ctx, storage.SettingAIAgent)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, st.SetSetting(ctx, storage.SettingAIAgent, "on", 0))
	v, ok, err := st.Setting(ctx, storage.SettingAIAgent)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "on", v)

	key := storage.ChatModeKey(42)
	require.NoError(t, st.SetSetting(ctx, key, "on", time.Hour))
	ttl, err := raw.TTL(ctx, "user:42:chat_mode").Result()
	require.NoError(t, err)
	require.Greater(t, ttl, 59*time.Minute)

	require.NoError(t, st.DeleteSetting(ctx, key))
	_, ok, err = st.Setting(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)
}

// TestUnavailable — операции над недоступным Redis возвращают ErrUnavailable.
func TestUnavailable(t *testing.T) {
	t.Parallel()

	st, err := New("redis://127.0.0.1:1/0", 200*time.Millisecond, 500*time.Millisecond)
	require.NoError(t, err)
	defer st.Close()

	_, err = st.NewsExists(context.Background(), "x")
	require.ErrorIs(t, err, storage.ErrUnavailable)
	require.ErrorIs(t, st.Ping(context.Background()), storage.ErrUnavailable)
}
