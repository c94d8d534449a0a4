package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeFile — утилита записи временного файла конфигурации.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

// chdir — смена текущего рабочего каталога с автоматическим откатом.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// Полный корректный YAML (не зависит от дефолтов).
const sampleYAML = `
env: "prod"
http:
  host: "127.0.0.1"
  port: "9000"
storage:
  driver: "redis"
  redis_url: "redis://cache:6379/1"
news:
  keywords: ["Go", " ИИ ", ""]
  ttl: "24h"
  max_items: 50
  fetch_interval: "15m"
  publish_interval: "45m"
ai:
  agent: "ON"
  provider: "DeepSeek"
  deepseek:
    api_key: "sk-test"
telegram:
  channel_id: "@news"
`

// Минимально валидный YAML.
const minimalYAML = `
env: "dev"
`

// Некорректный YAML — для проверки ошибок парсинга.
const brokenYAML = `
news:
  keywords: ["go"
`

// TestHTTPConfig_Addr — Addr() собирает host:port.
func TestHTTPConfig_Addr(t *testing.T) {
	t.Parallel()
	cfg := HTTPConfig{Host: "127.0.0.1", Port: "8000"}
	require.Equal(t, "127.0.0.1:8000", cfg.Addr())
}

// TestLoad_WithExplicitPath_OK — явный путь имеет высший приоритет, значения нормализуются.
func TestLoad_WithExplicitPath_OK(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr())
	require.Equal(t, "redis://cache:6379/1", cfg.Storage.RedisURL)
	require.Equal(t, []string{"Go", "ИИ"}, cfg.News.Keywords)
	require.Equal(t, 24*time.Hour, cfg.News.TTL)
	require.Equal(t, 50, cfg.News.MaxItems)
	require.Equal(t, 15*time.Minute, cfg.News.FetchInterval)
	require.Equal(t, 45*time.Minute, cfg.News.PublishInterval)
	require.Equal(t, "on", cfg.AI.Agent)
	require.Equal(t, ProviderDeepSeek, cfg.AI.Provider)
	require.Equal(t, "sk-test", cfg.AI.DeepSeekProvider().APIKey)
	require.Equal(t, "deepseek-chat", cfg.AI.DeepSeekProvider().Model)
	require.Equal(t, "@news", cfg.Telegram.ChannelID)
}

// TestLoad_Defaults — минимальный файл: все значения по умолчанию.
func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", minimalYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, StorageRedis, cfg.Storage.Driver)
	require.Equal(t, 48*time.Hour, cfg.News.TTL)
	require.Equal(t, 100, cfg.News.MaxItems)
	require.Equal(t, 30*time.Minute, cfg.News.FetchInterval)
	require.Equal(t, 30*time.Minute, cfg.News.PublishInterval)
	require.Equal(t, "Нет текста", cfg.News.Placeholder)
	require.Equal(t, "on", cfg.AI.Agent)
	require.Equal(t, ProviderGroq, cfg.AI.Provider)
	require.Equal(t, "medium", cfg.AI.Groq.ReasoningEffort)
	require.Equal(t, 10*time.Second, cfg.Timeouts.Fetch)
	require.Empty(t, cfg.News.Keywords)
}

// TestLoad_ConfigPathEnv — CONFIG_PATH используется при пустом явном пути.
func TestLoad_ConfigPathEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "env.yaml", sampleYAML)
	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
}

// TestLoad_LocalYAML — ./local.yaml подхватывается из рабочего каталога.
func TestLoad_LocalYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "local.yaml", sampleYAML)
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
}

// TestLoad_EnvOnly — без файлов конфигурация собирается из переменных окружения.
func TestLoad_EnvOnly(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("NEWS_KEYWORDS", "go, rust ,")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("NEWS_TIME", "5m")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, []string{"go", "rust"}, cfg.News.Keywords)
	require.Equal(t, StorageMemory, cfg.Storage.Driver)
	require.Equal(t, 5*time.Minute, cfg.News.PublishInterval)
}

// TestLoad_Errors — отсутствующий файл, битый YAML и невалидные значения.
func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeFile(t, dir, "broken.yaml", brokenYAML))
	require.Error(t, err)

	cases := map[string]string{
		"interval": "news:\n  fetch_interval: \"30s\"\n",
		"max":      "news:\n  max_items: -1\n",
		"provider": "ai:\n  provider: \"claude\"\n",
		"agent":    "ai:\n  agent: \"maybe\"\n",
		"driver":   "storage:\n  driver: \"mongo\"\n",
	}
	for name, body := range cases {
		_, err := Load(writeFile(t, dir, name+".yaml", body))
		require.Error(t, err, name)
	}
}

// TestMustLoad_Panics — MustLoad паникует на ошибке загрузки.
func TestMustLoad_Panics(t *testing.T) {
	require.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope.yaml")) })
}
