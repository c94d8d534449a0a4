// config предоставляет структуру конфигурации newsbot
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Поддерживаемые провайдеры генерации.
const (
	ProviderGroq     = "groq"
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderNone     = "none"
)

// Драйверы хранилища.
const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string         `yaml:"env"     env:"ENV"        env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Storage  StorageConfig  `yaml:"storage"`
	News     NewsConfig     `yaml:"news"`
	AI       AIConfig       `yaml:"ai"`
	Telegram TelegramConfig `yaml:"telegram"`
	Bot      BotConfig      `yaml:"bot"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	// Request — дедлайн HTTP-запроса к админ-API.
	Request time.Duration `yaml:"request" env:"REQUEST_TIMEOUT" env-default:"60s"`
	// Fetch — таймаут HTTP-клиента адаптеров источников.
	Fetch time.Duration `yaml:"fetch" env:"FETCH_TIMEOUT" env-default:"10s"`
	// Store — дедлайн одной операции с хранилищем.
	Store time.Duration `yaml:"store" env:"STORE_TIMEOUT" env-default:"3s"`
	// Shutdown — время на корректную остановку.
	Shutdown time.Duration `yaml:"shutdown" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// HTTPConfig — сетевые настройки административного HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8000"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// StorageConfig — выбор и параметры хранилища.
type StorageConfig struct {
	// Driver — redis (по умолчанию) или memory.
	Driver      string        `yaml:"driver"       env:"STORAGE_DRIVER" env-default:"redis"`
	RedisURL    string        `yaml:"redis_url"    env:"REDIS_URL"      env-default:"redis://localhost:6379/0"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
}

// NewsConfig — параметры сбора и публикации.
type NewsConfig struct {
	// Keywords — ключевые слова фильтра. ENV NEWS_KEYWORDS, разделитель — запятая.
	Keywords []string `yaml:"keywords" env:"NEWS_KEYWORDS" env-separator:","`
	// TTL — время жизни сохранённой новости.
	TTL time.Duration `yaml:"ttl" env:"TIME_LIFE_NEWS" env-default:"48h"`
	// MaxItems — верхняя граница списков новостей.
	MaxItems int `yaml:"max_items" env:"MAX_NEWS_ITEMS" env-default:"100"`
	// FetchInterval — период задачи сбора.
	FetchInterval time.Duration `yaml:"fetch_interval" env:"NEWS_TIME_CALL" env-default:"30m"`
	// PublishInterval — период задачи публикации.
	PublishInterval time.Duration `yaml:"publish_interval" env:"NEWS_TIME" env-default:"30m"`
	// Placeholder подставляется вместо пустого описания.
	Placeholder string `yaml:"placeholder" env:"NEWS_PLACEHOLDER" env-default:"Нет текста"`
	// Concurrency — число одновременно опрашиваемых источников.
	Concurrency int `yaml:"concurrency" env:"FETCH_CONCURRENCY" env-default:"6"`
}

// ProviderConfig — учётные данные OpenAI-совместимого провайдера.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIConfig — провайдер OpenAI.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"  env:"OPENAI_API_KEY"`
	Model   string `yaml:"model"    env:"OPENAI_MODEL"    env-default:"gpt-3.5-turbo"`
	BaseURL string `yaml:"base_url" env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
}

// DeepSeekConfig — провайдер DeepSeek.
type DeepSeekConfig struct {
	APIKey  string `yaml:"api_key"  env:"DEEPSEEK_API_KEY"`
	Model   string `yaml:"model"    env:"DEEPSEEK_MODEL"    env-default:"deepseek-chat"`
	BaseURL string `yaml:"base_url" env:"DEEPSEEK_BASE_URL" env-default:"https://api.deepseek.com"`
}

// GroqConfig — провайдер Groq и параметры reasoning-моделей.
type GroqConfig struct {
	APIKey          string `yaml:"api_key"          env:"GROQ_API_KEY"`
	Model           string `yaml:"model"            env:"GROQ_MODEL"            env-default:"llama-3.3-70b-versatile"`
	BaseURL         string `yaml:"base_url"         env:"GROQ_BASE_URL"         env-default:"https://api.groq.com/openai/v1"`
	ReasoningEffort string `yaml:"reasoning_effort" env:"GROQ_REASONING_EFFORT" env-default:"medium"`
}

// AIConfig — параметры генерации текста.
type AIConfig struct {
	// Agent — начальное значение переключателя (on/off): записывается в хранилище
	// при первом запуске и используется, если хранилище недоступно.
	Agent    string         `yaml:"agent"    env:"AI_AGENT"    env-default:"on"`
	Provider string         `yaml:"provider" env:"AI_PROVIDER" env-default:"groq"`
	Timeout  time.Duration  `yaml:"timeout"  env:"AI_TIMEOUT"  env-default:"60s"`
	Groq     GroqConfig     `yaml:"groq"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	DeepSeek DeepSeekConfig `yaml:"deepseek"`
}

// OpenAIProvider возвращает параметры OpenAI в общем виде.
func (a AIConfig) OpenAIProvider() ProviderConfig {
	return ProviderConfig{APIKey: a.OpenAI.APIKey, Model: a.OpenAI.Model, BaseURL: a.OpenAI.BaseURL}
}

// DeepSeekProvider возвращает параметры DeepSeek в общем виде.
func (a AIConfig) DeepSeekProvider() ProviderConfig {
	return ProviderConfig{APIKey: a.DeepSeek.APIKey, Model: a.DeepSeek.Model, BaseURL: a.DeepSeek.BaseURL}
}

// TelegramConfig — параметры публикации в канал.
type TelegramConfig struct {
	BotToken  string `yaml:"bot_token"  env:"TELEGRAM_BOT_TOKEN"`
	ChannelID string `yaml:"channel_id" env:"TELEGRAM_CHANNEL_ID"`
	// APIEndpoint — формат URL Bot API (token, method).
	APIEndpoint string        `yaml:"api_endpoint" env:"TELEGRAM_API_ENDPOINT" env-default:"https://api.telegram.org/bot%s/%s"`
	Timeout     time.Duration `yaml:"timeout"      env:"TELEGRAM_TIMEOUT"      env-default:"15s"`
}

// BotConfig — чат-режим бота.
type BotConfig struct {
	Enabled bool `yaml:"enabled" env:"BOT_ENABLED" env-default:"false"`
	// PollTimeout — long polling timeout в секундах.
	PollTimeout int `yaml:"poll_timeout" env:"BOT_POLL_TIMEOUT" env-default:"30"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	read := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	var (
		c   *Config
		err error
	)

	switch {
	case path != "":
		c, err = read(path)
	case os.Getenv("CONFIG_PATH") != "":
		c, err = read(os.Getenv("CONFIG_PATH"))
	default:
		if _, statErr := os.Stat("local.yaml"); statErr == nil {
			c, err = read("local.yaml")
			break
		}
		if err = cleanenv.ReadEnv(&cfg); err != nil {
			err = fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
		c = &cfg
	}
	if err != nil {
		return nil, err
	}

	c.normalize()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// normalize чистит списки и регистр перечислимых значений.
func (c *Config) normalize() {
	keywords := c.News.Keywords[:0]
	for _, kw := range c.News.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	c.News.Keywords = keywords

	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	c.AI.Agent = strings.ToLower(strings.TrimSpace(c.AI.Agent))
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.News.FetchInterval < time.Minute {
		return fmt.Errorf("news.fetch_interval must be at least 1m")
	}
	if c.News.PublishInterval < time.Minute {
		return fmt.Errorf("news.publish_interval must be at least 1m")
	}
	if c.News.TTL <= 0 {
		return fmt.Errorf("news.ttl must be > 0")
	}
	if c.News.MaxItems <= 0 {
		return fmt.Errorf("news.max_items must be > 0")
	}
	if c.News.Concurrency <= 0 {
		return fmt.Errorf("news.concurrency must be > 0")
	}

	switch c.AI.Provider {
	case ProviderGroq, ProviderOpenAI, ProviderDeepSeek, ProviderNone:
	default:
		return fmt.Errorf("ai.provider must be one of groq, openai, deepseek, none")
	}

	if c.AI.Agent != "on" && c.AI.Agent != "off" {
		return fmt.Errorf("ai.agent must be on or off")
	}

	switch c.Storage.Driver {
	case StorageRedis:
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("storage.redis_url is required for redis driver")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("storage.driver must be redis or memory")
	}

	return nil
}
