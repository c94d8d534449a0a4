package publisher

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pribylovaa/newsbot/internal/config"
)

// defaultRequestTimeout — запас на сеть, если telegram.timeout не задан.
const defaultRequestTimeout = 15 * time.Second

// PollingTimeout возвращает таймаут HTTP-клиента для long polling.
// Сервер держит getUpdates до pollTimeout секунд, поэтому клиент ждёт
// pollTimeout плюс обычный таймаут запроса.
func PollingTimeout(cfg config.TelegramConfig, pollTimeout int) time.Duration {
	extra := cfg.Timeout
	if extra <= 0 {
		extra = defaultRequestTimeout
	}
	if pollTimeout < 0 {
		pollTimeout = 0
	}

	return time.Duration(pollTimeout)*time.Second + extra
}

// NewPollingBot создаёт клиент Bot API для получения обновлений.
// Клиент отдельный от Publisher: таймаут отправки короче окна long polling.
func NewPollingBot(cfg config.TelegramConfig, pollTimeout int) (*tgbotapi.BotAPI, error) {
	const op = "publisher.NewPollingBot"

	if strings.TrimSpace(cfg.BotToken) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoToken)
	}

	client := &http.Client{Timeout: PollingTimeout(cfg, pollTimeout)}

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, endpointOf(cfg), client)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bot, nil
}

func endpointOf(cfg config.TelegramConfig) string {
	if cfg.APIEndpoint == "" {
		return tgbotapi.APIEndpoint
	}

	return cfg.APIEndpoint
}

// BotLogger направляет журнал telegram-bot-api в slog.
// Подключается через tgbotapi.SetLogger.
type BotLogger struct {
	l *slog.Logger
}

// NewBotLogger — l == nil означает slog.Default().
func NewBotLogger(l *slog.Logger) *BotLogger {
	if l == nil {
		l = slog.Default()
	}

	return &BotLogger{l: l.With(slog.String("component", "telegram_bot_api"))}
}

// Библиотека пишет в журнал только сбои запросов и отладку.
func (b *BotLogger) Println(v ...any) {
	b.l.Warn("telegram_api_log", slog.String("line", strings.TrimSpace(fmt.Sprintln(v...))))
}

func (b *BotLogger) Printf(format string, v ...any) {
	b.l.Warn("telegram_api_log", slog.String("line", strings.TrimSpace(fmt.Sprintf(format, v...))))
}
