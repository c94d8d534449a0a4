// publisher отправляет посты в Telegram-канал через Bot API.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pribylovaa/newsbot/internal/config"
	"github.com/pribylovaa/newsbot/internal/pkg/log"
	"github.com/pribylovaa/newsbot/internal/service"
)

const (
	sourceButtonText   = "🔗 Читать в источнике"
	settingsButtonText = "⚙️ Настроить бота"
)

var (
	// ErrNoTarget — не задан ни channelID, ни канал в конфигурации.
	ErrNoTarget = errors.New("telegram channel id is not configured")
	// ErrNoToken — не задан токен бота.
	ErrNoToken = errors.New("telegram bot token is not configured")
)

// DeliveryError — сообщение не доставлено в Target.
type DeliveryError struct {
	Target string
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to %q: %v", e.Target, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Is позволяет сравнивать с service.ErrDelivery.
func (e *DeliveryError) Is(target error) bool { return target == service.ErrDelivery }

// Publisher — реализация service.Publisher поверх telegram-bot-api.
// Клиент Bot API создаётся при первой отправке и переиспользуется.
type Publisher struct {
	token     string
	channelID string
	endpoint  string
	client    tgbotapi.HTTPClient

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

// New создаёт Publisher. client == nil — http.Client с cfg.Timeout.
func New(cfg config.TelegramConfig, client tgbotapi.HTTPClient) *Publisher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Publisher{
		token:     cfg.BotToken,
		channelID: cfg.ChannelID,
		endpoint:  endpointOf(cfg),
		client:    client,
	}
}

// Bot возвращает (и при необходимости создаёт) клиента Bot API.
// Неудачная попытка не кэшируется.
func (p *Publisher) Bot() (*tgbotapi.BotAPI, error) {
	const op = "publisher.Bot"

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bot != nil {
		return p.bot, nil
	}

	if strings.TrimSpace(p.token) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoToken)
	}

	bot, err := tgbotapi.NewBotAPIWithClient(p.token, p.endpoint, p.client)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p.bot = bot
	return bot, nil
}

// Publish отправляет text в канал channelID (или в канал из конфигурации)
// с кнопками на источник и на бота. Возвращает ID сообщения.
func (p *Publisher) Publish(ctx context.Context, text, sourceURL, channelID string) (string, error) {
	const op = "publisher.Publish"

	lg := log.From(ctx)

	target := resolveTarget(channelID, p.channelID)
	if target == "" {
		return "", &DeliveryError{Err: ErrNoTarget}
	}

	if err := ctx.Err(); err != nil {
		return "", &DeliveryError{Target: target, Err: err}
	}

	bot, err := p.Bot()
	if err != nil {
		lg.Error("telegram_client_failed", slog.String("op", op), slog.String("err", err.Error()))
		return "", &DeliveryError{Target: target, Err: err}
	}

	msg := newMessage(target, text)
	msg.ReplyMarkup = keyboard(sourceURL, bot.Self.UserName)

	sent, err := bot.Send(msg)
	if err != nil {
		lg.Error("telegram_send_failed",
			slog.String("op", op),
			slog.String("target", target),
			slog.String("err", err.Error()),
		)
		return "", &DeliveryError{Target: target, Err: err}
	}

	msgID := strconv.Itoa(sent.MessageID)
	lg.Info("telegram_sent",
		slog.String("op", op),
		slog.String("target", target),
		slog.String("message_id", msgID),
	)

	return msgID, nil
}

// resolveTarget выбирает канал и добавляет "@" к голому имени.
// Числовые ID (в т.ч. -100...) остаются как есть.
func resolveTarget(channelID, fallback string) string {
	target := strings.TrimSpace(channelID)
	if target == "" {
		target = strings.TrimSpace(fallback)
	}

	if target == "" || strings.HasPrefix(target, "@") || isNumeric(target) {
		return target
	}

	return "@" + target
}

func isNumeric(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func newMessage(target, text string) tgbotapi.MessageConfig {
	if id, err := strconv.ParseInt(target, 10, 64); err == nil {
		return tgbotapi.NewMessage(id, text)
	}

	return tgbotapi.NewMessageToChannel(target, text)
}

func keyboard(sourceURL, botUsername string) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	if sourceURL != "" {
		row = append(row, tgbotapi.NewInlineKeyboardButtonURL(sourceButtonText, sourceURL))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonURL(settingsButtonText, "https://t.me/"+botUsername))

	return tgbotapi.NewInlineKeyboardMarkup(row)
}
