package publisher

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pribylovaa/newsbot/internal/config"
	"github.com/stretchr/testify/require"
)

// TestPollingTimeout — клиент ждёт окно long polling плюс таймаут запроса.
func TestPollingTimeout(t *testing.T) {
	t.Parallel()

	require.Equal(t, 45*time.Second, PollingTimeout(config.TelegramConfig{Timeout: 15 * time.Second}, 30))
	require.Equal(t, 30*time.Second+defaultRequestTimeout, PollingTimeout(config.TelegramConfig{}, 30))
	require.Equal(t, 2*time.Second, PollingTimeout(config.TelegramConfig{Timeout: 2 * time.Second}, -1))
}

// TestNewPollingBot_OutlivesPollWindow — getUpdates, удерживаемый сервером дольше
// telegram.timeout, завершается успешно; клиент отправки на нём обрывается.
func TestNewPollingBot_OutlivesPollWindow(t *testing.T) {
	t.Parallel()

	f := newFakeBotAPI(t)
	f.hold.Store(int64(time.Second))

	cfg := f.config("@news")
	cfg.Timeout = 300 * time.Millisecond
	upd := tgbotapi.UpdateConfig{Timeout: 1}

	bot, err := NewPollingBot(cfg, 1)
	require.NoError(t, err)

	updates, err := bot.GetUpdates(upd)
	require.NoError(t, err)
	require.Empty(t, updates)

	sender, err := New(cfg, nil).Bot()
	require.NoError(t, err)

	_, err = sender.GetUpdates(upd)
	require.Error(t, err)
}

// TestNewPollingBot_NoToken — без токена клиент не создаётся.
func TestNewPollingBot_NoToken(t *testing.T) {
	t.Parallel()

	_, err := NewPollingBot(config.TelegramConfig{}, 30)
	require.ErrorIs(t, err, ErrNoToken)
}

// TestBotLogger — строки библиотеки попадают в slog.
func TestBotLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewBotLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	l.Println("Failed to get updates, retrying in 3 seconds...")
	l.Printf("Endpoint: %s, params: %v", "getUpdates", 1)

	out := buf.String()
	require.Contains(t, out, "component=telegram_bot_api")
	require.Contains(t, out, `line="Failed to get updates, retrying in 3 seconds..."`)
	require.Contains(t, out, `line="Endpoint: getUpdates, params: 1"`)
	require.Contains(t, out, "level=WARN")
}
