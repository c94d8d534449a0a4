// bot реализует режим прямого общения с ИИ в личных сообщениях Telegram-бота.
package bot

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pribylovaa/newsbot/internal/pkg/log"
)

// Тексты ответов бота.
const (
	MsgWelcome     = "📱 Меню NewsBot\n\nНажмите кнопку ниже или введите /chat, чтобы задать вопрос ИИ-ассистенту."
	MsgChatStarted = "💬 Режим прямого общения с ИИ\n\nПишите вопросы прямо в этот чат, ИИ ответит как IT-специалист.\n\nЧтобы выйти, нажмите кнопку ниже или введите /stop."
	MsgChatOff     = "⚠️ Чат с ИИ сейчас выключен в настройках."
	MsgAIDown      = "⚠️ ИИ сейчас недоступен. Проверьте настройки API."
	MsgChatStopped = "Вы вышли из режима чата с ИИ."
)

// Данные inline-кнопок.
const (
	cbChatStart = "ai_chat_start"
	cbChatExit  = "exit_ai_chat"
)

// Settings — доступ к флагам чата.
type Settings interface {
	ChatEnabled(ctx context.Context) bool
	UserInChatMode(ctx context.Context, userID int64) bool
	SetUserChatMode(ctx context.Context, userID int64, on bool) error
}

// Chat — генерация ответов ИИ.
type Chat interface {
	GenerateChatResponse(ctx context.Context, message string) string
	Available() bool
}

// Sender — часть Bot API, через которую бот отвечает пользователям.
// *tgbotapi.BotAPI удовлетворяет интерфейсу.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Poller — Sender с long polling обновлений.
type Poller interface {
	Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot обрабатывает обновления Telegram.
type Bot struct {
	api      Sender
	settings Settings
	chat     Chat
}

// New создаёт обработчик обновлений.
func New(api Sender, settings Settings, chat Chat) *Bot {
	return &Bot{api: api, settings: settings, chat: chat}
}

// Run читает обновления до отмены ctx. Каждое обновление обрабатывается
// в отдельной горутине; Run возвращается после завершения всех обработчиков.
func Run(ctx context.Context, api Poller, b *Bot, pollTimeout int) {
	const op = "bot.Run"

	lg := log.From(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := api.GetUpdatesChan(u)

	lg.Info("bot_polling_started", slog.String("op", op))

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			lg.Info("bot_polling_stopped", slog.String("op", op))
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				b.HandleUpdate(ctx, upd)
			}()
		}
	}
}

// HandleUpdate обрабатывает одно обновление: сообщение или нажатие кнопки.
func (b *Bot) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			log.From(ctx).Error("bot_handler_panic", slog.Any("panic", rec))
		}
	}()

	switch {
	case upd.CallbackQuery != nil:
		b.handleCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil:
		b.handleMessage(ctx, upd.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}

	userID := msg.From.ID
	ctx = log.With(ctx, slog.Int64("user_id", userID))

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.reply(ctx, msg.Chat.ID, 0, MsgWelcome, startKeyboard())
		case "chat":
			text, kb := b.startChat(ctx, userID)
			b.reply(ctx, msg.Chat.ID, 0, text, kb)
		case "stop":
			if b.settings.UserInChatMode(ctx, userID) {
				b.stopChat(ctx, userID)
				b.reply(ctx, msg.Chat.ID, 0, MsgChatStopped, nil)
			}
		}
		return
	}

	// Прочие команды со слешем игнорируются, как и текст вне режима чата.
	if strings.HasPrefix(msg.Text, "/") || strings.TrimSpace(msg.Text) == "" {
		return
	}
	if !b.settings.UserInChatMode(ctx, userID) {
		return
	}

	log.From(ctx).Info("chat_message_received", slog.Int("len", len(msg.Text)))

	_, _ = b.api.Request(tgbotapi.NewChatAction(msg.Chat.ID, tgbotapi.ChatTyping))

	answer := b.chat.GenerateChatResponse(ctx, msg.Text)
	b.reply(ctx, msg.Chat.ID, msg.MessageID, answer, nil)
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.From == nil {
		return
	}

	userID := cq.From.ID
	ctx = log.With(ctx, slog.Int64("user_id", userID))

	var chatID int64
	if cq.Message != nil && cq.Message.Chat != nil {
		chatID = cq.Message.Chat.ID
	}

	switch cq.Data {
	case cbChatStart:
		text, kb := b.startChat(ctx, userID)
		if kb == nil {
			// Отказ показывается всплывающим окном.
			b.answer(ctx, tgbotapi.NewCallbackWithAlert(cq.ID, text))
			return
		}
		b.answer(ctx, tgbotapi.NewCallback(cq.ID, ""))
		if chatID != 0 {
			b.reply(ctx, chatID, 0, text, kb)
		}
	case cbChatExit:
		b.stopChat(ctx, userID)
		b.answer(ctx, tgbotapi.NewCallback(cq.ID, MsgChatStopped))
	default:
		b.answer(ctx, tgbotapi.NewCallback(cq.ID, ""))
	}
}

// startChat включает режим чата. Возвращает текст ответа и клавиатуру;
// nil-клавиатура означает отказ.
func (b *Bot) startChat(ctx context.Context, userID int64) (string, *tgbotapi.InlineKeyboardMarkup) {
	lg := log.From(ctx)

	if !b.settings.ChatEnabled(ctx) {
		lg.Warn("chat_start_refused", slog.String("reason", "disabled"))
		return MsgChatOff, nil
	}
	if !b.chat.Available() {
		lg.Warn("chat_start_refused", slog.String("reason", "ai_unavailable"))
		return MsgAIDown, nil
	}

	if err := b.settings.SetUserChatMode(ctx, userID, true); err != nil {
		lg.Error("chat_mode_set_failed", slog.String("err", err.Error()))
		return MsgAIDown, nil
	}

	lg.Info("chat_mode_entered")
	return MsgChatStarted, exitKeyboard()
}

func (b *Bot) stopChat(ctx context.Context, userID int64) {
	if err := b.settings.SetUserChatMode(ctx, userID, false); err != nil {
		log.From(ctx).Error("chat_mode_clear_failed", slog.String("err", err.Error()))
		return
	}

	log.From(ctx).Info("chat_mode_left")
}

func (b *Bot) reply(ctx context.Context, chatID int64, replyTo int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	if kb != nil {
		msg.ReplyMarkup = *kb
	}

	if _, err := b.api.Send(msg); err != nil {
		log.From(ctx).Warn("bot_send_failed",
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
	}
}

func (b *Bot) answer(ctx context.Context, cb tgbotapi.CallbackConfig) {
	if _, err := b.api.Request(cb); err != nil {
		log.From(ctx).Warn("bot_callback_failed", slog.String("err", err.Error()))
	}
}

func startKeyboard() *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🚀 Начать общение", cbChatStart)),
	)
	return &kb
}

func exitKeyboard() *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("⬅️ Выйти из чата", cbChatExit)),
	)
	return &kb
}
