// generator формирует тексты постов и ответы чата через выбранного
// AI-провайдера. Ошибки провайдера наружу не выходят: пост получает
// шаблонный текст, чат получает извинение.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pribylovaa/newsbot/internal/metrics"
	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/pkg/log"
)

const (
	postSystemMessage = "Ты — профессиональный SMM-менеджер новостного IT-канала." +
		"Твоя задача — писать короткие, вовлекающие и информативные посты для Telegram на русском языке. " +
		"Используй подходящие emoji, структурируй текст и добавь призыв к действию (Call to Action)."

	chatSystemMessage = "Ты — опытный IT-специалист и аналитик новостей." +
		"Твоя задача — отвечать на вопросы пользователя профессионально, четко и по делу." +
		"Ты можешь обсуждать технологии, программирование, новости IT и помогать с решением технических вопросов." +
		"Отвечай на русском языке, используй дружелюбный, но деловой тон."

	// ChatApology — ответ чата, когда провайдер ничего не вернул.
	ChatApology = "⚠️ Извините, я сейчас не могу ответить. Попробуйте позже или проверьте настройки ИИ."
)

// Switch — глобальный переключатель генерации постов.
type Switch interface {
	AIEnabled(ctx context.Context) bool
}

// Generator выбирает провайдера, учитывает переключатель и оформляет результат.
type Generator struct {
	provider Provider
	timeout  time.Duration
	metrics  *metrics.Metrics

	mu sync.RWMutex
	sw Switch
}

// New создаёт Generator. provider == nil означает, что генерация отключена.
func New(provider Provider, timeout time.Duration, m *metrics.Metrics) *Generator {
	return &Generator{provider: provider, timeout: timeout, metrics: m}
}

// UseSwitch подключает переключатель после сборки зависимостей.
// Без переключателя генерация постов считается включённой.
func (g *Generator) UseSwitch(sw Switch) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sw = sw
}

func (g *Generator) enabled(ctx context.Context) bool {
	g.mu.RLock()
	sw := g.sw
	g.mu.RUnlock()

	return sw == nil || sw.AIEnabled(ctx)
}

// Available сообщает, есть ли у провайдера ключ.
func (g *Generator) Available() bool {
	return g.provider != nil && g.provider.Available()
}

// ProviderName — имя провайдера или "none".
func (g *Generator) ProviderName() string {
	if g.provider == nil {
		return "none"
	}

	return g.provider.Name()
}

// Generate запрашивает текст у провайдера. Без bypass учитывается переключатель.
// Возвращает ("", false) при выключенной генерации, недоступном провайдере,
// ошибке или пустом ответе.
func (g *Generator) Generate(ctx context.Context, prompt, system string, bypass bool) (string, bool) {
	const op = "generator.Generate"

	lg := log.From(ctx)

	if !bypass && !g.enabled(ctx) {
		lg.Info("ai_disabled", slog.String("op", op))
		return "", false
	}

	if !g.Available() {
		lg.Warn("ai_unavailable", slog.String("op", op), slog.String("provider", g.ProviderName()))
		g.metrics.Generation(g.ProviderName(), "unavailable")
		return "", false
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := g.provider.Generate(ctx, prompt, system)
	if err != nil {
		lg.Error("ai_generate_failed",
			slog.String("op", op),
			slog.String("provider", g.provider.Name()),
			slog.String("err", err.Error()),
		)
		g.metrics.Generation(g.provider.Name(), "error")
		return "", false
	}

	if text == "" {
		g.metrics.Generation(g.provider.Name(), "empty")
		return "", false
	}

	g.metrics.Generation(g.provider.Name(), "ok")
	lg.Info("ai_generated",
		slog.String("op", op),
		slog.String("provider", g.provider.Name()),
		slog.Int("chars", len([]rune(text))),
		slog.Duration("dur", time.Since(start)),
	)

	return text, true
}

// GeneratePost возвращает текст поста. Никогда не возвращает пустую строку.
func (g *Generator) GeneratePost(ctx context.Context, news models.News) string {
	if text, ok := g.Generate(ctx, postPrompt(news), postSystemMessage, false); ok {
		return fmt.Sprintf("🤖 [ИИ] (%s)\n\n%s", displayName(g.ProviderName()), text)
	}

	return OriginalPost(news)
}

// GenerateChatResponse отвечает пользователю в режиме чата.
// Переключатель генерации постов здесь не действует.
func (g *Generator) GenerateChatResponse(ctx context.Context, message string) string {
	if text, ok := g.Generate(ctx, message, chatSystemMessage, true); ok {
		return text
	}

	return ChatApology
}

// OriginalPost — шаблон поста без ИИ.
func OriginalPost(news models.News) string {
	return fmt.Sprintf("📝 [Original]\n\n📢 %s\n\n%s\n\n🔗 Источник: %s\n👉 Читать полностью: %s",
		news.Title, news.Summary, news.Source, news.URL)
}

func postPrompt(news models.News) string {
	var b strings.Builder
	b.WriteString("Напиши пост для Telegram на основе следующей новости:\n\n")
	fmt.Fprintf(&b, "Заголовок: %s\n", news.Title)
	fmt.Fprintf(&b, "Источник: %s\n", news.Source)
	fmt.Fprintf(&b, "Описание: %s\n\n", news.Summary)
	fmt.Fprintf(&b, "Ссылка: %s\n\n", news.URL)
	b.WriteString("Требования к посту:\n")
	b.WriteString("1. Краткость (не более 500 символов).\n")
	b.WriteString("2. Привлекательный заголовок.\n")
	b.WriteString("3. Ссылка на оригинал в конце.\n")
	b.WriteString("4. Несколько подходящих эмодзи.\n")
	b.WriteString("5. Тон: профессиональный, но дружелюбный.")

	return b.String()
}

func displayName(provider string) string {
	switch provider {
	case "openai":
		return "OpenAI"
	case "groq":
		return "Groq"
	case "deepseek":
		return "DeepSeek"
	case "":
		return ""
	}

	return strings.ToUpper(provider[:1]) + provider[1:]
}
