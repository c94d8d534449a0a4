package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pribylovaa/newsbot/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

// ErrUnavailable — у провайдера нет рабочего ключа.
var ErrUnavailable = errors.New("ai provider unavailable")

// DefaultSystemMessage — системное сообщение, если вызывающий не задал своё.
const DefaultSystemMessage = "You are a helpful assistant."

// Provider — OpenAI-совместимый бэкенд генерации.
type Provider interface {
	// Name — идентификатор провайдера (openai, deepseek, groq).
	Name() string
	// Available сообщает, задан ли ключ API.
	Available() bool
	// Generate возвращает ответ модели на prompt с системным сообщением system.
	Generate(ctx context.Context, prompt, system string) (string, error)
}

// placeholderKeys — заглушки из шаблонов .env, которые не считаются ключом.
var placeholderKeys = []string{"your_groq_key_here", "your_api_key", "ваш_ключ"}

func usableKey(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}

	for _, p := range placeholderKeys {
		if strings.Contains(key, p) {
			return false
		}
	}

	return true
}

func newClient(apiKey, baseURL string, hc *http.Client) *openai.Client {
	cc := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cc.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if hc != nil {
		cc.HTTPClient = hc
	}

	return openai.NewClientWithConfig(cc)
}

func messages(prompt, system string) []openai.ChatCompletionMessage {
	if system == "" {
		system = DefaultSystemMessage
	}

	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}
}

// Completion — провайдер с обычным (не потоковым) chat completion.
// Используется для OpenAI и DeepSeek.
type Completion struct {
	name   string
	model  string
	apiKey string
	client *openai.Client
}

// NewOpenAI создаёт провайдера OpenAI.
func NewOpenAI(pc config.ProviderConfig, hc *http.Client) *Completion {
	return newCompletion(config.ProviderOpenAI, pc, hc)
}

// NewDeepSeek создаёт провайдера DeepSeek (OpenAI-совместимый API).
func NewDeepSeek(pc config.ProviderConfig, hc *http.Client) *Completion {
	return newCompletion(config.ProviderDeepSeek, pc, hc)
}

func newCompletion(name string, pc config.ProviderConfig, hc *http.Client) *Completion {
	return &Completion{
		name:   name,
		model:  pc.Model,
		apiKey: pc.APIKey,
		client: newClient(pc.APIKey, pc.BaseURL, hc),
	}
}

func (c *Completion) Name() string    { return c.name }
func (c *Completion) Available() bool { return usableKey(c.apiKey) }

func (c *Completion) Generate(ctx context.Context, prompt, system string) (string, error) {
	op := "generator." + c.name + ".Generate"

	if !c.Available() {
		return "", fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages(prompt, system),
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: empty choices", op)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// NewProvider выбирает провайдера по cfg.Provider.
// "none" отключает генерацию (nil); неизвестное значение трактуется как groq.
func NewProvider(cfg config.AIConfig, hc *http.Client) Provider {
	switch cfg.Provider {
	case config.ProviderNone:
		return nil
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.OpenAIProvider(), hc)
	case config.ProviderDeepSeek:
		return NewDeepSeek(cfg.DeepSeekProvider(), hc)
	default:
		return NewGroq(cfg.Groq, hc)
	}
}
