package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pribylovaa/newsbot/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

const (
	groqMaxTokens          = 4096
	groqMaxReasoningTokens = 8192
)

// Groq — потоковый провайдер Groq.
type Groq struct {
	model           string
	apiKey          string
	reasoningEffort string
	client          *openai.Client
}

// NewGroq создаёт провайдера Groq.
func NewGroq(cfg config.GroqConfig, hc *http.Client) *Groq {
	return &Groq{
		model:           cfg.Model,
		apiKey:          cfg.APIKey,
		reasoningEffort: cfg.ReasoningEffort,
		client:          newClient(cfg.APIKey, cfg.BaseURL, hc),
	}
}

func (g *Groq) Name() string    { return config.ProviderGroq }
func (g *Groq) Available() bool { return usableKey(g.apiKey) }

// reasoning сообщает, принимает ли модель reasoning_effort.
func (g *Groq) reasoning() bool {
	return strings.Contains(g.model, "gpt-oss") || strings.Contains(g.model, "o1")
}

func (g *Groq) request(prompt, system string) openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: messages(prompt, system),
		Stream:   true,
	}

	if g.reasoning() {
		req.ReasoningEffort = g.reasoningEffort
		req.MaxCompletionTokens = groqMaxReasoningTokens
		return req
	}

	req.Temperature = 0.7
	req.TopP = 1
	req.MaxTokens = groqMaxTokens

	return req
}

// Generate собирает ответ из потока. Если поток оборвался после части
// ответа, возвращается накопленный текст.
func (g *Groq) Generate(ctx context.Context, prompt, system string) (string, error) {
	const op = "generator.groq.Generate"

	if !g.Available() {
		return "", fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	stream, err := g.client.CreateChatCompletionStream(ctx, g.request(prompt, system))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer stream.Close()

	var b strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if b.Len() > 0 {
				break
			}
			return "", fmt.Errorf("%s: recv: %w", op, err)
		}

		if len(chunk.Choices) > 0 {
			b.WriteString(chunk.Choices[0].Delta.Content)
		}
	}

	return strings.TrimSpace(b.String()), nil
}
