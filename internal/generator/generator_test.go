package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pribylovaa/newsbot/internal/config"
	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/stretchr/testify/require"
)

type staticSwitch bool

func (s staticSwitch) AIEnabled(context.Context) bool { return bool(s) }

// completionServer — OpenAI-совместимый сервер с фиксированным ответом.
func completionServer(t *testing.T, content string, status int, calls *atomic.Int32, body *atomic.Value) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		calls.Add(1)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if body != nil {
			body.Store(req)
		}

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"insufficient_quota","type":"insufficient_quota"}}`))
			return
		}

		resp := map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"model":  req["model"],
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	return srv
}

// streamServer — Groq-подобный сервер, отдающий ответ частями в SSE.
func streamServer(t *testing.T, parts []string, body *atomic.Value) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		body.Store(req)

		w.Header().Set("Content-Type", "text/event-stream")
		for _, p := range parts {
			chunk, _ := json.Marshal(map[string]any{
				"id":      "chunk",
				"object":  "chat.completion.chunk",
				"choices": []map[string]any{{"index": 0, "delta": map[string]any{"content": p}}},
			})
			fmt.Fprintf(w, "data: %s\n\n", chunk)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	t.Cleanup(srv.Close)

	return srv
}

// brokenStreamServer отдаёт parts и рвёт соединение без [DONE].
func brokenStreamServer(t *testing.T, parts []string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		for _, p := range parts {
			chunk, _ := json.Marshal(map[string]any{
				"id":      "chunk",
				"object":  "chat.completion.chunk",
				"choices": []map[string]any{{"index": 0, "delta": map[string]any{"content": p}}},
			})
			fmt.Fprintf(w, "data: %s\n\n", chunk)
		}
		w.(http.Flusher).Flush()

		conn, _, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	}))
	t.Cleanup(srv.Close)

	return srv
}

var sample = models.News{
	ID:      "id",
	Title:   "Go 1.24",
	URL:     "https://habr.com/1",
	Summary: "Новый релиз",
	Source:  "habr",
}

// TestGeneratePost_OpenAI — баннер провайдера и промпт с полями новости.
func TestGeneratePost_OpenAI(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var body atomic.Value
	srv := completionServer(t, "  Пост  ", http.StatusOK, &calls, &body)

	p := NewOpenAI(config.ProviderConfig{APIKey: "test-key", Model: "gpt-3.5-turbo", BaseURL: srv.URL}, srv.Client())
	g := New(p, time.Second, nil)
	g.UseSwitch(staticSwitch(true))

	got := g.GeneratePost(context.Background(), sample)
	require.Equal(t, "🤖 [ИИ] (OpenAI)\n\nПост", got)
	require.EqualValues(t, 1, calls.Load())

	req := body.Load().(map[string]any)
	msgs := req["messages"].([]any)
	require.Len(t, msgs, 2)
	require.Equal(t, postSystemMessage, msgs[0].(map[string]any)["content"])
	user := msgs[1].(map[string]any)["content"].(string)
	require.Contains(t, user, "Заголовок: Go 1.24\n")
	require.Contains(t, user, "Ссылка: https://habr.com/1\n\n")
}

// TestGeneratePost_Fallback — выключенный переключатель, нет ключа или ошибка дают шаблон.
func TestGeneratePost_Fallback(t *testing.T) {
	t.Parallel()

	want := "📝 [Original]\n\n📢 Go 1.24\n\nНовый релиз\n\n🔗 Источник: habr\n👉 Читать полностью: https://habr.com/1"

	t.Run("switch off", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := completionServer(t, "x", http.StatusOK, &calls, nil)
		g := New(NewDeepSeek(config.ProviderConfig{APIKey: "test-key", Model: "deepseek-chat", BaseURL: srv.URL}, srv.Client()), time.Second, nil)
		g.UseSwitch(staticSwitch(false))

		require.Equal(t, want, g.GeneratePost(context.Background(), sample))
		require.EqualValues(t, 0, calls.Load())
	})

	t.Run("placeholder key", func(t *testing.T) {
		t.Parallel()

		g := New(NewGroq(config.GroqConfig{APIKey: "your_groq_key_here", Model: "llama"}, nil), time.Second, nil)
		require.False(t, g.Available())
		require.Equal(t, want, g.GeneratePost(context.Background(), sample))
	})

	t.Run("provider error", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := completionServer(t, "", http.StatusTooManyRequests, &calls, nil)
		g := New(NewOpenAI(config.ProviderConfig{APIKey: "test-key", Model: "gpt", BaseURL: srv.URL}, srv.Client()), time.Second, nil)

		require.Equal(t, want, g.GeneratePost(context.Background(), sample))
		require.EqualValues(t, 1, calls.Load())
	})

	t.Run("no provider", func(t *testing.T) {
		t.Parallel()

		g := New(nil, time.Second, nil)
		require.Equal(t, "none", g.ProviderName())
		require.Equal(t, want, g.GeneratePost(context.Background(), sample))
	})
}

// TestGroq_Stream — части потока склеиваются, обычная модель получает max_tokens.
func TestGroq_Stream(t *testing.T) {
	t.Parallel()

	var body atomic.Value
	srv := streamServer(t, []string{"При", "вет", "!"}, &body)

	g := New(NewGroq(config.GroqConfig{APIKey: "k", Model: "llama-3.3-70b-versatile", BaseURL: srv.URL, ReasoningEffort: "medium"}, srv.Client()), time.Second, nil)

	text, ok := g.Generate(context.Background(), "hi", "", false)
	require.True(t, ok)
	require.Equal(t, "Привет!", text)

	req := body.Load().(map[string]any)
	require.Equal(t, true, req["stream"])
	require.EqualValues(t, 4096, req["max_tokens"])
	require.InDelta(t, 0.7, req["temperature"], 1e-6)
	require.NotContains(t, req, "reasoning_effort")
	require.Equal(t, DefaultSystemMessage, req["messages"].([]any)[0].(map[string]any)["content"])
}

// TestGroq_ReasoningModel — reasoning-модели получают reasoning_effort и max_completion_tokens.
func TestGroq_ReasoningModel(t *testing.T) {
	t.Parallel()

	var body atomic.Value
	srv := streamServer(t, []string{"ok"}, &body)

	g := New(NewGroq(config.GroqConfig{APIKey: "k", Model: "openai/gpt-oss-120b", BaseURL: srv.URL, ReasoningEffort: "high"}, srv.Client()), time.Second, nil)

	text, ok := g.Generate(context.Background(), "hi", "sys", false)
	require.True(t, ok)
	require.Equal(t, "ok", text)

	req := body.Load().(map[string]any)
	require.Equal(t, "high", req["reasoning_effort"])
	require.EqualValues(t, 8192, req["max_completion_tokens"])
	require.NotContains(t, req, "max_tokens")
}

// TestGroq_BrokenStream — обрыв потока после части ответа считается успехом,
// обрыв до первого фрагмента — сбоем с откатом к шаблону.
func TestGroq_BrokenStream(t *testing.T) {
	t.Parallel()

	groq := func(srv *httptest.Server) *Generator {
		return New(NewGroq(config.GroqConfig{APIKey: "k", Model: "llama-3.3-70b-versatile", BaseURL: srv.URL}, srv.Client()), time.Second, nil)
	}

	t.Run("partial content", func(t *testing.T) {
		t.Parallel()

		g := groq(brokenStreamServer(t, []string{"Част", "ичный"}))

		text, ok := g.Generate(context.Background(), "hi", "", false)
		require.True(t, ok)
		require.Equal(t, "Частичный", text)
	})

	t.Run("no content", func(t *testing.T) {
		t.Parallel()

		g := groq(brokenStreamServer(t, nil))

		text, ok := g.Generate(context.Background(), "hi", "", false)
		require.False(t, ok)
		require.Empty(t, text)

		require.Equal(t, OriginalPost(sample), g.GeneratePost(context.Background(), sample))
	})
}

// TestGenerateChatResponse — чат игнорирует переключатель, при сбое возвращает извинение.
func TestGenerateChatResponse(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := completionServer(t, "Ответ", http.StatusOK, &calls, nil)
	g := New(NewOpenAI(config.ProviderConfig{APIKey: "test-key", Model: "gpt", BaseURL: srv.URL}, srv.Client()), time.Second, nil)
	g.UseSwitch(staticSwitch(false))

	require.Equal(t, "Ответ", g.GenerateChatResponse(context.Background(), "Что нового в Go?"))

	down := New(nil, time.Second, nil)
	require.Equal(t, ChatApology, down.GenerateChatResponse(context.Background(), "hi"))
}

// TestNewProvider — выбор провайдера по конфигурации.
func TestNewProvider(t *testing.T) {
	t.Parallel()

	cfg := config.AIConfig{
		OpenAI:   config.OpenAIConfig{APIKey: "a"},
		DeepSeek: config.DeepSeekConfig{APIKey: "b"},
		Groq:     config.GroqConfig{APIKey: "c"},
	}

	for provider, want := range map[string]string{"openai": "openai", "deepseek": "deepseek", "groq": "groq", "mystery": "groq"} {
		cfg.Provider = provider
		p := NewProvider(cfg, nil)
		require.NotNil(t, p)
		require.Equal(t, want, p.Name())
		require.True(t, p.Available())
	}

	cfg.Provider = "none"
	require.Nil(t, NewProvider(cfg, nil))
}

func Test_displayName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Groq", displayName("groq"))
	require.Equal(t, "DeepSeek", displayName("deepseek"))
	require.Equal(t, "Mistral", displayName("mistral"))
	require.True(t, strings.HasPrefix(OriginalPost(sample), "📝 [Original]"))
}
