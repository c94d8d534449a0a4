package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/pkg/log"
)

// ChannelsBaseURL — веб-превью публичных каналов.
const ChannelsBaseURL = "https://t.me"

const (
	minChannelText  = 20
	maxChannelTitle = 100
)

// Channels читает последние сообщения публичных каналов через t.me/s/<name>.
// API-ключи не нужны; каналы опрашиваются последовательно одним вызовом.
type Channels struct {
	client  *http.Client
	baseURL string
	limit   int
}

// NewChannels создаёт адаптер каналов; limit — сколько последних сообщений брать с канала.
func NewChannels(client *http.Client, baseURL string, limit int) *Channels {
	if limit <= 0 {
		limit = 5
	}

	return &Channels{client: client, baseURL: strings.TrimRight(baseURL, "/"), limit: limit}
}

// FetchChannels реализует service.ChannelAdapter.
// Ошибка одного канала не отменяет остальные: они возвращаются вместе с
// собранными сообщениями через errors.Join.
func (c *Channels) FetchChannels(ctx context.Context, usernames []string) ([]models.RawItem, error) {
	const op = "sources.channel.FetchChannels"

	lg := log.From(ctx)

	var (
		items []models.RawItem
		errs  []error
	)

	for _, name := range usernames {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		got, err := c.fetchOne(ctx, name)
		if err != nil {
			lg.Warn("channel_fetch_failed",
				slog.String("op", op),
				slog.String("channel", name),
				slog.String("err", err.Error()),
			)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		items = append(items, got...)
	}

	if len(errs) > 0 {
		return items, fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}

	return items, nil
}

func (c *Channels) fetchOne(ctx context.Context, name string) ([]models.RawItem, error) {
	doc, err := fetchDocument(ctx, c.client, c.baseURL+"/s/"+name)
	if err != nil {
		return nil, err
	}

	wraps := doc.Find(".tgme_widget_message_wrap")
	if n := wraps.Length(); n > c.limit {
		wraps = wraps.Slice(n-c.limit, n)
	}

	var items []models.RawItem
	wraps.Each(func(_ int, wrap *goquery.Selection) {
		body := wrap.Find(".tgme_widget_message_text").First()
		if body.Length() == 0 {
			return
		}

		text := messageText(body)
		if utf8.RuneCountInString(text) < minChannelText {
			return
		}

		postID := "0"
		if post, ok := wrap.Find(".tgme_widget_message").First().Attr("data-post"); ok {
			if i := strings.LastIndex(post, "/"); i >= 0 {
				postID = post[i+1:]
			}
		}

		items = append(items, models.RawItem{
			Title:   firstLine(text, maxChannelTitle),
			URL:     fmt.Sprintf("%s/%s/%s", c.baseURL, name, postID),
			Summary: text,
			Source:  "tg:" + name,
		})
	})

	return items, nil
}

// messageText возвращает текст сообщения, сохраняя переносы строк из <br>.
func messageText(body *goquery.Selection) string {
	body = body.Clone()
	body.Find("br").ReplaceWithHtml("\n")
	return strings.TrimSpace(body.Text())
}

func firstLine(text string, max int) string {
	line, _, _ := strings.Cut(text, "\n")
	line = strings.TrimSpace(line)

	if utf8.RuneCountInString(line) > max {
		line = string([]rune(line)[:max])
	}

	return line
}
