package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/pribylovaa/newsbot/internal/models"
)

// Feed читает RSS/Atom-ленты источников типа rss.
type Feed struct {
	client *http.Client
	limit  int
}

// NewFeed создаёт адаптер лент; limit ограничивает число записей с ленты (<=0 — без ограничения).
func NewFeed(client *http.Client, limit int) *Feed {
	return &Feed{client: client, limit: limit}
}

// Fetch реализует service.Adapter.
func (f *Feed) Fetch(ctx context.Context, src models.Source) ([]models.RawItem, error) {
	const op = "sources.feed.Fetch"

	resp, err := get(ctx, f.client, src.URL)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, src.URL, err)
	}
	defer resp.Body.Close()

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: parse: %w", op, err)
	}

	items := make([]models.RawItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		if f.limit > 0 && len(items) >= f.limit {
			break
		}

		link := strings.TrimSpace(it.Link)
		if link == "" && strings.HasPrefix(it.GUID, "http") {
			link = strings.TrimSpace(it.GUID)
		}

		items = append(items, models.RawItem{
			Title:   strings.TrimSpace(it.Title),
			URL:     link,
			Summary: plainText(it.Description),
		})
	}

	return items, nil
}

// plainText снимает HTML-разметку с описания записи.
func plainText(html string) string {
	if !strings.Contains(html, "<") {
		return strings.TrimSpace(html)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}
