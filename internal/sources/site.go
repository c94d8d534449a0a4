package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/pkg/log"
)

// Страницы встроенных сайтов.
const (
	HabrNewsURL   = "https://habr.com/ru/news/"
	VCNewsURL     = "https://vc.ru/new"
	IXBTNewsURL   = "https://www.ixbt.com/news/"
	TprogerURL    = "https://tproger.ru"
	ThreeDNewsURL = "https://3dnews.ru"
)

// minGenericTitle — ссылки с более коротким текстом считаются меню/служебными.
const minGenericTitle = 20

// Site — адаптер страницы со списком статей.
//
// Если задан cards, статьи ищутся по карточкам (с запасным селектором fallbackCards);
// когда карточек нет, а generic=true, страница разбирается универсальным
// парсером ссылок: ссылки того же сайта с текстом от 20 символов, без повторов URL.
type Site struct {
	client        *http.Client
	pageURL       string
	limit         int
	minTitle      int
	cards         string
	fallbackCards string
	pickLink      func(card *goquery.Selection) *goquery.Selection
	generic       bool
}

// NewHabr — лента новостей Хабра.
func NewHabr(client *http.Client, pageURL string) *Site {
	return &Site{
		client:        client,
		pageURL:       pageURL,
		limit:         20,
		cards:         "article.tm-articles-list__item",
		fallbackCards: "article",
		pickLink: func(card *goquery.Selection) *goquery.Selection {
			if a := card.Find("a.tm-title__link").First(); a.Length() > 0 {
				return a
			}
			return card.Find("h2").First().Find("a").First()
		},
	}
}

// NewVC — новые записи vc.ru.
func NewVC(client *http.Client, pageURL string) *Site {
	return &Site{
		client:   client,
		pageURL:  pageURL,
		limit:    50,
		minTitle: 25,
		cards:    ".feed__item, .content-title, .v-article",
		pickLink: func(card *goquery.Selection) *goquery.Selection {
			if goquery.NodeName(card) == "a" {
				return card
			}
			if a := card.Find("a.content-link").First(); a.Length() > 0 {
				return a
			}
			return card.Find("a").First()
		},
		generic: true,
	}
}

// NewIXBT — новости iXBT.
func NewIXBT(client *http.Client, pageURL string) *Site {
	return &Site{
		client:   client,
		pageURL:  pageURL,
		limit:    50,
		minTitle: 20,
		cards:    ".news-list li, .news-list-item, .item_news",
		pickLink: func(card *goquery.Selection) *goquery.Selection {
			return card.Find("a").First()
		},
		generic: true,
	}
}

// NewGeneric — универсальный парсер ссылок.
// При пустом pageURL разбирается страница из Source.URL.
func NewGeneric(client *http.Client, pageURL string, limit int) *Site {
	return &Site{client: client, pageURL: pageURL, limit: limit, generic: true}
}

// Fetch реализует service.Adapter.
func (s *Site) Fetch(ctx context.Context, src models.Source) ([]models.RawItem, error) {
	const op = "sources.site.Fetch"

	pageURL := s.pageURL
	if pageURL == "" {
		pageURL = strings.TrimSpace(src.URL)
	}
	if pageURL == "" {
		return nil, fmt.Errorf("%s: source %q has no url", op, src.ID)
	}

	base, err := siteBase(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	doc, err := fetchDocument(ctx, s.client, pageURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, pageURL, err)
	}

	var items []models.RawItem
	if s.cards != "" {
		cards := doc.Find(s.cards)
		if cards.Length() == 0 && s.fallbackCards != "" {
			cards = doc.Find(s.fallbackCards)
		}
		items = s.fromCards(cards, base)
	}

	if len(items) == 0 && s.generic {
		items = parseLinks(doc, base, minGenericTitle, s.limit)
	}

	log.From(ctx).Debug("site_parsed",
		slog.String("op", op),
		slog.String("source", src.ID),
		slog.Int("items", len(items)),
	)

	return items, nil
}

func (s *Site) fromCards(cards *goquery.Selection, base string) []models.RawItem {
	var items []models.RawItem
	seen := make(map[string]struct{})

	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		link := s.pickLink(card)
		if link == nil || link.Length() == 0 {
			return true
		}

		title := strings.TrimSpace(link.Text())
		href := strings.TrimSpace(link.AttrOr("href", ""))
		if href == "" || title == "" || utf8.RuneCountInString(title) < s.minTitle {
			return true
		}

		full := absolute(base, href)
		if _, dup := seen[full]; dup {
			return true
		}
		seen[full] = struct{}{}

		items = append(items, models.RawItem{Title: title, URL: full})
		return s.limit <= 0 || len(items) < s.limit
	})

	return items
}

// parseLinks — универсальный разбор: все <a> того же сайта с достаточно длинным текстом.
func parseLinks(doc *goquery.Document, base string, minTitle, limit int) []models.RawItem {
	var items []models.RawItem
	seen := make(map[string]struct{})

	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		text := strings.TrimSpace(a.Text())
		if href == "" || text == "" {
			return true
		}

		var full string
		switch {
		case strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//"):
			full = base + href
		case strings.HasPrefix(href, base):
			full = href
		default:
			return true
		}

		if utf8.RuneCountInString(text) < minTitle {
			return true
		}
		if _, dup := seen[full]; dup {
			return true
		}
		seen[full] = struct{}{}

		items = append(items, models.RawItem{Title: text, URL: full})
		return limit <= 0 || len(items) < limit
	})

	return items
}

// siteBase возвращает scheme://host страницы.
func siteBase(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid page url %q", pageURL)
	}

	return u.Scheme + "://" + u.Host, nil
}

func absolute(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}

	return base + href
}
