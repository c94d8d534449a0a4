package service

import (
	"net/url"
	"strings"
	"time"

	"github.com/pribylovaa/newsbot/internal/models"
)

// normalize доводит сырую запись адаптера до инвариантов домена:
//   - Title/URL обязательны (после TrimSpace) — иначе запись отбрасывается;
//   - URL канонизируется (без #fragment и трекинговых параметров) до вычисления ID;
//   - Source := raw.Source || sourceID;
//   - Summary := Summary || placeholder;
//   - PublishedAt := nowUTC, Keywords := [].
//
// Возвращает (новость, ok=false если запись следует отбросить).
func normalize(sourceID string, raw models.RawItem, placeholder string, nowUTC time.Time) (models.News, bool) {
	title := strings.TrimSpace(raw.Title)
	link := canonicalLink(raw.URL)

	if title == "" || link == "" {
		return models.News{}, false
	}

	source := strings.TrimSpace(raw.Source)
	if source == "" {
		source = sourceID
	}

	summary := strings.TrimSpace(raw.Summary)
	if summary == "" {
		summary = placeholder
	}

	return models.News{
		ID:          NewsID(source, link),
		Title:       title,
		URL:         link,
		Summary:     summary,
		Source:      source,
		PublishedAt: nowUTC,
		Keywords:    []string{},
	}, true
}

// canonicalLink нормализует ссылку: убирает фрагмент и трекинг.
// Не-HTTP(S) и неразбираемые ссылки возвращаются как есть (после TrimSpace).
func canonicalLink(raw string) string {
	str := strings.TrimSpace(raw)

	u, err := url.Parse(str)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return str
	}

	u.Fragment = ""
	u.RawFragment = ""

	if u.RawQuery != "" {
		q := u.Query()
		for k := range q {
			lk := strings.ToLower(k)
			if strings.HasPrefix(lk, "utm_") || strings.HasSuffix(lk, "clid") || strings.HasPrefix(lk, "mc_") || lk == "igshid" {
				q.Del(k)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u.String()
}
