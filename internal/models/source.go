package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SourceType — вид источника; определяет, каким адаптером он опрашивается.
type SourceType string

const (
	// SourceTypeSite — веб-страница со списком статей.
	SourceTypeSite SourceType = "site"
	// SourceTypeChannel — публичный Telegram-канал.
	SourceTypeChannel SourceType = "channel"
	// SourceTypeRSS — RSS/Atom-лента.
	SourceTypeRSS SourceType = "rss"

	// legacyChannelType — прежнее обозначение каналов в хранилище.
	legacyChannelType = "tg"
)

// ParseSourceType приводит строку к SourceType (без учёта регистра).
func ParseSourceType(s string) (SourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SourceTypeSite):
		return SourceTypeSite, nil
	case string(SourceTypeChannel), legacyChannelType:
		return SourceTypeChannel, nil
	case string(SourceTypeRSS):
		return SourceTypeRSS, nil
	}

	return "", fmt.Errorf("unknown source type %q", s)
}

// UnmarshalJSON принимает и устаревшее значение "tg".
func (t *SourceType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := ParseSourceType(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// Source — настроенный источник новостей.
type Source struct {
	ID      string     `json:"id"`
	Type    SourceType `json:"type"`
	Name    string     `json:"name"`
	URL     string     `json:"url"`
	Enabled bool       `json:"enabled"`
}

// ChannelUsername выделяет имя канала из URL вида https://t.me/<name> или @<name>.
func (s Source) ChannelUsername() string {
	name := strings.TrimSpace(s.URL)
	name = strings.TrimPrefix(name, "https://")
	name = strings.TrimPrefix(name, "http://")
	if rest, ok := strings.CutPrefix(name, "t.me/"); ok {
		// Веб-превью канала: t.me/s/<name>.
		name = strings.TrimPrefix(rest, "s/")
	}
	name = strings.TrimPrefix(name, "@")

	return strings.Trim(name, "/")
}
