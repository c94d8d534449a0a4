// models содержит доменные сущности newsbot.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import "time"

// News — нормализованная новость из внешнего источника.
//
// Особенности:
//   - ID — hex(sha256(source + ":" + url)), совпадает для повторных встреч;
//   - PublishedAt — момент сбора (UTC), а не время публикации у источника;
//   - Keywords всегда не nil (пустой список на этапе сбора).
type News struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Keywords    []string  `json:"keywords"`
}

// RawItem — запись, как её вернул адаптер источника, до нормализации.
type RawItem struct {
	Title   string
	URL     string
	Summary string
	// Source — метка источника; пусто, если адаптер не задаёт собственную
	// (тогда используется ID источника).
	Source string
}
