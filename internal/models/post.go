package models

import "time"

// PostStatus — жизненный цикл поста.
type PostStatus string

const (
	PostStatusNew       PostStatus = "new"
	PostStatusGenerated PostStatus = "generated"
	PostStatusPublished PostStatus = "published"
	PostStatusFailed    PostStatus = "failed"
)

// Valid сообщает, входит ли статус в допустимый набор.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusNew, PostStatusGenerated, PostStatusPublished, PostStatusFailed:
		return true
	}

	return false
}

// Post — запись о публикации новости в канал.
// Создаётся только после успешной доставки.
type Post struct {
	ID            string     `json:"id"`
	NewsID        string     `json:"news_id"`
	GeneratedText string     `json:"generated_text"`
	PublishedAt   *time.Time `json:"published_at"`
	Status        PostStatus `json:"status"`
}
