package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSourceType_UnmarshalLegacy — "tg" читается как channel.
func TestSourceType_UnmarshalLegacy(t *testing.T) {
	t.Parallel()

	var src Source
	require.NoError(t, json.Unmarshal([]byte(`{"id":"habr_tg","type":"tg","url":"https://t.me/habr_com","enabled":true}`), &src))
	require.Equal(t, SourceTypeChannel, src.Type)

	require.Error(t, json.Unmarshal([]byte(`{"type":"fax"}`), &src))
}

// TestSource_ChannelUsername — префиксы t.me и @ отбрасываются.
func TestSource_ChannelUsername(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"https://t.me/habr_com":     "habr_com",
		"https://t.me/s/techcrunch": "techcrunch",
		"@durov":                    "durov",
		"https://t.me/golang/":      "golang",
		"t.me/s/habr_com":           "habr_com",
		"http://t.me/s/golang_news": "golang_news",
		"t.me/techcrunch":           "techcrunch",
	}

	for in, want := range cases {
		require.Equal(t, want, Source{URL: in}.ChannelUsername(), in)
	}
}
