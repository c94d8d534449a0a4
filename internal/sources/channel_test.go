package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func tgMessage(channel string, id int, html string) string {
	return fmt.Sprintf(`<div class="tgme_widget_message_wrap">
  <div class="tgme_widget_message" data-post="%s/%d">
    <div class="tgme_widget_message_text">%s</div>
  </div>
</div>`, channel, id, html)
}

// TestChannels_LastMessages — берутся последние limit сообщений, короткие пропускаются.
func TestChannels_LastMessages(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("Д", 120)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/s/golang":
			_, _ = w.Write([]byte(strings.Join([]string{
				tgMessage("golang", 1, "Старое сообщение за пределами лимита"),
				tgMessage("golang", 2, "Релиз Go 1.24<br/>Подробности внутри поста"),
				tgMessage("golang", 3, "коротко"),
				tgMessage("golang", 4, long),
			}, "\n")))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := NewChannels(srv.Client(), srv.URL, 3)
	items, err := a.FetchChannels(context.Background(), []string{"golang"})
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.Equal(t, "Релиз Go 1.24", items[0].Title)
	require.Equal(t, "Релиз Go 1.24\nПодробности внутри поста", items[0].Summary)
	require.Equal(t, srv.URL+"/golang/2", items[0].URL)
	require.Equal(t, "tg:golang", items[0].Source)

	require.Equal(t, 100, len([]rune(items[1].Title)))
	require.Equal(t, srv.URL+"/golang/4", items[1].URL)
}

// TestChannels_OneFailingChannel — ошибка одного канала не теряет сообщения других.
func TestChannels_OneFailingChannel(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/s/ok" {
			_, _ = w.Write([]byte(tgMessage("ok", 9, "Сообщение канала длиной больше двадцати")))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	items, err := NewChannels(srv.Client(), srv.URL, 5).FetchChannels(context.Background(), []string{"broken", "ok"})
	require.Error(t, err)
	require.ErrorContains(t, err, "broken")
	require.Len(t, items, 1)
	require.Equal(t, "tg:ok", items[0].Source)
}
