package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/stretchr/testify/require"
)

// serveHTML — httptest-сервер, отдающий одну страницу и запоминающий User-Agent.
func serveHTML(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()

	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, &ua
}

const habrPage = `<html><body>
<article class="tm-articles-list__item">
  <h2 class="tm-title tm-title_h2"><a class="tm-title__link" href="/ru/news/1001/">Вышел Go 1.24 с итераторами</a></h2>
</article>
<article class="tm-articles-list__item">
  <h2><a href="https://habr.com/ru/news/1002/">Новости без класса ссылки</a></h2>
</article>
<article class="tm-articles-list__item"><p>без ссылки</p></article>
</body></html>`

// TestHabr_Cards — карточки Хабра: класс ссылки, запасной h2 a, относительные URL.
func TestHabr_Cards(t *testing.T) {
	t.Parallel()

	srv, ua := serveHTML(t, http.StatusOK, habrPage)
	a := NewHabr(srv.Client(), srv.URL+"/ru/news/")

	items, err := a.Fetch(context.Background(), models.Source{ID: "habr"})
	require.NoError(t, err)
	require.Equal(t, []models.RawItem{
		{Title: "Вышел Go 1.24 с итераторами", URL: srv.URL + "/ru/news/1001/"},
		{Title: "Новости без класса ссылки", URL: "https://habr.com/ru/news/1002/"},
	}, items)
	require.Contains(t, *ua, "Mozilla/5.0")
}

// TestHabr_FallbackToArticle — без карточек с классом берутся любые <article>.
func TestHabr_FallbackToArticle(t *testing.T) {
	t.Parallel()

	srv, _ := serveHTML(t, http.StatusOK, `<article><h2><a href="/ru/news/7/">Заголовок</a></h2></article>`)

	items, err := NewHabr(srv.Client(), srv.URL).Fetch(context.Background(), models.Source{ID: "habr"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, srv.URL+"/ru/news/7/", items[0].URL)
}

// TestGeneric_Links — универсальный парсер: свой домен, длина текста, дедупликация.
func TestGeneric_Links(t *testing.T) {
	t.Parallel()

	page := `<html><body>
<a href="/news/1">Достаточно длинный заголовок новости</a>
<a href="/news/1">Достаточно длинный заголовок новости</a>
<a href="/menu">Меню</a>
<a href="https://other.example/x">Чужой домен с длинным заголовком</a>
<a href="//cdn.example/y">Протокол-относительная ссылка на CDN</a>
<a href="">Пустая ссылка с длинным текстом</a>
</body></html>`
	srv, _ := serveHTML(t, http.StatusOK, page)

	items, err := NewGeneric(srv.Client(), srv.URL, 50).Fetch(context.Background(), models.Source{ID: "tproger"})
	require.NoError(t, err)
	require.Equal(t, []models.RawItem{
		{Title: "Достаточно длинный заголовок новости", URL: srv.URL + "/news/1"},
	}, items)
}

// TestGeneric_UsesSourceURL — адаптер по типу site берёт страницу из Source.URL.
func TestGeneric_UsesSourceURL(t *testing.T) {
	t.Parallel()

	srv, _ := serveHTML(t, http.StatusOK, `<a href="/a">Заголовок длиной больше двадцати</a>`)

	items, err := NewGeneric(srv.Client(), "", 50).Fetch(context.Background(), models.Source{ID: "custom", URL: srv.URL + "/feed"})
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = NewGeneric(srv.Client(), "", 50).Fetch(context.Background(), models.Source{ID: "empty"})
	require.Error(t, err)
}

// TestVC_CardsAndGenericFallback — vc.ru: карточки с порогом 25 символов, иначе универсальный парсер.
func TestVC_CardsAndGenericFallback(t *testing.T) {
	t.Parallel()

	cards := `<div class="feed__item"><a class="content-link" href="/tech/1">Очень длинный заголовок статьи на vc.ru</a></div>
<div class="feed__item"><a href="/tech/2">Короткий</a></div>`
	srv, _ := serveHTML(t, http.StatusOK, cards)

	items, err := NewVC(srv.Client(), srv.URL+"/new").Fetch(context.Background(), models.Source{ID: "vc"})
	require.NoError(t, err)
	require.Equal(t, []models.RawItem{{Title: "Очень длинный заголовок статьи на vc.ru", URL: srv.URL + "/tech/1"}}, items)

	plain, _ := serveHTML(t, http.StatusOK, `<a href="/x">Ссылка без карточек, но длинная</a>`)
	items, err = NewVC(plain.Client(), plain.URL+"/new").Fetch(context.Background(), models.Source{ID: "vc"})
	require.NoError(t, err)
	require.Len(t, items, 1)
}

// TestSite_Limit — число записей ограничено лимитом адаптера.
func TestSite_Limit(t *testing.T) {
	t.Parallel()

	page := `<a href="/1">Первый заголовок достаточной длины</a>
<a href="/2">Второй заголовок достаточной длины</a>
<a href="/3">Третий заголовок достаточной длины</a>`
	srv, _ := serveHTML(t, http.StatusOK, page)

	items, err := NewGeneric(srv.Client(), srv.URL, 2).Fetch(context.Background(), models.Source{ID: "3dnews"})
	require.NoError(t, err)
	require.Len(t, items, 2)
}

// TestSite_HTTPError — не-200 превращается в ошибку адаптера.
func TestSite_HTTPError(t *testing.T) {
	t.Parallel()

	srv, _ := serveHTML(t, http.StatusBadGateway, "")

	_, err := NewIXBT(srv.Client(), srv.URL).Fetch(context.Background(), models.Source{ID: "ixbt"})
	require.ErrorContains(t, err, "status=502")
}
