package middleware

import (
	"net/http"
	"time"
)

// Observer получает итог каждого запроса; реализуется *metrics.Metrics.
type Observer interface {
	ObserveHTTP(route, method string, status int, start time.Time)
}

// Instrument отдаёт метрики запроса в obs. Метка route — шаблон chi,
// а не сырой путь: иначе /news/{id} раздувает кардинальность.
// obs == nil — мидлвар ничего не делает.
func Instrument(obs Observer) Middleware {
	return func(next http.Handler) http.Handler {
		if obs == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)
			obs.ObserveHTTP(routePattern(r), r.Method, sw.Status(), start)
		})
	}
}
