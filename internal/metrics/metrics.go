// metrics — Prometheus-коллекторы конвейера newsbot.
// Методы безопасны для nil *Metrics: без метрик вызовы ничего не делают.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "newsbot"

// Metrics агрегирует коллекторы сервиса.
type Metrics struct {
	collected       prometheus.Counter
	stored          *prometheus.CounterVec
	published       *prometheus.CounterVec
	generated       *prometheus.CounterVec
	adapterFailures *prometheus.CounterVec
	jobDuration     *prometheus.HistogramVec
	httpDuration    *prometheus.HistogramVec
}

// New создаёт коллекторы и регистрирует их в reg (обычно prometheus.DefaultRegisterer).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		collected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_collected_total",
			Help:      "Items returned by source adapters after normalization.",
		}),
		stored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_stored_total",
			Help:      "Deduplication gate outcomes.",
		}, []string{"result"}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_total",
			Help:      "Publish job outcomes.",
		}, []string{"status"}),
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_total",
			Help:      "Text generation attempts by provider and result.",
		}, []string{"provider", "result"}),
		adapterFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adapter_failures_total",
			Help:      "Source adapter failures.",
		}, []string{"source"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Duration of scheduled jobs.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"job"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Admin API request duration by route pattern, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	if reg != nil {
		reg.MustRegister(m.collected, m.stored, m.published, m.generated, m.adapterFailures, m.jobDuration, m.httpDuration)
	}

	return m
}

func (m *Metrics) ItemsCollected(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.collected.Add(float64(n))
}

func (m *Metrics) ItemAdmitted(result string) {
	if m == nil {
		return
	}
	m.stored.WithLabelValues(result).Inc()
}

func (m *Metrics) Published(status string) {
	if m == nil {
		return
	}
	m.published.WithLabelValues(status).Inc()
}

func (m *Metrics) Generation(provider, result string) {
	if m == nil {
		return
	}
	m.generated.WithLabelValues(provider, result).Inc()
}

func (m *Metrics) AdapterFailed(source string) {
	if m == nil {
		return
	}
	m.adapterFailures.WithLabelValues(source).Inc()
}

// ObserveJob фиксирует длительность прогона задачи, начатого в start.
func (m *Metrics) ObserveJob(job string, start time.Time) {
	if m == nil {
		return
	}
	m.jobDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
}

// ObserveHTTP фиксирует запрос админ-API; route — шаблон маршрута.
func (m *Metrics) ObserveHTTP(route, method string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}
