package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus records into its own registry, so several instances (one per
// test) never collide.
type Prometheus struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	registrations prometheus.Counter
	logins        *prometheus.CounterVec
	deletions     *prometheus.CounterVec
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus creates the collectors, plus the Go runtime and process
// collectors.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "festreg",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "The total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "festreg",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		registrations: f.NewCounter(prometheus.CounterOpts{
			Namespace: "festreg",
			Name:      "registrations_total",
			Help:      "The total number of stored registrations",
		}),
		logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "festreg",
			Name:      "logins_total",
			Help:      "Admin login attempts by result",
		}, []string{"result"}),
		deletions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "festreg",
			Name:      "deletions_total",
			Help:      "Rows removed by admin deletes",
		}, []string{"kind"}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

func (p *Prometheus) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (p *Prometheus) Registration(string) {
	p.registrations.Inc()
}

func (p *Prometheus) Login(result string) {
	p.logins.WithLabelValues(result).Inc()
}

func (p *Prometheus) Deletion(kind string, n int64) {
	p.deletions.WithLabelValues(kind).Add(float64(n))
}
