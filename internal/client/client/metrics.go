package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels of the request counter.
const (
	outcomeOK        = "ok"
	outcomeRejected  = "rejected"
	outcomeTransport = "transport"
	outcomeHTTP      = "http_status"
	outcomeBusiness  = "business"
)

// Metrics instruments the pipeline. A nil *Metrics records nothing.
type Metrics struct {
	Requests      *prometheus.CounterVec
	Latency       *prometheus.HistogramVec
	ForcedLogouts prometheus.Counter
}

// NewMetrics registers the pipeline metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gostconsole",
			Name:      "api_requests_total",
			Help:      "API calls by method and outcome.",
		}, []string{"method", "outcome"}),
		Latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gostconsole",
			Name:      "api_request_duration_seconds",
			Help:      "API call latency including the outcome stage.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		ForcedLogouts: f.NewCounter(prometheus.CounterOpts{
			Namespace: "gostconsole",
			Name:      "forced_logouts_total",
			Help:      "Sessions cleared by HTTP 401 or business code 40100.",
		}),
	}
}

func (m *Metrics) observe(method, outcome string, since time.Time) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, outcome).Inc()
	m.Latency.WithLabelValues(method).Observe(time.Since(since).Seconds())
}

func (m *Metrics) forcedLogout() {
	if m == nil {
		return
	}
	m.ForcedLogouts.Inc()
}

func outcomeLabel(k Kind) string {
	switch k {
	case KindTransport:
		return outcomeTransport
	case KindHTTPStatus:
		return outcomeHTTP
	default:
		return outcomeBusiness
	}
}
