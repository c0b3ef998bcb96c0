package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dkeye/Relay/internal/domain"
)

const metricsNamespace = "relay"

// Delivery results.
const (
	DeliverySent         = "sent"
	DeliveryDropped      = "dropped"
	DeliveryBackpressure = "backpressure"
)

type Metrics struct {
	EventsTotal   *prometheus.CounterVec
	BadFrames     prometheus.Counter
	Deliveries    *prometheus.CounterVec
	Connections   prometheus.Gauge
	Sessions      *prometheus.GaugeVec
	ViewerRecount prometheus.Histogram
}

// NewMetrics registers the relay metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_total",
			Help:      "Inbound events dispatched, by event name.",
		}, []string{"event"}),
		BadFrames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "bad_frames_total",
			Help:      "Inbound frames that could not be decoded.",
		}),
		Deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "deliveries_total",
			Help:      "Outbound deliveries, by result.",
		}, []string{"result"}),
		Connections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "connections",
			Help:      "Open signaling connections.",
		}),
		Sessions: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "sessions",
			Help:      "Live sessions, by kind.",
		}, []string{"kind"}),
		ViewerRecount: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "viewer_recount_seconds",
			Help:      "Time spent in the transport liveness check.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) SetSessions(kind domain.SessionKind, n int) {
	m.Sessions.WithLabelValues(string(kind)).Set(float64(n))
}
