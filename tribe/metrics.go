package tribe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	endpointAccessToken   = "access_token"
	endpointUser          = "user"
	endpointGeneset       = "geneset"
	endpointVersion       = "version"
	endpointCreateGeneset = "create_geneset"

	outcomeOK             = "ok"
	outcomeExpired        = "token_expired"
	outcomeTransportError = "transport_error"
	outcomeBadStatus      = "bad_status"
	outcomeMalformed      = "malformed"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// newMetrics builds the collectors; a nil registerer leaves them unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tribe_client",
			Name:      "remote_requests_total",
			Help:      "Requests made to the Tribe API by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tribe_client",
			Name:      "remote_request_duration_seconds",
			Help:      "Latency of requests made to the Tribe API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

func (m *metrics) record(endpoint, outcome string) {
	m.requests.WithLabelValues(endpoint, outcome).Inc()
}

func (m *metrics) observe(endpoint string, start time.Time) {
	m.duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
