package client

import (
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "witness_client",
			Name:      "requests_total",
			Help:      "Witness API requests by endpoint and HTTP status (\"error\" when no response arrived).",
		},
		[]string{"endpoint", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "witness_client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip latency of Witness API requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// metricsTransport records a counter and a latency observation per round trip.
type metricsTransport struct{ base http.RoundTripper }

func (mt *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	endpoint := endpointLabel(req)
	start := time.Now()
	resp, err := mt.base.RoundTrip(req)
	requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, err
	}
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

// endpointLabel is the last path segment, e.g. "getTreeState".
func endpointLabel(req *http.Request) string {
	return path.Base(req.URL.Path)
}
