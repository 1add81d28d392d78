// Package metrics provides Prometheus counters for the chat engine,
// modeled on the teacher's internal/metrics package: prometheus.CounterVec
// per concern, read back with Write(&dto.Metric) for observability
// rather than exposed via an HTTP handler (no exposition server is in
// scope here - Snapshot exists purely so the CLI can log a summary at
// the end of a run).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Recorder owns one private prometheus.Registry so concurrent Engine
// instances (and tests constructing many Recorders) never collide on
// global metric registration the way promauto's package-level vars
// would.
type Recorder struct {
	registry *prometheus.Registry

	requestsTotal  *prometheus.CounterVec
	recordsTotal   *prometheus.CounterVec
	retriesTotal   *prometheus.CounterVec
	fallbackTotal  *prometheus.CounterVec
	pollTicksTotal prometheus.Counter
}

// New builds a Recorder with all counters registered.
func New() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chatdl_requests_total",
			Help: "Total number of outbound HTTP requests, by host.",
		}, []string{"host"}),
		recordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chatdl_records_total",
			Help: "Total number of chat records emitted, by category.",
		}, []string{"category"}),
		retriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chatdl_retries_total",
			Help: "Total number of HTTP retry attempts, by reason.",
		}, []string{"reason"}),
		fallbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chatdl_fallback_total",
			Help: "Total number of times the engine switched to the HTML continuation fallback.",
		}, []string{"video_id"}),
		pollTicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chatdl_poll_ticks_total",
			Help: "Total number of Phase III poll ticks across all videos.",
		}),
	}

	registry.MustRegister(r.requestsTotal, r.recordsTotal, r.retriesTotal, r.fallbackTotal, r.pollTicksTotal)
	return r
}

// IncRequest records one outbound HTTP request to host.
func (r *Recorder) IncRequest(host string) {
	r.requestsTotal.WithLabelValues(host).Inc()
}

// IncRecord records one emitted chat record of the given category
// (e.g. "message", "superchat").
func (r *Recorder) IncRecord(category string) {
	r.recordsTotal.WithLabelValues(category).Inc()
}

// IncRetry records one retry attempt for the given reason (e.g.
// "retryable_status", "read_timeout").
func (r *Recorder) IncRetry(reason string) {
	r.retriesTotal.WithLabelValues(reason).Inc()
}

// IncFallback records one api-to-html fallback switch for videoID.
func (r *Recorder) IncFallback(videoID string) {
	r.fallbackTotal.WithLabelValues(videoID).Inc()
}

// IncPollTick records one Phase III poll tick.
func (r *Recorder) IncPollTick() {
	r.pollTicksTotal.Inc()
}

// Snapshot is a point-in-time summary suitable for a single structured
// log line at the end of a run.
type Snapshot struct {
	RequestsTotal  float64
	RecordsTotal   float64
	RetriesTotal   float64
	FallbackTotal  float64
	PollTicksTotal float64
}

// Snapshot reads every counter back via Write(&dto.Metric), the same
// technique the teacher's GetTunersInUse uses to read a gauge back in
// tests.
func (r *Recorder) Snapshot() Snapshot {
	return Snapshot{
		RequestsTotal:  sumVec(r.requestsTotal),
		RecordsTotal:   sumVec(r.recordsTotal),
		RetriesTotal:   sumVec(r.retriesTotal),
		FallbackTotal:  sumVec(r.fallbackTotal),
		PollTicksTotal: readCounter(r.pollTicksTotal),
	}
}

func readCounter(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// sumVec gathers a CounterVec's own registry entry and sums every
// labeled child, since a CounterVec itself isn't a Metric.
func sumVec(vec *prometheus.CounterVec) float64 {
	ch := make(chan prometheus.Metric, 64)
	go func() {
		vec.Collect(ch)
		close(ch)
	}()
	var total float64
	for metric := range ch {
		var m dto.Metric
		if err := metric.Write(&m); err != nil {
			continue
		}
		total += m.GetCounter().GetValue()
	}
	return total
}
