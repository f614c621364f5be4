// Package metrics tracks detection counters for /api/stats and exports
// them to Prometheus.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/truthguard-ai/truthguard/internal/classifier"
)

// Metrics aggregates detection counters. Prometheus collectors back the
// /metrics endpoint; the atomic mirrors feed the JSON stats response.
type Metrics struct {
	start time.Time

	total       atomic.Int64
	fake        atomic.Int64
	real        atomic.Int64
	durationSum atomic.Int64 // nanoseconds
	cacheHits   atomic.Int64

	detections   *prometheus.CounterVec
	cacheHitsCtr prometheus.Counter
	latency      prometheus.Histogram
}

// Stats is the /api/stats payload.
type Stats struct {
	TotalDetections int64   `json:"total_detections"`
	FakeDetected    int64   `json:"fake_detected"`
	RealDetected    int64   `json:"real_detected"`
	AccuracyRate    float64 `json:"accuracy_rate"`
	AvgResponseTime float64 `json:"avg_response_time"` // seconds
	Uptime          string  `json:"uptime"`
}

// modelEvalAccuracy is the offline validation accuracy of the shipped
// model, reported as-is; the service has no ground truth to measure
// live accuracy against.
const modelEvalAccuracy = 94.2

// New registers collectors on reg and returns the aggregate.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		start: time.Now(),
		detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "truthguard_detections_total",
			Help: "Completed detections by verdict label.",
		}, []string{"label"}),
		cacheHitsCtr: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "truthguard_cache_hits_total",
			Help: "Detections answered from cache.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "truthguard_detection_duration_seconds",
			Help:    "End-to-end detection latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.detections, m.cacheHitsCtr, m.latency)
	return m
}

// ObserveDetection records one completed detection.
func (m *Metrics) ObserveDetection(label string, duration time.Duration) {
	m.total.Add(1)
	m.durationSum.Add(int64(duration))
	if label == classifier.LabelFake {
		m.fake.Add(1)
	} else {
		m.real.Add(1)
	}
	m.detections.WithLabelValues(label).Inc()
	m.latency.Observe(duration.Seconds())
}

// ObserveCacheHit records a detection served from cache.
func (m *Metrics) ObserveCacheHit() {
	m.cacheHits.Add(1)
	m.cacheHitsCtr.Inc()
}

// Snapshot returns the current stats.
func (m *Metrics) Snapshot() Stats {
	total := m.total.Load()
	var avg float64
	if total > 0 {
		avg = time.Duration(m.durationSum.Load() / total).Seconds()
	}
	return Stats{
		TotalDetections: total,
		FakeDetected:    m.fake.Load(),
		RealDetected:    m.real.Load(),
		AccuracyRate:    modelEvalAccuracy,
		AvgResponseTime: avg,
		Uptime:          time.Since(m.start).Round(time.Second).String(),
	}
}
