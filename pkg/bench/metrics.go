package bench

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds the Prometheus metrics recorded by a harness
type Metrics struct {
	registry *prometheus.Registry

	deserializeDuration *prometheus.HistogramVec
	serializeDuration   *prometheus.HistogramVec
	attemptsTotal       *prometheus.CounterVec
	payloadBytes        *prometheus.GaugeVec
	chunksTotal         *prometheus.CounterVec
	recordsTotal        *prometheus.CounterVec
}

// NewMetrics creates the metrics on their own registry so several harnesses
// can coexist in one process
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		deserializeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "serdebench_deserialize_duration_seconds",
				Help:    "Wall-clock time spent deserializing one payload",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 18),
			},
			[]string{"codec"},
		),

		serializeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "serdebench_serialize_duration_seconds",
				Help:    "Wall-clock time spent serializing one batch",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 18),
			},
			[]string{"codec"},
		),

		attemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serdebench_attempts_total",
				Help: "Total number of benchmark attempts",
			},
			[]string{"codec", "status"},
		),

		payloadBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "serdebench_payload_bytes",
				Help: "Size of the most recent serialized payload",
			},
			[]string{"codec"},
		),

		chunksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serdebench_chunks_total",
				Help: "Total number of chunks handed to deserializers",
			},
			[]string{"codec"},
		),

		recordsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serdebench_records_total",
				Help: "Total number of records round-tripped and verified",
			},
			[]string{"codec"},
		),
	}
}

// Registry returns the registry the metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordSerialize records the time taken to build a payload
func (m *Metrics) RecordSerialize(codec string, payloadBytes int, duration time.Duration) {
	m.serializeDuration.WithLabelValues(codec).Observe(duration.Seconds())
	m.payloadBytes.WithLabelValues(codec).Set(float64(payloadBytes))
}

// RecordDeserialize records one timed deserialization
func (m *Metrics) RecordDeserialize(codec string, chunks int, duration time.Duration) {
	m.deserializeDuration.WithLabelValues(codec).Observe(duration.Seconds())
	m.chunksTotal.WithLabelValues(codec).Add(float64(chunks))
}

// RecordAttempt records the outcome of an attempt
func (m *Metrics) RecordAttempt(codec string, records int, success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.attemptsTotal.WithLabelValues(codec, status).Inc()
	if success {
		m.recordsTotal.WithLabelValues(codec).Add(float64(records))
	}
}
