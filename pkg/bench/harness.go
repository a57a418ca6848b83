// Package bench drives repeated serialize, stream, deserialize and verify
// round trips for a single codec and reports how long decoding took.
package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/sirupsen/logrus"

	"github.com/ssargent/serdebench/pkg/codec"
	"github.com/ssargent/serdebench/pkg/generator"
	"github.com/ssargent/serdebench/pkg/logging"
	"github.com/ssargent/serdebench/pkg/stream"
	"github.com/ssargent/serdebench/pkg/verify"
)

// ErrInvalidConfig is returned by NewHarness for unusable settings
var ErrInvalidConfig = errors.New("invalid harness config")

// Config holds the settings of one benchmark run
type Config struct {
	Records   int    // Records generated per attempt
	Attempts  int    // Number of round trips
	ChunkSize int    // Maximum chunk size handed to the deserializer
	Dataset   string // Generator name, for reporting
}

// Harness runs round trips for one codec
type Harness struct {
	config    Config
	codec     codec.Codec
	generator generator.Generator
	logger    logrus.FieldLogger
	metrics   *Metrics
}

// Option customizes a Harness
type Option func(*Harness)

// WithLogger sets the logger used for per-attempt progress
func WithLogger(logger logrus.FieldLogger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// WithMetrics records attempts on m
func WithMetrics(m *Metrics) Option {
	return func(h *Harness) {
		h.metrics = m
	}
}

// NewHarness creates a harness for c fed by g
func NewHarness(config Config, c codec.Codec, g generator.Generator, opts ...Option) (*Harness, error) {
	if config.Records < 0 {
		return nil, fmt.Errorf("%w: records must not be negative", ErrInvalidConfig)
	}
	if config.Attempts < 1 {
		return nil, fmt.Errorf("%w: attempts must be at least 1", ErrInvalidConfig)
	}
	if config.ChunkSize < 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, stream.ErrInvalidChunkSize)
	}
	if c == nil || g == nil {
		return nil, fmt.Errorf("%w: codec and generator are required", ErrInvalidConfig)
	}

	h := &Harness{
		config:    config,
		codec:     c,
		generator: g,
		logger:    logging.Discard(),
		metrics:   NewMetrics(),
	}
	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// Metrics returns the metrics the harness records to
func (h *Harness) Metrics() *Metrics {
	return h.metrics
}

// Run performs every attempt in order. The first failure aborts the run. ctx
// is only checked between attempts; a deserialization in progress always runs
// to completion.
func (h *Harness) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     ksuid.New(),
		Codec:     h.codec.Kind(),
		Dataset:   h.config.Dataset,
		Records:   h.config.Records,
		ChunkSize: h.config.ChunkSize,
		StartedAt: time.Now().UTC(),
	}

	logger := h.logger.WithFields(logrus.Fields{
		"run_id": report.RunID.String(),
		"codec":  report.Codec,
	})
	logger.WithFields(logrus.Fields{
		"records":    h.config.Records,
		"attempts":   h.config.Attempts,
		"chunk_size": h.config.ChunkSize,
	}).Info("Starting benchmark run")

	for i := 0; i < h.config.Attempts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run stopped before attempt %d: %w", i, err)
		}

		attempt, err := h.RunAttempt(i)
		if err != nil {
			logger.WithError(err).WithField("attempt", i).Error("Attempt failed")
			return nil, fmt.Errorf("attempt %d: %w", i, err)
		}

		logger.WithFields(logrus.Fields{
			"attempt":       i,
			"elapsed":       attempt.Elapsed,
			"payload_bytes": attempt.PayloadBytes,
			"chunks":        attempt.Chunks,
		}).Infof("Execution time: %.3f ms", float64(attempt.Elapsed)/float64(time.Millisecond))

		report.Attempts = append(report.Attempts, attempt)
	}

	return report, nil
}

// RunAttempt generates a fresh batch and times one round trip of it
func (h *Harness) RunAttempt(index int) (Attempt, error) {
	kind := string(h.codec.Kind())
	attempt := Attempt{Index: index}

	records := h.generator.Generate(h.config.Records)

	serializeStart := time.Now()
	payload, err := h.codec.Serialize(records)
	if err != nil {
		h.metrics.RecordAttempt(kind, 0, false)
		return attempt, fmt.Errorf("serialize: %w", err)
	}
	attempt.Serialize = time.Since(serializeStart)
	attempt.PayloadBytes = len(payload)
	h.metrics.RecordSerialize(kind, len(payload), attempt.Serialize)

	src, err := stream.NewChunkSource(payload, h.config.ChunkSize)
	if err != nil {
		h.metrics.RecordAttempt(kind, 0, false)
		return attempt, err
	}

	start := time.Now()
	results, err := h.codec.Deserialize(src)
	attempt.Elapsed = time.Since(start)
	attempt.Chunks = src.Chunks()
	if err != nil {
		h.metrics.RecordAttempt(kind, 0, false)
		return attempt, fmt.Errorf("deserialize: %w", err)
	}
	h.metrics.RecordDeserialize(kind, attempt.Chunks, attempt.Elapsed)

	if err := verify.Records(records, results); err != nil {
		h.metrics.RecordAttempt(kind, 0, false)
		return attempt, fmt.Errorf("verify: %w", err)
	}

	attempt.Records = len(results)
	h.metrics.RecordAttempt(kind, attempt.Records, true)
	return attempt, nil
}
