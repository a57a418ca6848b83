package bench

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// ResultServer exposes the metrics and the latest report of finished runs
type ResultServer struct {
	metrics *Metrics
	logger  logrus.FieldLogger

	mu     sync.RWMutex
	report *Report
}

// NewResultServer creates a server publishing m
func NewResultServer(m *Metrics, logger logrus.FieldLogger) *ResultServer {
	return &ResultServer{metrics: m, logger: logger}
}

// SetReport replaces the report served on /report
func (s *ResultServer) SetReport(r *Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = r
}

// Router builds the HTTP routes
func (s *ResultServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	r.Get("/report", s.handleReport)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

func (s *ResultServer) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	report := s.report
	s.mu.RUnlock()

	if report == nil {
		http.Error(w, "no report available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := report.WriteJSON(w); err != nil {
		s.logger.WithError(err).Warn("Failed to write report")
	}
}

// ListenAndServe serves on addr until ctx is done
func (s *ResultServer) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("Serving results at /metrics and /report")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
