// Package server exposes the detection pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/truthguard-ai/truthguard/internal/classifier"
	"github.com/truthguard-ai/truthguard/internal/detector"
	"github.com/truthguard-ai/truthguard/internal/logger"
	"github.com/truthguard-ai/truthguard/internal/metrics"
)

// DetectionService is what the HTTP layer needs from the orchestrator.
type DetectionService interface {
	Detect(ctx context.Context, article detector.Article) (*detector.DetectionResult, error)
	DetectBatch(ctx context.Context, articles []detector.Article) ([]detector.BatchItem, error)
}

// Server wraps the HTTP components of TruthGuard.
type Server struct {
	mux         *http.ServeMux
	detections  DetectionService
	metrics     *metrics.Metrics
	modelLoaded bool
	httpServer  *http.Server
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Timestamp   string `json:"timestamp"`
}

type batchResponse struct {
	Results []detector.BatchItem `json:"results"`
}

// New creates a server with all routes registered. registry backs the
// /metrics endpoint; modelLoaded=false puts /api/detect into 503 mode
// while /health keeps answering.
func New(detections DetectionService, m *metrics.Metrics, registry *prometheus.Registry, modelLoaded bool) *Server {
	s := &Server{
		mux:         http.NewServeMux(),
		detections:  detections,
		metrics:     m,
		modelLoaded: modelLoaded,
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/detect", s.handleDetect)
	s.mux.HandleFunc("/api/batch-detect", s.handleBatchDetect)
	s.mux.HandleFunc("/api/stats", s.handleStats)
	s.mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return s
}

// Handler returns the full middleware-wrapped handler chain.
func (s *Server) Handler() http.Handler {
	return RequestIDMiddleware(LoggingMiddleware(s.mux))
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "healthy",
		ModelLoaded: s.modelLoaded,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.modelLoaded {
		writeError(w, http.StatusServiceUnavailable, "Detection unavailable: no classifier loaded")
		return
	}

	var article detector.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.detections.Detect(r.Context(), article)
	if err != nil {
		s.writeDetectionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleBatchDetect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.modelLoaded {
		writeError(w, http.StatusServiceUnavailable, "Detection unavailable: no classifier loaded")
		return
	}

	var articles []detector.Article
	if err := json.NewDecoder(r.Body).Decode(&articles); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	items, err := s.detections.DetectBatch(r.Context(), articles)
	if err != nil {
		s.writeDetectionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Results: items})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

// writeDetectionError maps the error taxonomy onto HTTP statuses. Client
// mistakes stay 400; everything internal collapses into one diagnostic
// line that leaks no implementation detail.
func (s *Server) writeDetectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, detector.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, detector.ErrBatchTooLarge):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, classifier.ErrModelUnavailable):
		writeError(w, http.StatusServiceUnavailable, "Detection unavailable: no classifier loaded")
	default:
		logger.Log.Errorf("detection error: %v", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Detection failed: %v", err))
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
