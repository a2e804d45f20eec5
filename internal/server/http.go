package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/muurk/tmcatcher/internal/logging"
	"github.com/muurk/tmcatcher/internal/version"
)

type healthzResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	APIUp   bool   `json:"apiUp"`
}

func metricsHandler() http.Handler {
	return promhttp.Handler()
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthzResponse{
		Status:  "ok",
		Version: version.Version,
		APIUp:   s.poller.Snapshot().Healthy,
	})
}

func (s *Server) handleCensus(w http.ResponseWriter, r *http.Request) {
	snap := s.poller.Snapshot()
	if snap.Polls == 0 {
		w.Header().Set("Retry-After", "1")
		respondJSON(w, http.StatusServiceUnavailable, snap)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("Failed to encode response", zap.Error(err))
	}
}

// requestLogger logs each request at debug level through the package logger
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.Debug("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote_addr", r.RemoteAddr),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
