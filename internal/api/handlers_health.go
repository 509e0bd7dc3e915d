// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/pulzion/internal/logging"
)

// readinessTimeout bounds the vector index ping.
const readinessTimeout = 2 * time.Second

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"status": "alive",
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests.
// Returns 200 OK only when the vector index answers a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	indexReachable := false
	if h.index != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		err := h.index.Ping(ctx)
		cancel()
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("readiness check: vector index unreachable")
		}
		indexReachable = err == nil
	}

	trendingLoaded := h.trending != nil && h.trending.Snapshot() != nil

	statusCode := http.StatusOK
	status := "ready"
	if !indexReachable {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	writeJSON(w, r, statusCode, map[string]interface{}{
		"status":                 status,
		"vector_index_reachable": indexReachable,
		"trending_loaded":        trendingLoaded,
		"uptime":                 time.Since(h.startTime).Seconds(),
	})
}

// Stats handles GET /api/stats by returning the trending snapshot document
// exactly as it was loaded.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.trending == nil {
		NewResponseWriter(w, r).ServiceUnavailable(ErrTrendingNotConfigured.Error())
		return
	}
	snap := h.trending.Snapshot()
	if snap == nil || len(snap.Raw) == 0 {
		NewResponseWriter(w, r).ServiceUnavailable("Trending statistics not loaded yet")
		return
	}
	w.Header().Set("Last-Modified", snap.LoadedAt.UTC().Format(http.TimeFormat))
	writeRawJSON(w, http.StatusOK, snap.Raw)
}

// EngineStats handles GET /api/engine.
func (h *Handler) EngineStats(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.engine.GetMetrics())
}

// Performance handles GET /api/performance.
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"endpoints": h.monitor.GetStats(),
	})
}
