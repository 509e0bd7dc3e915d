// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/pulzion/internal/logging"
	"github.com/tomtom215/pulzion/internal/metrics"
)

// Recommend handles POST /api/recommend.
// An empty body is a cold start request.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if !readRequest(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	start := time.Now()
	resp, err := h.engine.Recommend(ctx, req.toEngine(logging.RequestIDFromContext(r.Context())))
	if err != nil {
		metrics.RecordRecommendation(string(req.requestedPath()), time.Since(start), err, nil)
		writeEngineError(w, r, "recommend", err)
		return
	}

	types := make([]string, len(resp.Recommendations))
	for i := range resp.Recommendations {
		types[i] = string(resp.Recommendations[i].Type)
	}
	metrics.RecordRecommendation(string(resp.Metadata.Path), time.Since(start), nil, types)
	for _, warning := range resp.Metadata.Warnings {
		metrics.RecordRetrievalWarning(warning.Op)
	}

	if len(resp.Metadata.Warnings) > 0 {
		logging.Ctx(r.Context()).Warn().
			Str("path", string(resp.Metadata.Path)).
			Int("warnings", len(resp.Metadata.Warnings)).
			Msg("recommendation served with contained retrieval failures")
	}

	NewResponseWriter(w, r).Success(resp)
}

// Closest handles POST /api/closest.
func (h *Handler) Closest(w http.ResponseWriter, r *http.Request) {
	var req ClosestRequest
	if !readRequest(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	resp, err := h.engine.Closest(ctx, req.toEngine())
	if err != nil {
		writeEngineError(w, r, "closest", err)
		return
	}

	NewResponseWriter(w, r).Success(resp)
}

// Similar handles POST /api/similar.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	var req SimilarRequest
	if !readRequest(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	resp, err := h.engine.Similar(ctx, req.toEngine())
	if err != nil {
		writeEngineError(w, r, "similar", err)
		return
	}

	NewResponseWriter(w, r).Success(resp)
}
