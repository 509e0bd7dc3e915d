// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/pulzion/internal/middleware"
	"github.com/tomtom215/pulzion/internal/recommend"
	"github.com/tomtom215/pulzion/internal/trending"
)

// DefaultHandlerTimeout bounds each engine call.
const DefaultHandlerTimeout = 15 * time.Second

// Engine is the recommendation engine as seen by the handlers.
type Engine interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Closest(ctx context.Context, req recommend.ClosestRequest) (*recommend.ClosestResponse, error)
	Similar(ctx context.Context, req recommend.SimilarRequest) (*recommend.SimilarResponse, error)
	GetMetrics() recommend.Metrics
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SnapshotSource provides the latest trending snapshot, or nil.
type SnapshotSource interface {
	Snapshot() *trending.Snapshot
}

// HandlerDeps are the collaborators of a Handler. Only Engine is required.
type HandlerDeps struct {
	Engine   Engine
	Trending SnapshotSource
	Index    Pinger
	Monitor  *middleware.PerformanceMonitor

	// Timeout bounds each engine call. Zero uses DefaultHandlerTimeout.
	Timeout time.Duration
}

// Handler serves the recommendation API.
type Handler struct {
	engine    Engine
	trending  SnapshotSource
	index     Pinger
	monitor   *middleware.PerformanceMonitor
	timeout   time.Duration
	startTime time.Time
}

// NewHandler creates a handler from deps.
//
//nolint:gocritic // hugeParam: deps is a one-time constructor argument
func NewHandler(deps HandlerDeps) (*Handler, error) {
	if deps.Engine == nil {
		return nil, errors.New("api: engine is required")
	}
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = DefaultHandlerTimeout
	}
	monitor := deps.Monitor
	if monitor == nil {
		monitor = middleware.NewPerformanceMonitor(1000)
	}
	return &Handler{
		engine:    deps.Engine,
		trending:  deps.Trending,
		index:     deps.Index,
		monitor:   monitor,
		timeout:   timeout,
		startTime: time.Now(),
	}, nil
}

// Monitor returns the performance monitor the router should mount.
func (h *Handler) Monitor() *middleware.PerformanceMonitor {
	return h.monitor
}

// withTimeout derives the engine call context.
func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.timeout)
}
