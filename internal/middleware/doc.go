// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

/*
Package middleware provides HTTP middleware for the recommendation API.

All middleware uses the func(http.Handler) http.Handler shape so it mounts
directly on a chi router alongside the chi, cors, and httprate middleware.

Key Components:

  - RequestID: request tracking with logging context integration
  - PrometheusMetrics: request count, duration, and in-flight instrumentation
  - PerformanceMonitor: sliding-window latency percentiles per route

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(monitor.Middleware)

Route Labels:

PrometheusMetrics and PerformanceMonitor label requests with the chi route
pattern (for example "/api/recommend") rather than the raw URL path, which
keeps label cardinality bounded. Requests that match no route are labelled
"unmatched".
*/
package middleware
