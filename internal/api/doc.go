// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

/*
Package api exposes the recommendation engine over HTTP using the chi router.

Routes:

	POST /api/recommend      personalised feed (seeded, liked, or cold start)
	POST /api/closest        free-text semantic search
	POST /api/similar        articles nearest to one article
	GET  /api/stats          raw trending statistics snapshot
	GET  /api/performance    per-route latency percentiles
	GET  /api/engine         engine counters
	GET  /health/live        liveness probe
	GET  /health/ready       readiness probe (vector index reachable)
	GET  /metrics            Prometheus metrics

Every /api response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 12}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}, "meta": {...}}

Engine errors are mapped to status codes by writeEngineError. Contained
retrieval failures never fail a request; they are returned in the
recommendation metadata and counted in pulzion_retrieval_warnings_total.
*/
package api
