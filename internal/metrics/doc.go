// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

/*
Package metrics provides Prometheus collectors for the recommendation service.

Collectors are registered with the default registry through promauto and are
exposed on /metrics by the API router.

# Available Metrics

Recommendation engine:
  - pulzion_recommend_requests_total{path, outcome}
  - pulzion_recommend_duration_seconds{path}
  - pulzion_recommend_results_total{type}
  - pulzion_retrieval_warnings_total{op}

Upstream collaborators:
  - pulzion_vector_index_request_duration_seconds{op, status}
  - pulzion_embedding_requests_total{status}
  - pulzion_embedding_cache_total{result}
  - pulzion_trending_snapshot_keywords
  - pulzion_trending_reloads_total{result}

Circuit breakers (one label value per breaker name):
  - pulzion_circuit_breaker_state{name}
  - pulzion_circuit_breaker_requests_total{name, result}
  - pulzion_circuit_breaker_consecutive_failures{name}
  - pulzion_circuit_breaker_state_transitions_total{name, from_state, to_state}

HTTP API:
  - pulzion_api_requests_total{method, endpoint, status}
  - pulzion_api_request_duration_seconds{method, endpoint}
  - pulzion_api_active_requests

Record* helpers wrap the collectors so callers never build label slices by hand.
*/
package metrics
