// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

/*
Package main is the entry point for the Pulzion recommendation server.

Pulzion serves personalized news recommendations over HTTP. Articles live
as embedding vectors with metadata payloads in a Qdrant collection; the
server composes seed vectors from the caller's anchor and liked articles,
runs similar and discover searches, rescores the candidates, and injects
an occasional surprise pick from an unrelated category.

# Application Architecture

	RootSupervisor ("pulzion")
	├── DataSupervisor ("data-layer")
	│   └── TrendingReloadService (re-reads trending_stats.json)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config file, environment
 2. Logging: zerolog with JSON/console output modes
 3. Vector index client, optionally behind a circuit breaker
 4. Embedding client with LRU cache (optional, enables /api/closest)
 5. Trending store with an initial load
 6. Recommendation engine and rerankers
 7. HTTP handler, chi router and supervisor tree

# Configuration

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=5000
	LOG_LEVEL=info
	LOG_FORMAT=json
	QDRANT_URL=http://localhost:6333
	QDRANT_COLLECTION=articles_collection
	EMBEDDING_URL=http://127.0.0.1:8000/embed   # empty disables /api/closest
	TRENDING_STATS_PATH=trending_stats.json
	RECOMMEND_SURPRISE_PROBABILITY=0.05
	CORS_ORIGINS=*

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
connections and drains in-flight requests for HTTP_SHUTDOWN_TIMEOUT.
*/
package main
