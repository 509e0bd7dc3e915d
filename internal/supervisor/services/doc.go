// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

/*
Package services provides suture.Service wrappers for Pulzion components.

Each wrapper translates a component lifecycle into suture's context-aware
Serve pattern:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts the blocking ListenAndServe call into Serve
  - Drains in-flight requests for the configured shutdown timeout

Trending Reloader (TrendingReloadService):
  - Re-reads the trending statistics document on a fixed interval
  - A failed reload keeps the previous snapshot and is logged by the store,
    so the service never returns a reload error to the supervisor

# Error Handling

Services return nil or ctx.Err() on graceful shutdown. Any other error is
treated by suture as a crash and triggers a restart with backoff.
*/
package services
