// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

/*
Package supervisor provides process supervision for Pulzion using suture v4.

The tree restarts crashed services with backoff and shuts everything down
in order when the root context is canceled:

	RootSupervisor ("pulzion")
	├── DataSupervisor ("data-layer")
	│   └── TrendingReloadService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (service start, failure, backoff, restart) are logged
through the sutureslog adapter, which writes to the slog bridge backed by
the zerolog logger in internal/logging.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewTrendingReloadService(store, cfg.Trending.ReloadInterval, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, addr, cfg.Server.ShutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

See services/ for the individual wrappers.
*/
package supervisor
