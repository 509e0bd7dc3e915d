// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultReloadInterval is used when the configured interval is not positive.
const DefaultReloadInterval = 5 * time.Minute

// TrendingReloader reloads the trending statistics document.
// Satisfied by *trending.Store.
type TrendingReloader interface {
	Reload(ctx context.Context) error
}

// TrendingReloadService periodically refreshes the trending snapshot used
// for cold-start recommendations and GET /api/stats.
type TrendingReloadService struct {
	store    TrendingReloader
	interval time.Duration
	logger   zerolog.Logger
}

// NewTrendingReloadService creates the reload loop. The initial load is the
// caller's responsibility so the API can start with a snapshot in place.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrendingReloadService(store TrendingReloader, interval time.Duration, logger zerolog.Logger) *TrendingReloadService {
	if interval <= 0 {
		interval = DefaultReloadInterval
	}
	return &TrendingReloadService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "trending-reload").Logger(),
	}
}

// Serve implements suture.Service.
func (s *TrendingReloadService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("trending reload service running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			// The store logs the failure and keeps the previous snapshot.
			if err := s.store.Reload(ctx); err != nil {
				s.logger.Debug().Err(err).Msg("scheduled trending reload failed")
			}
		}
	}
}

// String implements fmt.Stringer for suture event logs.
func (s *TrendingReloadService) String() string {
	return "trending-reload"
}
