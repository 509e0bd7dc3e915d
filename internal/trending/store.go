// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package trending

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pulzion/internal/metrics"
	"github.com/tomtom215/pulzion/internal/recommend"
)

// ErrNoSnapshot is returned before the first successful load.
var ErrNoSnapshot = errors.New("no trending snapshot loaded")

// Store holds the latest trending snapshot. Readers never block; a reload
// swaps the pointer atomically and a failed reload keeps the previous one.
type Store struct {
	path    string
	logger  zerolog.Logger
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store reading from path. Nothing is loaded until Reload.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.With().Str("component", "trending").Logger(),
	}
}

// Path returns the stats file location.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the stats file. On failure the previous snapshot stays
// in place and the error is returned.
func (s *Store) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snap, err := LoadFile(s.path)
	if err != nil {
		metrics.RecordTrendingReload(0, err)
		if prev := s.current.Load(); prev != nil {
			s.logger.Warn().Err(err).Str("path", s.path).Str("generated_at", prev.GeneratedAt).Msg("trending reload failed, keeping previous snapshot")
		} else {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("trending reload failed, no snapshot available")
		}
		return err
	}

	s.current.Store(snap)
	n := len(snap.KeywordStats.TopKeywords)
	metrics.RecordTrendingReload(n, nil)
	s.logger.Debug().Str("generated_at", snap.GeneratedAt).Int("keywords", n).Msg("trending snapshot loaded")
	return nil
}

// Snapshot returns the current snapshot, or nil before the first load.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Set replaces the current snapshot.
func (s *Store) Set(snap *Snapshot) {
	s.current.Store(snap)
}

// TopKeywords returns up to n keywords in document order. n <= 0 returns all.
func (s *Store) TopKeywords(n int) []KeywordStat {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}
	kws := snap.KeywordStats.TopKeywords
	if n > 0 && len(kws) > n {
		kws = kws[:n]
	}
	out := make([]KeywordStat, len(kws))
	copy(out, kws)
	return out
}

// TrendingKeywords implements recommend.TrendingSource. Keyword weight is
// its article volume.
func (s *Store) TrendingKeywords(_ context.Context) ([]recommend.TrendingKeyword, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	out := make([]recommend.TrendingKeyword, 0, len(snap.KeywordStats.TopKeywords))
	for _, kw := range snap.KeywordStats.TopKeywords {
		if kw.Keyword == "" {
			continue
		}
		out = append(out, recommend.TrendingKeyword{Keyword: kw.Keyword, Weight: kw.Volume})
	}
	return out, nil
}

var _ recommend.TrendingSource = (*Store)(nil)
