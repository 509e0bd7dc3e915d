// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package recommend

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pulzion/internal/vectorindex"
)

var errNoTrendingSource = errors.New("no trending source configured")

// coldStart serves requests without feedback. Trending keywords bias the
// sample when available; a short trending sample is filled from an
// unconstrained sample within the base window, which is also used alone
// when there are no trending picks. It never fails.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) coldStart(ctx context.Context, req Request, base *vectorindex.Filter, exclude *exclusionSet, logger zerolog.Logger) ([]ScoredCandidate, []*RetrievalWarning) {
	var warnings []*RetrievalWarning

	keywords, err := e.topTrendingKeywords(ctx)
	if err != nil && !errors.Is(err, errNoTrendingSource) {
		warnings = append(warnings, &RetrievalWarning{Op: "trending_keywords", Err: err})
		logger.Warn().Err(err).Msg("trending keywords unavailable, using random sample")
	}

	if len(keywords) > 0 {
		filter := base.Clone().AddMust(vectorindex.MatchAny("keywords", keywords))
		picks, warn := e.randomCandidates(ctx, "scroll_trending", filter, req.TopK, trendingTeaser, exclude, nil)
		warnings = appendWarning(warnings, warn)
		if len(picks) > 0 {
			trendingPicks := len(picks)
			picks, warn = e.fillRandom(ctx, "scroll_random", base, picks, req.TopK, 0, exclude)
			warnings = appendWarning(warnings, warn)
			logger.Debug().
				Int("keywords", len(keywords)).
				Int("trending", trendingPicks).
				Int("returned", len(picks)).
				Msg("served trending cold start")
			return picks, warnings
		}
	}

	picks, warn := e.randomCandidates(ctx, "scroll_random", base, req.TopK, freshTeaser, exclude, nil)
	if warn != nil {
		warnings = append(warnings, warn)
	}
	return picks, warnings
}

// topTrendingKeywords returns up to TrendingTopN distinct keywords ordered
// by descending weight. Ties keep the source order.
func (e *Engine) topTrendingKeywords(ctx context.Context) ([]string, error) {
	source := e.getTrendingSource()
	if source == nil {
		return nil, errNoTrendingSource
	}

	trending, err := source.TrendingKeywords(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]TrendingKeyword, len(trending))
	copy(ranked, trending)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weight > ranked[j].Weight
	})

	limit := e.config.ColdStart.TrendingTopN
	seen := make(map[string]struct{}, limit)
	keywords := make([]string, 0, limit)
	for _, tk := range ranked {
		if len(keywords) == limit {
			break
		}
		if tk.Keyword == "" {
			continue
		}
		if _, dup := seen[tk.Keyword]; dup {
			continue
		}
		seen[tk.Keyword] = struct{}{}
		keywords = append(keywords, tk.Keyword)
	}
	return keywords, nil
}

// randomCandidates scrolls an oversampled pool, shuffles it with the
// engine's random source and keeps up to k eligible articles. A non-nil
// accept is consulted for each remaining candidate before it is kept.
func (e *Engine) randomCandidates(ctx context.Context, op string, filter *vectorindex.Filter, k int, teaser string, exclude *exclusionSet, accept func(*ScoredCandidate) bool) ([]ScoredCandidate, *RetrievalWarning) {
	if k <= 0 {
		return nil, nil
	}
	res := e.retriever.ScrollRandom(ctx, op, filter, k*e.config.Retrieval.RandomPoolFactor)
	if res.Warning != nil {
		return nil, res.Warning
	}

	points := res.Points
	e.shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})

	picks := make([]ScoredCandidate, 0, k)
	taken := make(map[string]struct{}, k)
	for i := range points {
		if len(picks) == k {
			break
		}
		id := string(points[i].ID)
		if exclude.has(id) {
			continue
		}
		if _, dup := taken[id]; dup {
			continue
		}
		c := newCandidate(points[i].ID, points[i].Payload, e.config.Scoring.RandomScore, teaser, TypeRandom)
		if accept != nil && !accept(&c) {
			continue
		}
		taken[id] = struct{}{}
		picks = append(picks, c)
	}
	return picks, nil
}

// fillRandom appends random picks from the base window that are not already
// in results until it holds topK items. When maxPer is positive no source
// exceeds maxPer items.
func (e *Engine) fillRandom(ctx context.Context, op string, base *vectorindex.Filter, results []ScoredCandidate, topK, maxPer int, exclude *exclusionSet) ([]ScoredCandidate, *RetrievalWarning) {
	missing := topK - len(results)
	if missing <= 0 {
		return results, nil
	}

	filter := base.Clone()
	inList := make(map[string]struct{}, len(results))
	perSource := make(map[string]int, len(results))
	ids := make([]string, len(results))
	for i := range results {
		ids[i] = results[i].ID
		inList[results[i].ID] = struct{}{}
		perSource[results[i].Source]++
	}
	if len(ids) > 0 {
		filter.AddMustNot(vectorindex.HasID(ids...))
	}

	accept := func(c *ScoredCandidate) bool {
		if _, dup := inList[c.ID]; dup {
			return false
		}
		if maxPer > 0 && perSource[c.Source] >= maxPer {
			return false
		}
		inList[c.ID] = struct{}{}
		perSource[c.Source]++
		return true
	}

	picks, warn := e.randomCandidates(ctx, op, filter, missing, freshTeaser, exclude, accept)
	if warn != nil {
		return results, warn
	}
	return append(results, picks...), nil
}
