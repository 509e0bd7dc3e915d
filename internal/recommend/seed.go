// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package recommend

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pulzion/internal/vectorindex"
)

// Teasers attached to personalized and fallback candidates.
const (
	likedTeaser    = "Based on your recent likes"
	trendingTeaser = "Trending for you"
	freshTeaser    = "Fresh pick for you"
)

// seedState is the resolved starting point of a personalized request.
type seedState struct {
	path       Path
	vector     []float32
	categories []string
	affinity   map[string]int
	teaser     string
	negative   [][]float32
	warnings   []*RetrievalWarning
}

// resolveSeed builds the seed vector for a request. It returns a nil state
// when the request carries no usable feedback and must take the cold-start
// path.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) resolveSeed(ctx context.Context, req Request, logger zerolog.Logger) (*seedState, error) {
	var (
		state *seedState
		err   error
	)

	switch {
	case req.ArticleID != "":
		state, err = e.resolveAnchor(ctx, req, logger)
	case len(req.LikedArticleIDs) > 0:
		state, err = e.resolveLikes(ctx, req)
	default:
		return nil, nil
	}
	if err != nil || state == nil {
		return nil, err
	}

	if len(req.DislikedArticleIDs) > 0 {
		negative, warn := e.fetchNegative(ctx, req.DislikedArticleIDs)
		if warn != nil {
			state.warnings = append(state.warnings, warn)
		}
		state.negative = negative
	}

	return state, nil
}

// resolveAnchor retrieves the anchor article and the caller's other likes
// concurrently and blends them with the anchor dominant.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) resolveAnchor(ctx context.Context, req Request, logger zerolog.Logger) (*seedState, error) {
	others := make([]string, 0, len(req.LikedArticleIDs))
	for _, id := range req.LikedArticleIDs {
		if id != req.ArticleID {
			others = append(others, id)
		}
	}

	var (
		wg                   sync.WaitGroup
		anchorPts, otherPts  []vectorindex.Point
		anchorErr, othersErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		anchorPts, anchorErr = e.retriever.RetrieveByIDs(ctx, []string{req.ArticleID})
	}()
	if len(others) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			otherPts, othersErr = e.retriever.RetrieveByIDs(ctx, others)
		}()
	}
	wg.Wait()

	if anchorErr != nil {
		return nil, fmt.Errorf("retrieve seed article: %w", anchorErr)
	}
	anchor, ok := findPoint(anchorPts, req.ArticleID)
	if !ok || len(anchor.Vector) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrArticleNotFound, req.ArticleID)
	}

	state := &seedState{path: PathSeeded}
	if othersErr != nil {
		state.warnings = append(state.warnings, &RetrievalWarning{Op: "retrieve_likes", Err: othersErr})
		logger.Warn().Err(othersErr).Int("liked", len(others)).Msg("other likes unavailable, seeding from anchor only")
		otherPts = nil
	}

	vectors := [][]float32{anchor.Vector}
	payloads := []*vectorindex.Payload{anchor.Payload}
	for i := range otherPts {
		if len(otherPts[i].Vector) == 0 {
			continue
		}
		vectors = append(vectors, otherPts[i].Vector)
		payloads = append(payloads, otherPts[i].Payload)
	}

	state.vector = WeightedAverage(vectors, SeedWeights(len(vectors), e.config.Seed.AnchorWeight))
	state.affinity = KeywordAffinity(payloads)

	title := DefaultTitle
	if anchor.Payload != nil {
		state.categories = anchor.Payload.Categories
		title = orDefault(anchor.Payload.Title, DefaultTitle)
	}
	state.teaser = fmt.Sprintf("Because you read '%s'", title)

	return state, nil
}

// resolveLikes averages the caller's liked articles. Likes that resolve to
// nothing fall through to cold start.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) resolveLikes(ctx context.Context, req Request) (*seedState, error) {
	points, err := e.retriever.RetrieveByIDs(ctx, req.LikedArticleIDs)
	if err != nil {
		return nil, fmt.Errorf("retrieve liked articles: %w", err)
	}

	vectors := make([][]float32, 0, len(points))
	payloads := make([]*vectorindex.Payload, 0, len(points))
	for i := range points {
		if len(points[i].Vector) == 0 {
			continue
		}
		vectors = append(vectors, points[i].Vector)
		payloads = append(payloads, points[i].Payload)
	}
	if len(vectors) == 0 {
		return nil, nil
	}

	return &seedState{
		path:       PathLiked,
		vector:     Average(vectors),
		categories: unionCategories(payloads),
		affinity:   KeywordAffinity(payloads),
		teaser:     likedTeaser,
	}, nil
}

// fetchNegative retrieves disliked vectors. Failure degrades to no steering.
func (e *Engine) fetchNegative(ctx context.Context, ids []string) ([][]float32, *RetrievalWarning) {
	points, err := e.retriever.RetrieveByIDs(ctx, ids)
	if err != nil {
		e.logger.Warn().Err(err).Int("disliked", len(ids)).Msg("disliked articles unavailable, skipping negative steering")
		return nil, &RetrievalWarning{Op: "retrieve_dislikes", Err: err}
	}
	negative := make([][]float32, 0, len(points))
	for i := range points {
		if len(points[i].Vector) > 0 {
			negative = append(negative, points[i].Vector)
		}
	}
	return negative, nil
}

func findPoint(points []vectorindex.Point, id string) (vectorindex.Point, bool) {
	for i := range points {
		if string(points[i].ID) == id {
			return points[i], true
		}
	}
	// Indexes that normalize IDs may echo a different textual form.
	if len(points) == 1 {
		return points[0], true
	}
	return vectorindex.Point{}, false
}

func unionCategories(payloads []*vectorindex.Payload) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range payloads {
		if p == nil {
			continue
		}
		for _, c := range p.Categories {
			if _, ok := seen[c]; ok || c == "" {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
