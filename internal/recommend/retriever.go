// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pulzion/internal/vectorindex"
)

// VectorIndex is the subset of the vector index client the engine needs.
type VectorIndex interface {
	// Retrieve returns points with vectors and payloads. Unknown IDs are omitted.
	Retrieve(ctx context.Context, ids []string) ([]vectorindex.Point, error)

	// Search returns nearest neighbours of a query vector.
	Search(ctx context.Context, req vectorindex.SearchRequest) ([]vectorindex.ScoredPoint, error)

	// Scroll returns points matching a filter without ranking.
	Scroll(ctx context.Context, req vectorindex.ScrollRequest) ([]vectorindex.Point, error)
}

// SearchResult is the outcome of a contained search. Warning is set when
// the search failed and Hits is empty because of it.
type SearchResult struct {
	Hits    []vectorindex.ScoredPoint
	Warning *RetrievalWarning
}

// ScrollResult is the outcome of a contained scroll.
type ScrollResult struct {
	Points  []vectorindex.Point
	Warning *RetrievalWarning
}

// Retriever wraps a VectorIndex with failure containment.
type Retriever struct {
	index  VectorIndex
	logger zerolog.Logger
}

// NewRetriever creates a retriever over index.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRetriever(index VectorIndex, logger zerolog.Logger) *Retriever {
	return &Retriever{index: index, logger: logger}
}

// RetrieveByIDs fetches points by ID. Unlike searches, failures propagate.
func (r *Retriever) RetrieveByIDs(ctx context.Context, ids []string) ([]vectorindex.Point, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	points, err := r.index.Retrieve(ctx, ids)
	if err != nil {
		return nil, upstream(fmt.Sprintf("retrieve %d articles", len(ids)), err)
	}
	return points, nil
}

// SafeSearch runs a search and converts any failure into an empty result
// with a warning. It never returns an error.
func (r *Retriever) SafeSearch(ctx context.Context, op string, req vectorindex.SearchRequest) SearchResult {
	if req.Limit <= 0 {
		return SearchResult{}
	}
	hits, err := r.index.Search(ctx, req)
	if err != nil {
		w := &RetrievalWarning{Op: op, Err: err}
		r.logger.Warn().Err(err).Str("op", op).Int("limit", req.Limit).Msg("search failed, continuing with empty result")
		return SearchResult{Warning: w}
	}
	return SearchResult{Hits: hits}
}

// ScrollRandom returns up to limit points matching filter, in index order.
// Callers shuffle the points themselves. Failures become a warning.
func (r *Retriever) ScrollRandom(ctx context.Context, op string, filter *vectorindex.Filter, limit int) ScrollResult {
	if limit <= 0 {
		return ScrollResult{}
	}
	points, err := r.index.Scroll(ctx, vectorindex.ScrollRequest{Filter: filter, Limit: limit})
	if err != nil {
		w := &RetrievalWarning{Op: op, Err: err}
		r.logger.Warn().Err(err).Str("op", op).Int("limit", limit).Msg("scroll failed, continuing with empty result")
		return ScrollResult{Warning: w}
	}
	return ScrollResult{Points: points}
}

// BaseFilter builds the filter shared by every retrieval of a request:
// published within recencyDays of now, an optional sentiment match, and
// exclusion of the given article IDs.
func BaseFilter(now time.Time, recencyDays int, sentiment string, exclude []string) *vectorindex.Filter {
	f := &vectorindex.Filter{}
	f.AddMust(vectorindex.PublishedAfter(now.Add(-time.Duration(recencyDays) * 24 * time.Hour)))
	if sentiment != "" && sentiment != SentimentAny {
		f.AddMust(vectorindex.MatchValue("sentiment", sentiment))
	}
	if len(exclude) > 0 {
		f.AddMustNot(vectorindex.HasID(exclude...))
	}
	return f
}
