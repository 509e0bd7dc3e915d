// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/pulzion/internal/vectorindex"
)

// Engine produces news recommendations from a vector index.
// It is safe for concurrent use.
type Engine struct {
	config    *Config
	logger    zerolog.Logger
	retriever *Retriever

	// Collaborators and rerankers, swapped under mu
	trending  TrendingSource
	embedder  Embedder
	rerankers []Reranker
	mu        sync.RWMutex

	// Random source for sampling and the surprise roll (protected by rngMu)
	rng   *rand.Rand
	rngMu sync.Mutex

	now func() time.Time

	requestCount   atomic.Int64
	errorCount     atomic.Int64
	coldStartCount atomic.Int64
	fallbackCount  atomic.Int64
	surpriseCount  atomic.Int64
	warningCount   atomic.Int64
}

// NewEngine creates a recommendation engine over index.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, index VectorIndex, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if index == nil {
		return nil, fmt.Errorf("vector index is required")
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engineLogger := logger.With().Str("component", "recommend").Logger()
	return &Engine{
		config:    cfg,
		logger:    engineLogger,
		retriever: NewRetriever(index, engineLogger),
		rerankers: make([]Reranker, 0),
		rng:       rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for recommendation sampling
		now:       time.Now,
	}, nil
}

// SetTrendingSource sets the source of cold-start keywords.
func (e *Engine) SetTrendingSource(src TrendingSource) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.trending = src
}

// SetEmbedder sets the embedder used by Closest.
func (e *Engine) SetEmbedder(emb Embedder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.embedder = emb
}

// RegisterReranker adds a reranker to the post-processing pipeline.
func (e *Engine) RegisterReranker(rr Reranker) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rerankers = append(e.rerankers, rr)
	e.logger.Info().
		Str("reranker", rr.Name()).
		Msg("registered reranker")
}

// Recommend builds a recommendation list for req. It fails only for
// malformed requests, an unknown anchor article, or a failed retrieval of
// the caller's feedback articles. Search failures are contained and
// reported in the response metadata.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req, err := e.prepareRequest(req)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}
	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	now := e.now()
	exclude := newExclusionSet(req)
	base := BaseFilter(now, req.RecencyDays, req.Sentiment, exclude.ids)

	seed, err := e.resolveSeed(ctx, req, logger)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	var (
		results  []ScoredCandidate
		warnings []*RetrievalWarning
		path     Path
	)

	if seed == nil {
		path = PathColdStart
		e.coldStartCount.Add(1)
		results, warnings = e.coldStart(ctx, req, base, exclude, logger)
	} else {
		path = seed.path
		warnings = append(warnings, seed.warnings...)

		var ws []*RetrievalWarning
		results, ws = e.rankCandidates(ctx, req, seed, base, exclude, now)
		warnings = append(warnings, ws...)

		var w *RetrievalWarning
		results, w = e.topUp(ctx, req, base, results, exclude)
		warnings = appendWarning(warnings, w)

		results, w = e.maybeSurprise(ctx, req, seed, base, results, exclude)
		warnings = appendWarning(warnings, w)

		if len(results) == 0 {
			path = PathFallback
			e.fallbackCount.Add(1)
			logger.Debug().Msg("no ranked candidates, falling back to random sample")
			results, w = e.randomCandidates(ctx, "scroll_fallback", base, req.TopK, freshTeaser, exclude, nil)
			warnings = appendWarning(warnings, w)
		}
	}

	resp := e.buildResponse(req, path, results, warnings, start)
	logger.Debug().
		Str("path", string(path)).
		Int("returned", resp.Count).
		Int("warnings", len(warnings)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest validates req and applies defaults.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	req.ArticleID = strings.TrimSpace(req.ArticleID)
	req.LikedArticleIDs = cleanList(req.LikedArticleIDs)
	req.DislikedArticleIDs = cleanList(req.DislikedArticleIDs)
	req.UserHistory = cleanList(req.UserHistory)
	req.SeenSources = cleanList(req.SeenSources)
	req.Topic = cleanList(req.Topic)
	req.PreferredCategories = cleanList(req.PreferredCategories)

	switch {
	case req.TopK == 0:
		req.TopK = e.config.Limits.DefaultTopK
	case req.TopK < 0 || req.TopK > e.config.Limits.MaxTopK:
		return req, invalidRequest("topK must be between 1 and %d, got %d", e.config.Limits.MaxTopK, req.TopK)
	}

	switch {
	case req.RecencyDays == 0:
		req.RecencyDays = e.config.Retrieval.DefaultRecencyDays
	case req.RecencyDays < 0:
		return req, invalidRequest("recencyDays must be positive, got %d", req.RecencyDays)
	}

	req.Sentiment = strings.ToLower(strings.TrimSpace(req.Sentiment))
	switch req.Sentiment {
	case "", SentimentAny, SentimentPositive, SentimentNeutral, SentimentNegative:
	default:
		return req, invalidRequest("sentiment must be one of positive, neutral, negative, any; got %q", req.Sentiment)
	}

	return req, nil
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("article_id", req.ArticleID).
		Int("liked", len(req.LikedArticleIDs)).
		Int("top_k", req.TopK).
		Logger()
}

// rankCandidates searches the similar and discover pools concurrently,
// merges them, re-scores and sorts the merged list and truncates it to topK.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) rankCandidates(ctx context.Context, req Request, seed *seedState, base *vectorindex.Filter, exclude *exclusionSet, now time.Time) ([]ScoredCandidate, []*RetrievalWarning) {
	similarFilter := base.Clone()
	var discoverFilter *vectorindex.Filter
	if len(seed.categories) > 0 {
		similarFilter.AddMust(vectorindex.MatchAny("categories", seed.categories))
		discoverFilter = base.Clone().AddMustNot(vectorindex.MatchAny("categories", seed.categories))
	}

	var (
		wg                sync.WaitGroup
		similar, discover SearchResult
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		similar = e.retriever.SafeSearch(ctx, "search_similar", vectorindex.SearchRequest{
			Vector:   seed.vector,
			Negative: seed.negative,
			Filter:   similarFilter,
			Limit:    req.TopK * e.config.Retrieval.SimilarPoolFactor,
		})
	}()
	if discoverFilter != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			discover = e.retriever.SafeSearch(ctx, "search_discover", vectorindex.SearchRequest{
				Vector:   seed.vector,
				Negative: seed.negative,
				Filter:   discoverFilter,
				Limit:    req.TopK * e.config.Retrieval.DiscoverPoolFactor,
			})
		}()
	}
	wg.Wait()

	var warnings []*RetrievalWarning
	warnings = appendWarning(warnings, similar.Warning)
	warnings = appendWarning(warnings, discover.Warning)

	scorer := NewScorer(e.config.Scoring, now, ScoringInput{
		Affinity:            seed.affinity,
		Topics:              req.Topic,
		PreferredCategories: req.PreferredCategories,
		SeenSources:         req.SeenSources,
	})

	merged := make([]ScoredCandidate, 0, len(similar.Hits)+len(discover.Hits))
	taken := make(map[string]struct{}, cap(merged))
	add := func(hits []vectorindex.ScoredPoint, typ CandidateType) {
		for i := range hits {
			id := string(hits[i].ID)
			if exclude.has(id) {
				continue
			}
			if _, dup := taken[id]; dup {
				continue
			}
			taken[id] = struct{}{}
			score := scorer.Score(hits[i].Score, hits[i].Payload)
			merged = append(merged, newCandidate(hits[i].ID, hits[i].Payload, score, seed.teaser, typ))
		}
	}
	add(similar.Hits, TypeSimilar)
	add(discover.Hits, TypeDiscover)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	merged = capPerSource(merged, e.config.Diversity.MaxPerSource)
	merged = e.applyRerankers(ctx, merged, req.TopK)

	if len(merged) > req.TopK {
		merged = merged[:req.TopK]
	}
	return merged, warnings
}

// topUp fills a short, non-empty list with random picks from the base
// window so the caller receives topK results when the index has them.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) topUp(ctx context.Context, req Request, base *vectorindex.Filter, results []ScoredCandidate, exclude *exclusionSet) ([]ScoredCandidate, *RetrievalWarning) {
	if len(results) == 0 {
		return results, nil
	}
	return e.fillRandom(ctx, "scroll_topup", base, results, req.TopK, e.config.Diversity.MaxPerSource, exclude)
}

// applyRerankers applies post-processing rerankers to the ranked candidates.
func (e *Engine) applyRerankers(ctx context.Context, items []ScoredCandidate, k int) []ScoredCandidate {
	e.mu.RLock()
	rerankers := e.rerankers
	e.mu.RUnlock()

	for _, rr := range rerankers {
		items = rr.Rerank(ctx, items, k)
	}
	return items
}

// buildResponse rounds scores and assembles metadata.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponse(req Request, path Path, results []ScoredCandidate, warnings []*RetrievalWarning, start time.Time) *Response {
	if results == nil {
		results = []ScoredCandidate{}
	}
	for i := range results {
		results[i].Score = roundScore(results[i].Score)
	}

	meta := ResponseMetadata{
		RequestID: req.RequestID,
		Path:      path,
		LatencyMS: time.Since(start).Milliseconds(),
	}
	for _, w := range warnings {
		meta.Warnings = append(meta.Warnings, WarningInfo{Op: w.Op, Message: w.Err.Error()})
	}
	e.warningCount.Add(int64(len(warnings)))

	return &Response{
		Recommendations: results,
		Count:           len(results),
		Metadata:        meta,
	}
}

// Closest embeds a free-text query and returns the nearest recent articles
// by raw similarity.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Closest(ctx context.Context, req ClosestRequest) (*ClosestResponse, error) {
	e.requestCount.Add(1)

	query := strings.TrimSpace(req.Query)
	if query == "" {
		e.errorCount.Add(1)
		return nil, invalidRequest("query is required")
	}
	if n := utf8.RuneCountInString(query); n > e.config.Limits.MaxQueryLength {
		e.errorCount.Add(1)
		return nil, invalidRequest("query must be at most %d characters, got %d", e.config.Limits.MaxQueryLength, n)
	}
	topK, recency, err := e.searchLimits(req.TopK, req.RecencyDays)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	embedder := e.getEmbedder()
	if embedder == nil {
		e.errorCount.Add(1)
		return nil, ErrEmbedderNotConfigured
	}
	vector, err := embedder.Embed(ctx, query)
	if err != nil {
		e.errorCount.Add(1)
		return nil, upstream("embed query", err)
	}
	if len(vector) != e.config.Dimension {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("%w: embedding must be %d-dim, got %d", ErrInvalidEmbedding, e.config.Dimension, len(vector))
	}

	hits, err := e.retriever.index.Search(ctx, vectorindex.SearchRequest{
		Vector: vector,
		Filter: BaseFilter(e.now(), recency, "", nil),
		Limit:  topK,
	})
	if err != nil {
		e.errorCount.Add(1)
		return nil, upstream("search closest articles", err)
	}

	results := make([]ClosestResult, 0, len(hits))
	for i := range hits {
		score := roundScore(hits[i].Score)
		results = append(results, ClosestResult{
			ArticleView: formatArticle(hits[i].ID, hits[i].Payload),
			Score:       score,
			Relevance:   score,
		})
	}

	e.logger.Debug().Int("returned", len(results)).Int("top_k", topK).Msg("closest search complete")
	return &ClosestResponse{Query: query, Results: results, Count: len(results)}, nil
}

// Similar returns recent articles nearest to a base article.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Similar(ctx context.Context, req SimilarRequest) (*SimilarResponse, error) {
	e.requestCount.Add(1)

	id := strings.TrimSpace(req.ArticleID)
	if id == "" {
		e.errorCount.Add(1)
		return nil, invalidRequest("articleId is required")
	}
	topK, recency, err := e.searchLimits(req.TopK, req.RecencyDays)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	points, err := e.retriever.RetrieveByIDs(ctx, []string{id})
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("retrieve base article: %w", err)
	}
	base, ok := findPoint(points, id)
	if !ok || len(base.Vector) == 0 {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("%w: %s", ErrArticleNotFound, id)
	}

	hits, err := e.retriever.index.Search(ctx, vectorindex.SearchRequest{
		Vector: base.Vector,
		Filter: BaseFilter(e.now(), recency, "", []string{id}),
		Limit:  topK,
	})
	if err != nil {
		e.errorCount.Add(1)
		return nil, upstream("search similar articles", err)
	}

	results := make([]SimilarResult, 0, len(hits))
	for i := range hits {
		if string(hits[i].ID) == id {
			continue
		}
		score := roundScore(hits[i].Score)
		results = append(results, SimilarResult{
			ArticleView: formatArticle(hits[i].ID, hits[i].Payload),
			Score:       score,
			Similarity:  score,
		})
	}

	return &SimilarResponse{
		BaseArticle: baseArticle(formatArticle(base.ID, base.Payload)),
		Results:     results,
		Count:       len(results),
	}, nil
}

// searchLimits applies the defaults shared by Closest and Similar.
func (e *Engine) searchLimits(topK, recencyDays int) (int, int, error) {
	switch {
	case topK == 0:
		topK = e.config.Limits.DefaultClosestTopK
	case topK < 0 || topK > e.config.Limits.MaxTopK:
		return 0, 0, invalidRequest("topK must be between 1 and %d, got %d", e.config.Limits.MaxTopK, topK)
	}
	switch {
	case recencyDays == 0:
		recencyDays = e.config.Retrieval.DefaultRecencyDays
	case recencyDays < 0:
		return 0, 0, invalidRequest("recencyDays must be positive, got %d", recencyDays)
	}
	return topK, recencyDays, nil
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:   e.requestCount.Load(),
		ErrorCount:     e.errorCount.Load(),
		ColdStartCount: e.coldStartCount.Load(),
		FallbackCount:  e.fallbackCount.Load(),
		SurpriseCount:  e.surpriseCount.Load(),
		WarningCount:   e.warningCount.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

func (e *Engine) getTrendingSource() TrendingSource {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.trending
}

func (e *Engine) getEmbedder() Embedder {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.embedder
}

// roll reports true with probability p.
func (e *Engine) roll(p float64) bool {
	if p <= 0 {
		return false
	}
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Float64() < p
}

func (e *Engine) intn(n int) int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Intn(n)
}

func (e *Engine) shuffle(n int, swap func(i, j int)) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng.Shuffle(n, swap)
}

// exclusionSet holds every article ID a request must never return.
type exclusionSet struct {
	ids []string
	set map[string]struct{}
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func newExclusionSet(req Request) *exclusionSet {
	ex := &exclusionSet{set: make(map[string]struct{})}
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := ex.set[id]; ok {
			return
		}
		ex.set[id] = struct{}{}
		ex.ids = append(ex.ids, id)
	}
	add(req.ArticleID)
	for _, list := range [][]string{req.UserHistory, req.LikedArticleIDs, req.DislikedArticleIDs} {
		for _, id := range list {
			add(id)
		}
	}
	return ex
}

func (x *exclusionSet) has(id string) bool {
	if x == nil {
		return false
	}
	_, ok := x.set[id]
	return ok
}

// capPerSource keeps at most n candidates per source, preserving order.
// Zero disables the cap.
func capPerSource(items []ScoredCandidate, n int) []ScoredCandidate {
	if n <= 0 {
		return items
	}
	counts := make(map[string]int, len(items))
	out := items[:0]
	for i := range items {
		if counts[items[i].Source] >= n {
			continue
		}
		counts[items[i].Source]++
		out = append(out, items[i])
	}
	return out
}

func appendWarning(warnings []*RetrievalWarning, w *RetrievalWarning) []*RetrievalWarning {
	if w == nil {
		return warnings
	}
	return append(warnings, w)
}

// cleanList trims entries and drops empties and duplicates, keeping order.
func cleanList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
