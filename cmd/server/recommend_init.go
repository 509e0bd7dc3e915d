// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pulzion/internal/breaker"
	"github.com/tomtom215/pulzion/internal/config"
	"github.com/tomtom215/pulzion/internal/embedding"
	"github.com/tomtom215/pulzion/internal/recommend"
	"github.com/tomtom215/pulzion/internal/recommend/reranking"
	"github.com/tomtom215/pulzion/internal/trending"
	"github.com/tomtom215/pulzion/internal/vectorindex"
)

// RecommendComponents holds everything the API layer needs from the engine side.
type RecommendComponents struct {
	Engine   *recommend.Engine
	Index    vectorindex.Index
	Trending *trending.Store
}

// initRecommend wires the vector index, embedder, trending store and engine.
// A missing trending document or unreachable index is logged, not fatal:
// cold start falls back to random picks and readiness reports the index.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*RecommendComponents, error) {
	index := newVectorIndex(cfg, logger)
	if err := index.Ping(ctx); err != nil {
		logger.Warn().Err(err).Str("url", cfg.VectorIndex.URL).Msg("Vector index not reachable at startup (will retry per request)")
	}

	store := trending.NewStore(cfg.Trending.Path, logger)
	if err := store.Reload(ctx); err != nil {
		logger.Warn().Err(err).Msg("Starting without trending statistics")
	}

	engine, err := recommend.NewEngine(cfg.EngineConfig(), index, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	engine.SetTrendingSource(store)

	if emb := newEmbedder(cfg); emb != nil {
		engine.SetEmbedder(emb)
		logger.Info().
			Str("url", cfg.Embedding.URL).
			Int("cache_size", cfg.Embedding.CacheSize).
			Msg("Embedding service configured")
	} else {
		logger.Info().Msg("Embedding service disabled, /api/closest will return 503")
	}

	if cfg.Recommend.MMRLambda < 1 {
		engine.RegisterReranker(reranking.NewMMR(cfg.Recommend.MMRLambda))
		logger.Info().Float64("lambda", cfg.Recommend.MMRLambda).Msg("MMR diversity reranking enabled")
	}

	return &RecommendComponents{
		Engine:   engine,
		Index:    index,
		Trending: store,
	}, nil
}

//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func newVectorIndex(cfg *config.Config, logger zerolog.Logger) vectorindex.Index {
	client := vectorindex.NewClient(vectorindex.Config{
		URL:        cfg.VectorIndex.URL,
		APIKey:     cfg.VectorIndex.APIKey,
		Collection: cfg.VectorIndex.Collection,
		Timeout:    cfg.VectorIndex.Timeout,
		HNSWEf:     cfg.VectorIndex.HNSWEf,
	}, logger)

	if !cfg.VectorIndex.BreakerEnabled {
		return client
	}
	return vectorindex.NewCircuitBreakerClient(client, breaker.DefaultSettings())
}

// newEmbedder returns nil when no embedding URL is configured.
func newEmbedder(cfg *config.Config) embedding.Embedder {
	if cfg.Embedding.URL == "" {
		return nil
	}

	var emb embedding.Embedder = embedding.NewClient(embedding.Config{
		URL:       cfg.Embedding.URL,
		Timeout:   cfg.Embedding.Timeout,
		RateLimit: cfg.Embedding.RateLimit,
		Breaker:   cfg.Embedding.BreakerEnabled,
	})
	if cfg.Embedding.CacheSize > 0 {
		emb = embedding.NewCachedEmbedder(emb, cfg.Embedding.CacheSize, cfg.Embedding.CacheTTL)
	}
	return emb
}
