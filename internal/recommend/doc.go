// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

// Package recommend implements the news recommendation engine.
//
// # Architecture
//
// The engine builds a personalized feed from a vector index of article
// embeddings. A request is resolved into one of three paths:
//
//   - Seeded: an anchor article is blended with the caller's other likes
//   - Liked: the caller's likes are averaged without an anchor
//   - Cold start: trending keywords, or a random sample when none exist
//
// Seeded and liked requests search two candidate pools concurrently. The
// similar pool shares a category with the seed, the discover pool shares
// none. Candidates from both pools are merged, re-scored with additive
// heuristics (topic coherence, topic filter, clickbait, freshness, seen
// source), sorted and truncated to the requested size.
//
// # Failure Handling
//
// Searches and scrolls never abort a request. A failed retrieval yields an
// empty result together with a RetrievalWarning that is logged and reported
// in the response metadata. Only malformed requests, a missing anchor
// article and embeddings of the wrong dimension fail the call.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), index, logger)
//	if err != nil {
//	    return err
//	}
//	engine.SetTrendingSource(store)
//	engine.SetEmbedder(embedder)
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    ArticleID: "a1",
//	    TopK:      10,
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. The random source is guarded by a
// mutex, and rerankers and collaborators are swapped under a lock.
//
// This package has no dependencies on other internal packages beyond the
// vectorindex wire types.
package recommend
