// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package embedding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/pulzion/internal/metrics"
)

// loadTimeout bounds a shared upstream load, which runs detached from the
// cancellation of whichever caller started it.
const loadTimeout = 30 * time.Second

// CachedEmbedder memoizes query embeddings. Concurrent misses for the same
// query share one upstream call.
type CachedEmbedder struct {
	next  Embedder
	cache *expirable.LRU[string, []float32]
	group singleflight.Group
}

var _ Embedder = (*CachedEmbedder)(nil)

// NewCachedEmbedder wraps next with an LRU of size entries that expire after ttl.
// A size <= 0 returns next unchanged.
func NewCachedEmbedder(next Embedder, size int, ttl time.Duration) Embedder {
	if size <= 0 {
		return next
	}
	return &CachedEmbedder{
		next:  next,
		cache: expirable.NewLRU[string, []float32](size, nil, ttl),
	}
}

// Embed returns a cached vector or loads it from the wrapped embedder.
// Queries are keyed after whitespace trimming; failures are never cached.
// A caller whose ctx ends stops waiting without failing the other callers
// sharing the same load.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := strings.TrimSpace(text)
	if vec, ok := c.cache.Get(key); ok {
		metrics.RecordEmbeddingCache(true)
		return vec, nil
	}
	metrics.RecordEmbeddingCache(false)

	ch := c.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		vec, loadErr := c.next.Embed(loadCtx, key)
		if loadErr != nil {
			return nil, loadErr
		}
		c.cache.Add(key, vec)
		return vec, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, fmt.Errorf("query embedding: %w", ctx.Err())
	}
	if res.Err != nil {
		return nil, fmt.Errorf("query embedding: %w", res.Err)
	}
	val := res.Val

	vec, ok := val.([]float32)
	if !ok {
		return nil, fmt.Errorf("query embedding: unexpected cached type %T", val)
	}
	return vec, nil
}

// Len returns the number of cached queries.
func (c *CachedEmbedder) Len() int {
	return c.cache.Len()
}
