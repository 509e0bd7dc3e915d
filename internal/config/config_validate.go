// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that required configuration is present and valid.
// It returns the first violation found.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateVectorIndex(); err != nil {
		return err
	}

	if err := c.validateEmbedding(); err != nil {
		return err
	}

	if err := c.validateTrending(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	return c.validateHTTPSurface()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	if c.Server.HandlerTimeout <= 0 {
		return fmt.Errorf("server.handler_timeout must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateVectorIndex() error {
	if c.VectorIndex.URL == "" {
		return fmt.Errorf("QDRANT_URL is required")
	}
	if err := validateHTTPURL(c.VectorIndex.URL, "QDRANT_URL"); err != nil {
		return err
	}
	if strings.TrimSpace(c.VectorIndex.Collection) == "" {
		return fmt.Errorf("QDRANT_COLLECTION is required")
	}
	if c.VectorIndex.Timeout <= 0 {
		return fmt.Errorf("QDRANT_TIMEOUT must be positive")
	}
	if c.VectorIndex.HNSWEf < 0 {
		return fmt.Errorf("vector_index.hnsw_ef must be non-negative, got %d", c.VectorIndex.HNSWEf)
	}
	return nil
}

// validateEmbedding validates the embedding service. An empty URL disables
// free-text search.
func (c *Config) validateEmbedding() error {
	if c.Embedding.Dimension <= 0 {
		return fmt.Errorf("embedding.dimension must be positive, got %d", c.Embedding.Dimension)
	}
	if c.Embedding.URL == "" {
		return nil
	}
	if err := validateEndpointURL(c.Embedding.URL, "EMBEDDING_URL"); err != nil {
		return err
	}
	if c.Embedding.Timeout <= 0 {
		return fmt.Errorf("EMBEDDING_TIMEOUT must be positive")
	}
	if c.Embedding.CacheSize < 0 {
		return fmt.Errorf("embedding.cache_size must be non-negative, got %d", c.Embedding.CacheSize)
	}
	if c.Embedding.CacheSize > 0 && c.Embedding.CacheTTL <= 0 {
		return fmt.Errorf("embedding.cache_ttl must be positive when caching is enabled")
	}
	if c.Embedding.RateLimit < 0 {
		return fmt.Errorf("embedding.rate_limit must be non-negative, got %v", c.Embedding.RateLimit)
	}
	return nil
}

func (c *Config) validateTrending() error {
	if c.Trending.Path == "" {
		return fmt.Errorf("TRENDING_STATS_PATH is required")
	}
	if c.Trending.ReloadInterval <= 0 {
		return fmt.Errorf("trending.reload_interval must be positive")
	}
	if c.Trending.TopN < 1 {
		return fmt.Errorf("trending.top_n must be at least 1, got %d", c.Trending.TopN)
	}
	return nil
}

// validateRecommend validates recommendation tuning by building the engine
// configuration and delegating to its own checks.
func (c *Config) validateRecommend() error {
	if c.Recommend.MMRLambda < 0 || c.Recommend.MMRLambda > 1 {
		return fmt.Errorf("recommend.mmr_lambda must be between 0 and 1, got %v", c.Recommend.MMRLambda)
	}
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validateHTTPSurface() error {
	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	for _, origin := range c.CORS.AllowedOrigins {
		if origin == "*" {
			continue
		}
		if err := validateHTTPURL(origin, "CORS_ORIGINS"); err != nil {
			return err
		}
	}
	if c.RateLimit.Disabled {
		return nil
	}
	if c.RateLimit.Requests < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.RateLimit.Requests)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive")
	}
	return nil
}
