// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package config

import (
	"time"

	"github.com/tomtom215/pulzion/internal/recommend"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Logging     LoggingConfig     `koanf:"logging"`
	VectorIndex VectorIndexConfig `koanf:"vector_index"`
	Embedding   EmbeddingConfig   `koanf:"embedding"`
	Trending    TrendingConfig    `koanf:"trending"`
	Recommend   RecommendConfig   `koanf:"recommend"`
	CORS        CORSConfig        `koanf:"cors"`
	RateLimit   RateLimitConfig   `koanf:"rate_limit"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	HandlerTimeout  time.Duration `koanf:"handler_timeout"` // Per-request deadline for engine calls (default: 15s)
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// VectorIndexConfig holds the article vector index connection settings.
type VectorIndexConfig struct {
	// URL is the index base URL, without a path.
	// Default: http://localhost:6333
	URL string `koanf:"url"`

	// APIKey is sent in the api-key header when set.
	APIKey string `koanf:"api_key"`

	// Collection holds the article points.
	// Default: articles_collection
	Collection string `koanf:"collection"`

	// Timeout bounds each index request.
	// Default: 10s
	Timeout time.Duration `koanf:"timeout"`

	// HNSWEf is the search-time beam width. Zero leaves the index default.
	// Default: 128
	HNSWEf int `koanf:"hnsw_ef"`

	// BreakerEnabled wraps the client with a circuit breaker.
	// Default: true
	BreakerEnabled bool `koanf:"breaker_enabled"`
}

// EmbeddingConfig holds the query embedding service settings.
type EmbeddingConfig struct {
	// URL is the full embed endpoint.
	// Default: http://127.0.0.1:8000/embed
	URL string `koanf:"url"`

	// Timeout bounds each embed request.
	// Default: 10s
	Timeout time.Duration `koanf:"timeout"`

	// Dimension is the vector length the service must return.
	// Default: 384
	Dimension int `koanf:"dimension"`

	// CacheSize is the number of cached query embeddings. Zero disables caching.
	// Default: 1000
	CacheSize int `koanf:"cache_size"`

	// CacheTTL expires cached embeddings.
	// Default: 10m
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// RateLimit caps upstream requests per second. Zero is unlimited.
	// Default: 0
	RateLimit float64 `koanf:"rate_limit"`

	// BreakerEnabled wraps the client with a circuit breaker.
	// Default: true
	BreakerEnabled bool `koanf:"breaker_enabled"`
}

// TrendingConfig holds the trending statistics snapshot settings.
type TrendingConfig struct {
	// Path of trending_stats.json.
	// Default: trending_stats.json
	Path string `koanf:"path"`

	// ReloadInterval is how often the snapshot is re-read.
	// Default: 5m
	ReloadInterval time.Duration `koanf:"reload_interval"`

	// TopN is the number of trending keywords used on cold start.
	// Default: 10
	TopN int `koanf:"top_n"`
}

// RecommendConfig holds recommendation engine tuning.
type RecommendConfig struct {
	RecencyDays         int     `koanf:"recency_days"`
	DefaultTopK         int     `koanf:"default_top_k"`
	MaxTopK             int     `koanf:"max_top_k"`
	SurpriseProbability float64 `koanf:"surprise_probability"`
	OnePerSource        bool    `koanf:"one_per_source"` // Keep only the best article per source (default: false)
	MMRLambda           float64 `koanf:"mmr_lambda"`     // 1.0 disables MMR reranking
	AnchorWeight        float64 `koanf:"anchor_weight"`
	Seed                int64   `koanf:"seed"` // 0 uses time-based entropy

	Scoring ScoringConfig `koanf:"scoring"`
}

// ScoringConfig holds the additive re-scoring weights.
type ScoringConfig struct {
	TopicCoherenceBoost    float64 `koanf:"topic_coherence_boost"`
	TopicCoherenceCap      float64 `koanf:"topic_coherence_cap"`
	PreferredCategoryBoost float64 `koanf:"preferred_category_boost"`
	TopicFilterBoost       float64 `koanf:"topic_filter_boost"`
	ClickbaitPenalty       float64 `koanf:"clickbait_penalty"`
	FreshnessMax           float64 `koanf:"freshness_max"`
	FreshnessDecayDays     float64 `koanf:"freshness_decay_days"`
	SeenSourcePenalty      float64 `koanf:"seen_source_penalty"`
}

// CORSConfig holds cross-origin settings
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// RateLimitConfig holds per-IP rate limiting settings
type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Disabled bool          `koanf:"disabled"`
}

// EngineConfig builds the engine configuration from the application settings.
// Settings without an application key keep the engine defaults.
func (c *Config) EngineConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()
	r := c.Recommend

	cfg.Retrieval.DefaultRecencyDays = r.RecencyDays
	cfg.Limits.DefaultTopK = r.DefaultTopK
	cfg.Limits.MaxTopK = r.MaxTopK
	cfg.Surprise.Probability = r.SurpriseProbability
	cfg.Seed.AnchorWeight = r.AnchorWeight
	cfg.RandomSeed = r.Seed
	if r.OnePerSource {
		cfg.Diversity.MaxPerSource = 1
	}

	cfg.Scoring.TopicCoherenceBoost = r.Scoring.TopicCoherenceBoost
	cfg.Scoring.TopicCoherenceCap = r.Scoring.TopicCoherenceCap
	cfg.Scoring.PreferredCategoryBoost = r.Scoring.PreferredCategoryBoost
	cfg.Scoring.TopicFilterBoost = r.Scoring.TopicFilterBoost
	cfg.Scoring.ClickbaitPenalty = r.Scoring.ClickbaitPenalty
	cfg.Scoring.FreshnessMax = r.Scoring.FreshnessMax
	cfg.Scoring.FreshnessDecayDays = r.Scoring.FreshnessDecayDays
	cfg.Scoring.SeenSourcePenalty = r.Scoring.SeenSourcePenalty

	cfg.ColdStart.TrendingTopN = c.Trending.TopN
	cfg.Dimension = c.Embedding.Dimension

	return cfg
}
