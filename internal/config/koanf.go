// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/pulzion/config.yaml",
	"/etc/pulzion/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			HandlerTimeout:  15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		VectorIndex: VectorIndexConfig{
			URL:            "http://localhost:6333",
			Collection:     "articles_collection",
			Timeout:        10 * time.Second,
			HNSWEf:         128,
			BreakerEnabled: true,
		},
		Embedding: EmbeddingConfig{
			URL:            "http://127.0.0.1:8000/embed",
			Timeout:        10 * time.Second,
			Dimension:      384,
			CacheSize:      1000,
			CacheTTL:       10 * time.Minute,
			BreakerEnabled: true,
		},
		Trending: TrendingConfig{
			Path:           "trending_stats.json",
			ReloadInterval: 5 * time.Minute,
			TopN:           10,
		},
		Recommend: RecommendConfig{
			RecencyDays:         60,
			DefaultTopK:         10,
			MaxTopK:             50,
			SurpriseProbability: 0.05,
			OnePerSource:        false,
			MMRLambda:           1.0, // Disabled
			AnchorWeight:        0.4,
			Seed:                0,
			Scoring: ScoringConfig{
				TopicCoherenceBoost:    0.02,
				TopicCoherenceCap:      0.1,
				PreferredCategoryBoost: 0.08,
				TopicFilterBoost:       0.12,
				ClickbaitPenalty:       0.15,
				FreshnessMax:           0.1,
				FreshnessDecayDays:     180,
				SeenSourcePenalty:      0.1,
			},
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			Requests: 100,
			Window:   time.Minute,
			Disabled: false,
		},
	}
}

// Load is an alias for LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
// defaults, then an optional config file, then environment variables.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// QDRANT_URL -> vector_index.url
	// TRENDING_STATS_PATH -> trending.path
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"cors.allowed_origins",
}

// processSliceFields converts comma-separated environment values into slices.
// Values that are already slices (from YAML) are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercase environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"http_handler_timeout":  "server.handler_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Vector index
	"qdrant_url":             "vector_index.url",
	"qdrant_api_key":         "vector_index.api_key",
	"qdrant_collection":      "vector_index.collection",
	"qdrant_timeout":         "vector_index.timeout",
	"qdrant_hnsw_ef":         "vector_index.hnsw_ef",
	"qdrant_breaker_enabled": "vector_index.breaker_enabled",

	// Embedding service
	"embedding_url":             "embedding.url",
	"embedding_timeout":         "embedding.timeout",
	"embedding_dimension":       "embedding.dimension",
	"embedding_cache_size":      "embedding.cache_size",
	"embedding_cache_ttl":       "embedding.cache_ttl",
	"embedding_rate_limit":      "embedding.rate_limit",
	"embedding_breaker_enabled": "embedding.breaker_enabled",

	// Trending
	"trending_stats_path":      "trending.path",
	"trending_reload_interval": "trending.reload_interval",
	"trending_top_n":           "trending.top_n",

	// Recommendation engine
	"recommend_recency_days":         "recommend.recency_days",
	"recommend_default_top_k":        "recommend.default_top_k",
	"recommend_max_top_k":            "recommend.max_top_k",
	"recommend_surprise_probability": "recommend.surprise_probability",
	"recommend_one_per_source":       "recommend.one_per_source",
	"recommend_mmr_lambda":           "recommend.mmr_lambda",
	"recommend_anchor_weight":        "recommend.anchor_weight",
	"recommend_seed":                 "recommend.seed",

	// HTTP surface
	"cors_origins":        "cors.allowed_origins",
	"rate_limit_requests": "rate_limit.requests",
	"rate_limit_window":   "rate_limit.window",
	"rate_limit_disabled": "rate_limit.disabled",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped by the provider.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
