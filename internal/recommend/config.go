// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package recommend

import (
	"fmt"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Retrieval controls the candidate pools.
	Retrieval RetrievalConfig `json:"retrieval"`

	// Scoring contains the additive re-scoring weights.
	Scoring ScoringConfig `json:"scoring"`

	// Seed controls how the anchor article is blended with other likes.
	Seed SeedConfig `json:"seed"`

	// Surprise controls the serendipity injection.
	Surprise SurpriseConfig `json:"surprise"`

	// Diversity contains per-source limits applied to the ranked list.
	Diversity DiversityConfig `json:"diversity"`

	// ColdStart controls the trending-keyword path.
	ColdStart ColdStartConfig `json:"cold_start"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Dimension is the expected embedding dimension for query vectors.
	// Default: 384.
	Dimension int `json:"dimension"`

	// RandomSeed seeds the random source used for sampling and the surprise
	// roll. If zero, the seed is taken from the clock.
	RandomSeed int64 `json:"random_seed"`
}

// RetrievalConfig controls the candidate pools.
type RetrievalConfig struct {
	// DefaultRecencyDays is the publication window when a request sets none.
	// Default: 60.
	DefaultRecencyDays int `json:"default_recency_days"`

	// SimilarPoolFactor multiplies topK for the similar pool size.
	// Default: 4.
	SimilarPoolFactor int `json:"similar_pool_factor"`

	// DiscoverPoolFactor multiplies topK for the discover pool size.
	// Default: 1.
	DiscoverPoolFactor int `json:"discover_pool_factor"`

	// RandomPoolFactor multiplies topK for the scroll that feeds random samples.
	// Default: 4.
	RandomPoolFactor int `json:"random_pool_factor"`
}

// ScoringConfig contains the additive re-scoring weights.
type ScoringConfig struct {
	// TopicCoherenceBoost is added per candidate keyword found in the
	// caller's keyword affinity. Default: 0.02.
	TopicCoherenceBoost float64 `json:"topic_coherence_boost"`

	// TopicCoherenceCap bounds the total coherence boost. Default: 0.1.
	TopicCoherenceCap float64 `json:"topic_coherence_cap"`

	// PreferredCategoryBoost is added per candidate category listed in the
	// request's preferred categories. Default: 0.08.
	PreferredCategoryBoost float64 `json:"preferred_category_boost"`

	// TopicFilterBoost is added per requested topic present in the
	// candidate's keywords. Default: 0.12.
	TopicFilterBoost float64 `json:"topic_filter_boost"`

	// ClickbaitPenalty is subtracted from titles with too many all-caps
	// words. Default: 0.15.
	ClickbaitPenalty float64 `json:"clickbait_penalty"`

	// ClickbaitMaxCapsWords is the number of all-caps words a title may
	// carry before the penalty applies. Default: 2.
	ClickbaitMaxCapsWords int `json:"clickbait_max_caps_words"`

	// FreshnessMax is the freshness bonus for an article published now.
	// Default: 0.1.
	FreshnessMax float64 `json:"freshness_max"`

	// FreshnessDecayDays divides article age in days. Default: 180.
	FreshnessDecayDays float64 `json:"freshness_decay_days"`

	// SeenSourcePenalty is subtracted for sources the caller has seen.
	// Default: 0.1.
	SeenSourcePenalty float64 `json:"seen_source_penalty"`

	// RandomScore is the fixed score of random and surprise picks.
	// Default: 0.7.
	RandomScore float64 `json:"random_score"`
}

// SeedConfig controls seed vector construction.
type SeedConfig struct {
	// AnchorWeight is the weight of the anchor article when blended with
	// other likes. The remainder is split evenly. Default: 0.4.
	AnchorWeight float64 `json:"anchor_weight"`
}

// SurpriseConfig controls the serendipity injection.
type SurpriseConfig struct {
	// Probability is the chance of replacing the last slot of a full list.
	// Default: 0.05.
	Probability float64 `json:"probability"`

	// ScrollLimit is the number of points sampled for the surprise pick.
	// Default: 100.
	ScrollLimit int `json:"scroll_limit"`
}

// DiversityConfig contains per-source limits.
type DiversityConfig struct {
	// MaxPerSource caps how many results one source may contribute.
	// Zero means unlimited. Default: 0.
	MaxPerSource int `json:"max_per_source"`
}

// ColdStartConfig controls the trending path.
type ColdStartConfig struct {
	// TrendingTopN is the number of trending keywords matched. Default: 10.
	TrendingTopN int `json:"trending_top_n"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultTopK is used when a request sets no topK. Default: 10.
	DefaultTopK int `json:"default_top_k"`

	// MaxTopK is the largest accepted topK. Default: 50.
	MaxTopK int `json:"max_top_k"`

	// DefaultClosestTopK is used by Closest and Similar. Default: 5.
	DefaultClosestTopK int `json:"default_closest_top_k"`

	// MaxQueryLength bounds free-text queries in runes. Default: 1000.
	MaxQueryLength int `json:"max_query_length"`
}

// DefaultConfig returns a configuration with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Retrieval: RetrievalConfig{
			DefaultRecencyDays: 60,
			SimilarPoolFactor:  4,
			DiscoverPoolFactor: 1,
			RandomPoolFactor:   4,
		},
		Scoring: ScoringConfig{
			TopicCoherenceBoost:    0.02,
			TopicCoherenceCap:      0.1,
			PreferredCategoryBoost: 0.08,
			TopicFilterBoost:       0.12,
			ClickbaitPenalty:       0.15,
			ClickbaitMaxCapsWords:  2,
			FreshnessMax:           0.1,
			FreshnessDecayDays:     180,
			SeenSourcePenalty:      0.1,
			RandomScore:            0.7,
		},
		Seed: SeedConfig{
			AnchorWeight: 0.4,
		},
		Surprise: SurpriseConfig{
			Probability: 0.05,
			ScrollLimit: 100,
		},
		ColdStart: ColdStartConfig{
			TrendingTopN: 10,
		},
		Limits: LimitsConfig{
			DefaultTopK:        10,
			MaxTopK:            50,
			DefaultClosestTopK: 5,
			MaxQueryLength:     1000,
		},
		Dimension: 384,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Retrieval.DefaultRecencyDays < 1 {
		return fmt.Errorf("retrieval.default_recency_days must be positive, got %d", c.Retrieval.DefaultRecencyDays)
	}
	if c.Retrieval.SimilarPoolFactor < 1 {
		return fmt.Errorf("retrieval.similar_pool_factor must be positive, got %d", c.Retrieval.SimilarPoolFactor)
	}
	if c.Retrieval.DiscoverPoolFactor < 1 {
		return fmt.Errorf("retrieval.discover_pool_factor must be positive, got %d", c.Retrieval.DiscoverPoolFactor)
	}
	if c.Retrieval.RandomPoolFactor < 1 {
		return fmt.Errorf("retrieval.random_pool_factor must be positive, got %d", c.Retrieval.RandomPoolFactor)
	}

	if c.Scoring.TopicCoherenceCap < 0 {
		return fmt.Errorf("scoring.topic_coherence_cap must be non-negative, got %f", c.Scoring.TopicCoherenceCap)
	}
	if c.Scoring.ClickbaitMaxCapsWords < 0 {
		return fmt.Errorf("scoring.clickbait_max_caps_words must be non-negative, got %d", c.Scoring.ClickbaitMaxCapsWords)
	}
	if c.Scoring.FreshnessDecayDays <= 0 {
		return fmt.Errorf("scoring.freshness_decay_days must be positive, got %f", c.Scoring.FreshnessDecayDays)
	}

	if c.Seed.AnchorWeight <= 0 || c.Seed.AnchorWeight > 1 {
		return fmt.Errorf("seed.anchor_weight must be in (0, 1], got %f", c.Seed.AnchorWeight)
	}

	if c.Surprise.Probability < 0 || c.Surprise.Probability > 1 {
		return fmt.Errorf("surprise.probability must be in [0, 1], got %f", c.Surprise.Probability)
	}
	if c.Surprise.ScrollLimit < 1 {
		return fmt.Errorf("surprise.scroll_limit must be positive, got %d", c.Surprise.ScrollLimit)
	}

	if c.Diversity.MaxPerSource < 0 {
		return fmt.Errorf("diversity.max_per_source must be non-negative, got %d", c.Diversity.MaxPerSource)
	}

	if c.ColdStart.TrendingTopN < 1 {
		return fmt.Errorf("cold_start.trending_top_n must be positive, got %d", c.ColdStart.TrendingTopN)
	}

	if c.Limits.MaxTopK < 1 {
		return fmt.Errorf("limits.max_top_k must be positive, got %d", c.Limits.MaxTopK)
	}
	if c.Limits.DefaultTopK < 1 || c.Limits.DefaultTopK > c.Limits.MaxTopK {
		return fmt.Errorf("limits.default_top_k must be in [1, %d], got %d", c.Limits.MaxTopK, c.Limits.DefaultTopK)
	}
	if c.Limits.DefaultClosestTopK < 1 || c.Limits.DefaultClosestTopK > c.Limits.MaxTopK {
		return fmt.Errorf("limits.default_closest_top_k must be in [1, %d], got %d", c.Limits.MaxTopK, c.Limits.DefaultClosestTopK)
	}
	if c.Limits.MaxQueryLength < 1 {
		return fmt.Errorf("limits.max_query_length must be positive, got %d", c.Limits.MaxQueryLength)
	}

	if c.Dimension < 1 {
		return fmt.Errorf("dimension must be positive, got %d", c.Dimension)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	clone := *c
	return &clone
}
