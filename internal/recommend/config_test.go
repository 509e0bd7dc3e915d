// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package recommend

import (
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Surprise.Probability != 0.05 || cfg.Seed.AnchorWeight != 0.4 || cfg.Dimension != 384 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero recency", func(c *Config) { c.Retrieval.DefaultRecencyDays = 0 }},
		{"zero similar pool", func(c *Config) { c.Retrieval.SimilarPoolFactor = 0 }},
		{"zero decay", func(c *Config) { c.Scoring.FreshnessDecayDays = 0 }},
		{"anchor weight above one", func(c *Config) { c.Seed.AnchorWeight = 1.5 }},
		{"zero anchor weight", func(c *Config) { c.Seed.AnchorWeight = 0 }},
		{"negative probability", func(c *Config) { c.Surprise.Probability = -0.1 }},
		{"probability above one", func(c *Config) { c.Surprise.Probability = 1.1 }},
		{"negative per source", func(c *Config) { c.Diversity.MaxPerSource = -1 }},
		{"zero trending", func(c *Config) { c.ColdStart.TrendingTopN = 0 }},
		{"default above max", func(c *Config) { c.Limits.DefaultTopK = 60 }},
		{"zero dimension", func(c *Config) { c.Dimension = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() succeeded, want error")
			}
		})
	}
}

func TestConfig_CloneIsIndependent(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Scoring.ClickbaitPenalty = 1

	if cfg.Scoring.ClickbaitPenalty != 0.15 {
		t.Error("Clone() shares state with the original")
	}
}
