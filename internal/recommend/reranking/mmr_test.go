// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package reranking

import (
	"context"
	"math"
	"testing"

	"github.com/tomtom215/pulzion/internal/recommend"
)

func article(id, source string, score float64, categories ...string) recommend.ScoredCandidate {
	return recommend.ScoredCandidate{
		ArticleView: recommend.ArticleView{ID: id, Source: source, Categories: categories},
		Score:       score,
		Type:        recommend.TypeSimilar,
	}
}

func ids(items []recommend.ScoredCandidate) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func TestNewMMR(t *testing.T) {
	tests := []struct {
		name       string
		lambda     float64
		wantLambda float64
	}{
		{"normal value", 0.7, 0.7},
		{"zero value", 0.0, 0.0},
		{"one value", 1.0, 1.0},
		{"negative clamped to zero", -0.5, 0.0},
		{"above one clamped to one", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mmr := NewMMR(tt.lambda)
			if mmr.lambda != tt.wantLambda {
				t.Errorf("lambda = %f, want %f", mmr.lambda, tt.wantLambda)
			}
		})
	}
}

func TestMMR_Name(t *testing.T) {
	if got := NewMMR(0.7).Name(); got != "mmr" {
		t.Errorf("Name() = %q, want %q", got, "mmr")
	}
}

func TestMMR_RerankLength(t *testing.T) {
	items := []recommend.ScoredCandidate{
		article("1", "Wire", 1.0, "tech"),
		article("2", "Wire", 0.9, "tech"),
		article("3", "Daily", 0.85, "sports"),
		article("4", "Wire", 0.8, "tech"),
		article("5", "Herald", 0.75, "world"),
		article("6", "Daily", 0.7, "sports"),
	}

	tests := []struct {
		name    string
		lambda  float64
		k       int
		wantLen int
	}{
		{"pure relevance", 1.0, 3, 3},
		{"balanced", 0.7, 3, 3},
		{"k larger than items", 0.7, 10, 6},
		{"k zero returns input", 0.7, 0, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]recommend.ScoredCandidate(nil), items...)
			result := NewMMR(tt.lambda).Rerank(context.Background(), in, tt.k)
			if len(result) != tt.wantLen {
				t.Errorf("len(result) = %d, want %d", len(result), tt.wantLen)
			}
		})
	}
}

func TestMMR_RerankDiversityEffect(t *testing.T) {
	items := []recommend.ScoredCandidate{
		article("1", "Wire", 1.0, "tech"),
		article("2", "Wire", 0.95, "tech"),
		article("3", "Wire", 0.9, "tech"),
		article("4", "Daily", 0.5, "sports"),
		article("5", "Herald", 0.4, "world"),
	}

	t.Run("pure relevance keeps scored order", func(t *testing.T) {
		result := NewMMR(1.0).Rerank(context.Background(), items, 3)
		want := []string{"1", "2", "3"}
		if got := ids(result); !equal(got, want) {
			t.Errorf("order = %v, want %v", got, want)
		}
	})

	t.Run("low lambda promotes other categories and sources", func(t *testing.T) {
		result := NewMMR(0.3).Rerank(context.Background(), items, 3)
		want := []string{"1", "4", "5"}
		if got := ids(result); !equal(got, want) {
			t.Errorf("order = %v, want %v", got, want)
		}
	})
}

func TestMMR_RerankEmptyInput(t *testing.T) {
	mmr := NewMMR(0.7)

	if result := mmr.Rerank(context.Background(), nil, 5); len(result) != 0 {
		t.Errorf("expected empty result for nil input, got %d items", len(result))
	}
	if result := mmr.Rerank(context.Background(), []recommend.ScoredCandidate{}, 5); len(result) != 0 {
		t.Errorf("expected empty result for empty slice, got %d items", len(result))
	}
}

func TestArticleSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b recommend.ScoredCandidate
		want float64
	}{
		{"identical categories and source", article("a", "Wire", 0, "tech", "ai"), article("b", "Wire", 0, "tech", "ai"), 1.0},
		{"no overlap", article("a", "Wire", 0, "tech"), article("b", "Daily", 0, "sports"), 0.0},
		{"partial category overlap", article("a", "Wire", 0, "tech", "ai"), article("b", "Daily", 0, "tech", "science"), 0.7 / 3},
		{"same source only", article("a", "Wire", 0, "tech"), article("b", "wire", 0, "sports"), 0.3},
		{"both empty", article("a", "", 0), article("b", "", 0), 0.0},
		{"case insensitive", article("a", "X", 0, "TECH"), article("b", "Y", 0, "tech"), 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa, fb := newArticleFeatures(&tt.a), newArticleFeatures(&tt.b)
			if got := fa.similarity(&fb); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("similarity = %f, want %f", got, tt.want)
			}
		})
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
