// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package trending

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const sampleDocument = `{
  "generated_at": "2026-03-01T08:00:00",
  "total_articles": 1200,
  "sentiment_stats": {"positive": 40},
  "keyword_stats": {
    "top_keywords": [
      {"keyword": "ai", "volume": 120, "positive_pct": 55.5, "negative_pct": 20, "neutral_pct": 24.5, "sentiment_trend": "positive"},
      {"keyword": "elections", "volume": 80, "positive_pct": 10, "negative_pct": 60, "neutral_pct": 30, "sentiment_trend": "negative"},
      {"keyword": "", "volume": 5}
    ]
  },
  "category_stats": {"top_categories": []},
  "last_updated": "2026-03-01T08:00:01"
}`

func writeFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "trending_stats.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write stats file: %v", err)
	}
	return path
}

func TestParse(t *testing.T) {
	snap, err := Parse([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if snap.GeneratedAt != "2026-03-01T08:00:00" || snap.TotalArticles != 1200 {
		t.Errorf("snapshot = %+v", snap)
	}
	if len(snap.KeywordStats.TopKeywords) != 3 {
		t.Fatalf("top keywords = %d, want 3", len(snap.KeywordStats.TopKeywords))
	}
	first := snap.KeywordStats.TopKeywords[0]
	if first.Keyword != "ai" || first.Volume != 120 || first.PositivePct != 55.5 || first.SentimentTrend != "positive" {
		t.Errorf("first keyword = %+v", first)
	}
	if !strings.Contains(string(snap.Raw), "sentiment_stats") {
		t.Error("raw document should keep untyped sections")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"whitespace", "  \n"},
		{"invalid json", "{not json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("Parse() succeeded, want error")
			}
		})
	}

	if _, err := Parse(nil); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("Parse(nil) error = %v, want ErrEmptyDocument", err)
	}
}

func TestStore_TrendingKeywordsBeforeLoad(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.json"), zerolog.Nop())

	if _, err := s.TrendingKeywords(context.Background()); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("error = %v, want ErrNoSnapshot", err)
	}
	if s.Snapshot() != nil {
		t.Error("Snapshot() should be nil before load")
	}
}

func TestStore_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, sampleDocument)
	s := NewStore(path, zerolog.Nop())

	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	kws, err := s.TrendingKeywords(context.Background())
	if err != nil {
		t.Fatalf("TrendingKeywords() error = %v", err)
	}
	if len(kws) != 2 || kws[0].Keyword != "ai" || kws[0].Weight != 120 || kws[1].Keyword != "elections" {
		t.Errorf("keywords = %+v", kws)
	}

	if top := s.TopKeywords(1); len(top) != 1 || top[0].Keyword != "ai" {
		t.Errorf("TopKeywords(1) = %+v", top)
	}
}

func TestStore_ReloadFailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, sampleDocument)
	s := NewStore(path, zerolog.Nop())

	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	prev := s.Snapshot()

	writeFile(t, dir, "{broken")
	if err := s.Reload(context.Background()); err == nil {
		t.Fatal("Reload() succeeded on a broken document")
	}
	if s.Snapshot() != prev {
		t.Error("failed reload replaced the previous snapshot")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(context.Background()); err == nil {
		t.Fatal("Reload() succeeded on a missing file")
	}
	if s.Snapshot() != prev {
		t.Error("missing file replaced the previous snapshot")
	}
}

func TestStore_ReloadCanceled(t *testing.T) {
	s := NewStore(writeFile(t, t.TempDir(), sampleDocument), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Reload(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Reload() error = %v, want context.Canceled", err)
	}
}
