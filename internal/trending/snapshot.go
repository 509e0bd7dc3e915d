// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

// Package trending loads the precomputed trending statistics document and
// serves its top keywords to the cold-start path of the recommender.
package trending

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
)

// ErrEmptyDocument is returned when the stats file has no content.
var ErrEmptyDocument = errors.New("trending stats document is empty")

// Snapshot is one parsed trending_stats.json document. Only the fields the
// server reads are typed; the full document is kept verbatim in Raw.
type Snapshot struct {
	GeneratedAt   string       `json:"generated_at"`
	LastUpdated   string       `json:"last_updated"`
	TotalArticles int          `json:"total_articles"`
	KeywordStats  KeywordStats `json:"keyword_stats"`

	// Raw is the document as read from disk.
	Raw json.RawMessage `json:"-"`

	// LoadedAt is when the snapshot was parsed.
	LoadedAt time.Time `json:"-"`
}

// KeywordStats holds the keyword ranking of a snapshot.
type KeywordStats struct {
	TopKeywords []KeywordStat `json:"top_keywords"`
}

// KeywordStat is the volume and sentiment split of one keyword.
type KeywordStat struct {
	Keyword        string  `json:"keyword"`
	Volume         float64 `json:"volume"`
	PositivePct    float64 `json:"positive_pct"`
	NegativePct    float64 `json:"negative_pct"`
	NeutralPct     float64 `json:"neutral_pct"`
	SentimentTrend string  `json:"sentiment_trend"`
}

// Parse decodes a stats document.
func Parse(data []byte) (*Snapshot, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse trending stats: %w", err)
	}
	snap.Raw = append(json.RawMessage(nil), data...)
	snap.LoadedAt = time.Now()
	return &snap, nil
}

// LoadFile reads and parses the stats document at path.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("read trending stats: %w", err)
	}
	return Parse(data)
}
