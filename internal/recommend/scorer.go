// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package recommend

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/pulzion/internal/vectorindex"
)

// capsWord matches an all-caps word of three or more letters.
var capsWord = regexp.MustCompile(`\b[A-Z]{3,}\b`)

// publishedLayouts are tried in order when parsing published_at.
var publishedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Scorer applies the additive re-scoring heuristics to raw similarity.
type Scorer struct {
	cfg         ScoringConfig
	now         time.Time
	affinity    map[string]int
	topics      []string
	preferred   map[string]struct{}
	seenSources map[string]struct{}
}

// ScoringInput carries the per-request signals the scorer reads.
type ScoringInput struct {
	// Affinity maps lowercase keywords and categories to their occurrence
	// count in the caller's liked articles.
	Affinity map[string]int

	Topics              []string
	PreferredCategories []string
	SeenSources         []string
}

// NewScorer creates a scorer for one request.
//
//nolint:gocritic // hugeParam: in is read once at construction
func NewScorer(cfg ScoringConfig, now time.Time, in ScoringInput) *Scorer {
	s := &Scorer{
		cfg:         cfg,
		now:         now,
		affinity:    in.Affinity,
		preferred:   keywordSet(in.PreferredCategories),
		seenSources: make(map[string]struct{}, len(in.SeenSources)),
	}
	for _, t := range in.Topics {
		if t = normalizeKeyword(t); t != "" {
			s.topics = append(s.topics, t)
		}
	}
	for _, src := range in.SeenSources {
		s.seenSources[src] = struct{}{}
	}
	return s
}

// Score returns raw adjusted by every heuristic.
func (s *Scorer) Score(raw float64, p *vectorindex.Payload) float64 {
	if p == nil {
		return raw
	}
	keywords := keywordSet(p.Keywords)

	score := raw
	score += s.TopicCoherence(keywords)
	score += s.PreferredCategory(p.Categories)
	score += s.TopicFilter(keywords)
	score -= s.Clickbait(p.Title)
	score += s.Freshness(p)
	score -= s.SeenSource(p.Source)
	return score
}

// TopicCoherence is the boost for candidate keywords present in the
// caller's affinity, capped.
func (s *Scorer) TopicCoherence(keywords map[string]struct{}) float64 {
	if len(s.affinity) == 0 {
		return 0
	}
	shared := 0
	for kw := range keywords {
		if s.affinity[kw] > 0 {
			shared++
		}
	}
	return math.Min(float64(shared)*s.cfg.TopicCoherenceBoost, s.cfg.TopicCoherenceCap)
}

// PreferredCategory is the boost per candidate category the caller prefers.
func (s *Scorer) PreferredCategory(categories []string) float64 {
	if len(s.preferred) == 0 {
		return 0
	}
	matches := 0
	for c := range keywordSet(categories) {
		if _, ok := s.preferred[c]; ok {
			matches++
		}
	}
	return float64(matches) * s.cfg.PreferredCategoryBoost
}

// TopicFilter is the boost per requested topic found in keywords.
func (s *Scorer) TopicFilter(keywords map[string]struct{}) float64 {
	overlap := 0
	for _, t := range s.topics {
		if _, ok := keywords[t]; ok {
			overlap++
		}
	}
	return float64(overlap) * s.cfg.TopicFilterBoost
}

// Clickbait is the penalty for titles with too many all-caps words.
func (s *Scorer) Clickbait(title string) float64 {
	if len(capsWord.FindAllStringIndex(title, -1)) > s.cfg.ClickbaitMaxCapsWords {
		return s.cfg.ClickbaitPenalty
	}
	return 0
}

// Freshness is the linearly decaying bonus for recent articles. Articles
// with no parseable date get no bonus.
func (s *Scorer) Freshness(p *vectorindex.Payload) float64 {
	published, ok := PublishedTime(p)
	if !ok {
		return 0
	}
	daysOld := s.now.Sub(published).Hours() / 24
	if daysOld < 0 {
		daysOld = 0
	}
	return math.Max(0, s.cfg.FreshnessMax-daysOld/s.cfg.FreshnessDecayDays)
}

// SeenSource is the penalty for sources the caller has seen.
func (s *Scorer) SeenSource(source string) float64 {
	if _, ok := s.seenSources[source]; ok && source != "" {
		return s.cfg.SeenSourcePenalty
	}
	return 0
}

// PublishedTime parses the article's publication time from published_at,
// falling back to the numeric published_at_ts (seconds or milliseconds).
func PublishedTime(p *vectorindex.Payload) (time.Time, bool) {
	if p == nil {
		return time.Time{}, false
	}
	if p.PublishedAt != "" {
		for _, layout := range publishedLayouts {
			if t, err := time.Parse(layout, p.PublishedAt); err == nil {
				return t, true
			}
		}
		if sec, err := strconv.ParseFloat(p.PublishedAt, 64); err == nil {
			return unixTime(sec), true
		}
	}
	if p.PublishedAtTS > 0 {
		return unixTime(p.PublishedAtTS), true
	}
	return time.Time{}, false
}

func unixTime(v float64) time.Time {
	if v > 1e12 {
		return time.UnixMilli(int64(v))
	}
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*1e9))
}

// KeywordAffinity counts keywords and categories across articles.
func KeywordAffinity(payloads []*vectorindex.Payload) map[string]int {
	affinity := make(map[string]int)
	for _, p := range payloads {
		if p == nil {
			continue
		}
		for _, kw := range p.Keywords {
			if kw = normalizeKeyword(kw); kw != "" {
				affinity[kw]++
			}
		}
		for _, c := range p.Categories {
			if c = normalizeKeyword(c); c != "" {
				affinity[c]++
			}
		}
	}
	return affinity
}

func keywordSet(keywords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		if kw = normalizeKeyword(kw); kw != "" {
			set[kw] = struct{}{}
		}
	}
	return set
}

func normalizeKeyword(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
