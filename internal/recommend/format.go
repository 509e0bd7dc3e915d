// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package recommend

import (
	"fmt"
	"math"

	"github.com/tomtom215/pulzion/internal/vectorindex"
)

// Payload defaults applied when formatting.
const (
	DefaultTitle  = "Untitled"
	DefaultURL    = "#"
	DefaultSource = "Unknown"

	maxDescriptionRunes    = 150
	teaserDescriptionRunes = 90
)

// formatArticle projects a payload into the public view with defaults.
// A nil payload formats as an article with every field defaulted.
func formatArticle(id vectorindex.PointID, p *vectorindex.Payload) ArticleView {
	if p == nil {
		p = &vectorindex.Payload{}
	}

	view := ArticleView{
		ID:          string(id),
		Title:       orDefault(p.Title, DefaultTitle),
		URL:         orDefault(p.URL, DefaultURL),
		Description: truncateRunes(p.Description, maxDescriptionRunes),
		Source:      orDefault(p.Source, DefaultSource),
		PublishedAt: p.PublishedAt,
		Categories:  nonNil(p.Categories),
		Keywords:    nonNil(p.Keywords),
		URLToImage:  p.URLToImage,
		Sentiment:   p.Sentiment,
		SearchTopic: p.SearchTopic,
		URLHash:     p.URLHash,
		FetchedAt:   p.FetchedAt,
	}
	if p.Author != "" {
		author := p.Author
		view.Author = &author
	}
	if p.SentimentConfidence != 0 {
		conf := p.SentimentConfidence
		view.SentimentConfidence = &conf
	}
	return view
}

// newCandidate formats a candidate. An empty teaser is replaced by the
// generic swipe teaser built from the title and description.
func newCandidate(id vectorindex.PointID, p *vectorindex.Payload, score float64, teaser string, typ CandidateType) ScoredCandidate {
	view := formatArticle(id, p)
	if teaser == "" {
		teaser = swipeTeaser(view)
	}
	return ScoredCandidate{
		ArticleView: view,
		Teaser:      teaser,
		Score:       score,
		Type:        typ,
	}
}

func swipeTeaser(view ArticleView) string {
	return fmt.Sprintf("Swipe to \"%s\" – %s...", view.Title, truncateRunes(view.Description, teaserDescriptionRunes))
}

func baseArticle(view ArticleView) BaseArticle {
	return BaseArticle{
		ID:          view.ID,
		Title:       view.Title,
		Description: view.Description,
		Source:      view.Source,
		PublishedAt: view.PublishedAt,
		URLToImage:  view.URLToImage,
	}
}

// roundScore rounds to four decimal places.
func roundScore(score float64) float64 {
	return math.Round(score*1e4) / 1e4
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
