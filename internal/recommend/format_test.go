// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package recommend

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pulzion/internal/vectorindex"
)

func TestFormatArticle_Defaults(t *testing.T) {
	view := formatArticle("42", nil)

	if view.ID != "42" || view.Title != DefaultTitle || view.URL != DefaultURL || view.Source != DefaultSource {
		t.Errorf("view = %+v", view)
	}
	if view.Categories == nil || view.Keywords == nil {
		t.Error("categories and keywords should be empty slices")
	}
	if view.Author != nil {
		t.Errorf("Author = %v, want nil", *view.Author)
	}
}

func TestFormatArticle_TruncatesDescriptionByRune(t *testing.T) {
	desc := strings.Repeat("é", 200)
	view := formatArticle("1", &vectorindex.Payload{Description: desc})

	if n := utf8.RuneCountInString(view.Description); n != 150 {
		t.Errorf("description runes = %d, want 150", n)
	}
	if !utf8.ValidString(view.Description) {
		t.Error("truncated description is not valid UTF-8")
	}
}

func TestNewCandidate_SwipeTeaser(t *testing.T) {
	p := &vectorindex.Payload{Title: "Chips", Description: strings.Repeat("x", 120)}
	c := newCandidate("1", p, 0.5, "", TypeDiscover)

	want := "Swipe to \"Chips\" – " + strings.Repeat("x", 90) + "..."
	if c.Teaser != want {
		t.Errorf("Teaser = %q, want %q", c.Teaser, want)
	}

	c = newCandidate("1", p, 0.5, "Because", TypeSimilar)
	if c.Teaser != "Because" {
		t.Errorf("explicit teaser replaced: %q", c.Teaser)
	}
}

func TestScoredCandidate_JSONKeys(t *testing.T) {
	author := "Ada"
	c := ScoredCandidate{
		ArticleView: ArticleView{ID: "1", Title: "T", URLToImage: "img", Author: &author, Categories: []string{}, Keywords: []string{}},
		Teaser:      "t",
		Score:       0.1235,
		Type:        TypeSurprise,
	}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"id", "title", "url", "description", "source", "published_at", "categories", "keywords", "author", "urlToImage", "sentiment", "teaser", "score", "type"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	if m["type"] != "surprise" {
		t.Errorf("type = %v", m["type"])
	}
}

func TestRoundScore(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.123456, 0.1235},
		{0.12344, 0.1234},
		{0.7, 0.7},
		{-0.04567, -0.0457},
	}
	for _, tt := range tests {
		if got := roundScore(tt.in); got != tt.want {
			t.Errorf("roundScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
