// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pulzion/internal/vectorindex"
)

var (
	errUpstream = errors.New("upstream unavailable")
	testNow     = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

// fakeIndex serves canned results. Searches are routed by the category
// condition in their filter: a must match is the similar pool, a must_not
// match is the discover pool, anything else is a plain search.
type fakeIndex struct {
	mu sync.Mutex

	points      map[string]vectorindex.Point
	retrieveErr func(ids []string) error

	similar   []vectorindex.ScoredPoint
	discover  []vectorindex.ScoredPoint
	plain     []vectorindex.ScoredPoint
	searchErr error

	scroll    []vectorindex.Point
	scrollFn  func(req vectorindex.ScrollRequest) ([]vectorindex.Point, error)
	scrollErr error

	searches []vectorindex.SearchRequest
	scrolls  []vectorindex.ScrollRequest
}

func newFakeIndex(points ...vectorindex.Point) *fakeIndex {
	f := &fakeIndex{points: make(map[string]vectorindex.Point)}
	for _, p := range points {
		f.points[string(p.ID)] = p
	}
	return f
}

func (f *fakeIndex) Retrieve(_ context.Context, ids []string) ([]vectorindex.Point, error) {
	if f.retrieveErr != nil {
		if err := f.retrieveErr(ids); err != nil {
			return nil, err
		}
	}
	var out []vectorindex.Point
	for _, id := range ids {
		if p, ok := f.points[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeIndex) Search(_ context.Context, req vectorindex.SearchRequest) ([]vectorindex.ScoredPoint, error) {
	f.mu.Lock()
	f.searches = append(f.searches, req)
	f.mu.Unlock()

	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var hits []vectorindex.ScoredPoint
	switch {
	case hasCondition(req.Filter.Must, "categories"):
		hits = f.similar
	case hasCondition(req.Filter.MustNot, "categories"):
		hits = f.discover
	default:
		hits = f.plain
	}
	if len(hits) > req.Limit {
		hits = hits[:req.Limit]
	}
	return hits, nil
}

func (f *fakeIndex) Scroll(_ context.Context, req vectorindex.ScrollRequest) ([]vectorindex.Point, error) {
	f.mu.Lock()
	f.scrolls = append(f.scrolls, req)
	f.mu.Unlock()

	if f.scrollFn != nil {
		return f.scrollFn(req)
	}
	if f.scrollErr != nil {
		return nil, f.scrollErr
	}
	return f.scroll, nil
}

func hasCondition(conds []vectorindex.Condition, key string) bool {
	for _, c := range conds {
		if c.Key == key {
			return true
		}
	}
	return false
}

func excludesID(conds []vectorindex.Condition, id string) bool {
	for _, c := range conds {
		for _, pid := range c.HasID {
			if string(pid) == id {
				return true
			}
		}
	}
	return false
}

func matchAnyValues(conds []vectorindex.Condition, key string) []string {
	for _, c := range conds {
		if c.Key == key && c.Match != nil {
			return c.Match.Any
		}
	}
	return nil
}

func payload(title string, categories, keywords []string) *vectorindex.Payload {
	return &vectorindex.Payload{
		Title:       title,
		URL:         "https://news.example/" + title,
		Description: title + " description",
		Source:      title + " Source",
		PublishedAt: testNow.Add(-30 * 24 * time.Hour).Format(time.RFC3339),
		Categories:  categories,
		Keywords:    keywords,
	}
}

func point(id string, vector []float32, p *vectorindex.Payload) vectorindex.Point {
	return vectorindex.Point{ID: vectorindex.PointID(id), Vector: vector, Payload: p}
}

func hit(id string, score float64, p *vectorindex.Payload) vectorindex.ScoredPoint {
	return vectorindex.ScoredPoint{ID: vectorindex.PointID(id), Score: score, Payload: p}
}

func newTestEngine(t *testing.T, index VectorIndex, mutate func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Surprise.Probability = 0
	cfg.RandomSeed = 7
	if mutate != nil {
		mutate(cfg)
	}
	e, err := NewEngine(cfg, index, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	e.now = func() time.Time { return testNow }
	return e
}

type fakeTrending struct {
	keywords []TrendingKeyword
	err      error
}

func (f *fakeTrending) TrendingKeywords(context.Context) ([]TrendingKeyword, error) {
	return f.keywords, f.err
}

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	f.calls++
	return f.vector, f.err
}

func candidateIDs(items []ScoredCandidate) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}
