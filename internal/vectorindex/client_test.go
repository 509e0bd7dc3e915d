// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package vectorindex

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/pulzion/internal/breaker"
)

type recordedRequest struct {
	method string
	path   string
	apiKey string
	body   map[string]any
}

func newTestServer(t *testing.T, status int, response string, record *recordedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if record != nil {
			record.method = r.Method
			record.path = r.URL.Path
			record.apiKey = r.Header.Get("api-key")
			data, _ := io.ReadAll(r.Body)
			if len(data) > 0 {
				_ = json.Unmarshal(data, &record.body)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(url string) *Client {
	return NewClient(Config{URL: url + "/", APIKey: "secret", Collection: "articles_collection", HNSWEf: 128}, zerolog.Nop())
}

func TestClient_Retrieve(t *testing.T) {
	var rec recordedRequest
	srv := newTestServer(t, http.StatusOK, `{
		"result": [
			{"id": 7, "vector": [0.1, 0.2, 0.3], "payload": {"title": "Chips", "categories": ["tech"], "keywords": ["ai"]}},
			{"id": "b5b0", "vector": [0.4, 0.5, 0.6], "payload": {"title": "Rates"}}
		],
		"status": "ok", "time": 0.001}`, &rec)

	points, err := newTestClient(srv.URL).Retrieve(context.Background(), []string{"7", "b5b0", "missing"})
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if rec.method != http.MethodPost || rec.path != "/collections/articles_collection/points" {
		t.Errorf("request = %s %s, want POST /collections/articles_collection/points", rec.method, rec.path)
	}
	if rec.apiKey != "secret" {
		t.Errorf("api-key header = %q, want %q", rec.apiKey, "secret")
	}
	if rec.body["with_vector"] != true {
		t.Errorf("with_vector = %v, want true", rec.body["with_vector"])
	}

	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
	if points[0].ID != "7" || points[1].ID != "b5b0" {
		t.Errorf("ids = %q, %q; want 7, b5b0", points[0].ID, points[1].ID)
	}
	if len(points[0].Vector) != 3 || points[0].Payload.Title != "Chips" {
		t.Errorf("point[0] = %+v", points[0])
	}
}

func TestClient_RetrieveEmptyIDs(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	points, err := newTestClient(srv.URL).Retrieve(context.Background(), nil)
	if err != nil || points != nil {
		t.Errorf("Retrieve(nil) = %v, %v; want nil, nil", points, err)
	}
	if calls.Load() != 0 {
		t.Errorf("server called %d times, want 0", calls.Load())
	}
}

func TestClient_Search(t *testing.T) {
	var rec recordedRequest
	srv := newTestServer(t, http.StatusOK, `{"result":[{"id":1,"score":0.91,"payload":{"title":"A"}},{"id":2,"score":0.80}],"status":"ok"}`, &rec)

	filter := (&Filter{}).AddMust(MatchValue("sentiment", "neutral"))
	hits, err := newTestClient(srv.URL).Search(context.Background(), SearchRequest{
		Vector: []float32{0.1, 0.2},
		Filter: filter,
		Limit:  5,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if rec.path != "/collections/articles_collection/points/search" {
		t.Errorf("path = %q, want search endpoint", rec.path)
	}
	if rec.body["limit"] != float64(5) {
		t.Errorf("limit = %v, want 5", rec.body["limit"])
	}
	params, _ := rec.body["params"].(map[string]any)
	if params["hnsw_ef"] != float64(128) {
		t.Errorf("params.hnsw_ef = %v, want 128", params["hnsw_ef"])
	}
	if _, ok := rec.body["filter"]; !ok {
		t.Error("filter missing from request body")
	}

	if len(hits) != 2 || hits[0].Score != 0.91 {
		t.Fatalf("hits = %+v", hits)
	}
	if hits[1].Payload != nil {
		t.Errorf("hits[1].Payload = %+v, want nil", hits[1].Payload)
	}
}

func TestClient_SearchWithNegativeUsesRecommend(t *testing.T) {
	var rec recordedRequest
	srv := newTestServer(t, http.StatusOK, `{"result":[{"id":3,"score":0.5}],"status":"ok"}`, &rec)

	_, err := newTestClient(srv.URL).Search(context.Background(), SearchRequest{
		Vector:   []float32{1, 0},
		Negative: [][]float32{{0, 1}},
		Limit:    3,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if rec.path != "/collections/articles_collection/points/recommend" {
		t.Errorf("path = %q, want recommend endpoint", rec.path)
	}
	if rec.body["strategy"] != "best_score" {
		t.Errorf("strategy = %v, want best_score", rec.body["strategy"])
	}
	if neg, _ := rec.body["negative"].([]any); len(neg) != 1 {
		t.Errorf("negative = %v, want one vector", rec.body["negative"])
	}
	if _, ok := rec.body["filter"]; ok {
		t.Error("empty filter should be omitted")
	}
}

func TestClient_SearchEmptyVector(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{URL: "http://127.0.0.1:1"}, zerolog.Nop()).Search(context.Background(), SearchRequest{Limit: 1})
	if err == nil {
		t.Fatal("Search() with empty vector error = nil, want error")
	}
}

func TestClient_Scroll(t *testing.T) {
	var rec recordedRequest
	srv := newTestServer(t, http.StatusOK, `{"result":{"points":[{"id":10,"payload":{"title":"X"}},{"id":11,"payload":{"title":"Y"}}],"next_page_offset":12},"status":"ok"}`, &rec)

	points, err := newTestClient(srv.URL).Scroll(context.Background(), ScrollRequest{Limit: 2})
	if err != nil {
		t.Fatalf("Scroll() error = %v", err)
	}
	if rec.path != "/collections/articles_collection/points/scroll" {
		t.Errorf("path = %q, want scroll endpoint", rec.path)
	}
	if rec.body["with_vector"] != false {
		t.Errorf("with_vector = %v, want false", rec.body["with_vector"])
	}
	if len(points) != 2 || points[1].Payload.Title != "Y" {
		t.Errorf("points = %+v", points)
	}
}

func TestClient_StatusError(t *testing.T) {
	srv := newTestServer(t, http.StatusBadRequest, `{"status":{"error":"Wrong input: Vector dimension error"}}`, nil)

	_, err := newTestClient(srv.URL).Search(context.Background(), SearchRequest{Vector: []float32{1}, Limit: 1})
	if err == nil {
		t.Fatal("Search() error = nil, want StatusError")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error type = %T, want *StatusError", err)
	}
	if se.StatusCode != http.StatusBadRequest || se.Op != "search" {
		t.Errorf("StatusError = %+v", se)
	}
	if !strings.Contains(se.Body, "dimension") {
		t.Errorf("Body = %q, want upstream message", se.Body)
	}
}

func TestClient_Ping(t *testing.T) {
	var rec recordedRequest
	srv := newTestServer(t, http.StatusOK, `{"result":{"status":"green"},"status":"ok"}`, &rec)

	if err := newTestClient(srv.URL).Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if rec.method != http.MethodGet || rec.path != "/collections/articles_collection" {
		t.Errorf("request = %s %s", rec.method, rec.path)
	}
}

func TestCircuitBreakerClient_OpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cbc := NewCircuitBreakerClient(newTestClient(srv.URL), breaker.Settings{})
	if cbc.State() != gobreaker.StateClosed {
		t.Fatalf("initial state = %v, want closed", cbc.State())
	}

	for i := 0; i < 10; i++ {
		_, _ = cbc.Scroll(context.Background(), ScrollRequest{Limit: 1})
	}
	if cbc.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open after 10 failures", cbc.State())
	}

	before := calls.Load()
	_, err := cbc.Retrieve(context.Background(), []string{"1"})
	if !errors.Is(err, breaker.ErrOpen) {
		t.Errorf("Retrieve() error = %v, want ErrOpen", err)
	}
	if calls.Load() != before {
		t.Error("open breaker still reached the server")
	}
}

func TestCircuitBreakerClient_PassesThrough(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"result":[{"id":1,"score":0.7}],"status":"ok"}`, nil)

	cbc := NewCircuitBreakerClient(newTestClient(srv.URL), breaker.Settings{})
	hits, err := cbc.Search(context.Background(), SearchRequest{Vector: []float32{1}, Limit: 1})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "1" {
		t.Errorf("hits = %+v", hits)
	}
}
