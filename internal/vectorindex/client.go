// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package vectorindex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/pulzion/internal/metrics"
)

// maxErrorBody caps how much of a failed response body is kept in errors.
const maxErrorBody = 512

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("vector index %s returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Config holds connection settings for the index.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration

	// HNSWEf is the search-time beam width. Zero leaves the index default.
	HNSWEf int
}

// Client talks to one collection of the index over REST.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	collection string
	hnswEf     int
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a client for cfg.Collection.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		hnswEf:     cfg.HNSWEf,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "vectorindex").Str("collection", cfg.Collection).Logger(),
	}
}

// envelope is the standard response wrapper.
type envelope struct {
	Result json.RawMessage `json:"result"`
	Status any             `json:"status"`
}

type searchParams struct {
	HNSWEf int `json:"hnsw_ef,omitempty"`
}

type retrieveBody struct {
	IDs         []PointID `json:"ids"`
	WithPayload bool      `json:"with_payload"`
	WithVector  bool      `json:"with_vector"`
}

type searchBody struct {
	Vector      []float32     `json:"vector"`
	Filter      *Filter       `json:"filter,omitempty"`
	Limit       int           `json:"limit"`
	WithPayload bool          `json:"with_payload"`
	Params      *searchParams `json:"params,omitempty"`
}

type recommendBody struct {
	Positive    [][]float32   `json:"positive"`
	Negative    [][]float32   `json:"negative,omitempty"`
	Strategy    string        `json:"strategy"`
	Filter      *Filter       `json:"filter,omitempty"`
	Limit       int           `json:"limit"`
	WithPayload bool          `json:"with_payload"`
	Params      *searchParams `json:"params,omitempty"`
}

type scrollBody struct {
	Filter      *Filter `json:"filter,omitempty"`
	Limit       int     `json:"limit"`
	WithPayload bool    `json:"with_payload"`
	WithVector  bool    `json:"with_vector"`
}

type scrollResult struct {
	Points []Point `json:"points"`
}

// Retrieve fetches points with vectors and payloads. Missing IDs are simply absent.
func (c *Client) Retrieve(ctx context.Context, ids []string) ([]Point, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	pids := make([]PointID, len(ids))
	for i, id := range ids {
		pids[i] = PointID(id)
	}

	var points []Point
	err := c.post(ctx, "retrieve", "/points", retrieveBody{IDs: pids, WithPayload: true, WithVector: true}, &points)
	if err != nil {
		return nil, err
	}
	return points, nil
}

// Search runs a nearest-neighbour query. Negative examples switch to the
// recommend endpoint with the best_score strategy.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]ScoredPoint, error) {
	if len(req.Vector) == 0 {
		return nil, errors.New("vector index search: empty query vector")
	}

	var (
		hits   []ScoredPoint
		params *searchParams
	)
	if c.hnswEf > 0 {
		params = &searchParams{HNSWEf: c.hnswEf}
	}

	if len(req.Negative) > 0 {
		body := recommendBody{
			Positive:    [][]float32{req.Vector},
			Negative:    req.Negative,
			Strategy:    "best_score",
			Filter:      emptyToNil(req.Filter),
			Limit:       req.Limit,
			WithPayload: true,
			Params:      params,
		}
		if err := c.post(ctx, "recommend", "/points/recommend", body, &hits); err != nil {
			return nil, err
		}
		return hits, nil
	}

	body := searchBody{
		Vector:      req.Vector,
		Filter:      emptyToNil(req.Filter),
		Limit:       req.Limit,
		WithPayload: true,
		Params:      params,
	}
	if err := c.post(ctx, "search", "/points/search", body, &hits); err != nil {
		return nil, err
	}
	return hits, nil
}

// Scroll returns up to req.Limit points matching req.Filter, payload only.
func (c *Client) Scroll(ctx context.Context, req ScrollRequest) ([]Point, error) {
	var res scrollResult
	body := scrollBody{Filter: emptyToNil(req.Filter), Limit: req.Limit, WithPayload: true}
	if err := c.post(ctx, "scroll", "/points/scroll", body, &res); err != nil {
		return nil, err
	}
	return res.Points, nil
}

// Ping checks that the collection exists and the index answers.
func (c *Client) Ping(ctx context.Context) error {
	start := time.Now()
	endpoint := c.baseURL + "/collections/" + url.PathEscape(c.collection)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordVectorIndexRequest("ping", time.Since(start), err)
		return fmt.Errorf("vector index ping failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		err = statusError("ping", resp)
	}
	metrics.RecordVectorIndexRequest("ping", time.Since(start), err)
	return err
}

func (c *Client) post(ctx context.Context, op, path string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordVectorIndexRequest(op, time.Since(start), err)
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("vector index %s: encode request: %w", op, err)
	}

	endpoint := c.baseURL + "/collections/" + url.PathEscape(c.collection) + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vector index %s request failed: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode vector index %s response: %w", op, err)
	}
	if len(env.Result) == 0 || string(env.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("failed to decode vector index %s result: %w", op, err)
	}

	c.logger.Debug().Str("op", op).Dur("took", time.Since(start)).Msg("vector index call")
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}
}

func statusError(op string, resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: "(failed to read body)"}
	}
	return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

func emptyToNil(f *Filter) *Filter {
	if f.IsEmpty() {
		return nil
	}
	return f
}
