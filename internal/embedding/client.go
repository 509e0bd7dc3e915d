// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

// Package embedding turns free text into embedding vectors by calling the
// external embedding service (POST {"text": ...} -> {"vector": [...]}).
package embedding

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/pulzion/internal/breaker"
	"github.com/tomtom215/pulzion/internal/metrics"
)

// ErrEmptyVector is returned when the service answers without a vector.
var ErrEmptyVector = errors.New("embedding service returned no vector")

// Embedder converts text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Config holds embedding service settings.
type Config struct {
	URL     string
	Timeout time.Duration

	// RateLimit caps outbound calls per second. Zero disables limiting.
	RateLimit float64

	// Breaker enables the circuit breaker around the service.
	Breaker bool
}

// Client calls the embedding service over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
	cb         *breaker.Breaker
}

var _ Embedder = (*Client)(nil)

// NewClient creates an embedding client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		url:        strings.TrimSuffix(cfg.URL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	if cfg.Breaker {
		c.cb = breaker.New("embedding", breaker.DefaultSettings())
	}
	return c
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Vector []float32 `json:"vector"`
}

// Embed returns the service's vector for text. Dimension checks are the caller's concern.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("embedding rate limit: %w", err)
		}
	}

	var (
		vec []float32
		err error
	)
	if c.cb != nil {
		vec, err = breaker.Execute(c.cb, func() ([]float32, error) {
			return c.embed(ctx, text)
		})
	} else {
		vec, err = c.embed(ctx, text)
	}
	metrics.RecordEmbeddingRequest(err)
	return vec, err
}

func (c *Client) embed(ctx context.Context, text string) ([]float32, error) {
	payload, err := json.Marshal(embedRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("encode embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 512))
		if readErr != nil {
			return nil, fmt.Errorf("embedding service returned status %d (failed to read body)", resp.StatusCode)
		}
		return nil, fmt.Errorf("embedding service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}
	if len(out.Vector) == 0 {
		return nil, ErrEmptyVector
	}
	return out.Vector, nil
}
