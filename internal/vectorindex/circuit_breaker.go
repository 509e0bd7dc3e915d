// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package vectorindex

import (
	"context"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/pulzion/internal/breaker"
)

// Index is the set of operations both Client and CircuitBreakerClient provide.
type Index interface {
	Retrieve(ctx context.Context, ids []string) ([]Point, error)
	Search(ctx context.Context, req SearchRequest) ([]ScoredPoint, error)
	Scroll(ctx context.Context, req ScrollRequest) ([]Point, error)
	Ping(ctx context.Context) error
}

var (
	_ Index = (*Client)(nil)
	_ Index = (*CircuitBreakerClient)(nil)
)

// CircuitBreakerClient guards a Client with a circuit breaker so a failing
// index is rejected fast instead of holding every request for the full timeout.
type CircuitBreakerClient struct {
	client *Client
	cb     *breaker.Breaker
}

// NewCircuitBreakerClient wraps client with a breaker named "vector-index".
func NewCircuitBreakerClient(client *Client, settings breaker.Settings) *CircuitBreakerClient {
	return &CircuitBreakerClient{
		client: client,
		cb:     breaker.New("vector-index", settings),
	}
}

// State returns the breaker state.
func (c *CircuitBreakerClient) State() gobreaker.State {
	return c.cb.State()
}

// Retrieve fetches points with circuit breaker protection
func (c *CircuitBreakerClient) Retrieve(ctx context.Context, ids []string) ([]Point, error) {
	return breaker.Execute(c.cb, func() ([]Point, error) {
		return c.client.Retrieve(ctx, ids)
	})
}

// Search runs a query with circuit breaker protection
func (c *CircuitBreakerClient) Search(ctx context.Context, req SearchRequest) ([]ScoredPoint, error) {
	return breaker.Execute(c.cb, func() ([]ScoredPoint, error) {
		return c.client.Search(ctx, req)
	})
}

// Scroll samples points with circuit breaker protection
func (c *CircuitBreakerClient) Scroll(ctx context.Context, req ScrollRequest) ([]Point, error) {
	return breaker.Execute(c.cb, func() ([]Point, error) {
		return c.client.Scroll(ctx, req)
	})
}

// Ping checks connectivity with circuit breaker protection
func (c *CircuitBreakerClient) Ping(ctx context.Context) error {
	_, err := c.cb.Do(func() (any, error) {
		return nil, c.client.Ping(ctx)
	})
	return err
}
