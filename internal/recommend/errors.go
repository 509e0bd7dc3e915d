// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package recommend

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the engine. Callers match them with errors.Is.
var (
	// ErrInvalidRequest reports a malformed request.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrArticleNotFound reports an anchor or base article missing from the index.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidEmbedding reports a query vector of the wrong dimension.
	ErrInvalidEmbedding = errors.New("invalid embedding")

	// ErrEmbedderNotConfigured is returned by Closest when no embedder is set.
	ErrEmbedderNotConfigured = errors.New("embedding service not configured")

	// ErrUpstream marks a failed call to the vector index or embedding
	// service that the engine could not contain.
	ErrUpstream = errors.New("upstream failure")
)

// RetrievalWarning records a contained retrieval failure. The request
// continues with an empty result for the failed operation.
type RetrievalWarning struct {
	// Op names the retrieval, e.g. "search_similar" or "scroll_surprise".
	Op string

	// Err is the underlying failure.
	Err error
}

// Error implements error.
func (w *RetrievalWarning) Error() string {
	return fmt.Sprintf("%s: %v", w.Op, w.Err)
}

// Unwrap returns the underlying error.
func (w *RetrievalWarning) Unwrap() error {
	return w.Err
}

func invalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// upstream marks err as an uncontained collaborator failure.
func upstream(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstream, op, err)
}
