// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/pulzion/internal/breaker"
	"github.com/tomtom215/pulzion/internal/recommend"
)

// Common API errors
var (
	// ErrTrendingNotConfigured indicates no trending store was wired
	ErrTrendingNotConfigured = errors.New("trending statistics are not configured")

	// ErrBodyTooLarge indicates the request body exceeded maxBodyBytes
	ErrBodyTooLarge = errors.New("request body too large")
)

// errorMapping pairs an engine error with its HTTP status and error code.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string // empty uses err.Error()
}

// engineErrors is checked in order; the first match wins.
var engineErrors = []errorMapping{
	{recommend.ErrInvalidRequest, http.StatusBadRequest, ErrCodeBadRequest, ""},
	{recommend.ErrArticleNotFound, http.StatusNotFound, ErrCodeNotFound, ""},
	{recommend.ErrEmbedderNotConfigured, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, ""},
	{breaker.ErrOpen, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Upstream service temporarily unavailable"},
	{recommend.ErrInvalidEmbedding, http.StatusBadGateway, ErrCodeExternalServiceFail, ""},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, ErrCodeTimeout, "Request timed out"},
	{recommend.ErrUpstream, http.StatusBadGateway, ErrCodeExternalServiceFail, "Upstream service request failed"},
}

// classifyError returns the status, code, and client message for err.
func classifyError(err error) (status int, code, message string) {
	for _, m := range engineErrors {
		if errors.Is(err, m.target) {
			message = m.message
			if message == "" {
				message = err.Error()
			}
			return m.status, m.code, message
		}
	}
	return http.StatusInternalServerError, ErrCodeInternalError, "Internal server error"
}
