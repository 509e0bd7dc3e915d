// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator caches struct metadata and reports field
// names using json tags, so a failing TopK field is reported as "topK".
//
// Custom tags:
//   - notblank: string must contain a non-whitespace character
//   - sentiment: one of positive, neutral, negative, any (case-insensitive)
//
// Example usage:
//
//	type ClosestRequest struct {
//	    Query string `json:"query" validate:"notblank,max=1000"`
//	    TopK  int    `json:"topK" validate:"omitempty,min=1"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    apiErr := err.ToAPIError()
//	    // respond 400 with apiErr.Code and apiErr.Message
//	}
package validation
