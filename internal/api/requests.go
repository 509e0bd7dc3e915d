// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package api

import "github.com/tomtom215/pulzion/internal/recommend"

// RecommendRequest is the POST /api/recommend body.
// Range checks that depend on engine configuration (topK upper bound) are
// left to the engine. Numeric fields are pointers so an explicit zero is
// rejected instead of being read as "use the default".
type RecommendRequest struct {
	ArticleID           string   `json:"articleId" validate:"omitempty,max=128"`
	LikedArticleIDs     []string `json:"likedArticleIds" validate:"max=500,dive,max=128"`
	DislikedArticleIDs  []string `json:"dislikedArticleIds" validate:"max=500,dive,max=128"`
	TopK                *int     `json:"topK" validate:"omitnil,min=1"`
	RecencyDays         *int     `json:"recencyDays" validate:"omitnil,min=1"`
	Sentiment           string   `json:"sentiment" validate:"omitempty,sentiment"`
	Topic               []string `json:"topic" validate:"max=50,dive,max=100"`
	PreferredCategories []string `json:"preferredCategories" validate:"max=50,dive,max=100"`
	UserHistory         []string `json:"userHistory" validate:"max=2000,dive,max=128"`
	SeenSources         []string `json:"seenSources" validate:"max=500,dive,max=200"`
}

// toEngine converts the body into an engine request carrying requestID.
//
//nolint:gocritic // hugeParam: request passed by value for immutability
func (r RecommendRequest) toEngine(requestID string) recommend.Request {
	return recommend.Request{
		RequestID:           requestID,
		ArticleID:           r.ArticleID,
		LikedArticleIDs:     r.LikedArticleIDs,
		DislikedArticleIDs:  r.DislikedArticleIDs,
		TopK:                intValue(r.TopK),
		RecencyDays:         intValue(r.RecencyDays),
		Sentiment:           r.Sentiment,
		Topic:               r.Topic,
		PreferredCategories: r.PreferredCategories,
		UserHistory:         r.UserHistory,
		SeenSources:         r.SeenSources,
	}
}

// requestedPath guesses the seeding path for metrics when the engine
// rejects a request before resolving one.
//
//nolint:gocritic // hugeParam: request passed by value for immutability
func (r RecommendRequest) requestedPath() recommend.Path {
	switch {
	case r.ArticleID != "":
		return recommend.PathSeeded
	case len(r.LikedArticleIDs) > 0:
		return recommend.PathLiked
	default:
		return recommend.PathColdStart
	}
}

// ClosestRequest is the POST /api/closest body.
type ClosestRequest struct {
	Query       string `json:"query" validate:"notblank,max=1000"`
	TopK        *int   `json:"topK" validate:"omitnil,min=1"`
	RecencyDays *int   `json:"recencyDays" validate:"omitnil,min=1"`
}

func (r ClosestRequest) toEngine() recommend.ClosestRequest {
	return recommend.ClosestRequest{Query: r.Query, TopK: intValue(r.TopK), RecencyDays: intValue(r.RecencyDays)}
}

// SimilarRequest is the POST /api/similar body.
type SimilarRequest struct {
	ArticleID   string `json:"articleId" validate:"notblank,max=128"`
	TopK        *int   `json:"topK" validate:"omitnil,min=1"`
	RecencyDays *int   `json:"recencyDays" validate:"omitnil,min=1"`
}

func (r SimilarRequest) toEngine() recommend.SimilarRequest {
	return recommend.SimilarRequest{ArticleID: r.ArticleID, TopK: intValue(r.TopK), RecencyDays: intValue(r.RecencyDays)}
}

// intValue maps an absent field to zero, which the engine reads as its
// configured default.
func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
