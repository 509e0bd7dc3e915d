// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package recommend

import (
	"context"
)

// CandidateType tags how a recommendation was produced.
type CandidateType string

const (
	// TypeSimilar marks a candidate sharing a category with the seed.
	TypeSimilar CandidateType = "similar"
	// TypeDiscover marks a candidate from outside the seed's categories.
	TypeDiscover CandidateType = "discover"
	// TypeRandom marks a cold-start or fallback pick.
	TypeRandom CandidateType = "random"
	// TypeSurprise marks the serendipity injection.
	TypeSurprise CandidateType = "surprise"
)

// Path names the resolution path a request took.
type Path string

const (
	PathSeeded    Path = "seeded"
	PathLiked     Path = "liked"
	PathColdStart Path = "cold_start"
	PathFallback  Path = "fallback"
)

// Sentiment values accepted by the payload filter. An empty value or
// SentimentAny disables the filter.
const (
	SentimentAny      = "any"
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Request describes a recommendation request.
type Request struct {
	// RequestID is propagated into logs and response metadata.
	// Generated when empty.
	RequestID string `json:"request_id,omitempty"`

	// ArticleID is the optional anchor article.
	ArticleID string `json:"articleId,omitempty"`

	// LikedArticleIDs and DislikedArticleIDs carry explicit feedback.
	LikedArticleIDs    []string `json:"likedArticleIds,omitempty"`
	DislikedArticleIDs []string `json:"dislikedArticleIds,omitempty"`

	// TopK is the number of recommendations to return. Zero uses the default.
	TopK int `json:"topK,omitempty"`

	// RecencyDays bounds the publication window. Zero uses the default.
	RecencyDays int `json:"recencyDays,omitempty"`

	// Sentiment restricts candidates to one sentiment label.
	Sentiment string `json:"sentiment,omitempty"`

	// Topic boosts candidates whose keywords match any entry.
	Topic []string `json:"topic,omitempty"`

	// PreferredCategories boosts candidates in any of these categories.
	PreferredCategories []string `json:"preferredCategories,omitempty"`

	// UserHistory lists article IDs the caller has already seen.
	UserHistory []string `json:"userHistory,omitempty"`

	// SeenSources lists sources to penalize and to avoid in the surprise slot.
	SeenSources []string `json:"seenSources,omitempty"`
}

// ArticleView is the public projection of an indexed article.
type ArticleView struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
	PublishedAt string   `json:"published_at"`
	Categories  []string `json:"categories"`
	Keywords    []string `json:"keywords"`
	Author      *string  `json:"author"`
	URLToImage  string   `json:"urlToImage"`
	Sentiment   string   `json:"sentiment"`

	SentimentConfidence *float64 `json:"sentiment_confidence,omitempty"`
	SearchTopic         string   `json:"search_topic,omitempty"`
	URLHash             string   `json:"url_hash,omitempty"`
	FetchedAt           string   `json:"fetched_at,omitempty"`
}

// ScoredCandidate is a single recommendation.
type ScoredCandidate struct {
	ArticleView

	Teaser string        `json:"teaser"`
	Score  float64       `json:"score"`
	Type   CandidateType `json:"type"`
}

// Response contains the recommendations and request metadata.
type Response struct {
	Recommendations []ScoredCandidate `json:"recommendations"`
	Count           int               `json:"count"`
	Metadata        ResponseMetadata  `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID string        `json:"request_id"`
	Path      Path          `json:"path"`
	LatencyMS int64         `json:"latency_ms"`
	Warnings  []WarningInfo `json:"warnings,omitempty"`
}

// WarningInfo is the serializable form of a RetrievalWarning.
type WarningInfo struct {
	Op      string `json:"op"`
	Message string `json:"message"`
}

// ClosestRequest is a free-text semantic search.
type ClosestRequest struct {
	Query       string `json:"query"`
	TopK        int    `json:"topK,omitempty"`
	RecencyDays int    `json:"recencyDays,omitempty"`
}

// ClosestResult pairs an article with its similarity to the query.
type ClosestResult struct {
	ArticleView

	Score     float64 `json:"score"`
	Relevance float64 `json:"relevance"`
}

// ClosestResponse contains the closest articles to a query.
type ClosestResponse struct {
	Query   string          `json:"query"`
	Results []ClosestResult `json:"results"`
	Count   int             `json:"count"`
}

// SimilarRequest asks for articles similar to a base article.
type SimilarRequest struct {
	ArticleID   string `json:"articleId"`
	TopK        int    `json:"topK,omitempty"`
	RecencyDays int    `json:"recencyDays,omitempty"`
}

// BaseArticle is the short form of the article a similarity search started from.
type BaseArticle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	URLToImage  string `json:"urlToImage"`
}

// SimilarResult pairs an article with its similarity to the base article.
type SimilarResult struct {
	ArticleView

	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
}

// SimilarResponse contains the articles similar to a base article.
type SimilarResponse struct {
	BaseArticle BaseArticle     `json:"base_article"`
	Results     []SimilarResult `json:"results"`
	Count       int             `json:"count"`
}

// Metrics contains engine counters.
type Metrics struct {
	RequestCount   int64 `json:"request_count"`
	ErrorCount     int64 `json:"error_count"`
	ColdStartCount int64 `json:"cold_start_count"`
	FallbackCount  int64 `json:"fallback_count"`
	SurpriseCount  int64 `json:"surprise_count"`
	WarningCount   int64 `json:"warning_count"`
}

// Reranker post-processes the ranked candidate list. Rerankers run after
// sorting and before truncation to k.
type Reranker interface {
	// Name returns the reranker identifier.
	Name() string

	// Rerank reorders or filters items. It must not return more than
	// len(items) entries.
	Rerank(ctx context.Context, items []ScoredCandidate, k int) []ScoredCandidate
}

// TrendingKeyword is a keyword with its trending weight.
type TrendingKeyword struct {
	Keyword string
	Weight  float64
}

// TrendingSource provides the keywords used to seed cold-start requests.
type TrendingSource interface {
	TrendingKeywords(ctx context.Context) ([]TrendingKeyword, error)
}

// Embedder turns text into a query vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
