// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

/*
Package vectorindex is a client for the Qdrant-style REST vector index that
stores one point per news article: a fixed-dimension embedding plus an
article payload.

Only the four primitives the recommendation engine needs are implemented:

	POST /collections/{name}/points            retrieve by id
	POST /collections/{name}/points/search     nearest-neighbour search
	POST /collections/{name}/points/recommend  search steered away from negative examples
	POST /collections/{name}/points/scroll     filtered, unordered sample

API Reference: https://api.qdrant.tech/api-reference
*/
package vectorindex

import (
	"strconv"

	"github.com/goccy/go-json"
)

// PointID is a point identifier. The index accepts unsigned integers and
// UUID strings; numeric IDs round-trip as JSON numbers.
type PointID string

// MarshalJSON writes numeric IDs as numbers and everything else as strings.
func (id PointID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if isUnsigned(s) {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *PointID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PointID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = PointID(n.String())
	return nil
}

func isUnsigned(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

// Payload is the article metadata stored alongside each vector.
// Every field is optional; consumers apply their own defaults.
type Payload struct {
	Title               string   `json:"title,omitempty"`
	URL                 string   `json:"url,omitempty"`
	Description         string   `json:"description,omitempty"`
	Source              string   `json:"source,omitempty"`
	PublishedAt         string   `json:"published_at,omitempty"`
	PublishedAtTS       float64  `json:"published_at_ts,omitempty"`
	Categories          []string `json:"categories,omitempty"`
	Keywords            []string `json:"keywords,omitempty"`
	Author              string   `json:"author,omitempty"`
	Content             string   `json:"content,omitempty"`
	SearchTopic         string   `json:"search_topic,omitempty"`
	URLHash             string   `json:"url_hash,omitempty"`
	Sentiment           string   `json:"sentiment,omitempty"`
	SentimentConfidence float64  `json:"sentiment_confidence,omitempty"`
	URLToImage          string   `json:"urlToImage,omitempty"`
	FetchedAt           string   `json:"fetched_at,omitempty"`
}

// Point is a stored record. Vector is empty unless requested.
type Point struct {
	ID      PointID   `json:"id"`
	Vector  []float32 `json:"vector,omitempty"`
	Payload *Payload  `json:"payload,omitempty"`
}

// ScoredPoint is a search hit.
type ScoredPoint struct {
	ID      PointID  `json:"id"`
	Score   float64  `json:"score"`
	Payload *Payload `json:"payload,omitempty"`
}

// SearchRequest describes a nearest-neighbour query.
// When Negative is non-empty the query is served by the recommend endpoint,
// which scores candidates against Vector and away from each negative example.
type SearchRequest struct {
	Vector   []float32
	Negative [][]float32
	Filter   *Filter
	Limit    int
}

// ScrollRequest describes a filtered scan.
type ScrollRequest struct {
	Filter *Filter
	Limit  int
}
