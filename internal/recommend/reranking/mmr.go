// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package reranking

import (
	"context"
	"strings"

	"github.com/tomtom215/pulzion/internal/recommend"
)

// maxRerankSize limits slice allocations; k is also bounded by len(items).
const maxRerankSize = 10000

// Similarity weights for the category and source terms.
const (
	categoryWeight = 0.7
	sourceWeight   = 0.3
)

// MMR implements Maximal Marginal Relevance reranking over articles.
//
// Reference:
// Carbonell, J., & Goldstein, J. (1998). "The Use of MMR, Diversity-Based
// Reranking for Reordering Documents and Producing Summaries." SIGIR 1998.
type MMR struct {
	// Lambda balances relevance vs. diversity (0.0 to 1.0)
	lambda float64
}

// NewMMR creates a new MMR reranker. Lambda is clamped to [0, 1].
func NewMMR(lambda float64) *MMR {
	if lambda < 0 {
		lambda = 0
	}
	if lambda > 1 {
		lambda = 1
	}
	return &MMR{lambda: lambda}
}

// Name returns the reranker identifier.
func (m *MMR) Name() string {
	return "mmr"
}

// Rerank reorders items so each pick trades its score against its
// similarity to the articles already picked. At most k items are returned.
func (m *MMR) Rerank(_ context.Context, items []recommend.ScoredCandidate, k int) []recommend.ScoredCandidate {
	if len(items) == 0 || k <= 0 {
		return items
	}

	if k > maxRerankSize {
		k = maxRerankSize
	}
	if k > len(items) {
		k = len(items)
	}

	if m.lambda >= 1.0 {
		return items[:k]
	}

	features := make([]articleFeatures, len(items))
	for i := range items {
		features[i] = newArticleFeatures(&items[i])
	}

	selected := make([]recommend.ScoredCandidate, 0, k)
	picked := make([]bool, len(items))
	pickedIdx := make([]int, 0, k)

	for len(selected) < k {
		bestIdx := -1
		var bestMMR float64

		for i := range items {
			if picked[i] {
				continue
			}

			maxSim := 0.0
			for _, j := range pickedIdx {
				if sim := features[i].similarity(&features[j]); sim > maxSim {
					maxSim = sim
				}
			}

			mmrScore := m.lambda*items[i].Score - (1-m.lambda)*maxSim
			if bestIdx < 0 || mmrScore > bestMMR {
				bestMMR = mmrScore
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			break
		}

		selected = append(selected, items[bestIdx])
		picked[bestIdx] = true
		pickedIdx = append(pickedIdx, bestIdx)
	}

	return selected
}

// articleFeatures caches the normalized fields similarity is computed from.
type articleFeatures struct {
	categories map[string]struct{}
	source     string
}

func newArticleFeatures(c *recommend.ScoredCandidate) articleFeatures {
	cats := make(map[string]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		if cat = strings.ToLower(strings.TrimSpace(cat)); cat != "" {
			cats[cat] = struct{}{}
		}
	}
	return articleFeatures{categories: cats, source: strings.ToLower(c.Source)}
}

func (a *articleFeatures) similarity(b *articleFeatures) float64 {
	sim := categoryWeight * jaccard(a.categories, b.categories)
	if a.source != "" && a.source == b.source {
		sim += sourceWeight
	}
	return sim
}

// jaccard computes |a ∩ b| / |a ∪ b|. Two empty sets are dissimilar.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for v := range a {
		if _, ok := b[v]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Ensure MMR implements the interface.
var _ recommend.Reranker = (*MMR)(nil)
