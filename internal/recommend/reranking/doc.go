// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

// Package reranking implements post-processing algorithms for feed diversity.
//
// Rerankers run after the engine has scored and sorted the merged candidate
// pools and before the list is truncated:
//
//	Search pools -> Scoring -> Rerankers -> Truncate to topK
//
// # Maximal Marginal Relevance
//
// MMR iteratively selects articles that are both relevant and dissimilar to
// the articles already selected:
//
//	MMR = argmax[lambda * score(i) - (1-lambda) * max_similarity(i, selected)]
//
// Article similarity blends category Jaccard similarity with a same-source
// term, so a feed does not fill up with one outlet's take on one story:
//
//	sim(a, b) = 0.7 * jaccard(categories(a), categories(b)) + 0.3 * [source(a) == source(b)]
//
// Lambda 1.0 keeps the scored order untouched, which is why the server only
// registers MMR when a lower lambda is configured.
//
// # Thread Safety
//
// Rerankers are stateless and safe for concurrent use.
package reranking
