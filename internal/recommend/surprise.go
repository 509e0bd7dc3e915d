// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/pulzion/internal/vectorindex"
)

// maybeSurprise replaces the last slot of a full list with a random article
// outside the caller's interests, with the configured probability. When no
// candidate is found the list is returned unchanged.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) maybeSurprise(ctx context.Context, req Request, seed *seedState, base *vectorindex.Filter, results []ScoredCandidate, exclude *exclusionSet) ([]ScoredCandidate, *RetrievalWarning) {
	if req.TopK == 0 || len(results) != req.TopK {
		return results, nil
	}
	if !e.roll(e.config.Surprise.Probability) {
		return results, nil
	}

	filter := base.Clone()
	if avoid := interestKeywords(req.Topic, seed); len(avoid) > 0 {
		filter.AddMustNot(vectorindex.MatchAny("keywords", avoid))
	}
	if len(req.SeenSources) > 0 {
		filter.AddMustNot(vectorindex.MatchAny("source", req.SeenSources))
	}
	inList := make(map[string]struct{}, len(results))
	ids := make([]string, 0, len(results))
	for i := range results {
		inList[results[i].ID] = struct{}{}
		ids = append(ids, results[i].ID)
	}
	filter.AddMustNot(vectorindex.HasID(ids...))

	res := e.retriever.ScrollRandom(ctx, "scroll_surprise", filter, e.config.Surprise.ScrollLimit)
	if res.Warning != nil {
		return results, res.Warning
	}

	eligible := make([]vectorindex.Point, 0, len(res.Points))
	for i := range res.Points {
		id := string(res.Points[i].ID)
		if _, ok := inList[id]; ok || exclude.has(id) {
			continue
		}
		eligible = append(eligible, res.Points[i])
	}
	if len(eligible) == 0 {
		return results, nil
	}

	pick := eligible[e.intn(len(eligible))]
	title := DefaultTitle
	if pick.Payload != nil {
		title = orDefault(pick.Payload.Title, DefaultTitle)
	}
	results[len(results)-1] = newCandidate(pick.ID, pick.Payload, e.config.Scoring.RandomScore,
		fmt.Sprintf("Try: \"%s\"", title), TypeSurprise)
	e.surpriseCount.Add(1)

	return results, nil
}

// interestKeywords is the sorted union of requested topics and the seed's
// keyword affinity.
func interestKeywords(topics []string, seed *seedState) []string {
	set := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		if t = normalizeKeyword(t); t != "" {
			set[t] = struct{}{}
		}
	}
	if seed != nil {
		for kw := range seed.affinity {
			set[kw] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for kw := range set {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}
