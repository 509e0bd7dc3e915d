// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package vectorindex

import "time"

// Filter is the boolean predicate grammar understood by the index.
type Filter struct {
	Must    []Condition `json:"must,omitempty"`
	MustNot []Condition `json:"must_not,omitempty"`
}

// Condition is one of a field range, a field match, or an ID set.
type Condition struct {
	Key   string    `json:"key,omitempty"`
	Range *Range    `json:"range,omitempty"`
	Match *Match    `json:"match,omitempty"`
	HasID []PointID `json:"has_id,omitempty"`
}

// Range bounds a numeric or RFC3339 datetime field.
type Range struct {
	Gte any `json:"gte,omitempty"`
	Gt  any `json:"gt,omitempty"`
	Lte any `json:"lte,omitempty"`
	Lt  any `json:"lt,omitempty"`
}

// Match selects an exact value or any of a set.
type Match struct {
	Value any      `json:"value,omitempty"`
	Any   []string `json:"any,omitempty"`
}

// PublishedAfter requires published_at >= t.
func PublishedAfter(t time.Time) Condition {
	return Condition{Key: "published_at", Range: &Range{Gte: t.UTC().Format(time.RFC3339)}}
}

// MatchValue requires key == value.
func MatchValue(key string, value any) Condition {
	return Condition{Key: key, Match: &Match{Value: value}}
}

// MatchAny requires key to contain at least one of values.
func MatchAny(key string, values []string) Condition {
	return Condition{Key: key, Match: &Match{Any: append([]string(nil), values...)}}
}

// HasID matches points whose ID is in ids.
func HasID(ids ...string) Condition {
	pids := make([]PointID, len(ids))
	for i, id := range ids {
		pids[i] = PointID(id)
	}
	return Condition{HasID: pids}
}

// AddMust appends conditions to Must and returns f.
func (f *Filter) AddMust(c ...Condition) *Filter {
	f.Must = append(f.Must, c...)
	return f
}

// AddMustNot appends conditions to MustNot and returns f.
func (f *Filter) AddMustNot(c ...Condition) *Filter {
	f.MustNot = append(f.MustNot, c...)
	return f
}

// IsEmpty reports whether f has no conditions.
func (f *Filter) IsEmpty() bool {
	return f == nil || (len(f.Must) == 0 && len(f.MustNot) == 0)
}

// Clone returns a deep copy so derived filters never share backing arrays.
func (f *Filter) Clone() *Filter {
	if f == nil {
		return &Filter{}
	}
	return &Filter{
		Must:    cloneConditions(f.Must),
		MustNot: cloneConditions(f.MustNot),
	}
}

func cloneConditions(in []Condition) []Condition {
	if len(in) == 0 {
		return nil
	}
	out := make([]Condition, len(in))
	for i, c := range in {
		out[i] = Condition{Key: c.Key}
		if c.Range != nil {
			r := *c.Range
			out[i].Range = &r
		}
		if c.Match != nil {
			m := Match{Value: c.Match.Value, Any: append([]string(nil), c.Match.Any...)}
			out[i].Match = &m
		}
		if c.HasID != nil {
			out[i].HasID = append([]PointID(nil), c.HasID...)
		}
	}
	return out
}
