// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package recommend

import (
	"math"
	"testing"
)

func assertVector(t *testing.T, got, want []float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Fatalf("vector = %v, want %v", got, want)
		}
	}
}

func TestWeightedAverage(t *testing.T) {
	tests := []struct {
		name    string
		vectors [][]float32
		weights []float64
		want    []float32
	}{
		{
			name:    "seed dominant",
			vectors: [][]float32{{1, 2, 3}, {3, 4, 5}},
			weights: []float64{0.4, 0.6},
			want:    []float32{2.2, 3.2, 4.2},
		},
		{
			name:    "unnormalized weights",
			vectors: [][]float32{{2, 0}, {0, 2}},
			weights: []float64{1, 3},
			want:    []float32{0.5, 1.5},
		},
		{
			name:    "zero total weight",
			vectors: [][]float32{{1, 1}, {2, 2}},
			weights: []float64{0, 0},
			want:    []float32{0, 0},
		},
		{
			name:    "mismatched dimension skipped",
			vectors: [][]float32{{1, 1}, {5, 5, 5}, {3, 3}},
			weights: []float64{1, 1, 1},
			want:    []float32{2, 2},
		},
		{
			name:    "empty",
			vectors: nil,
			weights: nil,
			want:    []float32{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVector(t, WeightedAverage(tt.vectors, tt.weights), tt.want)
		})
	}
}

func TestAverage(t *testing.T) {
	assertVector(t, Average([][]float32{{1, 4}, {3, 0}}), []float32{2, 2})

	if got := Average(nil); got == nil || len(got) != 0 {
		t.Errorf("Average(nil) = %#v, want empty non-nil", got)
	}
}

func TestSeedWeights(t *testing.T) {
	tests := []struct {
		n    int
		want []float64
	}{
		{0, nil},
		{1, []float64{1}},
		{2, []float64{0.4, 0.6}},
		{3, []float64{0.4, 0.3, 0.3}},
	}

	for _, tt := range tests {
		got := SeedWeights(tt.n, 0.4)
		if len(got) != len(tt.want) {
			t.Fatalf("SeedWeights(%d) = %v, want %v", tt.n, got, tt.want)
		}
		var sum float64
		for i := range got {
			sum += got[i]
			if math.Abs(got[i]-tt.want[i]) > 1e-12 {
				t.Errorf("SeedWeights(%d)[%d] = %v, want %v", tt.n, i, got[i], tt.want[i])
			}
		}
		if tt.n > 0 && math.Abs(sum-1) > 1e-12 {
			t.Errorf("SeedWeights(%d) sums to %v", tt.n, sum)
		}
	}
}
