// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package recommend

// Average returns the element-wise mean of vectors. Vectors whose dimension
// differs from the first are skipped. An empty input yields an empty vector.
func Average(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return []float32{}
	}
	weights := make([]float64, len(vectors))
	for i := range weights {
		weights[i] = 1
	}
	return WeightedAverage(vectors, weights)
}

// WeightedAverage returns (Σ wᵢ·vᵢ)/(Σ wᵢ). A zero total weight yields a
// zero vector of the first vector's dimension. Missing weights count as zero
// and vectors whose dimension differs from the first are skipped.
func WeightedAverage(vectors [][]float32, weights []float64) []float32 {
	if len(vectors) == 0 {
		return []float32{}
	}

	dim := len(vectors[0])
	sum := make([]float64, dim)
	var total float64

	for i, v := range vectors {
		if len(v) != dim {
			continue
		}
		var w float64
		if i < len(weights) {
			w = weights[i]
		}
		total += w
		for j := range v {
			sum[j] += w * float64(v[j])
		}
	}

	out := make([]float32, dim)
	if total == 0 {
		return out
	}
	for j := range sum {
		out[j] = float32(sum[j] / total)
	}
	return out
}

// SeedWeights returns n weights where the first carries anchor and the
// remaining n-1 share 1-anchor evenly. A single vector gets weight 1.
func SeedWeights(n int, anchor float64) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{1}
	}
	weights := make([]float64, n)
	weights[0] = anchor
	rest := (1 - anchor) / float64(n-1)
	for i := 1; i < n; i++ {
		weights[i] = rest
	}
	return weights
}
