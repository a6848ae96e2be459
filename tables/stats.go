package tables

import (
	"math"
	"sort"
)

// clusterValues sorts values and merges those within tolerance of the running
// cluster center. The returned centers are ascending.
func clusterValues(values []float64, tolerance float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	clustered := []float64{sorted[0]}
	for _, v := range sorted[1:] {
		last := clustered[len(clustered)-1]
		if v-last > tolerance {
			clustered = append(clustered, v)
		} else {
			// Update cluster center with average
			clustered[len(clustered)-1] = (last + v) / 2
		}
	}
	return clustered
}

// nearest returns the index of the edge closest to v. Edges must be non-empty.
func nearest(edges []float64, v float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, e := range edges {
		if d := math.Abs(e - v); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// gaps returns the distances between consecutive boundaries.
func gaps(boundaries []float64) []float64 {
	if len(boundaries) < 2 {
		return nil
	}
	out := make([]float64, len(boundaries)-1)
	for i := range out {
		out[i] = boundaries[i+1] - boundaries[i]
	}
	return out
}

// coefficientOfVariation is the standard deviation divided by the mean. It
// returns 0 for fewer than two values or a zero mean.
func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	if m == 0 {
		return 0
	}
	return math.Sqrt(variance(values)) / m
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance computes the population variance of a slice of float64 values.
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		diff := v - m
		sum += diff * diff
	}
	return sum / float64(len(values))
}
