package formulas

import (
	"gonum.org/v1/gonum/stat"
)

// WeightedMean returns the weight-averaged value of values, or 0 when the
// inputs are empty, mismatched, or the weights sum to zero.
func WeightedMean(values, weights []float64) float64 {
	if len(values) == 0 || len(values) != len(weights) {
		return 0
	}
	var wsum float64
	for _, w := range weights {
		wsum += w
	}
	if wsum == 0 {
		return 0
	}
	return stat.Mean(values, weights)
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// SeriesReturn returns the percentage change from the first to the last
// value of a series, or 0 when the series is too short or starts at zero.
func SeriesReturn(values []float64) float64 {
	if len(values) < 2 || values[0] == 0 {
		return 0
	}
	return (values[len(values)-1] - values[0]) / values[0] * 100
}
