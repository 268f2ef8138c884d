package stats

import "math"

// Diff returns element-wise first differences. The first element is NaN,
// matching the alignment of the input series.
func Diff(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	out[0] = math.NaN()
	for i := 1; i < len(values); i++ {
		out[i] = values[i] - values[i-1]
	}
	return out
}

// PctChange returns the element-wise fractional change from the previous
// value. The first element is NaN; a zero previous value yields +/-Inf.
func PctChange(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	out[0] = math.NaN()
	for i := 1; i < len(values); i++ {
		out[i] = (values[i] - values[i-1]) / values[i-1]
	}
	return out
}
