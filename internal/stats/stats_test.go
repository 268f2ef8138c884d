package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, -1.5, Mean([]float64{-1, -2}))
}

func TestStd(t *testing.T) {
	assert.Equal(t, 0.0, Std([]float64{5}))
	// sample std of {2, 4, 4, 4, 5, 5, 7, 9} is sqrt(32/7)
	assert.InDelta(t, math.Sqrt(32.0/7.0), Std([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 3.0, Median([]float64{5, 3, 1}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 2, 3}))
}

func TestDiff(t *testing.T) {
	d := Diff([]float64{1, 4, 2})
	assert.True(t, math.IsNaN(d[0]))
	assert.Equal(t, 3.0, d[1])
	assert.Equal(t, -2.0, d[2])
	assert.Empty(t, Diff(nil))
}

func TestPctChange(t *testing.T) {
	p := PctChange([]float64{100, 110, 55})
	assert.True(t, math.IsNaN(p[0]))
	assert.InDelta(t, 0.1, p[1], 1e-12)
	assert.InDelta(t, -0.5, p[2], 1e-12)
}
