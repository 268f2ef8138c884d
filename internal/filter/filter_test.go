package filter

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resorr/reservoir-backend-go/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func days(y int, m time.Month, from, to int) []time.Time {
	var out []time.Time
	for d := from; d <= to; d++ {
		out = append(out, day(y, m, d))
	}
	return out
}

func obs(dates []time.Time, areas []float64) []models.Observation {
	out := make([]models.Observation, len(dates))
	for i := range dates {
		out[i] = models.Observation{Date: dates[i], Area: areas[i]}
	}
	return out
}

func TestMerge(t *testing.T) {
	t.Run("sorts, de-duplicates and drops warmup rows", func(t *testing.T) {
		optical := []models.Observation{
			{Date: day(2023, 1, 5), Area: 15},
			{Date: day(2023, 1, 1), Area: 11},
			{Date: day(2023, 1, 5), Area: 99}, // same day, ignored
			{Date: day(2023, 1, 3), Area: 13},
			{Date: day(2023, 1, 2), Area: 12},
			{Date: day(2023, 1, 4), Area: 14},
		}
		sar := obs(days(2023, 1, 1, 5), []float64{20, 20, 20, 20, 20})

		s := Merge(optical, sar)
		require.Len(t, s.Dates, 2) // 5 distinct days minus 3 warmup rows
		assert.Equal(t, day(2023, 1, 4), s.Dates[0])
		assert.Equal(t, []float64{14, 15}, s.Optical)
		assert.Equal(t, []float64{20, 20}, s.SAR)
	})

	t.Run("too few rows leaves an empty series", func(t *testing.T) {
		optical := obs(days(2023, 1, 1, 3), []float64{1, 2, 3})
		sar := obs(days(2023, 1, 1, 3), []float64{1, 2, 3})
		s := Merge(optical, sar)
		assert.Empty(t, s.Dates)
	})
}

func TestAlignSAR(t *testing.T) {
	dates := days(2023, 1, 1, 5)
	sar := []models.Observation{
		{Date: day(2023, 1, 2), Area: 10},
		{Date: day(2023, 1, 4), Area: 20},
	}

	got := alignSAR(dates, sar)
	assert.True(t, math.IsNaN(got[0])) // before the first SAR observation
	assert.Equal(t, 10.0, got[1])
	assert.Equal(t, 15.0, got[2]) // interpolated
	assert.Equal(t, 20.0, got[3])
	assert.Equal(t, 20.0, got[4]) // held past the last observation
}

func TestRemoveMonthlyOutliers(t *testing.T) {
	dates := days(2023, 1, 1, 4)
	optical := []float64{10, 10, 30, 10} // mean 15, std 10

	got := removeMonthlyOutliers(dates, optical, 1)
	assert.Equal(t, []float64{10, 10, 10, 10}, got)
}

func TestRemoveMonthlyOutliersSingleSampleMonth(t *testing.T) {
	dates := []time.Time{day(2023, 1, 1), day(2023, 2, 1)}
	optical := []float64{10, 500}

	// one observation per month gives no usable sigma
	got := removeMonthlyOutliers(dates, optical, 1)
	assert.Equal(t, optical, got)
}

func TestBiasCorrect(t *testing.T) {
	// nominal area 100 km^2 at 5% allows a deviation of 5
	optical := []float64{50, 60, 40, 52}
	sar := []float64{48, 50, 50, 50}

	got := biasCorrect(optical, sar, 100, 5)
	assert.Equal(t, 50.0, got[0]) // within threshold
	assert.Equal(t, 55.0, got[1]) // pulled down to sar+5
	assert.Equal(t, 45.0, got[2]) // pulled up to sar-5
	assert.Equal(t, 52.0, got[3])
}

func TestTrendCorrect(t *testing.T) {
	dates := days(2023, 1, 1, 6)
	optical := []float64{100, 100, 100, 100, 200, 100}
	sar := []float64{100, 100, 100, 100, 100, 100}

	got := trendCorrect(dates, optical, sar, 0.1)
	// the jump at index 4 contradicts the flat SAR trend and is replaced
	// by the mean of the previous two corrected values
	assert.Equal(t, 100.0, got[4])
	assert.Equal(t, 100.0, got[5])
}

func TestRun(t *testing.T) {
	t.Run("steady series passes through", func(t *testing.T) {
		optical := obs(days(2023, 1, 1, 8), []float64{50, 50, 50, 50, 50, 50, 50, 50})
		sar := obs(days(2023, 1, 1, 8), []float64{50, 50, 50, 50, 50, 50, 50, 50})

		rows, err := Run("tehri", optical, sar, 100, DefaultThresholds)
		require.NoError(t, err)
		require.Len(t, rows, 5)

		assert.Equal(t, 0, rows[0].DaysPassed)
		for i, r := range rows {
			assert.Equal(t, "tehri", r.Name)
			assert.Equal(t, 50.0, r.Area)
			if i > 0 {
				assert.Equal(t, 1, r.DaysPassed)
			}
		}
	})

	t.Run("input validation", func(t *testing.T) {
		sar := obs(days(2023, 1, 1, 4), []float64{1, 2, 3, 4})

		_, err := Run("x", nil, sar, 100, DefaultThresholds)
		assert.Error(t, err)

		_, err = Run("x", sar, nil, 100, DefaultThresholds)
		assert.Error(t, err)

		_, err = Run("x", sar, sar, 0, DefaultThresholds)
		assert.Error(t, err)

		_, err = Run("x", sar[:3], sar, 100, DefaultThresholds)
		assert.Error(t, err) // nothing left after the warmup cut
	})
}
