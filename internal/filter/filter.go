// Package filter merges optical and SAR surface-area time series and
// applies the three SAR-anchored corrections: monthly-sigma outlier
// removal, bias correction against SAR estimates, and trend correction
// against a SAR trend reference.
package filter

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/resorr/reservoir-backend-go/internal/models"
	"github.com/resorr/reservoir-backend-go/internal/stats"
)

// Thresholds configures the three correction passes
type Thresholds struct {
	MonthlySigma float64 // sigma multiple from the monthly mean (optical outliers)
	NomAreaPct   float64 // allowed deviation from SAR, as % of nominal area
	TrendSigma   float64 // sigma multiple on the SAR trend deviation
}

// DefaultThresholds are the published TMS-OS defaults
var DefaultThresholds = Thresholds{
	MonthlySigma: 1,
	NomAreaPct:   5,
	TrendSigma:   0.1,
}

// Series is the merged optical/SAR record aligned on the optical dates
type Series struct {
	Dates   []time.Time
	Optical []float64
	SAR     []float64
}

// Run filters one reservoir's surface-area record. optical is the pooled
// Landsat/Sentinel-2 series, sar the Sentinel-1 series, nomArea the
// reservoir's nominal surface area in km^2.
func Run(name string, optical, sar []models.Observation, nomArea float64, t Thresholds) ([]models.CorrectedArea, error) {
	if len(optical) == 0 {
		return nil, fmt.Errorf("filter: %s: optical data is required", name)
	}
	if len(sar) == 0 {
		return nil, fmt.Errorf("filter: %s: SAR data is required", name)
	}
	if nomArea <= 0 {
		return nil, fmt.Errorf("filter: %s: nominal area must be positive, got %g", name, nomArea)
	}

	s := Merge(optical, sar)
	if len(s.Dates) == 0 {
		return nil, fmt.Errorf("filter: %s: no observations left after merging", name)
	}

	corrected := removeMonthlyOutliers(s.Dates, s.Optical, t.MonthlySigma)
	corrected = biasCorrect(corrected, s.SAR, nomArea, t.NomAreaPct)
	corrected = trendCorrect(s.Dates, corrected, s.SAR, t.TrendSigma)

	out := make([]models.CorrectedArea, len(s.Dates))
	for i, d := range s.Dates {
		days := 0
		if i > 0 {
			days = int(d.Sub(s.Dates[i-1]).Hours() / 24)
		}
		out[i] = models.CorrectedArea{
			Date:       d,
			Area:       corrected[i],
			DaysPassed: days,
			Name:       name,
		}
	}
	return out, nil
}

// Merge pools the optical observations, de-duplicates them per day
// (keeping the first), aligns the SAR series onto the optical dates by
// linear interpolation in time, and drops the first three rows the way
// the published procedure does.
func Merge(optical, sar []models.Observation) *Series {
	opt := dedupeByDay(optical)
	sarObs := dedupeByDay(sar)

	dates := make([]time.Time, len(opt))
	optVals := make([]float64, len(opt))
	for i, o := range opt {
		dates[i] = o.Date
		optVals[i] = o.Area
	}
	sarVals := alignSAR(dates, sarObs)

	// the first rows have no usable SAR context
	const warmup = 3
	if len(dates) <= warmup {
		return &Series{}
	}
	return &Series{
		Dates:   dates[warmup:],
		Optical: optVals[warmup:],
		SAR:     sarVals[warmup:],
	}
}

// dedupeByDay sorts observations by date and keeps the first one per
// calendar day.
func dedupeByDay(obs []models.Observation) []models.Observation {
	sorted := make([]models.Observation, len(obs))
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	out := sorted[:0]
	seen := make(map[int]struct{}, len(sorted))
	for _, o := range sorted {
		k := dayKey(o.Date)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, o)
	}
	return out
}

// alignSAR resamples the SAR observations onto the given dates. Interior
// gaps interpolate linearly in time, dates past the last SAR observation
// hold its value, and dates before the first stay NaN.
func alignSAR(dates []time.Time, sar []models.Observation) []float64 {
	out := make([]float64, len(dates))
	if len(sar) == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}

	j := 0
	for i, d := range dates {
		for j+1 < len(sar) && !sar[j+1].Date.After(d) {
			j++
		}
		switch {
		case d.Before(sar[0].Date):
			out[i] = math.NaN()
		case j+1 >= len(sar):
			out[i] = sar[len(sar)-1].Area
		default:
			span := sar[j+1].Date.Sub(sar[j].Date).Seconds()
			if span <= 0 {
				out[i] = sar[j].Area
				continue
			}
			frac := d.Sub(sar[j].Date).Seconds() / span
			out[i] = sar[j].Area + frac*(sar[j+1].Area-sar[j].Area)
		}
	}
	return out
}

// removeMonthlyOutliers replaces optical values falling outside
// mean +/- k*std of their calendar month with the previous (original)
// value. Months with fewer than two observations are left alone.
func removeMonthlyOutliers(dates []time.Time, optical []float64, k float64) []float64 {
	means, stds, counts := monthlyStats(dates, optical)

	out := make([]float64, len(optical))
	copy(out, optical)
	for i, v := range optical {
		m := monthKey(dates[i])
		if counts[m] < 2 {
			continue
		}
		lo := means[m] - k*stds[m]
		hi := means[m] + k*stds[m]
		if (v < lo || v > hi) && i > 0 {
			out[i] = optical[i-1]
		}
	}
	return out
}

// biasCorrect pulls optical values whose deviation from the SAR estimate
// exceeds nomArea*pct/100 back to the threshold boundary, signed toward
// the SAR value.
func biasCorrect(optical, sar []float64, nomArea, pct float64) []float64 {
	thr := nomArea * pct / 100

	out := make([]float64, len(optical))
	copy(out, optical)
	for i := range out {
		dev := out[i] - sar[i]
		if dev < -thr || dev > thr {
			sign := 1.0
			if dev < 0 {
				sign = -1
			}
			out[i] = out[i] + sign*thr - dev // = sar[i] +/- thr
		}
	}
	return out
}

// trendCorrect replaces optical values whose short-window trend deviates
// from the SAR trend by more than k times the monthly sigma of the
// trend deviation. Replacements grow the mean of the previous two
// corrected values by the mean of the previous two SAR trends.
func trendCorrect(dates []time.Time, optical, sar []float64, k float64) []float64 {
	n := len(optical)
	out := make([]float64, n)
	copy(out, optical)
	if n < 4 {
		return out
	}

	sarTrend := stats.PctChange(sar)
	optTrend := stats.PctChange(out)

	trendDev := make([]float64, n)
	for i := range trendDev {
		trendDev[i] = math.Abs(optTrend[i] - sarTrend[i])
	}
	_, stds, counts := monthlyStats(dates, trendDev)

	for i := 3; i < n; i++ {
		m := monthKey(dates[i])
		if counts[m] < 2 {
			continue
		}
		optTrend2 := (optTrend[i] + optTrend[i-1]) / 2
		if math.Abs(optTrend2-sarTrend[i]) > k*stds[m] {
			sarTrendAvg := (sarTrend[i-1] + sarTrend[i-2]) / 2
			mod := (out[i-1] + out[i-2]) / 2 * (1 + sarTrendAvg)
			if !math.IsNaN(mod) {
				out[i] = mod
			}
			optTrend = stats.PctChange(out)
		}
	}
	return out
}

// monthlyStats groups values by calendar month, skipping NaNs, and
// returns per-month mean, sample standard deviation and count.
func monthlyStats(dates []time.Time, values []float64) (means, stds map[int]float64, counts map[int]int) {
	groups := make(map[int][]float64)
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		m := monthKey(dates[i])
		groups[m] = append(groups[m], v)
	}

	means = make(map[int]float64, len(groups))
	stds = make(map[int]float64, len(groups))
	counts = make(map[int]int, len(groups))
	for m, vals := range groups {
		means[m] = stats.Mean(vals)
		stds[m] = stats.Std(vals)
		counts[m] = len(vals)
	}
	return means, stds, counts
}

func monthKey(t time.Time) int {
	return t.Year()*100 + int(t.Month())
}

func dayKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
