package geoio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/resorr/reservoir-backend-go/internal/models"
)

// Per-satellite CSV conventions of the surface-area export pipeline.
// Landsat files key the area on the Cordeiro-corrected column, Sentinel-2
// on its own corrected column, and Sentinel-1 (SAR) on the raw sarea.
const (
	landsatDateColumn   = "from_date"
	landsatAreaColumn   = "corrected_area_cordeiro"
	sentinel2DateColumn = "date"
	sentinel2AreaColumn = "water_area_corrected"
	sarDateColumn       = "time"
	sarAreaColumn       = "sarea"
)

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// LoadLandsat reads a Landsat-8/9 surface-area series. Missing area
// values are filled with zero, matching the upstream export.
func LoadLandsat(path string) ([]models.Observation, error) {
	return loadSeries(path, landsatDateColumn, landsatAreaColumn, true)
}

// LoadSentinel2 reads a Sentinel-2 surface-area series.
func LoadSentinel2(path string) ([]models.Observation, error) {
	return loadSeries(path, sentinel2DateColumn, sentinel2AreaColumn, true)
}

// LoadSAR reads a Sentinel-1 (SAR) surface-area series.
func LoadSAR(path string) ([]models.Observation, error) {
	return loadSeries(path, sarDateColumn, sarAreaColumn, false)
}

func loadSeries(path, dateColumn, areaColumn string, fillZero bool) ([]models.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoio: opening series %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("geoio: reading series header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.ToLower(h))] = i
	}
	dateIdx, ok := cols[dateColumn]
	if !ok {
		return nil, fmt.Errorf("geoio: %s is missing column %q", path, dateColumn)
	}
	areaIdx, ok := cols[areaColumn]
	if !ok {
		return nil, fmt.Errorf("geoio: %s is missing column %q", path, areaColumn)
	}

	var out []models.Observation
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("geoio: reading series row %d: %w", len(out)+1, err)
		}
		date, err := parseDate(strings.TrimSpace(rec[dateIdx]))
		if err != nil {
			return nil, fmt.Errorf("geoio: series row %d: %w", len(out)+1, err)
		}
		area, err := parseArea(strings.TrimSpace(rec[areaIdx]), fillZero)
		if err != nil {
			return nil, fmt.Errorf("geoio: series row %d area: %w", len(out)+1, err)
		}
		out = append(out, models.Observation{Date: date, Area: area})
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseArea(s string, fillZero bool) (float64, error) {
	if s == "" {
		if fillZero {
			return 0, nil
		}
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) && fillZero {
		return 0, nil
	}
	return v, nil
}
