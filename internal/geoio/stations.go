// Package geoio loads the pipeline's tabular inputs and serializes the
// traced network to vector geospatial files.
package geoio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/resorr/reservoir-backend-go/internal/models"
)

// LoadStations reads a station table from a CSV file with at least the
// name, lon and lat columns (any order). Row order assigns station ids.
func LoadStations(path string) ([]models.Station, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoio: opening station table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("geoio: reading station header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, required := range []string{"name", "lon", "lat"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("geoio: station table is missing column %q", required)
		}
	}

	var stations []models.Station
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("geoio: reading station row %d: %w", len(stations)+1, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(rec[cols["lon"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("geoio: station row %d lon: %w", len(stations)+1, err)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(rec[cols["lat"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("geoio: station row %d lat: %w", len(stations)+1, err)
		}
		stations = append(stations, models.Station{
			ID:   len(stations),
			Name: strings.TrimSpace(rec[cols["name"]]),
			Lon:  lon,
			Lat:  lat,
		})
	}
	if len(stations) == 0 {
		return nil, fmt.Errorf("geoio: station table %s is empty", path)
	}
	return stations, nil
}
