package models

import "time"

// Observation is a single surface-area estimate from one satellite.
// Optical series (Landsat-8/9, Sentinel-2) are irregular; SAR (Sentinel-1)
// comes at a fixed 12-day cadence.
type Observation struct {
	Date time.Time `json:"date"`
	Area float64   `json:"area"` // km^2
}

// CorrectedArea is one row of the merged, filtered surface-area series
type CorrectedArea struct {
	Date       time.Time `json:"date" db:"date"`
	Area       float64   `json:"area" db:"area"` // km^2
	DaysPassed int       `json:"days_passed" db:"days_passed"`
	Name       string    `json:"name" db:"name"`
}

// SeriesFilter narrows corrected-series queries
type SeriesFilter struct {
	Name string `form:"name"`
	From string `form:"from"` // YYYY-MM-DD, inclusive
	To   string `form:"to"`   // YYYY-MM-DD, inclusive
}
