package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/resorr/reservoir-backend-go/internal/models"
)

const seriesDateLayout = "2006-01-02"

// SeriesRepository handles database operations for corrected
// surface-area series
type SeriesRepository struct {
	db *sql.DB
}

// NewSeriesRepository creates a new series repository
func NewSeriesRepository(db *sql.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

// Save replaces one reservoir's corrected series
func (r *SeriesRepository) Save(name string, series []models.CorrectedArea) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM surface_area WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to clear series for %s: %w", name, err)
	}
	stmt, err := tx.Prepare("INSERT INTO surface_area (name, date, area, days_passed) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare series insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range series {
		if _, err := stmt.Exec(name, row.Date.Format(seriesDateLayout), row.Area, row.DaysPassed); err != nil {
			return fmt.Errorf("failed to insert series row %s/%s: %w", name, row.Date.Format(seriesDateLayout), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit series for %s: %w", name, err)
	}
	return nil
}

// GetSeries retrieves corrected series rows with filtering
func (r *SeriesRepository) GetSeries(filter models.SeriesFilter) ([]models.CorrectedArea, error) {
	query := "SELECT name, date, area, days_passed FROM surface_area"

	var conditions []string
	var args []interface{}
	if filter.Name != "" {
		conditions = append(conditions, "name = ?")
		args = append(args, filter.Name)
	}
	if filter.From != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.To)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name, date"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	var series []models.CorrectedArea
	for rows.Next() {
		var row models.CorrectedArea
		var date string
		if err := rows.Scan(&row.Name, &date, &row.Area, &row.DaysPassed); err != nil {
			return nil, fmt.Errorf("failed to scan series row: %w", err)
		}
		row.Date, err = time.Parse(seriesDateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse series date %q: %w", date, err)
		}
		series = append(series, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read series: %w", err)
	}
	return series, nil
}
