package repository

import (
	"database/sql"
	"fmt"

	"github.com/resorr/reservoir-backend-go/internal/models"
)

// StationRepository handles database operations for stations
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository creates a new station repository
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

// ReplaceAll swaps the stored station table for the given one. Station
// ids come from input row order and are stored as-is.
func (r *StationRepository) ReplaceAll(stations []models.Station) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM stations"); err != nil {
		return fmt.Errorf("failed to clear stations: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO stations (id, name, lon, lat) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare station insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range stations {
		if _, err := stmt.Exec(s.ID, s.Name, s.Lon, s.Lat); err != nil {
			return fmt.Errorf("failed to insert station %d: %w", s.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stations: %w", err)
	}
	return nil
}

// GetAll returns all stations ordered by id
func (r *StationRepository) GetAll() ([]models.Station, error) {
	rows, err := r.db.Query("SELECT id, name, lon, lat FROM stations ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.Lon, &s.Lat); err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		stations = append(stations, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stations: %w", err)
	}
	return stations, nil
}
