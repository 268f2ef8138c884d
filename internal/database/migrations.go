package database

import (
	"database/sql"
	"fmt"
)

// Migration represents a schema migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are applied in version order; never edit an applied entry,
// append a new one instead.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_stations",
		SQL: `
			CREATE TABLE IF NOT EXISTS stations (
				id INTEGER PRIMARY KEY,
				name TEXT NOT NULL,
				lon REAL NOT NULL,
				lat REAL NOT NULL
			)
		`,
	},
	{
		Version: 2,
		Name:    "create_network",
		SQL: `
			CREATE TABLE IF NOT EXISTS network_nodes (
				id INTEGER PRIMARY KEY,
				x REAL NOT NULL,
				y REAL NOT NULL,
				name TEXT NOT NULL,
				elevation REAL
			);
			CREATE TABLE IF NOT EXISTS network_edges (
				source INTEGER NOT NULL,
				target INTEGER NOT NULL,
				length REAL,
				distance_m REAL NOT NULL DEFAULT 0,
				PRIMARY KEY (source, target),
				FOREIGN KEY (source) REFERENCES network_nodes(id),
				FOREIGN KEY (target) REFERENCES network_nodes(id)
			)
		`,
	},
	{
		Version: 3,
		Name:    "create_surface_area",
		SQL: `
			CREATE TABLE IF NOT EXISTS surface_area (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				date TEXT NOT NULL,
				area REAL NOT NULL,
				days_passed INTEGER NOT NULL,
				UNIQUE (name, date)
			);
			CREATE INDEX IF NOT EXISTS idx_surface_area_name ON surface_area(name)
		`,
	},
}

// Migrate applies all pending migrations
func Migrate(d *sql.DB) error {
	if _, err := d.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := d.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[v] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if _, err := d.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := d.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}
