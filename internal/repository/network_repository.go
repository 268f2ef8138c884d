package repository

import (
	"database/sql"
	"fmt"

	"github.com/resorr/reservoir-backend-go/internal/models"
)

// NetworkRepository handles database operations for the traced network
type NetworkRepository struct {
	db *sql.DB
}

// NewNetworkRepository creates a new network repository
func NewNetworkRepository(db *sql.DB) *NetworkRepository {
	return &NetworkRepository{db: db}
}

// Save replaces the stored network with the given one
func (r *NetworkRepository) Save(net *models.Network) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM network_edges"); err != nil {
		return fmt.Errorf("failed to clear edges: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM network_nodes"); err != nil {
		return fmt.Errorf("failed to clear nodes: %w", err)
	}

	nodeStmt, err := tx.Prepare("INSERT INTO network_nodes (id, x, y, name, elevation) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare node insert: %w", err)
	}
	defer nodeStmt.Close()
	for _, n := range net.Nodes {
		var elev interface{}
		if n.Elevation != nil {
			elev = *n.Elevation
		}
		if _, err := nodeStmt.Exec(n.ID, n.X, n.Y, n.Name, elev); err != nil {
			return fmt.Errorf("failed to insert node %d: %w", n.ID, err)
		}
	}

	edgeStmt, err := tx.Prepare("INSERT INTO network_edges (source, target, length, distance_m) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare edge insert: %w", err)
	}
	defer edgeStmt.Close()
	for _, e := range net.Edges {
		var length interface{}
		if e.Length != nil {
			length = *e.Length
		}
		if _, err := edgeStmt.Exec(e.Source, e.Target, length, e.DistanceM); err != nil {
			return fmt.Errorf("failed to insert edge %d->%d: %w", e.Source, e.Target, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit network: %w", err)
	}
	return nil
}

// Get loads the stored network. Returns an empty network when nothing
// has been built yet.
func (r *NetworkRepository) Get() (*models.Network, error) {
	net := &models.Network{Nodes: []models.Node{}, Edges: []models.Edge{}}

	rows, err := r.db.Query("SELECT id, x, y, name, elevation FROM network_nodes ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var n models.Node
		var elev sql.NullFloat64
		if err := rows.Scan(&n.ID, &n.X, &n.Y, &n.Name, &elev); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		if elev.Valid {
			n.Elevation = &elev.Float64
		}
		net.Nodes = append(net.Nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read nodes: %w", err)
	}

	edgeRows, err := r.db.Query("SELECT source, target, length, distance_m FROM network_edges ORDER BY source, target")
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer edgeRows.Close()
	for edgeRows.Next() {
		var e models.Edge
		var length sql.NullFloat64
		if err := edgeRows.Scan(&e.Source, &e.Target, &length, &e.DistanceM); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		if length.Valid {
			e.Length = &length.Float64
		}
		net.Edges = append(net.Edges, e)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read edges: %w", err)
	}

	net.Stats = &models.NetworkStats{
		TotalNodes:   len(net.Nodes),
		TotalEdges:   len(net.Edges),
		Disconnected: len(net.Nodes) - len(net.Edges),
	}
	return net, nil
}
