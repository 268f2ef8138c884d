// Package network builds the directed reservoir graph: every station is
// snapped to the flow-direction grid and its downstream flow path traced
// cell-by-cell until it reaches another reservoir, a no-data cell, the
// grid boundary, or loops back on itself.
package network

import (
	"fmt"
	"math"

	"github.com/resorr/reservoir-backend-go/internal/grid"
	"github.com/resorr/reservoir-backend-go/internal/models"
	"github.com/resorr/reservoir-backend-go/internal/spatial"
)

// Builder holds the inputs of one network build. Grid and Stations are
// required; DistProj (a Proj4 definition) enables planar edge lengths and
// Elev enables per-node elevation sampling.
type Builder struct {
	Grid     *grid.Grid
	Stations []models.Station
	DistProj string
	Elev     *grid.Grid
}

// Build assembles the reservoir network. Each node carries the station's
// coordinates and name; each traced connection becomes one directed edge,
// so every node has at most one outgoing edge.
func (b *Builder) Build() (*models.Network, error) {
	if b.Grid == nil {
		return nil, fmt.Errorf("network: flow-direction grid is required")
	}
	if len(b.Stations) == 0 {
		return nil, fmt.Errorf("network: station table is empty")
	}

	var planar spatial.Transform
	if b.DistProj != "" {
		t, err := spatial.NewTransform(b.DistProj)
		if err != nil {
			return nil, fmt.Errorf("network: distance projection: %w", err)
		}
		planar = t
	}

	loc := grid.BuildLocationRaster(b.Grid, b.Stations)

	net := &models.Network{
		Nodes: make([]models.Node, 0, len(b.Stations)),
		Edges: []models.Edge{},
	}
	byID := make(map[int]models.Station, len(b.Stations))
	for _, st := range b.Stations {
		byID[st.ID] = st
	}

	for _, st := range b.Stations {
		node := models.Node{ID: st.ID, X: st.Lon, Y: st.Lat, Name: st.Name}
		if b.Elev != nil {
			e := b.Elev.Sample(st.Lon, st.Lat)
			node.Elevation = &e
		}
		net.Nodes = append(net.Nodes, node)

		target, found := b.trace(loc, st)
		if !found {
			continue
		}
		dst, ok := byID[target]
		if !ok {
			return nil, fmt.Errorf("network: trace from %d reached unknown station id %d", st.ID, target)
		}

		edge := models.Edge{
			Source:    st.ID,
			Target:    target,
			DistanceM: spatial.HaversineDistance(st.Lat, st.Lon, dst.Lat, dst.Lon),
		}
		if planar != nil {
			d, err := spatial.PlanarDistance(planar, st.Lon, st.Lat, dst.Lon, dst.Lat)
			if err != nil {
				return nil, fmt.Errorf("network: edge %d->%d length: %w", st.ID, target, err)
			}
			edge.Length = &d
		}
		net.Edges = append(net.Edges, edge)
	}

	net.Stats = &models.NetworkStats{
		TotalNodes:   len(net.Nodes),
		TotalEdges:   len(net.Edges),
		Disconnected: len(net.Nodes) - len(net.Edges),
	}
	return net, nil
}

// trace walks downstream from the station's snapped cell and returns the
// id of the first other reservoir the flow path reaches. found is false
// when the path hits no-data, leaves the grid, or loops. Termination is
// guaranteed: the visited set rejects any revisited cell before the walk
// advances, so a trace takes at most rows*cols steps.
func (b *Builder) trace(loc *grid.LocationRaster, origin models.Station) (target int, found bool) {
	row, col := b.Grid.SnapCell(origin.Lon, origin.Lat)
	visited := map[grid.Cell]struct{}{{Row: row, Col: col}: {}}

	code := b.Grid.Value(row, col)
	if math.IsNaN(code) {
		return 0, false // disconnected downstream: no direction at the start cell
	}
	for {
		dr, dc, ok := grid.Offset(int(code))
		if !ok {
			return 0, false // malformed code, treat like no-data
		}
		next := grid.Cell{Row: row + dr, Col: col + dc}

		if _, seen := visited[next]; seen {
			return 0, false // loop
		}
		visited[next] = struct{}{}

		if !b.Grid.InBounds(next.Row, next.Col) {
			return 0, false // flow leaves the grid
		}
		code = b.Grid.Value(next.Row, next.Col)
		if math.IsNaN(code) {
			return 0, false // flow enters an undefined area
		}
		// A hit on the origin's own cell is not a connection; keep walking.
		if id, ok := loc.At(next.Row, next.Col); ok && id != origin.ID {
			return id, true
		}

		row, col = next.Row, next.Col
	}
}
