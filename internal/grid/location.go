package grid

import (
	"github.com/resorr/reservoir-backend-go/internal/models"
)

// Cell is a discrete grid address.
type Cell struct {
	Row, Col int
}

// LocationRaster marks which grid cells hold a reservoir. It doubles as
// the termination oracle during tracing: a trace stops when it steps onto
// a marked cell. Stored as a sparse cell→id map since stations are sparse
// relative to the grid.
type LocationRaster struct {
	cells map[Cell]int
}

// BuildLocationRaster snaps every station to its nearest grid cell and
// records the station id there. When two stations snap to the same cell
// the later one wins (overwrite-last, matching input row order).
func BuildLocationRaster(g *Grid, stations []models.Station) *LocationRaster {
	r := &LocationRaster{cells: make(map[Cell]int, len(stations))}
	for _, st := range stations {
		row, col := g.SnapCell(st.Lon, st.Lat)
		r.cells[Cell{row, col}] = st.ID
	}
	return r
}

// At returns the station id stored at (row, col), if any.
func (r *LocationRaster) At(row, col int) (int, bool) {
	id, ok := r.cells[Cell{row, col}]
	return id, ok
}

// Len returns the number of occupied cells.
func (r *LocationRaster) Len() int { return len(r.cells) }
