// Package grid models the flow-direction grid: direction codes on a dense
// raster addressed by (row, col), with monotonic coordinate axes that allow
// nearest-cell lookup from arbitrary (lon, lat).
package grid

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/sparse"
)

// Flow direction codes. Each cell's code names the compass direction
// surface water leaves the cell in.
const (
	North     = 1
	Northeast = 2
	East      = 3
	Southeast = 4
	South     = 5
	Southwest = 6
	West      = 7
	Northwest = 8
)

// offsets maps a direction code to its (Δrow, Δcol) unit step.
// Row 0 is the northernmost row, so North decreases the row index.
var offsets = [9][2]int{
	North:     {-1, 0},
	Northeast: {-1, 1},
	East:      {0, 1},
	Southeast: {1, 1},
	South:     {1, 0},
	Southwest: {1, -1},
	West:      {0, -1},
	Northwest: {-1, -1},
}

// Offset returns the (Δrow, Δcol) step for a direction code.
// ok is false for anything outside 1-8.
func Offset(code int) (dr, dc int, ok bool) {
	if code < North || code > Northwest {
		return 0, 0, false
	}
	o := offsets[code]
	return o[0], o[1], true
}

// Grid is a single-band raster with coordinate axes. Cell values are
// float64 with NaN as the no-data sentinel, matching masked raster input.
// Ys addresses rows, Xs addresses columns; both must be monotonic
// (ascending or descending).
type Grid struct {
	Xs, Ys []float64
	data   *sparse.DenseArray
}

// New creates a grid of shape (len(ys), len(xs)) with every cell no-data.
func New(xs, ys []float64) (*Grid, error) {
	if len(xs) == 0 || len(ys) == 0 {
		return nil, fmt.Errorf("grid: empty coordinate axes (%d x, %d y)", len(xs), len(ys))
	}
	g := &Grid{
		Xs:   append([]float64(nil), xs...),
		Ys:   append([]float64(nil), ys...),
		data: sparse.ZerosDense(len(ys), len(xs)),
	}
	for i := range g.data.Elements {
		g.data.Elements[i] = math.NaN()
	}
	return g, nil
}

// Rows returns the number of rows (Y axis length).
func (g *Grid) Rows() int { return len(g.Ys) }

// Cols returns the number of columns (X axis length).
func (g *Grid) Cols() int { return len(g.Xs) }

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows() && col >= 0 && col < g.Cols()
}

// Value returns the cell value at (row, col). NaN means no-data.
// (row, col) must be in bounds.
func (g *Grid) Value(row, col int) float64 {
	return g.data.Get(row, col)
}

// Set writes a cell value at (row, col).
func (g *Grid) Set(row, col int, v float64) {
	g.data.Set(v, row, col)
}

// CellCoord returns the continuous (x, y) coordinate of a cell center.
func (g *Grid) CellCoord(row, col int) (x, y float64) {
	return g.Xs[col], g.Ys[row]
}

// SnapCell returns the cell whose center is nearest to (lon, lat).
// Coordinates outside the axes clamp to the edge cells.
func (g *Grid) SnapCell(lon, lat float64) (row, col int) {
	return NearestIndex(g.Ys, lat), NearestIndex(g.Xs, lon)
}

// Sample returns the value of the cell nearest to (lon, lat). Used for
// nearest-neighbor sampling of elevation rasters; out-of-extent
// coordinates clamp to the raster edge rather than failing.
func (g *Grid) Sample(lon, lat float64) float64 {
	row, col := g.SnapCell(lon, lat)
	return g.Value(row, col)
}

// NearestIndex returns the index of the axis value closest to q. The axis
// must be monotonic, ascending or descending; queries outside the range
// clamp to the nearest endpoint, and exact ties resolve to the lower index.
func NearestIndex(axis []float64, q float64) int {
	n := len(axis)
	if n < 2 {
		return 0
	}
	if axis[0] <= axis[n-1] { // ascending
		i := sort.SearchFloat64s(axis, q)
		if i == 0 {
			return 0
		}
		if i == n {
			return n - 1
		}
		if q-axis[i-1] <= axis[i]-q {
			return i - 1
		}
		return i
	}
	// descending
	i := sort.Search(n, func(j int) bool { return axis[j] <= q })
	if i == 0 {
		return 0
	}
	if i == n {
		return n - 1
	}
	if axis[i-1]-q <= q-axis[i] {
		return i - 1
	}
	return i
}
