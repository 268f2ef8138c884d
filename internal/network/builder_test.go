package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resorr/reservoir-backend-go/internal/grid"
	"github.com/resorr/reservoir-backend-go/internal/models"
)

// newGrid builds a rows x cols flow-direction grid with one-degree cells,
// row 0 at the northern edge, all cells no-data.
func newGrid(t *testing.T, rows, cols int) *grid.Grid {
	t.Helper()
	xs := make([]float64, cols)
	for i := range xs {
		xs[i] = float64(i)
	}
	ys := make([]float64, rows)
	for i := range ys {
		ys[i] = float64(rows - 1 - i)
	}
	g, err := grid.New(xs, ys)
	require.NoError(t, err)
	return g
}

func TestBuildTwoCellConnection(t *testing.T) {
	g := newGrid(t, 1, 2)
	g.Set(0, 0, grid.East)
	g.Set(0, 1, grid.East) // flows off the grid

	stations := []models.Station{
		{ID: 0, Name: "a", Lon: 0, Lat: 0},
		{ID: 1, Name: "b", Lon: 1, Lat: 0},
	}

	net, err := (&Builder{Grid: g, Stations: stations}).Build()
	require.NoError(t, err)

	require.Len(t, net.Edges, 1)
	assert.Equal(t, 0, net.Edges[0].Source)
	assert.Equal(t, 1, net.Edges[0].Target)
	assert.Nil(t, net.Edges[0].Length) // no projection supplied
	assert.Greater(t, net.Edges[0].DistanceM, 0.0)

	require.NotNil(t, net.Stats)
	assert.Equal(t, 2, net.Stats.TotalNodes)
	assert.Equal(t, 1, net.Stats.TotalEdges)
	assert.Equal(t, 1, net.Stats.Disconnected)
}

func TestBuildMutualConnection(t *testing.T) {
	g := newGrid(t, 1, 2)
	g.Set(0, 0, grid.East)
	g.Set(0, 1, grid.West)

	stations := []models.Station{
		{ID: 0, Name: "a", Lon: 0, Lat: 0},
		{ID: 1, Name: "b", Lon: 1, Lat: 0},
	}

	net, err := (&Builder{Grid: g, Stations: stations}).Build()
	require.NoError(t, err)

	require.Len(t, net.Edges, 2)
	assert.Equal(t, 1, net.Edges[0].Target)
	assert.Equal(t, 0, net.Edges[1].Target)
}

func TestBuildCycleTerminates(t *testing.T) {
	// flow bounces between two cells and never reaches another reservoir
	g := newGrid(t, 1, 2)
	g.Set(0, 0, grid.East)
	g.Set(0, 1, grid.West)

	stations := []models.Station{{ID: 0, Name: "a", Lon: 0, Lat: 0}}

	net, err := (&Builder{Grid: g, Stations: stations}).Build()
	require.NoError(t, err)
	assert.Empty(t, net.Edges)
}

func TestBuildFourCellLoopTerminates(t *testing.T) {
	g := newGrid(t, 2, 2)
	g.Set(0, 0, grid.East)
	g.Set(0, 1, grid.South)
	g.Set(1, 1, grid.West)
	g.Set(1, 0, grid.North)

	stations := []models.Station{{ID: 0, Name: "a", Lon: 0, Lat: 1}}

	net, err := (&Builder{Grid: g, Stations: stations}).Build()
	require.NoError(t, err)
	assert.Empty(t, net.Edges)
}

func TestBuildStartCellNoData(t *testing.T) {
	g := newGrid(t, 2, 2)
	// station cell left as no-data
	stations := []models.Station{{ID: 0, Name: "a", Lon: 0, Lat: 1}}

	net, err := (&Builder{Grid: g, Stations: stations}).Build()
	require.NoError(t, err)
	assert.Len(t, net.Nodes, 1)
	assert.Empty(t, net.Edges)
}

func TestBuildFlowExitsGrid(t *testing.T) {
	g := newGrid(t, 1, 5)
	for col := 0; col < 5; col++ {
		g.Set(0, col, grid.East)
	}
	stations := []models.Station{{ID: 0, Name: "a", Lon: 0, Lat: 0}}

	net, err := (&Builder{Grid: g, Stations: stations}).Build()
	require.NoError(t, err)
	assert.Empty(t, net.Edges)
}

func TestBuildFullGridTerminates(t *testing.T) {
	// no no-data cells and no reachable cycles: every trace must stop
	// within rows*cols steps by leaving the grid
	g := newGrid(t, 10, 10)
	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			g.Set(row, col, grid.East)
		}
	}
	stations := []models.Station{
		{ID: 0, Name: "a", Lon: 0, Lat: 9},
		{ID: 1, Name: "b", Lon: 0, Lat: 0},
	}

	net, err := (&Builder{Grid: g, Stations: stations}).Build()
	require.NoError(t, err)
	assert.Empty(t, net.Edges)
}

func TestBuildProjectedEdgeLength(t *testing.T) {
	// diagonal path from (0,0) up to (3,4): a 3-4-5 triangle in degrees
	g := newGrid(t, 5, 4)
	g.Set(4, 0, grid.Northeast)
	g.Set(3, 1, grid.Northeast)
	g.Set(2, 2, grid.Northeast)
	g.Set(1, 3, grid.North)
	g.Set(0, 3, grid.East)

	stations := []models.Station{
		{ID: 0, Name: "lower", Lon: 0, Lat: 0},
		{ID: 1, Name: "upper", Lon: 3, Lat: 4},
	}

	b := &Builder{
		Grid:     g,
		Stations: stations,
		DistProj: "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +no_defs",
	}
	net, err := b.Build()
	require.NoError(t, err)

	require.Len(t, net.Edges, 1)
	assert.Equal(t, 0, net.Edges[0].Source)
	assert.Equal(t, 1, net.Edges[0].Target)

	require.NotNil(t, net.Edges[0].Length)
	// 5 degrees of arc is ~556.6 km; mercator stretching at 4N is <0.1%
	assert.InDelta(t, 556600, *net.Edges[0].Length, 1500)
	assert.InDelta(t, 555800, net.Edges[0].DistanceM, 500)
}

func TestBuildElevationEnrichment(t *testing.T) {
	g := newGrid(t, 1, 2)
	g.Set(0, 0, grid.East)

	elev := newGrid(t, 1, 2)
	elev.Set(0, 0, 310.5)
	elev.Set(0, 1, 120.25)

	stations := []models.Station{
		{ID: 0, Name: "a", Lon: 0, Lat: 0},
		{ID: 1, Name: "b", Lon: 1, Lat: 0},
	}

	net, err := (&Builder{Grid: g, Stations: stations, Elev: elev}).Build()
	require.NoError(t, err)

	require.NotNil(t, net.Nodes[0].Elevation)
	assert.Equal(t, 310.5, *net.Nodes[0].Elevation)
	require.NotNil(t, net.Nodes[1].Elevation)
	assert.Equal(t, 120.25, *net.Nodes[1].Elevation)
}

func TestBuildElevationOutsideExtentClamps(t *testing.T) {
	g := newGrid(t, 1, 2)
	elev := newGrid(t, 1, 2)
	elev.Set(0, 1, 99)

	// station sits well east of the elevation raster
	stations := []models.Station{{ID: 0, Name: "far", Lon: 50, Lat: 0}}

	net, err := (&Builder{Grid: g, Stations: stations, Elev: elev}).Build()
	require.NoError(t, err)
	require.NotNil(t, net.Nodes[0].Elevation)
	assert.Equal(t, 99.0, *net.Nodes[0].Elevation)
}

func TestBuildValidation(t *testing.T) {
	g := newGrid(t, 1, 1)

	_, err := (&Builder{Grid: g}).Build()
	assert.Error(t, err)

	_, err = (&Builder{Stations: []models.Station{{ID: 0}}}).Build()
	assert.Error(t, err)

	_, err = (&Builder{Grid: g, Stations: []models.Station{{ID: 0}}, DistProj: "garbage"}).Build()
	assert.Error(t, err)
}
