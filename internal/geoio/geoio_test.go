package geoio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resorr/reservoir-backend-go/internal/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadStations(t *testing.T) {
	dir := t.TempDir()

	t.Run("parses rows in order", func(t *testing.T) {
		path := writeFile(t, dir, "stations.csv",
			"name,lat,lon\ntehri,30.38,78.48\nkoteshwar,30.25,78.5\n")

		stations, err := LoadStations(path)
		require.NoError(t, err)
		require.Len(t, stations, 2)

		assert.Equal(t, models.Station{ID: 0, Name: "tehri", Lon: 78.48, Lat: 30.38}, stations[0])
		assert.Equal(t, models.Station{ID: 1, Name: "koteshwar", Lon: 78.5, Lat: 30.25}, stations[1])
	})

	t.Run("missing file fails fast", func(t *testing.T) {
		_, err := LoadStations(filepath.Join(dir, "nope.csv"))
		assert.Error(t, err)
	})

	t.Run("missing column", func(t *testing.T) {
		path := writeFile(t, dir, "bad.csv", "name,x,y\na,1,2\n")
		_, err := LoadStations(path)
		assert.Error(t, err)
	})

	t.Run("empty table", func(t *testing.T) {
		path := writeFile(t, dir, "empty.csv", "name,lon,lat\n")
		_, err := LoadStations(path)
		assert.Error(t, err)
	})
}

func TestLoadObservations(t *testing.T) {
	dir := t.TempDir()

	t.Run("landsat fills missing areas with zero", func(t *testing.T) {
		path := writeFile(t, dir, "l8.csv",
			"from_date,corrected_area_cordeiro\n2023-01-01,12.5\n2023-01-17,\n")

		obs, err := LoadLandsat(path)
		require.NoError(t, err)
		require.Len(t, obs, 2)
		assert.Equal(t, 12.5, obs[0].Area)
		assert.Equal(t, 0.0, obs[1].Area)
		assert.Equal(t, 2023, obs[0].Date.Year())
	})

	t.Run("sar keeps its own columns", func(t *testing.T) {
		path := writeFile(t, dir, "sar.csv",
			"time,sarea\n2023-01-03 00:00:00,13.1\n2023-01-15 00:00:00,13.4\n")

		obs, err := LoadSAR(path)
		require.NoError(t, err)
		require.Len(t, obs, 2)
		assert.Equal(t, 13.1, obs[0].Area)
		assert.Equal(t, 15, obs[1].Date.Day())
	})

	t.Run("unknown date format", func(t *testing.T) {
		path := writeFile(t, dir, "bad.csv", "date,water_area_corrected\n01/02/2023,5\n")
		_, err := LoadSentinel2(path)
		assert.Error(t, err)
	})
}

func TestNetworkRoundTrip(t *testing.T) {
	elev := 412.75
	length := 1234.5
	net := &models.Network{
		Nodes: []models.Node{
			{ID: 0, X: 78.48, Y: 30.38, Name: "tehri", Elevation: &elev},
			{ID: 1, X: 78.5, Y: 30.25, Name: "koteshwar"},
		},
		Edges: []models.Edge{
			{Source: 0, Target: 1, Length: &length, DistanceM: 14460.2},
		},
	}

	dir := t.TempDir()
	require.NoError(t, WriteNetwork(dir, net))

	got, err := ReadNetwork(dir)
	require.NoError(t, err)

	require.Len(t, got.Nodes, 2)
	assert.Equal(t, 0, got.Nodes[0].ID)
	assert.Equal(t, "tehri", got.Nodes[0].Name)
	require.NotNil(t, got.Nodes[0].Elevation)
	assert.InDelta(t, elev, *got.Nodes[0].Elevation, 1e-6)
	assert.InDelta(t, 78.48, got.Nodes[0].X, 1e-6)
	assert.InDelta(t, 30.38, got.Nodes[0].Y, 1e-6)

	assert.Equal(t, 1, got.Nodes[1].ID)
	assert.Nil(t, got.Nodes[1].Elevation)

	require.Len(t, got.Edges, 1)
	assert.Equal(t, 0, got.Edges[0].Source)
	assert.Equal(t, 1, got.Edges[0].Target)
	require.NotNil(t, got.Edges[0].Length)
	assert.InDelta(t, length, *got.Edges[0].Length, 1e-3)
	assert.InDelta(t, 14460.2, got.Edges[0].DistanceM, 1e-3)
}

func TestReadNetworkMissingFiles(t *testing.T) {
	_, err := ReadNetwork(t.TempDir())
	assert.Error(t, err)
}
