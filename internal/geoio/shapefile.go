package geoio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"

	"github.com/resorr/reservoir-backend-go/internal/models"
)

// Output file names, kept compatible with the original network export.
const (
	NodesFileName = "rivreg_network_pts.shp"
	EdgesFileName = "rivreg_network.shp"
)

// noData marks absent optional attributes (elevation, projected length)
// in the DBF tables.
const noData = -9999.0

type nodeRow struct {
	geom.Point
	ID   int
	Name string
	Elev float64
}

type edgeRow struct {
	geom.LineString
	Source int
	Target int
	Length float64
	DistM  float64
}

// WriteNetwork writes the network's node and edge tables as point and
// line shapefiles under dir, creating it if needed.
func WriteNetwork(dir string, net *models.Network) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("geoio: creating output dir: %w", err)
	}

	byID := make(map[int]models.Node, len(net.Nodes))
	for _, n := range net.Nodes {
		byID[n.ID] = n
	}

	ne, err := shp.NewEncoder(filepath.Join(dir, NodesFileName), nodeRow{})
	if err != nil {
		return fmt.Errorf("geoio: creating node shapefile: %w", err)
	}
	for _, n := range net.Nodes {
		row := nodeRow{
			Point: geom.Point{X: n.X, Y: n.Y},
			ID:    n.ID,
			Name:  n.Name,
			Elev:  noData,
		}
		if n.Elevation != nil {
			row.Elev = *n.Elevation
		}
		if err := ne.Encode(row); err != nil {
			ne.Close()
			return fmt.Errorf("geoio: encoding node %d: %w", n.ID, err)
		}
	}
	ne.Close()

	ee, err := shp.NewEncoder(filepath.Join(dir, EdgesFileName), edgeRow{})
	if err != nil {
		return fmt.Errorf("geoio: creating edge shapefile: %w", err)
	}
	for _, e := range net.Edges {
		src, ok := byID[e.Source]
		if !ok {
			ee.Close()
			return fmt.Errorf("geoio: edge references unknown node %d", e.Source)
		}
		dst, ok := byID[e.Target]
		if !ok {
			ee.Close()
			return fmt.Errorf("geoio: edge references unknown node %d", e.Target)
		}
		row := edgeRow{
			LineString: geom.LineString{
				{X: src.X, Y: src.Y},
				{X: dst.X, Y: dst.Y},
			},
			Source: e.Source,
			Target: e.Target,
			Length: noData,
			DistM:  e.DistanceM,
		}
		if e.Length != nil {
			row.Length = *e.Length
		}
		if err := ee.Encode(row); err != nil {
			ee.Close()
			return fmt.Errorf("geoio: encoding edge %d->%d: %w", e.Source, e.Target, err)
		}
	}
	ee.Close()
	return nil
}

// ReadNetwork loads a network previously written by WriteNetwork.
// Nodes come back sorted by id.
func ReadNetwork(dir string) (*models.Network, error) {
	nodes, err := readNodes(filepath.Join(dir, NodesFileName))
	if err != nil {
		return nil, err
	}
	edges, err := readEdges(filepath.Join(dir, EdgesFileName))
	if err != nil {
		return nil, err
	}
	return &models.Network{
		Nodes: nodes,
		Edges: edges,
		Stats: &models.NetworkStats{
			TotalNodes:   len(nodes),
			TotalEdges:   len(edges),
			Disconnected: len(nodes) - len(edges),
		},
	}, nil
}

func readNodes(path string) ([]models.Node, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("geoio: opening node shapefile: %w", err)
	}
	defer d.Close()

	var nodes []models.Node
	for {
		g, fields, more := d.DecodeRowFields("ID", "Name", "Elev")
		if !more {
			break
		}
		p, ok := g.(geom.Point)
		if !ok {
			return nil, fmt.Errorf("geoio: node geometry is %T, want point", g)
		}
		id, err := atoiField(fields, "ID")
		if err != nil {
			return nil, err
		}
		elev, err := atofField(fields, "Elev")
		if err != nil {
			return nil, err
		}
		node := models.Node{ID: id, X: p.X, Y: p.Y, Name: trimField(fields["Name"])}
		if elev != noData {
			node.Elevation = &elev
		}
		nodes = append(nodes, node)
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("geoio: decoding node shapefile: %w", err)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes, nil
}

func readEdges(path string) ([]models.Edge, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("geoio: opening edge shapefile: %w", err)
	}
	defer d.Close()

	var edges []models.Edge
	for {
		_, fields, more := d.DecodeRowFields("Source", "Target", "Length", "DistM")
		if !more {
			break
		}
		src, err := atoiField(fields, "Source")
		if err != nil {
			return nil, err
		}
		dst, err := atoiField(fields, "Target")
		if err != nil {
			return nil, err
		}
		length, err := atofField(fields, "Length")
		if err != nil {
			return nil, err
		}
		distM, err := atofField(fields, "DistM")
		if err != nil {
			return nil, err
		}
		edge := models.Edge{Source: src, Target: dst, DistanceM: distM}
		if length != noData {
			edge.Length = &length
		}
		edges = append(edges, edge)
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("geoio: decoding edge shapefile: %w", err)
	}
	return edges, nil
}

func atoiField(fields map[string]string, name string) (int, error) {
	s, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("geoio: missing attribute %q", name)
	}
	// DBF numeric fields come back space padded
	v, err := strconv.ParseFloat(trimField(s), 64)
	if err != nil {
		return 0, fmt.Errorf("geoio: attribute %q: %w", name, err)
	}
	return int(v), nil
}

func atofField(fields map[string]string, name string) (float64, error) {
	s, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("geoio: missing attribute %q", name)
	}
	v, err := strconv.ParseFloat(trimField(s), 64)
	if err != nil {
		return 0, fmt.Errorf("geoio: attribute %q: %w", name, err)
	}
	return v, nil
}

func trimField(s string) string {
	return strings.Trim(s, " \x00")
}
