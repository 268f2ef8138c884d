package service

import (
	"fmt"

	"github.com/resorr/reservoir-backend-go/internal/geoio"
	"github.com/resorr/reservoir-backend-go/internal/grid"
	"github.com/resorr/reservoir-backend-go/internal/models"
	"github.com/resorr/reservoir-backend-go/internal/network"
	"github.com/resorr/reservoir-backend-go/internal/repository"
)

// NetworkService handles business logic for the reservoir network
type NetworkService struct {
	stations *repository.StationRepository
	networks *repository.NetworkRepository
}

// NewNetworkService creates a new network service
func NewNetworkService(stations *repository.StationRepository, networks *repository.NetworkRepository) *NetworkService {
	return &NetworkService{stations: stations, networks: networks}
}

// BuildFromRequest assembles the grids from an inline build request,
// traces the network and persists the result.
func (s *NetworkService) BuildFromRequest(req *models.BuildNetworkRequest) (*models.Network, error) {
	g, err := gridFromRequest(req.Xs, req.Ys, req.Codes)
	if err != nil {
		return nil, err
	}

	var elev *grid.Grid
	if len(req.Elevation) > 0 {
		elev, err = elevationFromRequest(req.Xs, req.Ys, req.Elevation)
		if err != nil {
			return nil, err
		}
	}

	stations := make([]models.Station, len(req.Stations))
	for i, in := range req.Stations {
		stations[i] = models.Station{ID: i, Name: in.Name, Lon: in.Lon, Lat: in.Lat}
	}

	return s.Build(g, stations, req.DistProj, elev)
}

// Build traces the network for the given inputs and persists stations,
// nodes and edges.
func (s *NetworkService) Build(g *grid.Grid, stations []models.Station, distProj string, elev *grid.Grid) (*models.Network, error) {
	b := &network.Builder{Grid: g, Stations: stations, DistProj: distProj, Elev: elev}
	net, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := s.stations.ReplaceAll(stations); err != nil {
		return nil, fmt.Errorf("saving stations: %w", err)
	}
	if err := s.networks.Save(net); err != nil {
		return nil, fmt.Errorf("saving network: %w", err)
	}
	return net, nil
}

// Get returns the stored network
func (s *NetworkService) Get() (*models.Network, error) {
	return s.networks.Get()
}

// Stations returns the stored station table
func (s *NetworkService) Stations() ([]models.Station, error) {
	return s.stations.GetAll()
}

// LoadStations reads a station CSV and persists it
func (s *NetworkService) LoadStations(path string) ([]models.Station, error) {
	stations, err := geoio.LoadStations(path)
	if err != nil {
		return nil, err
	}
	if err := s.stations.ReplaceAll(stations); err != nil {
		return nil, fmt.Errorf("saving stations: %w", err)
	}
	return stations, nil
}

// Export writes the stored network as node and edge shapefiles
func (s *NetworkService) Export(dir string) error {
	net, err := s.networks.Get()
	if err != nil {
		return err
	}
	if len(net.Nodes) == 0 {
		return fmt.Errorf("no network has been built yet")
	}
	return geoio.WriteNetwork(dir, net)
}

func gridFromRequest(xs, ys []float64, codes [][]int) (*grid.Grid, error) {
	if len(codes) != len(ys) {
		return nil, fmt.Errorf("codes have %d rows, want %d", len(codes), len(ys))
	}
	g, err := grid.New(xs, ys)
	if err != nil {
		return nil, err
	}
	for row, r := range codes {
		if len(r) != len(xs) {
			return nil, fmt.Errorf("codes row %d has %d columns, want %d", row, len(r), len(xs))
		}
		for col, code := range r {
			if code == 0 { // no-data
				continue
			}
			g.Set(row, col, float64(code))
		}
	}
	return g, nil
}

func elevationFromRequest(xs, ys []float64, values [][]float64) (*grid.Grid, error) {
	if len(values) != len(ys) {
		return nil, fmt.Errorf("elevation has %d rows, want %d", len(values), len(ys))
	}
	g, err := grid.New(xs, ys)
	if err != nil {
		return nil, err
	}
	for row, r := range values {
		if len(r) != len(xs) {
			return nil, fmt.Errorf("elevation row %d has %d columns, want %d", row, len(r), len(xs))
		}
		for col, v := range r {
			g.Set(row, col, v)
		}
	}
	return g, nil
}
