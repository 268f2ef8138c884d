package spatial

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

// longLatProj is the spatial reference of station coordinates.
const longLatProj = "+proj=longlat +datum=WGS84 +no_defs"

// Transform converts lon/lat coordinates into a planar spatial reference.
type Transform = proj.Transformer

// NewTransform builds a Transform from geographic coordinates to the
// spatial reference given in Proj4 format.
func NewTransform(proj4 string) (Transform, error) {
	src, err := proj.Parse(longLatProj)
	if err != nil {
		return nil, fmt.Errorf("spatial: parsing longlat reference: %w", err)
	}
	dst, err := proj.Parse(proj4)
	if err != nil {
		return nil, fmt.Errorf("spatial: parsing projection %q: %w", proj4, err)
	}
	t, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("spatial: creating transform to %q: %w", proj4, err)
	}
	return t, nil
}

// PlanarDistance returns the Euclidean distance between two lon/lat points
// after projecting both through t. The result is in the projection's units,
// typically meters.
func PlanarDistance(t Transform, aLon, aLat, bLon, bLat float64) (float64, error) {
	ga, err := geom.Point{X: aLon, Y: aLat}.Transform(t)
	if err != nil {
		return 0, fmt.Errorf("spatial: projecting point a: %w", err)
	}
	gb, err := geom.Point{X: bLon, Y: bLat}.Transform(t)
	if err != nil {
		return 0, fmt.Errorf("spatial: projecting point b: %w", err)
	}
	pa, ok := ga.(geom.Point)
	if !ok {
		return 0, fmt.Errorf("spatial: unexpected geometry type %T", ga)
	}
	pb, ok := gb.(geom.Point)
	if !ok {
		return 0, fmt.Errorf("spatial: unexpected geometry type %T", gb)
	}
	return Euclidean(pa.X, pa.Y, pb.X, pb.Y), nil
}

// Euclidean is the planar distance between two projected points.
func Euclidean(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
