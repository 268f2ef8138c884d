package models

// Station represents a reservoir location from the input station table.
// ID is assigned by input row order and stays stable across a run: it is
// used as the graph node id and as the value written into the reservoir
// location raster.
type Station struct {
	ID   int     `json:"id" db:"id"`
	Name string  `json:"name" db:"name"`
	Lon  float64 `json:"lon" db:"lon"`
	Lat  float64 `json:"lat" db:"lat"`
}
