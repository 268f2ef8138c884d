package models

// Node is a reservoir in the traced network graph
type Node struct {
	ID        int      `json:"id" db:"id"`
	X         float64  `json:"x" db:"x"`
	Y         float64  `json:"y" db:"y"`
	Name      string   `json:"name" db:"name"`
	Elevation *float64 `json:"elevation,omitempty" db:"elevation"`
}

// Edge is a traced downstream connection: the source reservoir's flow path
// first reaches the target reservoir. Length is the planar Euclidean
// distance under the requested projection and is only set when a distance
// projection was supplied. DistanceM is the great-circle distance in meters
// and is always computed.
type Edge struct {
	Source    int      `json:"source" db:"source"`
	Target    int      `json:"target" db:"target"`
	Length    *float64 `json:"length,omitempty" db:"length"`
	DistanceM float64  `json:"distance_m" db:"distance_m"`
}

// Network is the assembled reservoir graph
type Network struct {
	Nodes []Node        `json:"nodes"`
	Edges []Edge        `json:"edges"`
	Stats *NetworkStats `json:"stats,omitempty"`
}

// NetworkStats summarizes a built network
type NetworkStats struct {
	TotalNodes int `json:"total_nodes"`
	TotalEdges int `json:"total_edges"`
	// Nodes whose trace ended without reaching another reservoir
	// (no-data, cycle, or flow leaving the grid)
	Disconnected int `json:"disconnected"`
}
