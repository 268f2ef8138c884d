package models

// BuildNetworkRequest carries an in-memory flow direction grid and the
// stations for one network build. Codes use 0 for no-data cells.
type BuildNetworkRequest struct {
	Xs        []float64      `json:"xs" binding:"required"`
	Ys        []float64      `json:"ys" binding:"required"`
	Codes     [][]int        `json:"codes" binding:"required"`
	Stations  []StationInput `json:"stations" binding:"required"`
	DistProj  string         `json:"dist_proj"`
	Elevation [][]float64    `json:"elevation"`
}

// StationInput is one reservoir location in a build request. IDs are
// assigned from slice order.
type StationInput struct {
	Name string  `json:"name" binding:"required"`
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
}

// RunFilterRequest selects the reservoirs and satellites for one
// correction run. NomAreas pairs with Names by index.
type RunFilterRequest struct {
	Names      []string         `json:"names" binding:"required"`
	NomAreas   []float64        `json:"nom_areas" binding:"required"`
	Satellites []string         `json:"satellites"`
	Thresholds *ThresholdsInput `json:"thresholds"`
}

// ThresholdsInput overrides the default correction thresholds
type ThresholdsInput struct {
	MonthlySigma float64 `json:"monthly_sigma"`
	NomAreaPct   float64 `json:"nom_area_pct"`
	TrendSigma   float64 `json:"trend_sigma"`
}
