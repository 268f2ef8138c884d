package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/resorr/reservoir-backend-go/internal/filter"
	"github.com/resorr/reservoir-backend-go/internal/models"
	"github.com/resorr/reservoir-backend-go/internal/service"
	"github.com/resorr/reservoir-backend-go/pkg/response"
)

// defaultSatellites is the source set used when a run request does not
// name one.
var defaultSatellites = []string{"l8", "l9", "s2", "s1"}

// FilterHandler handles surface area correction HTTP requests
type FilterHandler struct {
	service *service.FilterService
}

// NewFilterHandler creates a new filter handler
func NewFilterHandler(s *service.FilterService) *FilterHandler {
	return &FilterHandler{service: s}
}

// Run handles POST /api/v1/filter/run
func (h *FilterHandler) Run(c *gin.Context) {
	var req models.RunFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if len(req.NomAreas) != len(req.Names) {
		response.BadRequest(c, "nom_areas must pair with names")
		return
	}

	satellites := req.Satellites
	if len(satellites) == 0 {
		satellites = defaultSatellites
	}
	thresholds := filter.DefaultThresholds
	if req.Thresholds != nil {
		thresholds = filter.Thresholds{
			MonthlySigma: req.Thresholds.MonthlySigma,
			NomAreaPct:   req.Thresholds.NomAreaPct,
			TrendSigma:   req.Thresholds.TrendSigma,
		}
	}

	jobs := make([]service.FilterJob, 0, len(req.Names))
	loadErrors := make([]service.RunOutcome, 0)
	for i, name := range req.Names {
		job, err := h.service.LoadJob(name, req.NomAreas[i], satellites)
		if err != nil {
			loadErrors = append(loadErrors, service.RunOutcome{Name: name, Error: err.Error()})
			continue
		}
		jobs = append(jobs, job)
	}

	outcomes := h.service.Run(c.Request.Context(), jobs, thresholds)
	outcomes = append(outcomes, loadErrors...)
	response.Success(c, outcomes)
}

// Series handles GET /api/v1/filter/series
func (h *FilterHandler) Series(c *gin.Context) {
	var f models.SeriesFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, "invalid query: "+err.Error())
		return
	}
	if f.Name == "" {
		response.BadRequest(c, "name is required")
		return
	}

	series, err := h.service.GetSeries(f)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, series)
}
