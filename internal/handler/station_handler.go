package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/resorr/reservoir-backend-go/internal/service"
	"github.com/resorr/reservoir-backend-go/pkg/response"
)

// StationHandler handles station-related HTTP requests
type StationHandler struct {
	service *service.NetworkService
}

// NewStationHandler creates a new station handler
func NewStationHandler(s *service.NetworkService) *StationHandler {
	return &StationHandler{service: s}
}

// List handles GET /api/v1/stations
func (h *StationHandler) List(c *gin.Context) {
	stations, err := h.service.Stations()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, stations)
}

// Load handles POST /api/v1/stations/load
func (h *StationHandler) Load(c *gin.Context) {
	var req struct {
		Path string `json:"path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	stations, err := h.service.LoadStations(req.Path)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{"loaded": len(stations)})
}
