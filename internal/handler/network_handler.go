package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/resorr/reservoir-backend-go/internal/models"
	"github.com/resorr/reservoir-backend-go/internal/service"
	"github.com/resorr/reservoir-backend-go/pkg/response"
)

// NetworkHandler handles network-related HTTP requests
type NetworkHandler struct {
	service *service.NetworkService
}

// NewNetworkHandler creates a new network handler
func NewNetworkHandler(s *service.NetworkService) *NetworkHandler {
	return &NetworkHandler{service: s}
}

// Build handles POST /api/v1/network/build
func (h *NetworkHandler) Build(c *gin.Context) {
	var req models.BuildNetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	net, err := h.service.BuildFromRequest(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, net)
}

// Get handles GET /api/v1/network
func (h *NetworkHandler) Get(c *gin.Context) {
	net, err := h.service.Get()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, net)
}

// Export handles POST /api/v1/network/export
func (h *NetworkHandler) Export(c *gin.Context) {
	var req struct {
		Dir string `json:"dir" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.service.Export(req.Dir); err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"dir": req.Dir})
}
