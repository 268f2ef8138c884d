package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/resorr/reservoir-backend-go/internal/handler"
	"github.com/resorr/reservoir-backend-go/internal/middleware"
)

// SetupRouter wires the HTTP routes
func SetupRouter(networkH *handler.NetworkHandler, stationH *handler.StationHandler, filterH *handler.FilterHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Reservoir Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		stations := api.Group("/stations")
		{
			stations.GET("", stationH.List)
			stations.POST("/load", stationH.Load)
		}

		network := api.Group("/network")
		{
			network.GET("", networkH.Get)
			network.POST("/build", networkH.Build)
			network.POST("/export", networkH.Export)
		}

		filter := api.Group("/filter")
		{
			filter.POST("/run", filterH.Run)
			filter.GET("/series", filterH.Series)
		}
	}

	return r
}
