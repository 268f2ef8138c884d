package main

import (
	"log"

	"github.com/resorr/reservoir-backend-go/internal/api"
	"github.com/resorr/reservoir-backend-go/internal/config"
	"github.com/resorr/reservoir-backend-go/internal/database"
	"github.com/resorr/reservoir-backend-go/internal/handler"
	"github.com/resorr/reservoir-backend-go/internal/repository"
	"github.com/resorr/reservoir-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()
	db := database.GetDB()

	stationRepo := repository.NewStationRepository(db)
	networkRepo := repository.NewNetworkRepository(db)
	seriesRepo := repository.NewSeriesRepository(db)

	networkService := service.NewNetworkService(stationRepo, networkRepo)
	filterService := service.NewFilterService(seriesRepo, cfg.DataDir, cfg.Workers)

	router := api.SetupRouter(
		handler.NewNetworkHandler(networkService),
		handler.NewStationHandler(networkService),
		handler.NewFilterHandler(filterService),
	)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
