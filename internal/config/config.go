package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port    string
	DBPath  string
	DataDir string // root of the per-satellite surface-area CSV tree
	Workers int    // parallel per-reservoir filter runs
}

// Load reads configuration from the environment with sane defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/reservoir.db"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data/gee_sarea_tmsos"
	}

	workers := 4
	if w := os.Getenv("WORKERS"); w != "" {
		if n, err := strconv.Atoi(w); err == nil && n > 0 {
			workers = n
		}
	}

	return &Config{
		Port:    port,
		DBPath:  dbPath,
		DataDir: dataDir,
		Workers: workers,
	}
}
