package main

import (
	"flag"
	"fmt"
	"os"

	"courtlookup/internal/cache"
	"courtlookup/internal/config"
	"courtlookup/internal/database"
	"courtlookup/internal/server"
	"courtlookup/pkg/logger"
)

func main() {
	var migrate bool
	flag.BoolVar(&migrate, "migrate", false, "Run database migrations and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}

	if migrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal("Failed to run migrations", "error", err)
		}
		log.Info("Database migrations completed successfully")
		return
	}

	cacheService := cache.NewCache(cfg.CacheSize, cfg.CacheTTL)

	log.Info("Starting court case lookup service",
		"host", cfg.Host,
		"port", cfg.Port,
		"court", cfg.CourtName,
		"live_fetch", cfg.EnableLiveFetch,
	)
	if !cfg.EnableLiveFetch {
		log.Warn("Live fetching is disabled; lookups return sample data with an explanation")
	}

	srv := server.New(cfg, db, cacheService, log)
	if err := srv.Run(); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
