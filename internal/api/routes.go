package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"courtlookup/internal/cache"
	"courtlookup/internal/config"
	"courtlookup/internal/database"
	"courtlookup/internal/scraper"
	"courtlookup/pkg/logger"
)

// SetupRoutes registers the full HTTP surface on the router.
func SetupRoutes(
	router *gin.Engine,
	store *database.QueryLogStore,
	cacheService cache.Cache,
	scraperService *scraper.Scraper,
	docs *scraper.DocumentFetcher,
	cfg *config.Config,
	log *logger.Logger,
) {
	h := NewHandlers(store, cacheService, scraperService, docs, cfg, log)

	router.GET("/", h.Home)
	router.POST("/search", h.SearchCase)
	router.GET("/history", h.History)
	router.POST("/history/clear", h.ClearHistory)
	router.GET("/download/raw/:id", h.DownloadRaw)
	router.GET("/download/document/*path", h.DownloadDocument)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/case-types", h.CaseTypes)
		api.GET("/cache/stats", h.CacheStats)
	}
}
