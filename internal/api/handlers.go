package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"courtlookup/internal/cache"
	"courtlookup/internal/config"
	"courtlookup/internal/database"
	"courtlookup/internal/monitoring"
	"courtlookup/internal/scraper"
	"courtlookup/pkg/logger"
)

// historyLimit caps the history listing at the most recent entries.
const historyLimit = 50

// Handlers wires the HTTP surface to the lookup pipeline.
type Handlers struct {
	store   *database.QueryLogStore
	cache   cache.Cache
	scraper *scraper.Scraper
	docs    *scraper.DocumentFetcher
	cfg     *config.Config
	logger  *logger.Logger
}

func NewHandlers(
	store *database.QueryLogStore,
	cacheService cache.Cache,
	scraperService *scraper.Scraper,
	docs *scraper.DocumentFetcher,
	cfg *config.Config,
	log *logger.Logger,
) *Handlers {
	return &Handlers{
		store:   store,
		cache:   cacheService,
		scraper: scraperService,
		docs:    docs,
		cfg:     cfg,
		logger:  log,
	}
}

// SearchCase handles POST /search. Every search, cached or not, appends a
// query log entry; a failed append never fails the request.
func (h *Handlers) SearchCase(c *gin.Context) {
	var query scraper.CaseQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON data",
		})
		return
	}

	query.CaseType = strings.TrimSpace(query.CaseType)
	query.CaseNumber = strings.TrimSpace(query.CaseNumber)
	query.FilingYear = strings.TrimSpace(query.FilingYear)

	if err := query.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	h.logger.Info("received search request", "case", query.DisplayNumber())

	cacheKey := cache.GenerateCacheKey(query.CaseType, query.CaseNumber, query.FilingYear)
	if cached, found := h.cache.Get(cacheKey); found {
		h.logger.Info("serving result from cache", "key", cacheKey)
		monitoring.CacheHits.Inc()
		h.logQuery(query, cached)
		respondWithResult(c, cached, true)
		return
	}

	ctx, cancel := context.WithTimeout(
		c.Request.Context(),
		h.cfg.NavigationTimeout+h.cfg.ScraperTimeout,
	)
	defer cancel()

	result := h.scraper.Lookup(ctx, query)
	h.logQuery(query, result)
	if result.Success {
		h.cache.Set(cacheKey, result)
	}
	respondWithResult(c, result, false)
}

// History handles GET /history.
func (h *Handlers) History(c *gin.Context) {
	entries, err := h.store.ListRecent(historyLimit)
	if err != nil {
		h.logger.Error("failed to load query history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to load history",
		})
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		items = append(items, gin.H{
			"id":          entry.ID,
			"case_type":   entry.CaseType,
			"case_number": entry.CaseNumber,
			"filing_year": entry.FilingYear,
			"query_time":  entry.QueryTime.Format("2006-01-02 15:04:05"),
			"status":      entry.Status,
			"is_blocked":  entry.IsBlocked,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// ClearHistory handles POST /history/clear.
func (h *Handlers) ClearHistory(c *gin.Context) {
	if err := h.store.ClearAll(); err != nil {
		h.logger.Error("failed to clear query history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to clear history",
		})
		return
	}
	h.logger.Info("query history cleared")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DownloadRaw handles GET /download/raw/:id, serving the stored raw page
// for one logged query as a text attachment.
func (h *Handlers) DownloadRaw(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query id"})
		return
	}

	raw, err := h.store.GetRawResponse(uint(id))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Query not found"})
			return
		}
		h.logger.Error("failed to load raw response", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load raw response"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=raw_response_%d.txt", id))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(raw))
}

// DownloadDocument handles GET /download/document/*path, serving order
// documents referenced by pdf links.
func (h *Handlers) DownloadDocument(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing document path"})
		return
	}

	// Live results carry absolute pdf links; synthetic order links are
	// site-relative and keep their leading slash.
	link := "/" + path
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		link = path
	}

	data, contentType, err := h.docs.Fetch(c.Request.Context(), link)
	if err != nil {
		h.logger.Error("failed to fetch document", "path", path, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found or could not be downloaded"})
		return
	}

	name := strings.ReplaceAll(path, "/", "_")
	if strings.HasPrefix(contentType, "text/plain") {
		name += ".txt"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
	c.Data(http.StatusOK, contentType, data)
}

// Home handles GET /.
func (h *Handlers) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":    "court-case-lookup",
		"court":      h.cfg.CourtName,
		"live_fetch": h.cfg.EnableLiveFetch,
		"endpoints": []string{
			"POST /search",
			"GET /history",
			"POST /history/clear",
			"GET /download/raw/:id",
			"GET /download/document/*path",
			"GET /api/health",
			"GET /api/case-types",
			"GET /api/cache/stats",
			"GET /metrics",
		},
	})
}

// CaseTypes handles GET /api/case-types.
func (h *Handlers) CaseTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"case_types": caseTypes(),
	})
}

// HealthCheck handles GET /api/health.
func (h *Handlers) HealthCheck(c *gin.Context) {
	_, err := h.store.Count()
	status := "healthy"
	if err != nil {
		status = "degraded"
		h.logger.Warn("health check database probe failed", "error", err)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"database":  err == nil,
		"timestamp": time.Now().Unix(),
	})
}

// CacheStats handles GET /api/cache/stats.
func (h *Handlers) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   h.cache.Stats(),
	})
}

// logQuery appends one audit row for a finished lookup. Store failures are
// logged and swallowed.
func (h *Handlers) logQuery(query scraper.CaseQuery, result *scraper.LookupResult) {
	status := database.StatusSuccess
	if !result.Success {
		status = database.StatusError
	}

	parsed := "{}"
	if result.Data != nil {
		if data, err := json.Marshal(result.Data); err == nil {
			parsed = string(data)
		}
	}

	entry := &database.QueryLog{
		CaseType:    query.CaseType,
		CaseNumber:  query.CaseNumber,
		FilingYear:  query.FilingYear,
		QueryTime:   time.Now(),
		RawResponse: result.RawHTML,
		Status:      status,
		ParsedData:  parsed,
		IsBlocked:   result.Blocked,
		RetryCount:  result.RetryCount,
	}

	if _, err := h.store.Append(entry); err != nil {
		monitoring.QueryLogFailures.Inc()
		h.logger.Error("failed to log query", "case", query.DisplayNumber(), "error", err)
		return
	}
	h.logger.Info("query logged", "case", query.DisplayNumber(), "status", status)
}

// respondWithResult serializes a lookup result onto the wire.
func respondWithResult(c *gin.Context, result *scraper.LookupResult, fromCache bool) {
	payload := gin.H{
		"success": result.Success,
		"source":  result.Source,
	}
	if result.Data != nil {
		payload["data"] = result.Data
	}
	if result.Error != "" {
		payload["error"] = result.Error
	}
	if result.Explanation != nil {
		payload["explanation"] = result.Explanation
	}
	if result.Note != "" {
		payload["note"] = result.Note
	}
	if result.Blocked {
		payload["blocked"] = true
	}
	if fromCache {
		payload["from_cache"] = true
	}
	c.JSON(http.StatusOK, payload)
}

// caseTypes lists the case type codes the court's search form accepts.
func caseTypes() map[string]string {
	return map[string]string{
		"WP(C)":      "Writ Petition (Civil)",
		"CRL.A.":     "Criminal Appeal",
		"FAO":        "First Appeal from Order",
		"CM":         "Civil Misc",
		"CRL.M.C.":   "Criminal Misc Case",
		"CRL.REV.P.": "Criminal Revision Petition",
		"MAT.APP.":   "Mat Appeal",
		"RFA":        "Regular First Appeal",
		"CRL.M.A.":   "Criminal Misc Application",
		"W.P.(CRL.)": "Writ Petition (Criminal)",
	}
}
