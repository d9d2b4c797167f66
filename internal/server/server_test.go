package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"courtlookup/internal/cache"
	"courtlookup/internal/config"
	"courtlookup/internal/database"
	"courtlookup/pkg/logger"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		Host:              "127.0.0.1",
		Port:              "0",
		LogLevel:          "error",
		CourtBaseURL:      "https://delhihighcourt.nic.in",
		CourtName:         "Delhi High Court",
		CaseStatusPath:    "/case-status",
		ScraperTimeout:    5 * time.Second,
		NavigationTimeout: 5 * time.Second,
		CacheSize:         10,
		CacheTTL:          time.Minute,
		UserAgent:         "test-agent",
	}

	cacheService := cache.NewCache(cfg.CacheSize, cfg.CacheTTL)
	return New(cfg, db, cacheService, logger.NewNop())
}

func TestRecoveryMiddlewareReturnsUniformError(t *testing.T) {
	srv := setupTestServer(t)
	router := srv.Router()
	router.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/boom", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Internal server error. Please try again.") {
		t.Errorf("Body = %q, want the uniform error message", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"success":false`) {
		t.Errorf("Body = %q, want success false", w.Body.String())
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := setupTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	srv.Router().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestPreflightRequests(t *testing.T) {
	srv := setupTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("OPTIONS", "/search", nil)
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status %d, got %d", http.StatusNoContent, w.Code)
	}
}
