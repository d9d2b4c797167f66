package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Host string
	Port string

	// Database settings
	DatabasePath string

	// Logging settings
	LogLevel  string
	LogFormat string

	// Cache settings
	CacheSize int
	CacheTTL  time.Duration

	// Court settings
	CourtBaseURL   string
	CourtName      string
	CaseStatusPath string

	// Scraper settings
	EnableLiveFetch   bool
	ScraperTimeout    time.Duration
	NavigationTimeout time.Duration
	HeadlessMode      bool
	UserAgent         string
	BrowserPath       string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not an error if .env doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Host:           getEnv("HOST", "0.0.0.0"),
		Port:           getEnv("PORT", "8080"),
		DatabasePath:   getEnv("DATABASE_PATH", "./data/court_cases.db"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		CourtBaseURL:   getEnv("COURT_BASE_URL", "https://delhihighcourt.nic.in"),
		CourtName:      getEnv("COURT_NAME", "Delhi High Court"),
		CaseStatusPath: getEnv("CASE_STATUS_PATH", "/case-status"),
		UserAgent:      getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
		BrowserPath:    getEnv("ROD_BROWSER_PATH", ""),
	}

	// Parse integer values
	var err error
	cfg.CacheSize, err = strconv.Atoi(getEnv("CACHE_SIZE", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SIZE: %w", err)
	}

	cacheTTL, err := strconv.Atoi(getEnv("CACHE_TTL", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = time.Duration(cacheTTL) * time.Minute

	scraperTimeout, err := strconv.Atoi(getEnv("SCRAPER_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCRAPER_TIMEOUT: %w", err)
	}
	cfg.ScraperTimeout = time.Duration(scraperTimeout) * time.Second

	navTimeout, err := strconv.Atoi(getEnv("NAVIGATION_TIMEOUT", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid NAVIGATION_TIMEOUT: %w", err)
	}
	cfg.NavigationTimeout = time.Duration(navTimeout) * time.Second

	cfg.EnableLiveFetch = getEnv("ENABLE_LIVE_FETCH", "false") == "true"
	cfg.HeadlessMode = getEnv("HEADLESS_MODE", "true") == "true"

	return cfg, nil
}

// CaseStatusURL returns the full URL of the court's case status page.
func (c *Config) CaseStatusURL() string {
	return c.CourtBaseURL + c.CaseStatusPath
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
