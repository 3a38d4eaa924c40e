// Package config loads wiretype configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/usestring/wiretype-mcp/pkg/typegen"
)

// Config holds all configuration for the wiretype server and engine.
type Config struct {
	CaptureBaseURL    string        // WIRETYPE_BASE_URL, default "http://localhost:7777"
	HTTPClientTimeout time.Duration // WIRETYPE_HTTP_TIMEOUT_MS, default 10000ms
	RefreshInterval   time.Duration // WIRETYPE_REFRESH_INTERVAL_MS, default 2000ms
	RefreshTimeout    time.Duration // WIRETYPE_REFRESH_TIMEOUT_MS, default 15000ms
	FetchWorkers      int           // WIRETYPE_FETCH_WORKERS, default 8
	TailLimit         int           // WIRETYPE_TAIL_LIMIT, default 5000
	BodyMaxBytes      int           // WIRETYPE_BODY_MAX_BYTES, default 1_000_000
	BodyCacheMaxItems int           // WIRETYPE_BODY_CACHE_MAX_ITEMS, default 512
	ObservationCap    int           // WIRETYPE_OBSERVATION_CAP, retained per route, default 50

	// Engine knobs
	ArraySampleCap     int  // TYPEGEN_ARRAY_SAMPLE_CAP, default 100
	RouteWindow        int  // TYPEGEN_ROUTE_WINDOW, default 10
	DetectDates        bool // TYPEGEN_DETECT_DATES, default true
	AnalyzeAllElements bool // TYPEGEN_ANALYZE_ALL_ELEMENTS, default false
	MaxDepth           int  // TYPEGEN_MAX_DEPTH, default 64 (0 = unbounded)

	// Logging
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		CaptureBaseURL:    envString("WIRETYPE_BASE_URL", "http://localhost:7777"),
		HTTPClientTimeout: envDurationMs("WIRETYPE_HTTP_TIMEOUT_MS", 10000),
		RefreshInterval:   envDurationMs("WIRETYPE_REFRESH_INTERVAL_MS", 2000),
		RefreshTimeout:    envDurationMs("WIRETYPE_REFRESH_TIMEOUT_MS", 15000),
		FetchWorkers:      envInt("WIRETYPE_FETCH_WORKERS", 8),
		TailLimit:         envInt("WIRETYPE_TAIL_LIMIT", 5000),
		BodyMaxBytes:      envInt("WIRETYPE_BODY_MAX_BYTES", 1_000_000),
		BodyCacheMaxItems: envInt("WIRETYPE_BODY_CACHE_MAX_ITEMS", 512),
		ObservationCap:    envInt("WIRETYPE_OBSERVATION_CAP", 50),

		ArraySampleCap:     envInt("TYPEGEN_ARRAY_SAMPLE_CAP", typegen.DefaultArraySampleCap),
		RouteWindow:        envInt("TYPEGEN_ROUTE_WINDOW", typegen.DefaultRouteWindow),
		DetectDates:        envBool("TYPEGEN_DETECT_DATES", true),
		AnalyzeAllElements: envBool("TYPEGEN_ANALYZE_ALL_ELEMENTS", false),
		MaxDepth:           envInt("TYPEGEN_MAX_DEPTH", 64),

		LogLevel:      envString("LOG_LEVEL", "info"),
		LogFile:       envString("LOG_FILE", ""),
		LogMaxSizeMB:  envInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: envInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: envInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   envBool("LOG_COMPRESS", true),
	}
}

// EngineOptions maps the engine-facing knobs onto typegen.Options.
func (c *Config) EngineOptions() typegen.Options {
	return typegen.Options{
		DetectDates:        c.DetectDates,
		ArraySampleCap:     c.ArraySampleCap,
		AnalyzeAllElements: c.AnalyzeAllElements,
		MaxDepth:           c.MaxDepth,
		RouteWindow:        c.RouteWindow,
	}
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func envDurationMs(key string, defaultMs int) time.Duration {
	return time.Duration(envInt(key, defaultMs)) * time.Millisecond
}
