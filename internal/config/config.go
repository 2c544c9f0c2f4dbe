package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSatellites is the FIRMS near real-time sensor set queried when
// FIRMS_SATELLITES is unset.
var DefaultSatellites = []string{"MODIS_NRT", "VIIRS_NOAA20_NRT", "VIIRS_SUOMI_NPP_NRT"}

// Config holds all service settings, populated from environment variables.
// A local .env file is loaded first when present.
type Config struct {
	MapKey         string
	BaseURL        string
	Satellites     []string
	RequestTimeout time.Duration

	LogLevel  string
	LogFormat string

	// Server mode.
	HTTPAddr        string
	ShutdownTimeout time.Duration
	CacheEnabled    bool
	CacheSize       int
	CacheTTL        time.Duration
}

// Load reads configuration from the environment, applying defaults where
// unset.
func Load() (*Config, error) {
	// Best effort: a missing .env is not an error.
	_ = godotenv.Load()

	requestTimeout, err := parseDuration("FIRMS_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseDuration("FEED_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		MapKey:         os.Getenv("FIRMS_MAP_KEY"),
		BaseURL:        envOrDefault("FIRMS_BASE_URL", "https://firms.modaps.eosdis.nasa.gov/api/area/csv"),
		Satellites:     parseSatellites(envOrDefault("FIRMS_SATELLITES", strings.Join(DefaultSatellites, ","))),
		RequestTimeout: requestTimeout,

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout: shutdownTimeout,
		CacheEnabled:    envOrDefault("FEED_CACHE_ENABLED", "true") == "true",
		CacheSize:       parseCacheSize(),
		CacheTTL:        cacheTTL,
	}

	if cfg.MapKey == "" {
		return nil, errors.New("FIRMS_MAP_KEY is required")
	}
	if len(cfg.Satellites) == 0 {
		return nil, errors.New("FIRMS_SATELLITES must name at least one sensor")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

// parseSatellites splits a comma-separated sensor list, trimming whitespace
// and dropping empty entries.
func parseSatellites(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseCacheSize() int {
	if s := os.Getenv("FEED_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 256
}
