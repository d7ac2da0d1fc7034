package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port           string
	Timezone       string
	DBPath         string
	ClimateBaseURL string
	ClimateTimeout time.Duration
	ClimateMock    bool
	JWTSecret      string
	JWTTTL         time.Duration
	CatalogCSV     string
	CatalogXLSX    string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	cfg := AppConfig{
		Port:           get("PORT", "8080"),
		Timezone:       get("TZ", "America/Sao_Paulo"),
		DBPath:         get("DB_PATH", "climamonitor.db"),
		ClimateBaseURL: get("CLIMATE_ENDPOINT", "https://archive-api.open-meteo.com/v1/archive"),
		ClimateTimeout: time.Duration(getInt("CLIMATE_TIMEOUT_MS", 10000)) * time.Millisecond,
		ClimateMock:    get("CLIMATE_MOCK", "false") == "true",
		JWTSecret:      get("JWT_SECRET", "dev-secret-change-me"),
		JWTTTL:         time.Duration(getInt("JWT_TTL_MIN", 60)) * time.Minute,
		CatalogCSV:     get("CATALOG_CSV", ""),
		CatalogXLSX:    get("CATALOG_XLSX", ""),
	}
	log.Printf("[cfg] port=%s tz=%s db=%s climate=%s mock=%v", cfg.Port, cfg.Timezone, cfg.DBPath, cfg.ClimateBaseURL, cfg.ClimateMock)
	return cfg
}

// Location resolves the configured time zone; date-only comparisons must all
// happen in this zone to avoid off-by-one drift at UTC boundaries.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("[cfg] bad TZ %q, falling back to UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}
