package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Sheets   SheetsConfig
	Planning PlanningConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// SheetsConfig locates the two published source tables
type SheetsConfig struct {
	RosterURL      string
	AllocationsURL string
	FetchTimeout   time.Duration
	CacheTTL       time.Duration
}

// PlanningConfig holds the fixed full-time schedule constants the
// utilization ratios are derived from. They are configuration, never data.
type PlanningConfig struct {
	AnnualBillableHours float64
	AnnualBusinessDays  float64
	NoiseFloorHours     float64
	INTMatchMode        string // "bracket" or "substring"
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// Sheet source configuration
	fetchTimeout, err := time.ParseDuration(getEnv("SHEET_FETCH_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHEET_FETCH_TIMEOUT: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("SHEET_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHEET_CACHE_TTL: %w", err)
	}

	config.Sheets = SheetsConfig{
		RosterURL:      getEnv("SHEET_ROSTER_URL", ""),
		AllocationsURL: getEnv("SHEET_ALLOCATIONS_URL", ""),
		FetchTimeout:   fetchTimeout,
		CacheTTL:       cacheTTL,
	}

	// Planning constants
	annualHours, err := strconv.ParseFloat(getEnv("ANNUAL_BILLABLE_HOURS", "2080"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ANNUAL_BILLABLE_HOURS: %w", err)
	}
	annualDays, err := strconv.ParseFloat(getEnv("ANNUAL_BUSINESS_DAYS", "260"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ANNUAL_BUSINESS_DAYS: %w", err)
	}
	noiseFloor, err := strconv.ParseFloat(getEnv("BILLABLE_NOISE_FLOOR_HOURS", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid BILLABLE_NOISE_FLOOR_HOURS: %w", err)
	}

	config.Planning = PlanningConfig{
		AnnualBillableHours: annualHours,
		AnnualBusinessDays:  annualDays,
		NoiseFloorHours:     noiseFloor,
		INTMatchMode:        getEnv("INT_MATCH_MODE", "bracket"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Sheets.RosterURL == "" {
		return fmt.Errorf("SHEET_ROSTER_URL is required")
	}
	if c.Sheets.AllocationsURL == "" {
		return fmt.Errorf("SHEET_ALLOCATIONS_URL is required")
	}
	if c.Planning.AnnualBusinessDays <= 0 {
		return fmt.Errorf("ANNUAL_BUSINESS_DAYS must be positive")
	}
	if c.Planning.INTMatchMode != "bracket" && c.Planning.INTMatchMode != "substring" {
		return fmt.Errorf("INT_MATCH_MODE must be \"bracket\" or \"substring\"")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
