// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// Env is "development" or "production". Development switches on
	// human-readable colored logs.
	Env string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// JWTSecret verifies HS256 bearer tokens. Required.
	JWTSecret string
	JWTIssuer string

	MaxBodyBytes      int64
	MigrateOnStart    bool
	GeographyCacheTTL time.Duration

	Weather   Provider
	Places    Provider
	Geocoding Provider
}

// Provider configures one external HTTP API.
type Provider struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// IsDevelopment reports whether the server runs in a local development setup.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

var required = []string{"DATABASE_URL", "JWT_SECRET"}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("JWT_ISSUER", "travel-planner")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("MIGRATE_ON_START", false)
	v.SetDefault("GEOGRAPHY_CACHE_TTL", 10*time.Minute)
	v.SetDefault("WEATHER_API_URL", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("WEATHER_TIMEOUT", 10*time.Second)
	v.SetDefault("PLACES_API_URL", "https://api.geoapify.com")
	v.SetDefault("PLACES_TIMEOUT", 15*time.Second)
	v.SetDefault("GEOCODING_API_URL", "https://api.geoapify.com")
	v.SetDefault("GEOCODING_TIMEOUT", 10*time.Second)

	var missing []string
	for _, key := range required {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	cfg := Config{
		Port:              stringOr(v, "PORT", "8080"),
		Env:               stringOr(v, "APP_ENV", "production"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		LogLevel:          stringOr(v, "LOG_LEVEL", "info"),
		CORSOrigins:       splitCSV(stringOr(v, "CORS_ORIGINS", "http://localhost:5173")),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTIssuer:         stringOr(v, "JWT_ISSUER", "travel-planner"),
		MaxBodyBytes:      v.GetInt64("MAX_BODY_BYTES"),
		MigrateOnStart:    v.GetBool("MIGRATE_ON_START"),
		GeographyCacheTTL: v.GetDuration("GEOGRAPHY_CACHE_TTL"),
		Weather: Provider{
			BaseURL: v.GetString("WEATHER_API_URL"),
			APIKey:  v.GetString("WEATHER_API_KEY"),
			Timeout: v.GetDuration("WEATHER_TIMEOUT"),
		},
		Places: Provider{
			BaseURL: v.GetString("PLACES_API_URL"),
			APIKey:  v.GetString("GEOAPIFY_API_KEY"),
			Timeout: v.GetDuration("PLACES_TIMEOUT"),
		},
		Geocoding: Provider{
			BaseURL: v.GetString("GEOCODING_API_URL"),
			APIKey:  v.GetString("GEOAPIFY_API_KEY"),
			Timeout: v.GetDuration("GEOCODING_TIMEOUT"),
		},
	}

	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	if cfg.GeographyCacheTTL <= 0 {
		return Config{}, fmt.Errorf("GEOGRAPHY_CACHE_TTL must be positive, got %s", cfg.GeographyCacheTTL)
	}
	return cfg, nil
}

// stringOr returns the value of key, or fallback if the variable is set but empty.
func stringOr(v *viper.Viper, key, fallback string) string {
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		return s
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
