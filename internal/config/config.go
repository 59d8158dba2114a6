package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Cache    CacheConfig
	API      APIConfig
	Auth     AuthConfig
	Search   SearchConfig
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// CacheConfig holds listing cache configuration (Redis)
type CacheConfig struct {
	RedisURL string
	Prefix   string
	TTL      time.Duration
}

// APIConfig holds API server configuration
type APIConfig struct {
	Port           int
	BaseURL        string
	AllowedOrigins []string
}

// AuthConfig holds session and login configuration
type AuthConfig struct {
	Secret          string
	SessionTTL      time.Duration
	LoginRatePerMin int
	SecureCookies   bool
}

// SearchConfig holds the terminal client's search settings
type SearchConfig struct {
	Debounce time.Duration
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first if present; real environment wins.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	apiPort, err := strconv.Atoi(getEnv("API_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_PORT: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getEnv("AUTH_SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_SESSION_TTL: %w", err)
	}

	loginRate, err := strconv.Atoi(getEnv("LOGIN_RATE_PER_MIN", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_PER_MIN: %w", err)
	}

	secureCookies, err := strconv.ParseBool(getEnv("AUTH_SECURE_COOKIES", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_SECURE_COOKIES: %w", err)
	}

	debounce, err := time.ParseDuration(getEnv("SEARCH_DEBOUNCE", "300ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_DEBOUNCE: %w", err)
	}

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "dashboard"),
			Password: getEnv("DB_PASSWORD", "dashboard"),
			DBName:   getEnv("DB_NAME", "dashboard"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Cache: CacheConfig{
			RedisURL: os.Getenv("REDIS_URL"),
			Prefix:   getEnv("CACHE_PREFIX", "dashboard"),
			TTL:      cacheTTL,
		},
		API: APIConfig{
			Port:           apiPort,
			BaseURL:        getEnv("API_BASE_URL", fmt.Sprintf("http://localhost:%d", apiPort)),
			AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		Auth: AuthConfig{
			Secret:          os.Getenv("AUTH_SECRET"),
			SessionTTL:      sessionTTL,
			LoginRatePerMin: loginRate,
			SecureCookies:   secureCookies,
		},
		Search: SearchConfig{
			Debounce: debounce,
		},
	}, nil
}

// Validate reports settings the API server cannot start without
func (a *AuthConfig) Validate() error {
	if a.Secret == "" {
		return errors.New("AUTH_SECRET is required")
	}
	if a.LoginRatePerMin < 1 {
		return fmt.Errorf("LOGIN_RATE_PER_MIN must be positive, got %d", a.LoginRatePerMin)
	}
	return nil
}

// DSN returns the database connection string in lib/pq key=value form
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dsnValue(d.Host), d.Port, dsnValue(d.User), dsnValue(d.Password), dsnValue(d.DBName), dsnValue(d.SSLMode),
	)
}

// URL returns the database connection string in URL form, as migrate expects
func (d *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// dsnValue quotes v when it holds characters lib/pq treats as separators
func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// splitList parses a comma separated setting, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
