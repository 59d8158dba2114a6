package config

import (
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"DB_HOST", "DB_PORT", "API_PORT", "CACHE_TTL", "REDIS_URL", "AUTH_SECRET", "SEARCH_DEBOUNCE", "API_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Errorf("database = %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.API.Port != 8080 || cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("api = %d %s", cfg.API.Port, cfg.API.BaseURL)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("cache TTL = %v", cfg.Cache.TTL)
	}
	if cfg.Search.Debounce != 300*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Search.Debounce)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour || cfg.Auth.LoginRatePerMin != 10 {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if err := cfg.Auth.Validate(); err == nil {
		t.Error("Validate() with empty AUTH_SECRET returned nil")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_NAME", "n")
	t.Setenv("SEARCH_DEBOUNCE", "1s")
	t.Setenv("AUTH_SECRET", "s3cret")
	t.Setenv("AUTH_SECURE_COOKIES", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.Database.URL(); got != "postgres://u:p@db:6543/n?sslmode=disable" {
		t.Errorf("URL() = %q", got)
	}
	if got := cfg.Database.DSN(); got != "host=db port=6543 user=u password=p dbname=n sslmode=disable" {
		t.Errorf("DSN() = %q", got)
	}
	if cfg.Search.Debounce != time.Second {
		t.Errorf("debounce = %v", cfg.Search.Debounce)
	}
	if !cfg.Auth.SecureCookies {
		t.Error("SecureCookies = false")
	}
	if err := cfg.Auth.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"DB_PORT", "abc"},
		{"API_PORT", "eighty"},
		{"CACHE_TTL", "forever"},
		{"SEARCH_DEBOUNCE", "soon"},
		{"AUTH_SECURE_COOKIES", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q returned nil error", tt.key, tt.value)
			}
		})
	}
}

func TestDatabaseConfig_SpecialCharacters(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/w:rd ?'x", DBName: "dash", SSLMode: "disable"}

	u, err := url.Parse(d.URL())
	if err != nil {
		t.Fatalf("URL() = %q does not parse: %v", d.URL(), err)
	}
	if pw, _ := u.User.Password(); pw != d.Password {
		t.Errorf("password = %q, want %q", pw, d.Password)
	}
	if u.User.Username() != "app" || u.Host != "db:5432" || u.Path != "/dash" {
		t.Errorf("URL() = %q", d.URL())
	}
	if u.Query().Get("sslmode") != "disable" {
		t.Errorf("sslmode = %q", u.Query().Get("sslmode"))
	}

	if dsn := d.DSN(); !strings.Contains(dsn, `password='p@ss/w:rd ?\'x'`) {
		t.Errorf("DSN() = %q, want quoted password", dsn)
	}
}

func TestLoad_AllowedOrigins(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://localhost:3000, ,https://dash.example ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"http://localhost:3000", "https://dash.example"}
	if !reflect.DeepEqual(cfg.API.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.API.AllowedOrigins, want)
	}
}
