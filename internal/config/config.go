// Package config loads ReelTrack server configuration from command-line flags,
// environment variables and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Data   DataConfig
	Server ServerConfig
	Auth   AuthConfig
	TMDB   TMDBConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig locates on-disk state: the SQLite database and the token key.
type DataConfig struct {
	BasePath string
}

// DatabasePath is the SQLite file inside the data directory.
func (d DataConfig) DatabasePath() string {
	return filepath.Join(d.BasePath, "reeltrack.db")
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string // CORS; empty disables cross-origin access
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// PASETO v4 symmetric key, set by auth.LoadOrGenerateKey at startup.
	AccessTokenKey       []byte
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	OpenRegistration     bool
}

// TMDBConfig configures the movie metadata provider client.
type TMDBConfig struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	Language     string

	// Top-rated-by-year queries use discover with these quality floors.
	MinVoteCount     int
	MinRating        float64
	StrictDateFilter bool // release_date range instead of primary_release_year

	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
}

// Enabled reports whether an API key is configured.
func (t TMDBConfig) Enabled() bool {
	return t.APIKey != ""
}

// LoadConfig loads configuration from the process arguments with precedence:
// 1. Command-line flags.
// 2. Environment variables.
// 3. .env file.
// 4. Defaults.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("reeltrack", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := fs.String("data-path", "", "Directory for the database and key material")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	port := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 30s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	origins := fs.String("cors-origins", "", "Comma-separated allowed CORS origins")

	accessDuration := fs.String("access-token-duration", "", "Access token lifetime (default: 15m)")
	refreshDuration := fs.String("refresh-token-duration", "", "Refresh token lifetime (default: 720h)")
	openRegistration := fs.String("open-registration", "", "Allow self-service registration (default: true)")

	tmdbKey := fs.String("tmdb-api-key", "", "TMDB API key")
	tmdbBaseURL := fs.String("tmdb-base-url", "", "TMDB API base URL")
	tmdbLanguage := fs.String("tmdb-language", "", "TMDB response language (default: en-US)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Missing .env is normal.
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Server: ServerConfig{
			Port:           getConfigValue(*port, "SERVER_PORT", "8080"),
			AllowedOrigins: splitList(getConfigValue(*origins, "CORS_ALLOWED_ORIGINS", "")),
		},
		Auth: AuthConfig{
			OpenRegistration: getBoolConfigValue(*openRegistration, "AUTH_OPEN_REGISTRATION", true),
		},
		TMDB: TMDBConfig{
			APIKey:            getConfigValue(*tmdbKey, "TMDB_API_KEY", ""),
			BaseURL:           strings.TrimRight(getConfigValue(*tmdbBaseURL, "TMDB_BASE_URL", "https://api.themoviedb.org/3"), "/"),
			ImageBaseURL:      strings.TrimRight(getConfigValue("", "TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p"), "/"),
			Language:          getConfigValue(*tmdbLanguage, "TMDB_LANGUAGE", "en-US"),
			MinVoteCount:      getIntConfigValue("", "TMDB_MIN_VOTE_COUNT", 100),
			MinRating:         getFloatConfigValue("", "TMDB_MIN_RATING", 6.0),
			StrictDateFilter:  getBoolConfigValue("", "TMDB_STRICT_DATE_FILTER", false),
			RequestsPerSecond: getFloatConfigValue("", "TMDB_REQUESTS_PER_SECOND", 20),
			Burst:             getIntConfigValue("", "TMDB_BURST", 10),
		},
	}

	durations := []struct {
		flag, key, def string
		dst            *time.Duration
	}{
		{*readTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{*writeTimeout, "SERVER_WRITE_TIMEOUT", "30s", &cfg.Server.WriteTimeout},
		{*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
		{*accessDuration, "ACCESS_TOKEN_DURATION", "15m", &cfg.Auth.AccessTokenDuration},
		{*refreshDuration, "REFRESH_TOKEN_DURATION", "720h", &cfg.Auth.RefreshTokenDuration},
		{"", "TMDB_TIMEOUT", "10s", &cfg.TMDB.Timeout},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flag, d.key, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.key, raw, err)
		}
		*d.dst = parsed
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that config values are present and in range.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production":
	case "":
		return errors.New("ENV is required")
	default:
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	if c.Auth.AccessTokenDuration <= 0 || c.Auth.RefreshTokenDuration <= 0 {
		return errors.New("token durations must be positive")
	}
	if c.Auth.RefreshTokenDuration < c.Auth.AccessTokenDuration {
		return errors.New("refresh token duration must not be shorter than access token duration")
	}

	u, err := url.Parse(c.TMDB.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid TMDB base URL: %q", c.TMDB.BaseURL)
	}
	if c.TMDB.MinVoteCount < 0 {
		return errors.New("TMDB_MIN_VOTE_COUNT must not be negative")
	}
	if c.TMDB.MinRating < 0 || c.TMDB.MinRating > 10 {
		return fmt.Errorf("TMDB_MIN_RATING must be between 0 and 10, got %v", c.TMDB.MinRating)
	}
	if c.TMDB.RequestsPerSecond <= 0 || c.TMDB.Burst < 1 {
		return errors.New("TMDB rate limit must be positive")
	}

	return nil
}

func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	expanded, err := expandPath(c.Data.BasePath, filepath.Join(homeDir, ".reeltrack"))
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// expandPath expands ~ and makes path absolute. An empty path yields defaultPath.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return abs, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
