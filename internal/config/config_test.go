package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/var/lib/reeltrack"},
		Auth: AuthConfig{
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 720 * time.Hour,
		},
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			MinVoteCount:      100,
			RequestsPerSecond: 20,
			Burst:             10,
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty env", func(c *Config) { c.App.Environment = "" }},
		{"unknown env", func(c *Config) { c.App.Environment = "test" }},
		{"env is case sensitive", func(c *Config) { c.App.Environment = "PRODUCTION" }},
		{"bad log level", func(c *Config) { c.Logger.Level = "verbose" }},
		{"empty data path", func(c *Config) { c.Data.BasePath = "" }},
		{"zero access duration", func(c *Config) { c.Auth.AccessTokenDuration = 0 }},
		{"refresh shorter than access", func(c *Config) { c.Auth.RefreshTokenDuration = time.Minute }},
		{"relative tmdb url", func(c *Config) { c.TMDB.BaseURL = "/3" }},
		{"negative vote count", func(c *Config) { c.TMDB.MinVoteCount = -1 }},
		{"rating above ten", func(c *Config) { c.TMDB.MinRating = 11 }},
		{"zero rate", func(c *Config) { c.TMDB.RequestsPerSecond = 0 }},
		{"zero burst", func(c *Config) { c.TMDB.Burst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_LogLevelCaseInsensitive(t *testing.T) {
	cfg := validConfig()
	cfg.Logger.Level = "DEBUG"
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("TMDB_API_KEY", "")

	cfg, err := Load([]string{"-data-path", dir, "-env-file", filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, dir, cfg.Data.BasePath)
	assert.Equal(t, filepath.Join(dir, "reeltrack.db"), cfg.Data.DatabasePath())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, 720*time.Hour, cfg.Auth.RefreshTokenDuration)
	assert.True(t, cfg.Auth.OpenRegistration)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, 100, cfg.TMDB.MinVoteCount)
	assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
	assert.False(t, cfg.TMDB.Enabled())
	assert.Empty(t, cfg.Server.AllowedOrigins)
}

func TestLoad_FlagBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("TMDB_API_KEY", "from-env")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://reeltrack.app ,")
	t.Setenv("AUTH_OPEN_REGISTRATION", "no")

	cfg, err := Load([]string{"-data-path", dir, "-port", "7000", "-env-file", filepath.Join(dir, "none")})
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
	assert.True(t, cfg.TMDB.Enabled())
	assert.Equal(t, []string{"http://localhost:3000", "https://reeltrack.app"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Auth.OpenRegistration)
}

func TestLoad_InvalidDuration(t *testing.T) {
	dir := t.TempDir()
	_, err := Load([]string{"-data-path", dir, "-access-token-duration", "soon", "-env-file", filepath.Join(dir, "none")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_DURATION")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)

	got, err = expandPath("~/movies", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "movies"), got)

	got, err = expandPath("/abs/../abs/data", "")
	require.NoError(t, err)
	assert.Equal(t, "/abs/data", got)

	got, err = expandPath("rel", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("REELTRACK_TEST_KEY", "env")

	assert.Equal(t, "flag", getConfigValue("flag", "REELTRACK_TEST_KEY", "default"))
	assert.Equal(t, "env", getConfigValue("", "REELTRACK_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "REELTRACK_TEST_UNSET", "default"))
}

func TestTypedConfigValues(t *testing.T) {
	t.Setenv("REELTRACK_INT", "42")
	t.Setenv("REELTRACK_BAD_INT", "forty")
	t.Setenv("REELTRACK_FLOAT", "6.5")
	t.Setenv("REELTRACK_BOOL", "YES")

	assert.Equal(t, 42, getIntConfigValue("", "REELTRACK_INT", 1))
	assert.Equal(t, 1, getIntConfigValue("", "REELTRACK_BAD_INT", 1))
	assert.Equal(t, 7, getIntConfigValue("7", "REELTRACK_INT", 1))
	assert.InDelta(t, 6.5, getFloatConfigValue("", "REELTRACK_FLOAT", 0), 0.0001)
	assert.True(t, getBoolConfigValue("", "REELTRACK_BOOL", false))
	assert.False(t, getBoolConfigValue("off", "REELTRACK_BOOL", true))
	assert.True(t, getBoolConfigValue("", "REELTRACK_UNSET_BOOL", true))
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n\nREELTRACK_A=one\nexport REELTRACK_B = \"two words\"\nREELTRACK_C='three'\nREELTRACK_KEEP=file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("REELTRACK_KEEP", "env")
	for _, k := range []string{"REELTRACK_A", "REELTRACK_B", "REELTRACK_C"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	require.NoError(t, loadEnvFile(path))

	assert.Equal(t, "one", os.Getenv("REELTRACK_A"))
	assert.Equal(t, "two words", os.Getenv("REELTRACK_B"))
	assert.Equal(t, "three", os.Getenv("REELTRACK_C"))
	assert.Equal(t, "env", os.Getenv("REELTRACK_KEEP"))
}

func TestLoadEnvFile_Errors(t *testing.T) {
	assert.Error(t, loadEnvFile(filepath.Join(t.TempDir(), "missing")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NOT_A_PAIR\n"), 0o600))
	err := loadEnvFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}
