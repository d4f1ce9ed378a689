package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the portal server and the backend emulator
type Config struct {
	HTTP     HTTPConfig
	Backend  BackendConfig
	Storage  StorageConfig
	Hangman  HangmanConfig
	Logging  LoggingConfig
	Emulator EmulatorConfig
}

// HTTPConfig is where the portal listens
type HTTPConfig struct {
	Host string
	Port int
	// SecureCookies marks the portal session cookie Secure
	SecureCookies bool
}

// BackendConfig locates the game backend
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

// StorageConfig selects where hangman games live
type StorageConfig struct {
	Type     string // memory, redis
	RedisURL string
}

// HangmanConfig holds hangman settings
type HangmanConfig struct {
	DictionaryPath string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, text
}

// EmulatorConfig configures the in-memory backend used for local development
type EmulatorConfig struct {
	Host          string
	Port          int
	CatalogPath   string
	AdminUsername string
	AdminEmail    string
	AdminPassword string
	SecureCookies bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	return FromEnv()
}

// FromEnv builds the configuration from the current environment only
func FromEnv() (*Config, error) {
	port, err := intEnv("PORTAL_PORT", 8080)
	if err != nil {
		return nil, err
	}
	emulatorPort, err := intEnv("EMULATOR_PORT", 9000)
	if err != nil {
		return nil, err
	}
	timeout, err := durationEnv("PORTAL_BACKEND_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	secure, err := boolEnv("PORTAL_SECURE_COOKIES", false)
	if err != nil {
		return nil, err
	}
	emulatorSecure, err := boolEnv("EMULATOR_SECURE_COOKIES", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Host:          os.Getenv("PORTAL_HOST"),
			Port:          port,
			SecureCookies: secure,
		},
		Backend: BackendConfig{
			URL:     getEnvOrDefault("PORTAL_BACKEND_URL", "http://127.0.0.1:9000"),
			Timeout: timeout,
		},
		Storage: StorageConfig{
			Type:     getEnvOrDefault("STORAGE_TYPE", "memory"),
			RedisURL: os.Getenv("REDIS_URL"),
		},
		Hangman: HangmanConfig{
			DictionaryPath: getEnvOrDefault("DICTIONARY_PATH", "data/words.txt"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		Emulator: EmulatorConfig{
			Host:          getEnvOrDefault("EMULATOR_HOST", "127.0.0.1"),
			Port:          emulatorPort,
			CatalogPath:   getEnvOrDefault("EMULATOR_CATALOG_PATH", "data/catalog.json"),
			AdminUsername: getEnvOrDefault("EMULATOR_ADMIN_USERNAME", "admin"),
			AdminEmail:    getEnvOrDefault("EMULATOR_ADMIN_EMAIL", "admin@portal.com"),
			AdminPassword: getEnvOrDefault("EMULATOR_ADMIN_PASSWORD", "admin123"),
			SecureCookies: emulatorSecure,
		},
	}

	if cfg.Storage.Type == "redis" && cfg.Storage.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL required when STORAGE_TYPE=redis")
	}
	return cfg, nil
}

// NewLogger builds the process logger described by cfg
func NewLogger(w io.Writer, cfg LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
