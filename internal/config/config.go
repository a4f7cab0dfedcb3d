package config

import (
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
	// Server configuration
	Server ServerConfig

	// Content source configuration
	Source SourceConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// SourceConfig holds the connection settings for the WordPress content
// source the gateway submits comments to.
type SourceConfig struct {
	// APIBase is the REST root, e.g. https://example.com/wp-json. The
	// comments endpoint is <APIBase>/wp/v2/comments.
	APIBase string

	// SupportsWrites is false for hosted sources that reject comment write
	// operations. wordpress.com hosts default to false.
	SupportsWrites bool

	// RequestTimeout bounds one submission request. The engine itself does
	// not time out; a timeout surfaces as a transport failure.
	RequestTimeout time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables, preloading a .env
// file when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	apiBase := getEnv("SOURCE_API_BASE", "")
	if apiBase == "" {
		return nil, fmt.Errorf("SOURCE_API_BASE is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Source: SourceConfig{
			APIBase:        apiBase,
			SupportsWrites: getBoolEnv("SOURCE_SUPPORTS_WRITES", !isHostedSource(apiBase)),
			RequestTimeout: getDurationEnv("SOURCE_REQUEST_TIMEOUT", 30*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// isHostedSource reports whether the API base points at a wordpress.com
// hosted site, which does not accept comment writes through this endpoint.
func isHostedSource(apiBase string) bool {
	u, err := url.Parse(apiBase)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "wordpress.com" || strings.HasSuffix(host, ".wordpress.com")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
