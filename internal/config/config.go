package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Session SessionConfig
	Logging LoggingConfig
}

// ServerConfig holds connection-related configuration
type ServerConfig struct {
	URL         string
	DialTimeout time.Duration
}

// SessionConfig holds session-related configuration
type SessionConfig struct {
	Role              string // "teacher" or "student"
	DisplayName       string
	ReconnectMinDelay time.Duration
	ReconnectMaxDelay time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from the environment with defaults. A .env
// file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			URL:         getEnv("POLLROOM_SERVER_URL", "ws://localhost:8080/ws"),
			DialTimeout: time.Duration(getEnvInt("POLLROOM_DIAL_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Session: SessionConfig{
			Role:              getEnv("POLLROOM_ROLE", "student"),
			DisplayName:       getEnv("POLLROOM_NAME", "Anonymous"),
			ReconnectMinDelay: time.Duration(getEnvInt("POLLROOM_RECONNECT_MIN_SECONDS", 1)) * time.Second,
			ReconnectMaxDelay: time.Duration(getEnvInt("POLLROOM_RECONNECT_MAX_SECONDS", 30)) * time.Second,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
