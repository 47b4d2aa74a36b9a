package cli

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIBaseURL  string        // Required: base URL of the notes backend
	TokenDBFile string        // Optional: path to the SQLite credential database (default: ./jotpad.db)
	SealKeyFile string        // Optional: path to key material for sealing stored tokens; empty disables sealing
	HTTPTimeout time.Duration // Optional: outbound request timeout (default: 10s)
	Leeway      time.Duration // Optional: refresh tokens this long before expiry (default: 0)
	RateLimit   float64       // Optional: outbound requests per second, 0 disables throttling
	Env         string        // Environment (dev, staging, prod) (default: dev)
	LogLevel    string        // Log level (debug, info, warn, error) (default: info)
	LogFormat   string        // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	return Config{
		APIBaseURL:  os.Getenv("JOTPAD_API_BASE_URL"),
		TokenDBFile: getEnvOrDefault("JOTPAD_TOKEN_DB", "jotpad.db"),
		SealKeyFile: os.Getenv("JOTPAD_SEAL_KEY_FILE"), // Optional: plaintext storage when unset
		HTTPTimeout: getEnvDurationOrDefault("JOTPAD_HTTP_TIMEOUT", 10*time.Second),
		Leeway:      getEnvDurationOrDefault("JOTPAD_REFRESH_LEEWAY", 0),
		RateLimit:   getEnvFloatOrDefault("JOTPAD_RATE_LIMIT", 0),
		Env:         getEnvOrDefault("ENV", "dev"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
		return floatValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are taken as seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
