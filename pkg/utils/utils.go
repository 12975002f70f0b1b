package utils

import (
	"os"
	"strconv"

	"go.uber.org/zap"
)

// logger stays nil until InitLogger; MustGetEnv panics instead of exiting then
var logger *zap.Logger

// InitLogger sets the zap logger used to report bad environment values
func InitLogger(l *zap.Logger) {
	logger = l
}

// MustGetEnv returns the value of the environment variable or logs fatal and exits if not set
func MustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		if logger != nil {
			logger.Fatal("Missing required environment variable", zap.String("key", key))
		} else {
			panic("Missing required environment variable: " + key)
		}
	}
	return val
}

// GetEnv reads an environment variable or returns a default value if not set
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvBool reads a boolean environment variable.
// Unset or unparsable values return the default.
func GetEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		if logger != nil {
			logger.Warn("Invalid boolean environment variable, using default",
				zap.String("key", key), zap.String("value", value), zap.Bool("default", defaultValue))
		}
		return defaultValue
	}
	return b
}

// GetEnvInt reads an integer environment variable.
// Unset or unparsable values return the default.
func GetEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		if logger != nil {
			logger.Warn("Invalid integer environment variable, using default",
				zap.String("key", key), zap.String("value", value), zap.Int("default", defaultValue))
		}
		return defaultValue
	}
	return i
}
