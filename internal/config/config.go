package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the environment driven settings of the tfidf command.
// Scoring parameters are not here; they come from flags only.
type Config struct {
	Log   LogConfig
	Fetch FetchConfig
}

// LogConfig controls the logrus logger writing to stderr
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// FetchConfig holds settings for corpus documents given as URLs
type FetchConfig struct {
	Timeout       time.Duration
	UserAgent     string
	RespectRobots bool
	MaxBodyBytes  int64
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Log: LogConfig{
			Level:  GetStringEnv("TFIDF_LOG_LEVEL", "warn"),
			Format: GetStringEnv("TFIDF_LOG_FORMAT", "text"),
		},
		Fetch: FetchConfig{
			Timeout:       GetDurationEnv("TFIDF_FETCH_TIMEOUT", 10*time.Second),
			UserAgent:     GetStringEnv("TFIDF_USER_AGENT", "tfidf/1.0"),
			RespectRobots: GetBoolEnv("TFIDF_RESPECT_ROBOTS", true),
			MaxBodyBytes:  int64(GetIntEnv("TFIDF_MAX_BODY_BYTES", 10<<20)),
		},
	}
}

// LoadEnvFile populates the process environment from a dotenv file.
// Variables that are already set are left alone and a missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
