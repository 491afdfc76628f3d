// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gestrest/supplyplan/pkg/logger"
)

// Config is the process configuration read from SUPPLYPLAN_* variables
type Config struct {
	BackendURL   string
	Token        string
	HTTPAddr     string
	RedisURL     string
	CacheTTL     time.Duration
	KafkaBrokers []string
	KafkaTopic   string
	LogLevel     string
	LogFormat    string
	Workers      int
}

// Load reads the environment, falling back to defaults
func Load() *Config {
	return &Config{
		BackendURL:   getEnv("SUPPLYPLAN_BACKEND_URL", "http://localhost:8080"),
		Token:        getEnv("SUPPLYPLAN_TOKEN", ""),
		HTTPAddr:     getEnv("SUPPLYPLAN_HTTP_ADDR", ":8090"),
		RedisURL:     getEnv("SUPPLYPLAN_REDIS_URL", ""),
		CacheTTL:     getEnvDuration("SUPPLYPLAN_CACHE_TTL", 10*time.Minute),
		KafkaBrokers: splitList(getEnv("SUPPLYPLAN_KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("SUPPLYPLAN_KAFKA_TOPIC", "supply-plans"),
		LogLevel:     getEnv("SUPPLYPLAN_LOG_LEVEL", "info"),
		LogFormat:    getEnv("SUPPLYPLAN_LOG_FORMAT", "text"),
		Workers:      getEnvInt("SUPPLYPLAN_WORKERS", 4),
	}
}

// Validate checks the settings that have no usable fallback
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BackendURL) == "" {
		return fmt.Errorf("backend url cannot be empty")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl cannot be negative, got %s", c.CacheTTL)
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return fmt.Errorf("kafka topic cannot be empty when brokers are set")
	}
	return nil
}

// Logger returns the logger configuration for these settings
func (c *Config) Logger(component string) logger.Config {
	return logger.Config{
		Level:     logger.ParseLevel(c.LogLevel),
		Format:    c.LogFormat,
		Output:    "stderr",
		Component: component,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
