package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SUPPLYPLAN_BACKEND_URL", "SUPPLYPLAN_TOKEN", "SUPPLYPLAN_HTTP_ADDR", "SUPPLYPLAN_REDIS_URL",
		"SUPPLYPLAN_CACHE_TTL", "SUPPLYPLAN_KAFKA_BROKERS", "SUPPLYPLAN_KAFKA_TOPIC",
		"SUPPLYPLAN_LOG_LEVEL", "SUPPLYPLAN_LOG_FORMAT", "SUPPLYPLAN_WORKERS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.BackendURL != "http://localhost:8080" {
		t.Errorf("Expected default backend url, got %s", cfg.BackendURL)
	}
	if cfg.HTTPAddr != ":8090" || cfg.KafkaTopic != "supply-plans" || cfg.Workers != 4 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("Expected 10m cache ttl, got %s", cfg.CacheTTL)
	}
	if cfg.KafkaBrokers != nil {
		t.Errorf("Expected no brokers, got %v", cfg.KafkaBrokers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SUPPLYPLAN_BACKEND_URL", "https://erp.example.com")
	t.Setenv("SUPPLYPLAN_KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SUPPLYPLAN_CACHE_TTL", "90s")
	t.Setenv("SUPPLYPLAN_WORKERS", "not-a-number")

	cfg := Load()
	if cfg.BackendURL != "https://erp.example.com" {
		t.Errorf("Expected backend url from env, got %s", cfg.BackendURL)
	}
	if !reflect.DeepEqual(cfg.KafkaBrokers, []string{"k1:9092", "k2:9092"}) {
		t.Errorf("Unexpected brokers: %v", cfg.KafkaBrokers)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("Expected 90s cache ttl, got %s", cfg.CacheTTL)
	}
	if cfg.Workers != 4 {
		t.Errorf("Expected invalid workers to fall back to 4, got %d", cfg.Workers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty backend", func(c *Config) { c.BackendURL = " " }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"negative ttl", func(c *Config) { c.CacheTTL = -time.Second }, true},
		{"brokers without topic", func(c *Config) { c.KafkaBrokers = []string{"k1"}; c.KafkaTopic = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{BackendURL: "http://x", Workers: 1, KafkaTopic: "t"}
			tt.modify(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
