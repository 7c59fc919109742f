package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.StoreBackend != StoreBackendMemory {
		t.Errorf("StoreBackend = %q, want %q", cfg.StoreBackend, StoreBackendMemory)
	}
	if cfg.UsesPostgres() {
		t.Error("UsesPostgres() = true with the memory backend default")
	}
	if cfg.Redis.Enabled || cfg.Kafka.Enabled {
		t.Error("Redis/Kafka must default to disabled")
	}
	if cfg.Demo.ProvisionDemo {
		t.Error("demo provisioning must default to off")
	}
	if cfg.Demo.Seed != 1 {
		t.Errorf("Demo.Seed = %d, want 1", cfg.Demo.Seed)
	}
	if cfg.GetServerAddress() != ":8080" {
		t.Errorf("GetServerAddress() = %q, want :8080", cfg.GetServerAddress())
	}
	if cfg.GetAPIBasePath() != "/api/v1" {
		t.Errorf("GetAPIBasePath() = %q, want /api/v1", cfg.GetAPIBasePath())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", StoreBackendPostgres)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "seats")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("RATE_LIMIT_WINDOW_DURATION", "30s")
	t.Setenv("DEMO_SEED", "42")

	cfg := Load()

	if !cfg.UsesPostgres() {
		t.Error("UsesPostgres() = false, want true")
	}
	if cfg.Database.DSN == "" ||
		cfg.Database.Host != "db.internal" || cfg.Database.Name != "seats" {
		t.Errorf("Database = %+v, want host db.internal, name seats, DSN built", cfg.Database)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Addr != "cache.internal:6379" {
		t.Errorf("Redis = %+v, want enabled at cache.internal:6379", cfg.Redis)
	}
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Kafka.Brokers = %v, want [k1:9092 k2:9092]", cfg.Kafka.Brokers)
	}
	if cfg.RateLimit.WindowDuration != 30*time.Second {
		t.Errorf("RateLimit.WindowDuration = %v, want 30s", cfg.RateLimit.WindowDuration)
	}
	if cfg.Demo.Seed != 42 {
		t.Errorf("Demo.Seed = %d, want 42", cfg.Demo.Seed)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MAX_HEADER_BYTES", "not-a-number")
	t.Setenv("READ_TIMEOUT", "soon")
	t.Setenv("KAFKA_ENABLED", "yep")

	cfg := Load()

	if cfg.MaxHeaderBytes != 1<<20 {
		t.Errorf("MaxHeaderBytes = %d, want default 1MB", cfg.MaxHeaderBytes)
	}
	if cfg.ReadTimeout != 15*time.Second {
		t.Errorf("ReadTimeout = %v, want default 15s", cfg.ReadTimeout)
	}
	if cfg.Kafka.Enabled {
		t.Error("Kafka.Enabled = true from a malformed bool, want default false")
	}
}
