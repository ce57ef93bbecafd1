package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_Defaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, "development", cfg.Server.AppEnv)
	assert.Equal(t, ":8080", cfg.Server.HTTPPort)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 10, cfg.Postgres.MaxOpenConns)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", ":9090")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "25")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_ENABLED", "true")

	cfg := LoadEnv()

	assert.Equal(t, ":9090", cfg.Server.HTTPPort)
	assert.Equal(t, 25, cfg.Postgres.MaxOpenConns)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled)
}

func TestLoadEnv_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "lots")
	t.Setenv("KAFKA_ENABLED", "maybe")

	cfg := LoadEnv()

	assert.Equal(t, 10, cfg.Postgres.MaxOpenConns)
	assert.False(t, cfg.Kafka.Enabled)
}
