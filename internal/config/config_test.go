package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("WS_RATE_BURST", "")

	cfg := Load()

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "", cfg.RedisAddr())
	assert.Equal(t, 10, cfg.WSRateBurst)
	assert.False(t, cfg.RedisRelay)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_RELAY", "true")
	t.Setenv("WS_RATE_PER_SEC", "2.5")
	t.Setenv("WS_RATE_BURST", "not a number")
	t.Setenv("GIN_MODE", "release")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
	assert.True(t, cfg.RedisRelay)
	assert.Equal(t, 2.5, cfg.WSRatePerSec)
	assert.Equal(t, 10, cfg.WSRateBurst)
	assert.True(t, cfg.IsProduction())
}
