package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 30, cfg.Session.InactivityMinutes)
	assert.True(t, cfg.Stock.AllowNegative)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DB_PORT", "6543")
	v.Set("STOCK_ALLOW_NEGATIVE", "false")
	v.Set("REDIS_ENABLED", "true")
	v.Set("DB_PASSWORD", "p@ss:word")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.False(t, cfg.Stock.AllowNegative)
	assert.True(t, cfg.Redis.Enabled)
	assert.Contains(t, cfg.DB.ConnectionString(), "p%40ss%3Aword")
}

func TestFromViper_VentanaDeAvisoInvalida(t *testing.T) {
	v := viper.New()
	v.Set("SESSION_INACTIVITY_MINUTES", 5)
	v.Set("SESSION_WARNING_MINUTES", 5)
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DatabaseURLTienePrioridad(t *testing.T) {
	c := DBConfig{DatabaseURL: "postgres://u:p@db:5432/x", Host: "ignored"}
	assert.Equal(t, "postgres://u:p@db:5432/x", c.ConnectionString())
}
