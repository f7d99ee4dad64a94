package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "APP_PORT", "PORT", "CART_TTL", "GIFT_CLAMP_QUANTITY", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	LoadConfig()
	require.NotNil(t, AppConfig)

	assert.Equal(t, "development", AppConfig.AppEnv)
	assert.Equal(t, "8082", AppConfig.Port)
	assert.Equal(t, 72*time.Hour, AppConfig.CartTTL)
	assert.False(t, AppConfig.GiftClampQuantity)
	assert.False(t, AppConfig.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("APP_PORT", "")
	t.Setenv("CART_TTL", "30m")
	t.Setenv("GIFT_CLAMP_QUANTITY", "true")

	LoadConfig()

	assert.True(t, AppConfig.IsProduction())
	assert.Equal(t, "9000", AppConfig.Port)
	assert.Equal(t, 30*time.Minute, AppConfig.CartTTL)
	assert.True(t, AppConfig.GiftClampQuantity)
}

func TestLoadConfigRejectsBadTTL(t *testing.T) {
	t.Setenv("CART_TTL", "-1h")
	LoadConfig()
	assert.Equal(t, 72*time.Hour, AppConfig.CartTTL)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.DSN())

	cfg.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", cfg.DSN())
}
