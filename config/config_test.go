package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, LoadConfig(cfg))

	assert.Equal(t, "ecom", cfg.App.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 5*time.Minute, cfg.Auth.OTPExpiry)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, 587, cfg.Mail.Port)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ECOM_JWT_SECRET_KEY", "super-secret")
	t.Setenv("ECOM_AUTH_OTP_EXPIRY", "90s")
	t.Setenv("ECOM_DATABASE_DRIVER", "postgres")

	cfg := &Config{}
	require.NoError(t, LoadConfig(cfg))

	assert.Equal(t, "super-secret", cfg.JWT.SecretKey)
	assert.Equal(t, 90*time.Second, cfg.Auth.OTPExpiry)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}
