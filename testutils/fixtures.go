package testutils

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/giang1412/ecom/config"
)

func GetTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "ecom test",
			URL:  "http://localhost:8080",
		},
		Log: config.LogConfig{
			Level:  "error",
			Format: "json",
		},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			DSN:    ":memory:",
		},
		Auth: config.AuthConfig{
			BcryptCost: bcrypt.MinCost,
			OTPExpiry:  5 * time.Minute,
			APIKey:     "test-api-key",
		},
		JWT: config.JWTConfig{
			SecretKey:     "test-secret-key-32-chars-long!!",
			Issuer:        "test-issuer",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 7 * 24 * time.Hour,
		},
		TOTP: config.TOTPConfig{
			Issuer: "ecom test",
		},
	}
}
