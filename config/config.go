package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig      `envPrefix:"ECOM_APP_"`
	Log      LogConfig      `envPrefix:"ECOM_LOG_"`
	Database DatabaseConfig `envPrefix:"ECOM_DATABASE_"`
	Auth     AuthConfig     `envPrefix:"ECOM_AUTH_"`
	JWT      JWTConfig      `envPrefix:"ECOM_JWT_"`
	TOTP     TOTPConfig     `envPrefix:"ECOM_TOTP_"`
	Mail     MailConfig     `envPrefix:"ECOM_MAIL_"`
}

type AppConfig struct {
	Name string `env:"NAME" envDefault:"ecom"`
	URL  string `env:"URL" envDefault:"http://localhost:8080"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
	Output string `env:"OUTPUT" envDefault:"stdout"`
}

type DatabaseConfig struct {
	Driver      string `env:"DRIVER" envDefault:"sqlite"`
	DSN         string `env:"DSN" envDefault:"ecom.db"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
}

type AuthConfig struct {
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`
	OTPExpiry  time.Duration `env:"OTP_EXPIRY" envDefault:"5m"`
	APIKey     string        `env:"API_KEY"`
}

type JWTConfig struct {
	SecretKey     string        `env:"SECRET_KEY"`
	Issuer        string        `env:"ISSUER" envDefault:"ecom"`
	AccessExpiry  time.Duration `env:"ACCESS_EXPIRY" envDefault:"15m"`
	RefreshExpiry time.Duration `env:"REFRESH_EXPIRY" envDefault:"168h"`
}

type TOTPConfig struct {
	Issuer string `env:"ISSUER" envDefault:"ecom"`
}

type MailConfig struct {
	Host        string `env:"HOST" envDefault:"localhost"`
	Port        int    `env:"PORT" envDefault:"587"`
	Username    string `env:"USERNAME"`
	Password    string `env:"PASSWORD"`
	Encryption  string `env:"ENCRYPTION" envDefault:"starttls"`
	FromAddress string `env:"FROM_ADDRESS"`
	FromName    string `env:"FROM_NAME" envDefault:"ecom"`
}

func LoadConfig(cfg any) error {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	return env.Parse(cfg)
}
