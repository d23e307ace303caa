package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key"

type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Email    EmailConfig
	Admin    AdminConfig
	LogLevel string
}

type ServerConfig struct {
	Port           string
	AllowedOrigins string
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// StorageConfig describes an S3-compatible bucket (AWS S3 or Cloudflare R2).
type StorageConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	Endpoint  string
	PublicURL string
}

type EmailConfig struct {
	ResendAPIKey string
	From         string
}

type AdminConfig struct {
	Username string
	Email    string
	Password string
}

func Load() (*Config, error) {
	// .env is optional; real deployments pass plain environment variables
	_ = godotenv.Load()

	ttlHours, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL_HOURS %q", os.Getenv("JWT_TTL_HOURS"))
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:           getEnv("PORT", "3000"),
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "rentapp"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", defaultJWTSecret),
			TTL:    time.Duration(ttlHours) * time.Hour,
		},
		Storage: StorageConfig{
			AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
			Region:    getEnv("STORAGE_REGION", "auto"),
			Bucket:    os.Getenv("STORAGE_BUCKET"),
			Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
			PublicURL: strings.TrimSuffix(os.Getenv("STORAGE_PUBLIC_URL"), "/"),
		},
		Email: EmailConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			From:         getEnv("EMAIL_FROM", "RentApp <noreply@rentapp.local>"),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Email:    os.Getenv("ADMIN_EMAIL"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks required values. Production refuses the built-in JWT secret.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsProduction() {
		if c.JWT.Secret == defaultJWTSecret {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if len(c.JWT.Secret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
	} else if len(c.JWT.Secret) < 32 {
		slog.Warn("JWT_SECRET is shorter than 32 characters")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// DSN returns DATABASE_URL when set, otherwise a keyword/value DSN built from the DB_* parts.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Enabled reports whether enough settings exist to talk to the bucket.
func (s StorageConfig) Enabled() bool {
	return s.Bucket != "" && s.AccessKey != "" && s.SecretKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
