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

type Config struct {
	AppEnv    string
	Port      string
	LogFormat string

	DatabaseURL string

	JWTSecret string
	JWTExpiry time.Duration

	FrontendURLs []string

	// TrustedProxies lists the proxy IPs/CIDRs whose X-Forwarded-For is
	// believed. Empty means the peer address is the client IP.
	TrustedProxies  []string
	TrustedPlatform string

	RateLimitMax    int
	RateLimitWindow time.Duration

	RedisURL      string
	RedisAddr     string
	RedisPassword string

	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	UploadDir     string
	MaxUploadSize int64

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using system environment variables")
	}

	appEnv := getEnv("APP_ENV", "development")

	jwtExpiry, err := time.ParseDuration(getEnv("JWT_EXPIRES_IN", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}

	window, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}

	logFormat := "text"
	if appEnv == "production" {
		logFormat = "json"
	}

	cfg := &Config{
		AppEnv:              appEnv,
		Port:                getEnv("APP_PORT", getEnv("PORT", "3000")),
		LogFormat:           getEnv("LOG_FORMAT", logFormat),
		DatabaseURL:         buildDSN(),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTExpiry:           jwtExpiry,
		FrontendURLs:        splitList(getEnv("FRONTEND_URL", "http://localhost:5173")),
		TrustedProxies:      splitList(os.Getenv("TRUSTED_PROXIES")),
		TrustedPlatform:     os.Getenv("TRUSTED_PLATFORM"),
		RateLimitMax:        getEnvInt("RATE_LIMIT_MAX", 200),
		RateLimitWindow:     window,
		RedisURL:            os.Getenv("REDIS_URL"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		CloudinaryURL:       os.Getenv("CLOUDINARY_URL"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		UploadDir:           getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize:       int64(getEnvInt("MAX_UPLOAD_SIZE", 5<<20)),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		SMTPPort:            getEnvInt("SMTP_PORT", 587),
		SMTPUser:            os.Getenv("SMTP_USER"),
		SMTPPass:            os.Getenv("SMTP_PASS"),
		SMTPFrom:            os.Getenv("SMTP_FROM"),
	}

	return cfg, nil
}

// ValidateServer checks what the HTTP server cannot start without.
func (c *Config) ValidateServer() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) HasCloudinary() bool {
	return c.CloudinaryURL != "" ||
		(c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != "")
}

func (c *Config) HasSMTP() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

func buildDSN() string {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return databaseURL
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "guate_servicios"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimRight(strings.TrimSpace(p), "/"); v != "" {
			out = append(out, v)
		}
	}
	return out
}
