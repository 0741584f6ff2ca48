package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (driver switch via ENV, default: mongo)
	DBDriver      string
	DBConnection  string
	MongoDatabase string

	// Cache (optional, disabled when REDIS_URL is empty)
	RedisURL      string
	DiaryCacheTTL time.Duration

	// Security
	JWTSecret       string
	JWTExpiry       time.Duration
	RateLimitAuth   int
	RateLimitWindow time.Duration
	TrustProxy      bool // take client IPs from X-Forwarded-For / X-Real-IP

	// Email
	EmailFrom    string
	ResendAPIKey string
	EmailLogOnly bool // log emails instead of sending them

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Diary"),
		AppEnv:  envRequired("APP_ENV"), // 'development' or 'production'
		AppURL:  envString("APP_URL", "http://localhost:4000"),
		Port:    envString("PORT", "4000"),

		// Database
		DBDriver:      envString("DB_DRIVER", "mongo"),
		DBConnection:  envString("DB_CONNECTION", "mongodb://localhost:27017/diary_app"),
		MongoDatabase: envString("MONGO_DATABASE", "diary_app"),

		// Cache
		RedisURL:      envString("REDIS_URL", ""),
		DiaryCacheTTL: envDuration("DIARY_CACHE_TTL", 5*time.Minute),

		// Security
		JWTSecret:       envRequired("JWT_SECRET"),
		JWTExpiry:       envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days
		RateLimitAuth:   envInt("RATE_LIMIT_AUTH", 10),
		RateLimitWindow: envDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		TrustProxy:      envBool("TRUST_PROXY", false), // only behind a proxy that overwrites the headers

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),
		EmailLogOnly: envBool("EMAIL_LOG_ONLY", envString("APP_ENV", "development") == "development"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures the outbound email credential is present.
// Development falls back to logging the verification email.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" && !cfg.EmailLogOnly {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) UsesMongo() bool {
	return c.DBDriver == "mongo"
}

// Sanitized returns a copy of the config with only public/safe fields.
// Safe to expose in ctx and templates.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:    c.AppName,
		AppEnv:     c.AppEnv,
		AppURL:     c.AppURL,
		Port:       c.Port,
		DBDriver:   c.DBDriver,
		EmailFrom:  c.EmailFrom,
		TrustProxy: c.TrustProxy,
	}
}
