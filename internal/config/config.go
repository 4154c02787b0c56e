package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"barbearia/internal/domain"
)

const (
	defaultAppEnv          = "dev"
	defaultPort            = "3000"
	defaultDevDatabaseURL  = "barbearia.db"
	defaultDBRequireTLS    = "true"
	defaultDBMaxOpenConns  = "10"
	defaultDBMaxIdleConns  = "5"
	defaultDBConnLifetime  = "30m"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTTTL          = "12h"
	defaultStaticDir       = "public"
	defaultCORSOrigins     = "*"
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultLoginRatePerMin = "10"
	defaultShutdownTimeout = "10s"
	defaultMigrateOnStart  = "true"
)

type Config struct {
	AppEnv             string
	Port               string
	Database           DatabaseConfig
	JWTSecret          string
	JWTTTL             time.Duration
	PricingFile        string
	Pricing            domain.PricingPolicy
	StaticDir          string
	CORSAllowedOrigins []string
	TrustedProxies     []string
	Logging            LoggingConfig
	LoginRatePerMinute int
	ShutdownTimeout    time.Duration
	MigrateOnStart     bool
}

type DatabaseConfig struct {
	URL             string
	RequireTLS      bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads .env (when present) and the process environment, then the
// pricing policy file referenced by PRICING_FILE.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	cfg.Pricing = domain.DefaultPricingPolicy()
	if cfg.PricingFile != "" {
		cfg.Pricing, err = LoadPricing(cfg.PricingFile)
		if err != nil {
			return nil, err
		}
	}
	cfg.Pricing = cfg.Pricing.Normalize()

	return cfg, nil
}

// FromEnv builds the config from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", defaultAppEnv)))
	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))

	cfg.Database.URL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.Database.URL == "" && !isProdLike(cfg.AppEnv) {
		cfg.Database.URL = defaultDevDatabaseURL
	}
	cfg.Database.RequireTLS = parseBoolEnv("DB_REQUIRE_TLS", defaultDBRequireTLS)

	var err error
	if cfg.Database.MaxOpenConns, err = parseIntEnv("DB_MAX_OPEN_CONNS", defaultDBMaxOpenConns); err != nil {
		return nil, err
	}
	if cfg.Database.MaxIdleConns, err = parseIntEnv("DB_MAX_IDLE_CONNS", defaultDBMaxIdleConns); err != nil {
		return nil, err
	}
	if cfg.Database.ConnMaxLifetime, err = parseDurationEnv("DB_CONN_MAX_LIFETIME", defaultDBConnLifetime); err != nil {
		return nil, err
	}

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}

	cfg.PricingFile = strings.TrimSpace(os.Getenv("PRICING_FILE"))
	cfg.StaticDir = strings.TrimSpace(getEnv("STATIC_DIR", defaultStaticDir))
	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins))
	// Empty means no proxy is trusted and the client IP is the peer address.
	cfg.TrustedProxies = splitList(os.Getenv("TRUSTED_PROXIES"))

	cfg.Logging.Level = strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))
	cfg.Logging.Format = strings.TrimSpace(getEnv("LOG_FORMAT", defaultLogFormat))

	if cfg.LoginRatePerMinute, err = parseIntEnv("LOGIN_RATE_PER_MIN", defaultLoginRatePerMin); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return nil, err
	}
	cfg.MigrateOnStart = parseBoolEnv("MIGRATE_ON_START", defaultMigrateOnStart)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if cfg.Database.MaxOpenConns < 0 || cfg.Database.MaxIdleConns < 0 {
		return errors.New("DB_MAX_OPEN_CONNS and DB_MAX_IDLE_CONNS must be >= 0")
	}
	if cfg.Database.ConnMaxLifetime <= 0 {
		return errors.New("DB_CONN_MAX_LIFETIME must be > 0")
	}
	if cfg.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be > 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be > 0")
	}
	if cfg.LoginRatePerMinute < 0 {
		return errors.New("LOGIN_RATE_PER_MIN must be >= 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return errors.New("in prod/release JWT_SECRET must be set and not default")
		}
		if !cfg.Database.RequireTLS {
			return errors.New("in prod/release DB_REQUIRE_TLS must be true")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
