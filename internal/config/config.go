// Package config loads runtime settings for the dashboard service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	devSessionSecret  = "dev-session-secret-change-me-0123456789"
	minSessionSecret  = 32
	defaultDataFile   = "products.json"
	defaultLogLevel   = "info"
	defaultLoginLimit = 5
)

var ErrWeakSessionSecret = fmt.Errorf("SESSION_SECRET must be at least %d chars", minSessionSecret)

type Config struct {
	Port     string
	LogLevel string
	DevMode  bool

	DataFile    string
	DatabaseURL string

	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool

	AdminUser     string
	AdminPassword string

	MetricsToken     string
	LoginLimitPerMin int
	TrustProxy       bool

	ShutdownTimeout time.Duration
}

// Load reads the environment, first seeding it from envFile when that file
// exists. Variables already set in the process win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Port:     getenv("PORT", "8080"),
		LogLevel: getenv("LOG_LEVEL", defaultLogLevel),
		DevMode:  boolenv("DEV_MODE", false),

		DataFile:    getenv("DATA_FILE", defaultDataFile),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    time.Duration(atoienv("SESSION_TTL_MINUTES", 60)) * time.Minute,
		CookieSecure:  boolenv("COOKIE_SECURE", false),

		AdminUser:     strings.TrimSpace(os.Getenv("ADMIN_USER")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		MetricsToken:     os.Getenv("METRICS_TOKEN"),
		LoginLimitPerMin: atoienv("LOGIN_LIMIT_PER_MIN", defaultLoginLimit),
		TrustProxy:       boolenv("TRUST_PROXY", false),

		ShutdownTimeout: time.Duration(atoienv("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}

	if cfg.SessionSecret == "" && cfg.DevMode {
		cfg.SessionSecret = devSessionSecret
	}
	if len(cfg.SessionSecret) < minSessionSecret {
		return Config{}, ErrWeakSessionSecret
	}
	if cfg.LoginLimitPerMin <= 0 {
		cfg.LoginLimitPerMin = defaultLoginLimit
	}

	return cfg, nil
}

// UsePostgres reports whether the stores should be backed by Postgres
// instead of the JSON document and in-memory users.
func (c Config) UsePostgres() bool { return c.DatabaseURL != "" }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoienv(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolenv(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
