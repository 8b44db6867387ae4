package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("PORT", "")
	t.Setenv("DATA_FILE", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_TTL_MINUTES", "")
	t.Setenv("LOGIN_LIMIT_PER_MIN", "")
	t.Setenv("TRUST_PROXY", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port=%q want=8080", cfg.Port)
	}
	if cfg.DataFile != "products.json" {
		t.Fatalf("data_file=%q", cfg.DataFile)
	}
	if cfg.SessionTTL != time.Hour {
		t.Fatalf("ttl=%v want=1h", cfg.SessionTTL)
	}
	if cfg.LoginLimitPerMin != 5 {
		t.Fatalf("login_limit=%d want=5", cfg.LoginLimitPerMin)
	}
	if cfg.TrustProxy {
		t.Fatalf("X-Forwarded-For trusted by default")
	}
	if cfg.UsePostgres() {
		t.Fatalf("expected file store without DATABASE_URL")
	}
}

func TestLoad_WeakSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "short")
	t.Setenv("DEV_MODE", "")

	_, err := Load("")
	if !errors.Is(err, ErrWeakSessionSecret) {
		t.Fatalf("err=%v want=%v", err, ErrWeakSessionSecret)
	}
}

func TestLoad_DevModeFillsSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("DEV_MODE", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.SessionSecret) < minSessionSecret {
		t.Fatalf("dev secret too short: %d", len(cfg.SessionSecret))
	}
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("DATA_FILE", "")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DATA_FILE=/tmp/catalog.json\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	// godotenv keeps variables that are already set, even empty ones.
	os.Unsetenv("DATA_FILE")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataFile != "/tmp/catalog.json" {
		t.Fatalf("data_file=%q", cfg.DataFile)
	}
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")

	if _, err := Load(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("Load: %v", err)
	}
}
