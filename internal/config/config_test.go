package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MB_DATA_DIR", dir)
	t.Setenv("MB_API_URL", "")
	t.Setenv("MB_CACHE", "")
	t.Setenv("MB_AVATAR_ENCODING", "")
	t.Setenv("MB_REGISTER_PATH", "")
	t.Setenv("REDIS_DB", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("APIBaseURL=%q", cfg.APIBaseURL)
	}
	if cfg.Cache != CacheSQLite {
		t.Fatalf("Cache=%q, want %q", cfg.Cache, CacheSQLite)
	}
	if cfg.AvatarEncoding != AvatarMultipart {
		t.Fatalf("AvatarEncoding=%q, want %q", cfg.AvatarEncoding, AvatarMultipart)
	}
	if cfg.RegisterPath != "/api/authentication/register" {
		t.Fatalf("RegisterPath=%q", cfg.RegisterPath)
	}
	if got, want := cfg.DBPath(), filepath.Join(dir, "missionboard.db"); got != want {
		t.Fatalf("DBPath=%q, want %q", got, want)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MB_DATA_DIR", t.TempDir())
	t.Setenv("MB_API_URL", "https://api.example.com/")
	t.Setenv("MB_CACHE", "REDIS")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MB_AVATAR_ENCODING", "base64")
	t.Setenv("MB_REGISTER_PATH", "/api/brawler/register")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("APIBaseURL=%q, want trailing slash trimmed", cfg.APIBaseURL)
	}
	if cfg.Cache != CacheRedis || cfg.Redis.DB != 3 {
		t.Fatalf("cache=%q db=%d", cfg.Cache, cfg.Redis.DB)
	}
	if cfg.AvatarEncoding != AvatarBase64 {
		t.Fatalf("AvatarEncoding=%q", cfg.AvatarEncoding)
	}
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	base := Config{
		APIBaseURL:     "http://localhost:8000",
		Cache:          CacheSQLite,
		AvatarEncoding: AvatarMultipart,
		RegisterPath:   "/api/authentication/register",
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	bad := base
	bad.Cache = "memcached"
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "cache backend") {
		t.Fatalf("expected cache backend error, got %v", err)
	}

	bad = base
	bad.AvatarEncoding = "gzip"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected avatar encoding error")
	}

	bad = base
	bad.RegisterPath = "api/register"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected register path error")
	}
}

func TestFromEnvBadRedisDB(t *testing.T) {
	t.Setenv("MB_DATA_DIR", t.TempDir())
	t.Setenv("REDIS_DB", "zero")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for non-numeric REDIS_DB")
	}
}
