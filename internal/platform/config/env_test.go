package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("POOLCALENDAR_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("POOLCALENDAR_TEST_DOTENV") })

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}

	if got := os.Getenv("POOLCALENDAR_TEST_DOTENV"); got != "from-file" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	if got := ResolvePath(""); got != DefaultPath {
		t.Fatalf("expected default path, got %s", got)
	}

	t.Setenv("CONFIG_PATH", "/etc/poolcalendar.yaml")
	if got := ResolvePath(""); got != "/etc/poolcalendar.yaml" {
		t.Fatalf("expected env path, got %s", got)
	}
	if got := ResolvePath("custom.yaml"); got != "custom.yaml" {
		t.Fatalf("expected flag path, got %s", got)
	}
}

func TestLoad_EnvOverridesPassword(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`server:
  listen_addr: ":8080"
database:
  host: localhost
  port: 5432
  user: user
  name: app
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("DATABASE_PASSWORD", "from-env")
	t.Setenv("LISTEN_ADDR", ":9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Database.Password != "from-env" || cfg.Server.ListenAddr != ":9090" {
		t.Fatalf("expected env overrides, got %+v %+v", cfg.Database, cfg.Server)
	}
}
