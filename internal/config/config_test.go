package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvName, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected default log level warn, got %s", cfg.LogLevel)
	}
	if cfg.Env != "production" {
		t.Errorf("Expected default env production, got %s", cfg.Env)
	}
	if filepath.Base(cfg.DBPath) != "linkvault.db" {
		t.Errorf("Expected default db file linkvault.db, got %s", cfg.DBPath)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv(EnvDBPath, "/tmp/custom.db")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvName, "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" || cfg.LogLevel != "debug" || cfg.Env != "development" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv(EnvDBPath, "")
	os.Unsetenv(EnvDBPath)
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)
	t.Setenv(EnvName, "")

	content := EnvDBPath + "=" + filepath.Join(dir, "from-dotenv.db") + "\n" + EnvLogLevel + "=error\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if filepath.Base(cfg.DBPath) != "from-dotenv.db" {
		t.Errorf("Expected db path from .env, got %s", cfg.DBPath)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("Expected log level from .env, got %s", cfg.LogLevel)
	}
}

func TestLoadInvalid(t *testing.T) {
	chdirTemp(t)
	t.Setenv(EnvDBPath, "/tmp/x.db")
	t.Setenv(EnvLogLevel, "chatty")
	t.Setenv(EnvName, "")

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid log level")
	}

	t.Setenv(EnvLogLevel, "info")
	t.Setenv(EnvName, "staging")
	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid env")
	}
}
