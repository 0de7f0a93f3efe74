package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
database:
  dsn: "postgres://u:p@localhost:5432/qbank"
  max_conns: 8
  min_conns: 2
  max_conn_lifetime: "30m"

log:
  level: "debug"
  format: "json"
`

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:      "postgres://u:p@localhost:5432/qbank",
			MaxConns: 10,
			MinConns: 1,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.DSN != "postgres://u:p@localhost:5432/qbank" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 8 {
		t.Errorf("database.max_conns = %d, want 8", cfg.Database.MaxConns)
	}
	if cfg.Database.MaxConnLifetime != 30*time.Minute {
		t.Errorf("database.max_conn_lifetime = %v, want 30m", cfg.Database.MaxConnLifetime)
	}
	if cfg.Database.MaxConnIdleTime != 30*time.Minute {
		t.Errorf("database.max_conn_idle_time = %v, want 30m (default)", cfg.Database.MaxConnIdleTime)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v, want debug/json", cfg.Log)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DATABASE_MAX_CONNS", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want warn (ENV override)", cfg.Log.Level)
	}
	if cfg.Database.MaxConns != 4 {
		t.Errorf("database.max_conns = %d, want 4 (ENV override)", cfg.Database.MaxConns)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/qbank")

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10 (default)", cfg.Database.MaxConns)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want text (default)", cfg.Log.Format)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"empty dsn", func(c *Config) { c.Database.DSN = "  " }, true},
		{"zero max conns", func(c *Config) { c.Database.MaxConns = 0 }, true},
		{"min above max", func(c *Config) { c.Database.MinConns = 11 }, true},
		{"negative min", func(c *Config) { c.Database.MinConns = -1 }, true},
		{"min equals max", func(c *Config) { c.Database.MinConns = 10 }, false},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"upper-case format", func(c *Config) { c.Log.Format = "JSON" }, false},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }, true},
		{"empty level", func(c *Config) { c.Log.Level = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadLog_WithoutDatabase(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Level != "warn" {
		t.Errorf("level = %q, want warn", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Errorf("format = %q, want text (default)", cfg.Format)
	}
}
