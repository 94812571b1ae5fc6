package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Fatalf("driver = %q, want %q", cfg.Database.Driver, DriverPostgres)
	}
	if cfg.Recommendation.FallbackLimit != 5 || cfg.Recommendation.ExcludeExpired {
		t.Fatalf("recommendation = %+v, want fallback 5 and expired included", cfg.Recommendation)
	}
}

func TestLoadConfigYAMLThenEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
database:
  driver: sqlite
  sqlite_path: /tmp/test.db
jwt:
  access_token_expiration: 2h
recommendation:
  exclude_expired: true
  fallback_limit: 3
`)
	t.Setenv("RECOMMENDATION_FALLBACK_LIMIT", "7")
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.SQLitePath != "/tmp/test.db" {
		t.Fatalf("database = %+v", cfg.Database)
	}
	if cfg.JWT.AccessTokenExpiration != 2*time.Hour {
		t.Fatalf("access expiration = %v, want 2h", cfg.JWT.AccessTokenExpiration)
	}
	if !cfg.Recommendation.ExcludeExpired {
		t.Fatal("expected exclude_expired from yaml")
	}
	if cfg.Recommendation.FallbackLimit != 7 {
		t.Fatalf("fallback limit = %d, want env override 7", cfg.Recommendation.FallbackLimit)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("port = %q, want env override 7070", cfg.Server.Port)
	}
}

func TestLoadConfigRejectsBadEnv(t *testing.T) {
	t.Setenv("RECOMMENDATION_FALLBACK_LIMIT", "many")

	_, err := LoadConfig("")
	if err == nil || !strings.Contains(err.Error(), "parse env") {
		t.Fatalf("err = %v, want parse env error", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: "unsupported"},
		{name: "sqlite without path", mutate: func(c *Config) { c.Database.Driver = "sqlite"; c.Database.SQLitePath = "" }, wantErr: "sqlite path"},
		{name: "negative fallback", mutate: func(c *Config) { c.Recommendation.FallbackLimit = -1 }, wantErr: "fallback"},
		{name: "zero expiration", mutate: func(c *Config) { c.JWT.AccessTokenExpiration = 0 }, wantErr: "expiration"},
		{name: "driver case", mutate: func(c *Config) { c.Database.Driver = "SQLite" }},
	}

	for _, tt := range tests {
		cfg := Default()
		tt.mutate(cfg)
		err := cfg.Validate()
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: err = %v, want it to mention %q", tt.name, err, tt.wantErr)
		}
	}
}
