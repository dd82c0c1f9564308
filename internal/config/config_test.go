package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
bridge:
  url: ws://localhost:9400/bridge
  secret: s3cret
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "inventory.db" {
		t.Errorf("db path = %q, want inventory.db", cfg.Database.Path)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("bcrypt cost = %d, want 10", cfg.Auth.BcryptCost)
	}
	if cfg.Session.TimeoutMinutes != 15 {
		t.Errorf("session timeout = %d, want 15", cfg.Session.TimeoutMinutes)
	}
	if cfg.Bridge.URL != "ws://localhost:9400/bridge" {
		t.Errorf("bridge url = %q", cfg.Bridge.URL)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/pos.db
session:
  timeout_minutes: 30
bridge:
  url: ws://backend:9400/bridge
  secret: s3cret
  client_id: till-2
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/pos.db" {
		t.Errorf("db path = %q", cfg.Database.Path)
	}
	if cfg.Session.TimeoutMinutes != 30 {
		t.Errorf("session timeout = %d, want 30", cfg.Session.TimeoutMinutes)
	}
	if cfg.Bridge.ClientID != "till-2" {
		t.Errorf("client id = %q, want till-2", cfg.Bridge.ClientID)
	}
}

func TestLoadRejectsMissingBridgeSecret(t *testing.T) {
	path := writeConfig(t, `
bridge:
  url: ws://localhost:9400/bridge
`)
	t.Setenv("CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted a config without a bridge secret")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted a missing file")
	}
}
