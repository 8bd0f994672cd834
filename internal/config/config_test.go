package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "http://localhost:5000" {
		t.Fatalf("base URL = %q", cfg.Server.BaseURL)
	}
	if cfg.History.Limit != 5 {
		t.Fatalf("history limit = %d", cfg.History.Limit)
	}
	if cfg.History.PollInterval.Value() != 10*time.Second {
		t.Fatalf("poll interval = %v", cfg.History.PollInterval.Value())
	}
	if cfg.History.RefreshDelay.Value() != 500*time.Millisecond {
		t.Fatalf("refresh delay = %v", cfg.History.RefreshDelay.Value())
	}
}

func TestLoadParsesYAMLAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prismscan.yaml")
	content := []byte("server:\n  base_url: http://scanner.internal:5000\n  timeout: 10s\nhistory:\n  poll_interval: 30s\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "http://scanner.internal:5000" {
		t.Fatalf("base URL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.Timeout.Value() != 10*time.Second {
		t.Fatalf("timeout = %v", cfg.Server.Timeout.Value())
	}
	if cfg.History.PollInterval.Value() != 30*time.Second {
		t.Fatalf("poll interval = %v", cfg.History.PollInterval.Value())
	}
	// unset fields keep their defaults
	if cfg.History.Limit != 5 {
		t.Fatalf("history limit = %d", cfg.History.Limit)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prismscan.yaml")
	if err := os.WriteFile(path, []byte("server:\n  timeout: soon\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error for invalid duration")
	}
}

func TestLoadEnvPointsAtConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prismscan.yaml")
	if err := os.WriteFile(path, []byte("history:\n  limit: 8\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configEnv, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.Limit != 8 {
		t.Fatalf("history limit = %d, want 8", cfg.History.Limit)
	}
}

func TestLoadEnvOverridesServer(t *testing.T) {
	t.Setenv(configEnv, "")
	t.Setenv(serverEnv, "http://override.internal:5000")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "http://override.internal:5000" {
		t.Fatalf("base URL = %q", cfg.Server.BaseURL)
	}
}
