package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestValidateThresholdOrdering(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"standard ladder", func(c *Config) { c.Warning, c.Critical, c.Danger = 15, 5, 2 }, false},
		{"warning equals critical", func(c *Config) { c.Warning, c.Critical = 10, 10 }, true},
		{"warning below critical", func(c *Config) { c.Warning, c.Critical = 5, 10 }, true},
		{"critical equals danger", func(c *Config) { c.Critical, c.Danger = 5, 5 }, true},
		{"warning disabled skips ordering", func(c *Config) { c.Warning = 0 }, false},
		{"critical disabled skips ordering", func(c *Config) { c.Critical, c.Danger = 0, 50 }, false},
		{"level above 100", func(c *Config) { c.Warning = 101 }, true},
		{"negative level", func(c *Config) { c.Danger = -1 }, true},
		{"full above warning", func(c *Config) { c.Full = 90 }, false},
		{"full below warning", func(c *Config) { c.Full = 10 }, true},
		{"full equals warning", func(c *Config) { c.Full = 15 }, true},
		{"interval too large", func(c *Config) { c.Interval = MaxInterval + 1 }, true},
		{"interval zero", func(c *Config) { c.Interval = 0 }, false},
		{"negative interval", func(c *Config) { c.Interval = -1 }, true},
		{"unknown backend", func(c *Config) { c.Backend = "acpi" }, true},
		{"portable backend", func(c *Config) { c.Backend = BackendPortable }, false},
	}

	for _, tc := range cases {
		cfg := Default()
		tc.mutate(cfg)
		err := cfg.Validate()
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestValidateFullAgainstHighestEnabled(t *testing.T) {
	// With warning disabled, full is checked against critical instead.
	cfg := Default()
	cfg.Warning = 0
	cfg.Full = 10

	if err := cfg.Validate(); err != nil {
		t.Fatalf("full=10 must pass against critical=5: %v", err)
	}

	cfg.Full = 5
	if err := cfg.Validate(); err == nil {
		t.Fatalf("full=5 must fail against critical=5")
	}
}

func TestLoadFileMissing(t *testing.T) {
	raw, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}

	cfg := Default()
	raw.Apply(cfg)
	if cfg.Warning != 15 || cfg.Interval != 60 {
		t.Fatalf("empty overlay must leave defaults intact")
	}
}

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"warning": 25,
		"interval": 120,
		"warningMessage": "plug in soon",
		"devices": ["BAT1"]
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	raw, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	cfg := Default()
	raw.Apply(cfg)

	if cfg.Warning != 25 {
		t.Fatalf("expected warning 25, got %d", cfg.Warning)
	}
	if cfg.Interval != 120 {
		t.Fatalf("expected interval 120, got %d", cfg.Interval)
	}
	if cfg.WarningMsg != "plug in soon" {
		t.Fatalf("expected custom warning message, got %q", cfg.WarningMsg)
	}
	if len(cfg.Devices) != 1 || cfg.Devices[0] != "BAT1" {
		t.Fatalf("expected devices [BAT1], got %v", cfg.Devices)
	}
	// Untouched keys keep their defaults.
	if cfg.Critical != 5 || cfg.CriticalMsg == "" {
		t.Fatalf("overlay must not clobber unset fields")
	}
}

func TestLoadFileFullForcesFixed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"full": 80}`), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	raw, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	cfg := Default()
	raw.Apply(cfg)
	if cfg.Full != 80 || !cfg.Fixed {
		t.Fatalf("a full threshold must force fixed polling, got full=%d fixed=%t", cfg.Full, cfg.Fixed)
	}
}

func TestLoadFileBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"warning": `), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatalf("malformed JSON must be an error")
	}
}
