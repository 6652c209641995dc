package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SEOSA_SEED", "99")
	t.Setenv("SEOSA_PORT", "9000")
	t.Setenv("SEOSA_ADMIN_KEY", "sekrit")
	t.Setenv("SEOSA_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 99 || cfg.Port != 9000 || cfg.AdminKey != "sekrit" || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("SEOSA_LOG_LEVEL", "loud")
	if _, err := Load(); err == nil {
		t.Error("bad log level should fail")
	}
}
