package update

import (
	"strings"
	"testing"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if !strings.HasSuffix(cfg.DatabasePath, "focusd.db") {
		t.Fatalf("unexpected database default: %+v", cfg)
	}
	if cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications off by default")
	}
	if cfg.SchedulerBuffer != 16 || cfg.PersistBuffer != 256 {
		t.Fatalf("unexpected buffer defaults: %+v", cfg)
	}
	if cfg.DefaultView != ViewDay {
		t.Fatalf("unexpected default view: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("FOCUSD_DB_PATH", "data/custom.db")
	t.Setenv("FOCUSD_DESKTOP_NOTIFICATIONS", "true")
	t.Setenv("FOCUSD_SCHEDULER_BUFFER", "128")
	t.Setenv("FOCUSD_PERSIST_BUFFER", "512")
	t.Setenv("FOCUSD_DEFAULT_VIEW", "goals")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DatabasePath != "data/custom.db" {
		t.Fatalf("unexpected database override: %+v", cfg)
	}
	if !cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications true from env")
	}
	if cfg.SchedulerBuffer != 128 || cfg.PersistBuffer != 512 {
		t.Fatalf("unexpected buffer overrides: %+v", cfg)
	}
	if cfg.DefaultView != ViewGoals {
		t.Fatalf("unexpected view override: %+v", cfg)
	}
}

func TestRuntimeConfigIgnoresInvalidEnv(t *testing.T) {
	t.Setenv("FOCUSD_SCHEDULER_BUFFER", "not-a-number")
	t.Setenv("FOCUSD_DESKTOP_NOTIFICATIONS", "maybe")
	t.Setenv("FOCUSD_DEFAULT_VIEW", "inbox")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.SchedulerBuffer != 16 {
		t.Fatalf("expected default buffer kept, got %+v", cfg)
	}
	if cfg.DesktopNotifications {
		t.Fatal("expected default notifications kept")
	}
	if cfg.DefaultView != ViewDay {
		t.Fatalf("expected default view kept, got %+v", cfg)
	}
}
