package update

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DatabasePath         string
	DefaultView          View
	DesktopNotifications bool
	SchedulerBuffer      int
	PersistBuffer        int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DatabasePath:         defaultDatabasePath(),
		DefaultView:          ViewDay,
		DesktopNotifications: false,
		SchedulerBuffer:      16,
		PersistBuffer:        256,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("FOCUSD_DB_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("FOCUSD_DEFAULT_VIEW"))); v != "" {
		if view := View(strings.ToUpper(v[:1]) + v[1:]); isKnownView(view) {
			cfg.DefaultView = view
		}
	}
	if v, ok := getEnvBool("FOCUSD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("FOCUSD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvInt("FOCUSD_PERSIST_BUFFER"); ok && v > 0 {
		cfg.PersistBuffer = v
	}
	return cfg
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "focusd.db"
	}
	return filepath.Join(home, ".focusd", "focusd.db")
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
