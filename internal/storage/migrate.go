package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateUp applies every pending .up.sql migration in order,
// recording applied names so re-running is a no-op.
func MigrateUp(db *sql.DB) error {
	return applyMigrations(db, ".up.sql")
}

// MigrateDown unwinds applied migrations in reverse order.
func MigrateDown(db *sql.DB) error {
	return applyMigrations(db, ".down.sql")
}

func applyMigrations(db *sql.DB, suffix string) error {
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS schema_migrations (name TEXT PRIMARY KEY)"); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)
	down := suffix == ".down.sql"
	if down {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	for _, name := range entries {
		base := strings.TrimSuffix(name, suffix)
		applied, checkErr := migrationApplied(db, base)
		if checkErr != nil {
			return checkErr
		}
		if applied == !down {
			continue
		}
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		if _, execErr := db.Exec(string(sqlBytes)); execErr != nil {
			return fmt.Errorf("apply migration %s: %w", name, execErr)
		}
		if down {
			_, err = db.Exec("DELETE FROM schema_migrations WHERE name = ?", base)
		} else {
			_, err = db.Exec("INSERT INTO schema_migrations (name) VALUES (?)", base)
		}
		if err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}
	return nil
}

func migrationApplied(db *sql.DB, base string) (bool, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE name = ?", base).Scan(&count); err != nil {
		return false, fmt.Errorf("check migration %s: %w", base, err)
	}
	return count > 0, nil
}
