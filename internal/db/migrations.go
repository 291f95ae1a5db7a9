package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	embeddedmigrations "github.com/basaltlabs/basalt/migrations"
	"gorm.io/gorm"
)

// migrationNamePattern pins the NNNN_description.sql naming scheme; the
// numeric prefix orders the files and doubles as the recorded version.
var migrationNamePattern = regexp.MustCompile(`^(\d+)_.+\.sql$`)

type migrationFile struct {
	Version string
	Name    string
	Script  string
}

const schemaLedgerDDL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// applyEmbeddedMigrations brings the schema up to date. Each pending file
// runs inside its own transaction together with its ledger row, so a failed
// migration leaves the ledger and schema consistent.
func applyEmbeddedMigrations(database *gorm.DB) error {
	if err := database.Exec(schemaLedgerDDL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	migrations, err := loadEmbeddedMigrations()
	if err != nil {
		return err
	}

	applied, err := appliedVersions(database)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		if err := runMigration(database, migration); err != nil {
			return fmt.Errorf("apply migration %s: %w", migration.Name, err)
		}
	}
	return nil
}

func loadEmbeddedMigrations() ([]migrationFile, error) {
	entries, err := fs.ReadDir(embeddedmigrations.Files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	byVersion := make(map[string]migrationFile, len(entries))
	for _, entry := range entries {
		match := migrationNamePattern.FindStringSubmatch(entry.Name())
		if entry.IsDir() || match == nil {
			continue
		}

		version := match[1]
		if clash, exists := byVersion[version]; exists {
			return nil, fmt.Errorf("migration version %s used by both %s and %s", version, clash.Name, entry.Name())
		}

		script, err := fs.ReadFile(embeddedmigrations.Files, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		byVersion[version] = migrationFile{Version: version, Name: entry.Name(), Script: string(script)}
	}

	ordered := make([]migrationFile, 0, len(byVersion))
	for _, migration := range byVersion {
		ordered = append(ordered, migration)
	}
	sort.Slice(ordered, func(i, j int) bool {
		// Shorter digit strings are numerically smaller, so this stays
		// correct even if a version prefix loses its zero padding.
		a, b := ordered[i].Version, ordered[j].Version
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	return ordered, nil
}

func appliedVersions(database *gorm.DB) (map[string]bool, error) {
	versions := make([]string, 0)
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, version := range versions {
		applied[version] = true
	}
	return applied, nil
}

func runMigration(database *gorm.DB, migration migrationFile) error {
	return database.Transaction(func(tx *gorm.DB) error {
		ran := 0
		for _, statement := range strings.Split(migration.Script, ";") {
			statement = strings.TrimSpace(statement)
			if statement == "" {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute %q: %w", statement, err)
			}
			ran++
		}
		if ran == 0 {
			return errors.New("no SQL statements")
		}

		return tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			migration.Version, migration.Name,
		).Error
	})
}
