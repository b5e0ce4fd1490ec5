package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/bloom/migrations"
	"gorm.io/gorm"
)

var (
	migrationNamePattern = regexp.MustCompile(`^(\d+)_[a-z0-9_]+\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)
)

type schemaMigration struct {
	version int
	name    string
	body    string
}

// applyEmbeddedMigrations runs every migration that is not yet recorded in
// schema_migrations and returns the names it applied, in order.
func applyEmbeddedMigrations(database *gorm.DB) ([]string, error) {
	if err := database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return nil, fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := readSchemaMigrations(embeddedmigrations.Files)
	if err != nil {
		return nil, err
	}

	var recorded []struct {
		Version string `gorm:"column:version"`
	}
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&recorded).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}
	done := make(map[string]bool, len(recorded))
	for _, row := range recorded {
		done[row.Version] = true
	}

	applied := make([]string, 0, len(pending))
	for _, migration := range pending {
		if done[migration.versionKey()] {
			continue
		}
		if err := runSchemaMigration(database, migration); err != nil {
			return applied, err
		}
		applied = append(applied, migration.name)
	}
	return applied, nil
}

func (migration schemaMigration) versionKey() string {
	return fmt.Sprintf("%03d", migration.version)
}

func readSchemaMigrations(files fs.FS) ([]schemaMigration, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list embedded migrations: %w", err)
	}

	migrations := make([]schemaMigration, 0, len(names))
	byVersion := make(map[int]string, len(names))
	for _, name := range names {
		match := migrationNamePattern.FindStringSubmatch(name)
		if match == nil {
			return nil, fmt.Errorf("unexpected migration file name %q", name)
		}
		version, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", name, err)
		}
		if previous, exists := byVersion[version]; exists {
			return nil, fmt.Errorf("duplicate migration version %d in %s and %s", version, previous, name)
		}
		byVersion[version] = name

		body, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, schemaMigration{version: version, name: name, body: string(body)})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].version < migrations[j].version
	})
	return migrations, nil
}

func runSchemaMigration(database *gorm.DB, migration schemaMigration) error {
	statements := splitStatements(migration.body)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s: %w", migration.name, errors.New("no SQL statements"))
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			exists, err := addedColumnExists(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", migration.name, err)
			}
			if exists {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", migration.name, statement, err)
			}
		}

		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			migration.versionKey(),
			migration.name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", migration.name, err)
		}
		return nil
	})
}

func splitStatements(body string) []string {
	parts := strings.Split(body, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// addedColumnExists reports whether statement is an ADD COLUMN whose column
// is already present, so re-running a migration on a hand-patched schema is
// harmless.
func addedColumnExists(database *gorm.DB, statement string) (bool, error) {
	match := addColumnPattern.FindStringSubmatch(statement)
	if match == nil {
		return false, nil
	}
	table := strings.Trim(match[1], "\"`[]")
	column := strings.Trim(match[2], "\"`[]")

	var columns []struct {
		Name string `gorm:"column:name"`
	}
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(table, `"`, `""`))
	if err := database.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", table, err)
	}
	for _, candidate := range columns {
		if strings.EqualFold(candidate.Name, column) {
			return true, nil
		}
	}
	return false, nil
}
