package db

import (
	"io/fs"
	"testing"
	"time"

	embeddedmigrations "github.com/terraincognita07/bloom/migrations"
)

func embeddedMigrationsForTest() fs.FS {
	return embeddedmigrations.Files
}

func mustParseRepoTime(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t.Fatalf("parse time %q: %v", raw, err)
	}
	return parsed
}
