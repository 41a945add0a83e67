package sqlitemigrate

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestApplyMigrationsRunsUpSectionOnce(t *testing.T) {
	migrationFS := fstest.MapFS{
		"0001_create.sql": &fstest.MapFile{Data: []byte(`-- +migrate Up
CREATE TABLE pets (name TEXT PRIMARY KEY);
-- +migrate Down
DROP TABLE pets;
`)},
	}
	sqlDB := openTestDB(t)

	if err := ApplyMigrations(sqlDB, migrationFS); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	// A second run must be a no-op; re-creating the table would fail.
	if err := ApplyMigrations(sqlDB, migrationFS); err != nil {
		t.Fatalf("re-apply migrations: %v", err)
	}

	if _, err := sqlDB.Exec("INSERT INTO pets (name) VALUES ('Bella')"); err != nil {
		t.Fatalf("insert into migrated table: %v", err)
	}
}

func TestApplyMigrationsOrdersLexically(t *testing.T) {
	migrationFS := fstest.MapFS{
		"0002_index.sql": &fstest.MapFile{Data: []byte(`-- +migrate Up
CREATE INDEX idx_pets_name ON pets (name);
`)},
		"0001_create.sql": &fstest.MapFile{Data: []byte(`-- +migrate Up
CREATE TABLE pets (name TEXT);
`)},
	}
	sqlDB := openTestDB(t)

	if err := ApplyMigrations(sqlDB, migrationFS); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
}

func TestApplyMigrationsRequiresDB(t *testing.T) {
	if err := ApplyMigrations(nil, fstest.MapFS{}); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestExtractUpMigration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "up and down",
			content: "-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;\n",
			want:    "\nCREATE TABLE a (x);\n",
		},
		{
			name:    "up only",
			content: "-- +migrate Up\nCREATE TABLE a (x);\n",
			want:    "\nCREATE TABLE a (x);\n",
		},
		{
			name:    "no markers",
			content: "CREATE TABLE a (x);",
			want:    "CREATE TABLE a (x);",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractUpMigration(tc.content); got != tc.want {
				t.Fatalf("ExtractUpMigration() = %q, want %q", got, tc.want)
			}
		})
	}
}
