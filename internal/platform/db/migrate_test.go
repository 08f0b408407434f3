package db

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMigration(t *testing.T, dir, name, sql string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadMigrations_FullSchema(t *testing.T) {
	dir := t.TempDir()
	// The real schema, abbreviated. Written out of order on purpose.
	writeMigration(t, dir, "003_admissions.sql", "CREATE TABLE admission ();")
	writeMigration(t, dir, "001_directory.sql", "CREATE TABLE patient ();")
	writeMigration(t, dir, "007_shifts.sql", "CREATE TABLE shift ();")
	writeMigration(t, dir, "002_rooms.sql", "CREATE TABLE room ();")

	migs, err := NewMigrator(nil, dir).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations: %v", err)
	}
	if len(migs) != 4 {
		t.Fatalf("expected 4 migrations, got %d", len(migs))
	}

	wantVersions := []int{1, 2, 3, 7}
	wantNames := []string{"001_directory.sql", "002_rooms.sql", "003_admissions.sql", "007_shifts.sql"}
	for i := range migs {
		if migs[i].Version != wantVersions[i] {
			t.Errorf("migration %d: expected version %d, got %d", i, wantVersions[i], migs[i].Version)
		}
		if migs[i].Name != wantNames[i] {
			t.Errorf("migration %d: expected name %s, got %s", i, wantNames[i], migs[i].Name)
		}
	}
	if migs[0].SQL != "CREATE TABLE patient ();" {
		t.Errorf("unexpected SQL for the first migration: %s", migs[0].SQL)
	}
}

func TestLoadMigrations_SkipsUnversionedFiles(t *testing.T) {
	cases := []struct {
		name string
		keep bool
	}{
		{"001_directory.sql", true},
		{"002_rooms.sql", true},
		{"seed_test_patients.sql", false},
		{"notes.txt", false},
		{"rollback.sql", false},
	}

	dir := t.TempDir()
	for _, tc := range cases {
		writeMigration(t, dir, tc.name, "SELECT 1;")
	}

	migs, err := NewMigrator(nil, dir).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations: %v", err)
	}

	loaded := make(map[string]bool, len(migs))
	for _, m := range migs {
		loaded[m.Name] = true
	}
	for _, tc := range cases {
		if loaded[tc.name] != tc.keep {
			t.Errorf("%s: loaded=%v, want %v", tc.name, loaded[tc.name], tc.keep)
		}
	}
}

func TestLoadMigrations_EmptyDir(t *testing.T) {
	migs, err := NewMigrator(nil, t.TempDir()).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations: %v", err)
	}
	if len(migs) != 0 {
		t.Errorf("expected no migrations, got %d", len(migs))
	}
}

func TestLoadMigrations_MissingDir(t *testing.T) {
	_, err := NewMigrator(nil, filepath.Join(t.TempDir(), "absent")).LoadMigrations()
	if err == nil {
		t.Error("expected an error for a missing migrations directory")
	}
}

func TestMigrationStatus_PendingHasNoAppliedAt(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_directory.sql", "CREATE TABLE patient ();")
	writeMigration(t, dir, "002_rooms.sql", "CREATE TABLE room ();")
	writeMigration(t, dir, "003_admissions.sql", "CREATE TABLE admission ();")

	migs, err := NewMigrator(nil, dir).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations: %v", err)
	}

	// Status derives from the loaded files joined with the applied set.
	applied := map[int]bool{1: true, 2: true}
	var statuses []MigrationStatus
	for _, m := range migs {
		statuses = append(statuses, MigrationStatus{
			Version: m.Version,
			Name:    m.Name,
			Applied: applied[m.Version],
		})
	}

	if !statuses[0].Applied || !statuses[1].Applied {
		t.Error("expected the first two migrations to be applied")
	}
	if statuses[2].Applied {
		t.Error("expected 003_admissions.sql to be pending")
	}
	if statuses[2].AppliedAt != nil {
		t.Error("a pending migration has no applied timestamp")
	}
}
