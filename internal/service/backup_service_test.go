package service

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"alphabetquest/internal/database"
)

func openBackupTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func TestBackupRoundTrip(t *testing.T) {
	db := openBackupTestDB(t)

	mustExec := func(query string, args ...interface{}) {
		t.Helper()
		if _, err := db.Exec(query, args...); err != nil {
			t.Fatalf("exec failed: %v", err)
		}
	}
	mustExec("INSERT INTO profiles (name, avatar) VALUES (?, ?)", "Maya", "🦊")
	mustExec("INSERT INTO letters (character, case_type, image_name, display_order) VALUES ('A', 'upper', 'anna', 1)")
	mustExec("INSERT INTO progress (child_id, letter_id, mode, status, repetitions) VALUES (1, 1, 'upper', 'learning', 2)")
	mustExec("INSERT INTO sessions (child_id, mode, started_at, total_cards, correct_count) VALUES (1, 'upper', '2026-03-15 10:00:00', 5, 4)")

	s := NewBackupService(db)

	var buf bytes.Buffer
	if err := s.Export(&buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	exported := buf.String()
	for _, want := range []string{"Maya", "anna", "learning", "2026-03-15 10:00:00"} {
		if !strings.Contains(exported, want) {
			t.Errorf("export missing %q", want)
		}
	}

	// Mutate, then restore the snapshot.
	mustExec("UPDATE profiles SET name = 'Renamed' WHERE id = 1")
	mustExec("DELETE FROM sessions")

	if err := s.Import(strings.NewReader(exported)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	var name string
	if err := db.QueryRow("SELECT name FROM profiles WHERE id = 1").Scan(&name); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if name != "Maya" {
		t.Errorf("profile name = %q after restore, want Maya", name)
	}

	var sessionCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&sessionCount); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if sessionCount != 1 {
		t.Errorf("session count = %d after restore, want 1", sessionCount)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	db := openBackupTestDB(t)
	s := NewBackupService(db)

	if err := s.Import(strings.NewReader("not json")); err == nil {
		t.Error("expected error for malformed backup")
	}
	if err := s.Import(strings.NewReader(`{"version": 99}`)); err == nil {
		t.Error("expected error for unsupported version")
	}
}
