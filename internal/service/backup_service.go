package service

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"alphabetquest/internal/database"
)

// backupVersion identifies the export format
const backupVersion = 1

// Backup is the JSON export of the full database
type Backup struct {
	Version    int             `json:"version"`
	ExportedAt string          `json:"exported_at"`
	Profiles   []backupProfile `json:"profiles"`
	Letters    []backupLetter  `json:"letters"`
	Progress   []backupRow     `json:"progress"`
	Sessions   []backupSession `json:"sessions"`
}

type backupProfile struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"created_at"`
}

type backupLetter struct {
	ID           int64   `json:"id"`
	Character    string  `json:"character"`
	CaseType     string  `json:"case_type"`
	ImageName    string  `json:"image_name"`
	DisplayOrder int     `json:"display_order"`
	HasImage     bool    `json:"has_image"`
	DisplayWord  *string `json:"display_word"`
}

type backupRow struct {
	ID             int64   `json:"id"`
	ChildID        int64   `json:"child_id"`
	LetterID       int64   `json:"letter_id"`
	Mode           string  `json:"mode"`
	Status         string  `json:"status"`
	EaseFactor     float64 `json:"ease_factor"`
	IntervalDays   int     `json:"interval_days"`
	Repetitions    int     `json:"repetitions"`
	NextReviewDate *string `json:"next_review_date"`
	LastReviewed   *string `json:"last_reviewed"`
	TimesFailed    int     `json:"times_failed"`
	RecentFails    int     `json:"recent_fails"`
	IntroducedDate *string `json:"introduced_date"`
}

type backupSession struct {
	ID                   int64   `json:"id"`
	ChildID              int64   `json:"child_id"`
	Mode                 string  `json:"mode"`
	StartedAt            string  `json:"started_at"`
	CompletedAt          *string `json:"completed_at"`
	TotalCards           int     `json:"total_cards"`
	CorrectCount         int     `json:"correct_count"`
	NewLettersIntroduced string  `json:"new_letters_introduced"`
}

// BackupService exports and imports the full database as JSON
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes all tables as a JSON document to w
func (s *BackupService) Export(w io.Writer) error {
	backup := Backup{
		Version:    backupVersion,
		ExportedAt: time.Now().UTC().Format("2006-01-02 15:04:05"),
	}

	if err := s.exportProfiles(&backup); err != nil {
		return err
	}
	if err := s.exportLetters(&backup); err != nil {
		return err
	}
	if err := s.exportProgress(&backup); err != nil {
		return err
	}
	if err := s.exportSessions(&backup); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(backup)
}

func (s *BackupService) exportProfiles(b *Backup) error {
	rows, err := s.db.Query("SELECT id, name, avatar, created_at FROM profiles ORDER BY id")
	if err != nil {
		return fmt.Errorf("failed to export profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p backupProfile
		if err := rows.Scan(&p.ID, &p.Name, &p.Avatar, &p.CreatedAt); err != nil {
			return err
		}
		b.Profiles = append(b.Profiles, p)
	}
	return rows.Err()
}

func (s *BackupService) exportLetters(b *Backup) error {
	rows, err := s.db.Query("SELECT id, character, case_type, image_name, display_order, has_image, display_word FROM letters ORDER BY id")
	if err != nil {
		return fmt.Errorf("failed to export letters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l backupLetter
		if err := rows.Scan(&l.ID, &l.Character, &l.CaseType, &l.ImageName, &l.DisplayOrder, &l.HasImage, &l.DisplayWord); err != nil {
			return err
		}
		b.Letters = append(b.Letters, l)
	}
	return rows.Err()
}

func (s *BackupService) exportProgress(b *Backup) error {
	rows, err := s.db.Query(`SELECT id, child_id, letter_id, mode, status, ease_factor,
		interval_days, repetitions, next_review_date, last_reviewed,
		times_failed, recent_fails, introduced_date
		FROM progress ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to export progress: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r backupRow
		if err := rows.Scan(&r.ID, &r.ChildID, &r.LetterID, &r.Mode, &r.Status, &r.EaseFactor,
			&r.IntervalDays, &r.Repetitions, &r.NextReviewDate, &r.LastReviewed,
			&r.TimesFailed, &r.RecentFails, &r.IntroducedDate); err != nil {
			return err
		}
		b.Progress = append(b.Progress, r)
	}
	return rows.Err()
}

func (s *BackupService) exportSessions(b *Backup) error {
	rows, err := s.db.Query(`SELECT id, child_id, mode, started_at, completed_at,
		total_cards, correct_count, new_letters_introduced FROM sessions ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to export sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sess backupSession
		if err := rows.Scan(&sess.ID, &sess.ChildID, &sess.Mode, &sess.StartedAt, &sess.CompletedAt,
			&sess.TotalCards, &sess.CorrectCount, &sess.NewLettersIntroduced); err != nil {
			return err
		}
		b.Sessions = append(b.Sessions, sess)
	}
	return rows.Err()
}

// Import restores a backup document, replacing all existing data. The whole
// restore runs in one transaction so a malformed backup leaves the database
// untouched.
func (s *BackupService) Import(r io.Reader) error {
	var backup Backup
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to parse backup: %w", err)
	}
	if backup.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %d", backup.Version)
	}

	return s.db.WithTx(func(tx *database.Tx) error {
		for _, table := range []string{"sessions", "progress", "profiles", "letters"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		for _, p := range backup.Profiles {
			if _, err := tx.Exec(
				"INSERT INTO profiles (id, name, avatar, created_at) VALUES (?, ?, ?, ?)",
				p.ID, p.Name, p.Avatar, p.CreatedAt,
			); err != nil {
				return fmt.Errorf("failed to restore profile %d: %w", p.ID, err)
			}
		}

		for _, l := range backup.Letters {
			if _, err := tx.Exec(
				`INSERT INTO letters (id, character, case_type, image_name, display_order, has_image, display_word)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				l.ID, l.Character, l.CaseType, l.ImageName, l.DisplayOrder, l.HasImage, l.DisplayWord,
			); err != nil {
				return fmt.Errorf("failed to restore letter %d: %w", l.ID, err)
			}
		}

		for _, row := range backup.Progress {
			if _, err := tx.Exec(
				`INSERT INTO progress (id, child_id, letter_id, mode, status, ease_factor,
				 interval_days, repetitions, next_review_date, last_reviewed,
				 times_failed, recent_fails, introduced_date)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				row.ID, row.ChildID, row.LetterID, row.Mode, row.Status, row.EaseFactor,
				row.IntervalDays, row.Repetitions, row.NextReviewDate, row.LastReviewed,
				row.TimesFailed, row.RecentFails, row.IntroducedDate,
			); err != nil {
				return fmt.Errorf("failed to restore progress row %d: %w", row.ID, err)
			}
		}

		for _, sess := range backup.Sessions {
			if _, err := tx.Exec(
				`INSERT INTO sessions (id, child_id, mode, started_at, completed_at,
				 total_cards, correct_count, new_letters_introduced)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				sess.ID, sess.ChildID, sess.Mode, sess.StartedAt, sess.CompletedAt,
				sess.TotalCards, sess.CorrectCount, sess.NewLettersIntroduced,
			); err != nil {
				return fmt.Errorf("failed to restore session %d: %w", sess.ID, err)
			}
		}
		return nil
	})
}
