package repository

import (
	"database/sql"
	"fmt"
	"time"

	"alphabetquest/internal/database"
	"alphabetquest/internal/models"
)

// SessionRepository handles review session database operations
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session row recording the batch size and the letter
// ids introduced as new in this batch
func (r *SessionRepository) Create(childID int64, mode string, totalCards int, newLetterIDs string) (*models.Session, error) {
	id, err := r.db.ExecReturningID(`
		INSERT INTO sessions (child_id, mode, started_at, total_cards, correct_count, new_letters_introduced)
		VALUES (?, ?, ?, ?, 0, ?)
	`, childID, mode, time.Now().UTC().Format(models.DateTimeLayout), totalCards, newLetterIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return r.GetByID(id)
}

// GetByID retrieves a session by ID, or nil if none exists
func (r *SessionRepository) GetByID(sessionID int64) (*models.Session, error) {
	row := r.db.QueryRow(`
		SELECT id, child_id, mode, started_at, completed_at, total_cards, correct_count, new_letters_introduced
		FROM sessions
		WHERE id = ?
	`, sessionID)

	session, err := scanSession(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// Complete stamps a session's completion time and final tallies.
// Returns nil if the session does not exist.
func (r *SessionRepository) Complete(sessionID int64, totalCards, correctCount int) (*models.Session, error) {
	result, err := r.db.Exec(`
		UPDATE sessions
		SET completed_at = ?, total_cards = ?, correct_count = ?
		WHERE id = ?
	`, time.Now().UTC().Format(models.DateTimeLayout), totalCards, correctCount, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to complete session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}

	return r.GetByID(sessionID)
}

// Delete removes a session scoped to its owning child. Returns whether a
// row was actually removed.
func (r *SessionRepository) Delete(sessionID, childID int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM sessions WHERE id = ? AND child_id = ?", sessionID, childID)
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteAll removes every session for (child, mode)
func (r *SessionRepository) DeleteAll(childID int64, mode string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE child_id = ? AND mode = ?", childID, mode)
	if err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

// RecentCompleted returns the most recently completed sessions, newest first
func (r *SessionRepository) RecentCompleted(childID int64, mode string, limit int) ([]models.Session, error) {
	rows, err := r.db.Query(`
		SELECT id, child_id, mode, started_at, completed_at, total_cards, correct_count, new_letters_introduced
		FROM sessions
		WHERE child_id = ? AND mode = ? AND completed_at IS NOT NULL
		ORDER BY completed_at DESC
		LIMIT ?
	`, childID, mode, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		session, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}

	return sessions, rows.Err()
}

// CompletedCount returns how many sessions have been completed for (child, mode)
func (r *SessionRepository) CompletedCount(childID int64, mode string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM sessions
		WHERE child_id = ? AND mode = ? AND completed_at IS NOT NULL
	`, childID, mode).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed sessions: %w", err)
	}
	return count, nil
}

// LastCompleted returns the most recently completed session, or nil if none
func (r *SessionRepository) LastCompleted(childID int64, mode string) (*models.Session, error) {
	sessions, err := r.RecentCompleted(childID, mode, 1)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

func scanSession(scan func(dest ...interface{}) error) (*models.Session, error) {
	session := &models.Session{}
	var completedAt sql.NullString

	err := scan(
		&session.ID,
		&session.ChildID,
		&session.Mode,
		&session.StartedAt,
		&completedAt,
		&session.TotalCards,
		&session.CorrectCount,
		&session.NewLettersIntroduced,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		session.CompletedAt = &completedAt.String
	}
	return session, nil
}
