package repository

import (
	"database/sql"
	"fmt"

	"alphabetquest/internal/database"
	"alphabetquest/internal/models"
)

// progressLetterColumns is the Progress x Letter join used by every pool query
const progressLetterColumns = `
	SELECT p.id, p.child_id, p.letter_id, p.mode, p.status, p.ease_factor,
	       p.interval_days, p.repetitions, p.next_review_date, p.last_reviewed,
	       p.times_failed, p.recent_fails, p.introduced_date,
	       l.character, l.case_type, l.image_name, l.display_order, l.has_image, l.display_word
	FROM progress p
	JOIN letters l ON l.id = p.letter_id
`

// ProgressRepository handles per-(child, letter, mode) mastery records
type ProgressRepository struct {
	db *database.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *database.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// ProblemDue returns letters with recent_fails >= 2 that are due (or have no
// review date yet), hardest first
func (r *ProgressRepository) ProblemDue(childID int64, mode, today string) ([]models.ProgressLetter, error) {
	query := progressLetterColumns + `
		WHERE p.child_id = ? AND p.mode = ? AND p.recent_fails >= 2
		  AND (p.next_review_date IS NULL OR p.next_review_date <= ?)
		ORDER BY p.recent_fails DESC, p.next_review_date ASC
	`
	return r.queryProgressLetters(query, childID, mode, today)
}

// DueForReview returns learning letters whose review date has arrived,
// excluding problem letters
func (r *ProgressRepository) DueForReview(childID int64, mode, today string) ([]models.ProgressLetter, error) {
	query := progressLetterColumns + `
		WHERE p.child_id = ? AND p.mode = ? AND p.status = 'learning'
		  AND p.recent_fails < 2 AND p.next_review_date <= ?
		ORDER BY p.next_review_date ASC
	`
	return r.queryProgressLetters(query, childID, mode, today)
}

// Unintroduced returns letters never presented yet, in display order
func (r *ProgressRepository) Unintroduced(childID int64, mode string, limit int) ([]models.ProgressLetter, error) {
	query := progressLetterColumns + `
		WHERE p.child_id = ? AND p.mode = ? AND p.status = 'new'
		ORDER BY l.display_order ASC
		LIMIT ?
	`
	return r.queryProgressLetters(query, childID, mode, limit)
}

// Mastered returns mastered letters, least recently reviewed first
func (r *ProgressRepository) Mastered(childID int64, mode string, limit int) ([]models.ProgressLetter, error) {
	query := progressLetterColumns + `
		WHERE p.child_id = ? AND p.mode = ? AND p.status = 'mastered'
		ORDER BY p.last_reviewed ASC
		LIMIT ?
	`
	return r.queryProgressLetters(query, childID, mode, limit)
}

// Learning returns learning letters regardless of due date
func (r *ProgressRepository) Learning(childID int64, mode string, limit int) ([]models.ProgressLetter, error) {
	query := progressLetterColumns + `
		WHERE p.child_id = ? AND p.mode = ? AND p.status = 'learning'
		ORDER BY p.next_review_date ASC
		LIMIT ?
	`
	return r.queryProgressLetters(query, childID, mode, limit)
}

// LearningCount returns the size of the current working set
func (r *ProgressRepository) LearningCount(childID int64, mode string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM progress WHERE child_id = ? AND mode = ? AND status = 'learning'"
	err := r.db.QueryRow(query, childID, mode).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count learning letters: %w", err)
	}
	return count, nil
}

// Get retrieves one progress row, or nil if none exists
func (r *ProgressRepository) Get(childID, letterID int64, mode string) (*models.Progress, error) {
	row := r.db.QueryRow(selectProgressQuery, childID, letterID, mode)
	return scanProgress(row)
}

const selectProgressQuery = `
	SELECT id, child_id, letter_id, mode, status, ease_factor, interval_days,
	       repetitions, next_review_date, last_reviewed, times_failed,
	       recent_fails, introduced_date
	FROM progress
	WHERE child_id = ? AND letter_id = ? AND mode = ?
`

// UpdateProgress runs a read-modify-write on one progress row inside a single
// transaction. fn mutates the row in place; the updated row is written back
// and returned. Returns (nil, nil) when no row exists for the key.
func (r *ProgressRepository) UpdateProgress(childID, letterID int64, mode string, fn func(p *models.Progress) error) (*models.Progress, error) {
	var updated *models.Progress

	err := r.db.WithTx(func(tx *database.Tx) error {
		row := tx.QueryRow(selectProgressQuery, childID, letterID, mode)
		p, err := scanProgress(row)
		if err != nil {
			return err
		}
		if p == nil {
			return nil
		}

		if err := fn(p); err != nil {
			return err
		}

		_, err = tx.Exec(`
			UPDATE progress
			SET status = ?, ease_factor = ?, interval_days = ?, repetitions = ?,
			    next_review_date = ?, last_reviewed = ?, times_failed = ?,
			    recent_fails = ?, introduced_date = ?
			WHERE id = ?
		`, p.Status, p.EaseFactor, p.IntervalDays, p.Repetitions,
			p.NextReviewDate, p.LastReviewed, p.TimesFailed,
			p.RecentFails, p.IntroducedDate, p.ID)
		if err != nil {
			return fmt.Errorf("failed to update progress: %w", err)
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Reset reverts every progress row for (child, mode) to its created-state defaults
func (r *ProgressRepository) Reset(childID int64, mode string) error {
	_, err := r.db.Exec(`
		UPDATE progress
		SET status = 'new', ease_factor = 2.5, interval_days = 1, repetitions = 0,
		    next_review_date = NULL, last_reviewed = NULL, times_failed = 0,
		    recent_fails = 0, introduced_date = NULL
		WHERE child_id = ? AND mode = ?
	`, childID, mode)
	if err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	return nil
}

// StatusCounts tallies progress rows by status for (child, mode)
func (r *ProgressRepository) StatusCounts(childID int64, mode string) (models.StatusCounts, error) {
	var counts models.StatusCounts

	rows, err := r.db.Query(`
		SELECT status, COUNT(*) FROM progress
		WHERE child_id = ? AND mode = ?
		GROUP BY status
	`, childID, mode)
	if err != nil {
		return counts, fmt.Errorf("failed to count progress by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return counts, err
		}
		switch status {
		case models.StatusMastered:
			counts.Mastered = count
		case models.StatusLearning:
			counts.Learning = count
		case models.StatusNew:
			counts.New = count
		}
	}

	return counts, rows.Err()
}

// Problem returns every letter with recent_fails >= 2, ignoring due dates
func (r *ProgressRepository) Problem(childID int64, mode string) ([]models.ProgressLetter, error) {
	query := progressLetterColumns + `
		WHERE p.child_id = ? AND p.mode = ? AND p.recent_fails >= 2
		ORDER BY p.recent_fails DESC
	`
	return r.queryProgressLetters(query, childID, mode)
}

// LettersWithProgress returns the full per-letter join in display order
func (r *ProgressRepository) LettersWithProgress(childID int64, mode string) ([]models.ProgressLetter, error) {
	query := progressLetterColumns + `
		WHERE p.child_id = ? AND p.mode = ?
		ORDER BY l.display_order ASC, l.case_type ASC
	`
	return r.queryProgressLetters(query, childID, mode)
}

// CreateForProfile seeds default progress rows for a new child: one per
// letter for its own case plus one for the combined mode
func (r *ProgressRepository) CreateForProfile(childID int64) error {
	return r.db.WithTx(func(tx *database.Tx) error {
		rows, err := tx.Query("SELECT id, case_type FROM letters")
		if err != nil {
			return fmt.Errorf("failed to list letters: %w", err)
		}
		defer rows.Close()

		type letterCase struct {
			id       int64
			caseType string
		}
		var letters []letterCase
		for rows.Next() {
			var lc letterCase
			if err := rows.Scan(&lc.id, &lc.caseType); err != nil {
				return err
			}
			letters = append(letters, lc)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for _, lc := range letters {
			mode := models.ModeUpper
			if lc.caseType == models.CaseLower {
				mode = models.ModeLower
			}
			for _, m := range []string{mode, models.ModeBoth} {
				_, err := tx.Exec(
					"INSERT INTO progress (child_id, letter_id, mode) VALUES (?, ?, ?)",
					childID, lc.id, m,
				)
				if err != nil {
					return fmt.Errorf("failed to seed progress: %w", err)
				}
			}
		}
		return nil
	})
}

// queryProgressLetters runs a join query and scans the result rows
func (r *ProgressRepository) queryProgressLetters(query string, args ...interface{}) ([]models.ProgressLetter, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress letters: %w", err)
	}
	defer rows.Close()

	var result []models.ProgressLetter
	for rows.Next() {
		pl, err := scanProgressLetter(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, pl)
	}

	return result, rows.Err()
}

func scanProgressLetter(rows *sql.Rows) (models.ProgressLetter, error) {
	var pl models.ProgressLetter
	var nextReview, lastReviewed, introduced, displayWord sql.NullString

	err := rows.Scan(
		&pl.ID, &pl.ChildID, &pl.LetterID, &pl.Mode, &pl.Status, &pl.EaseFactor,
		&pl.IntervalDays, &pl.Repetitions, &nextReview, &lastReviewed,
		&pl.TimesFailed, &pl.RecentFails, &introduced,
		&pl.Character, &pl.CaseType, &pl.ImageName, &pl.DisplayOrder, &pl.HasImage, &displayWord,
	)
	if err != nil {
		return pl, err
	}

	pl.NextReviewDate = nullableString(nextReview)
	pl.LastReviewed = nullableString(lastReviewed)
	pl.IntroducedDate = nullableString(introduced)
	pl.DisplayWord = nullableString(displayWord)
	return pl, nil
}

func scanProgress(row *sql.Row) (*models.Progress, error) {
	p := &models.Progress{}
	var nextReview, lastReviewed, introduced sql.NullString

	err := row.Scan(
		&p.ID, &p.ChildID, &p.LetterID, &p.Mode, &p.Status, &p.EaseFactor,
		&p.IntervalDays, &p.Repetitions, &nextReview, &lastReviewed,
		&p.TimesFailed, &p.RecentFails, &introduced,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	p.NextReviewDate = nullableString(nextReview)
	p.LastReviewed = nullableString(lastReviewed)
	p.IntroducedDate = nullableString(introduced)
	return p, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
