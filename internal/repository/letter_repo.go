package repository

import (
	"database/sql"
	"fmt"

	"alphabetquest/internal/database"
	"alphabetquest/internal/models"
)

// LetterRepository handles the read-mostly letter catalog
type LetterRepository struct {
	db *database.DB
}

// NewLetterRepository creates a new letter repository
func NewLetterRepository(db *database.DB) *LetterRepository {
	return &LetterRepository{db: db}
}

// List returns catalog entries, optionally filtered by case type
func (r *LetterRepository) List(caseType string) ([]models.Letter, error) {
	query := `
		SELECT id, character, case_type, image_name, display_order, has_image, display_word
		FROM letters
		ORDER BY case_type, display_order
	`
	args := []interface{}{}
	if caseType != "" {
		query = `
			SELECT id, character, case_type, image_name, display_order, has_image, display_word
			FROM letters
			WHERE case_type = ?
			ORDER BY display_order
		`
		args = append(args, caseType)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list letters: %w", err)
	}
	defer rows.Close()

	var letters []models.Letter
	for rows.Next() {
		letter, err := scanLetter(rows)
		if err != nil {
			return nil, err
		}
		letters = append(letters, letter)
	}

	return letters, rows.Err()
}

// AdminLetters returns the upper-case rows only; images and display words
// are shared between the two case variants of a letter
func (r *LetterRepository) AdminLetters() ([]models.Letter, error) {
	return r.List(models.CaseUpper)
}

// Count returns the catalog size
func (r *LetterRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM letters").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count letters: %w", err)
	}
	return count, nil
}

// Insert adds one catalog entry during seeding
func (r *LetterRepository) Insert(character, caseType, imageName string, displayOrder int) (int64, error) {
	id, err := r.db.ExecReturningID(`
		INSERT INTO letters (character, case_type, image_name, display_order)
		VALUES (?, ?, ?, ?)
	`, character, caseType, imageName, displayOrder)
	if err != nil {
		return 0, fmt.Errorf("failed to insert letter: %w", err)
	}
	return id, nil
}

// SetDisplayWord updates the custom display word for both case variants of
// a letter. A nil word clears it.
func (r *LetterRepository) SetDisplayWord(letter string, word *string) error {
	_, err := r.db.Exec("UPDATE letters SET display_word = ? WHERE UPPER(character) = UPPER(?)", word, letter)
	if err != nil {
		return fmt.Errorf("failed to set display word: %w", err)
	}
	return nil
}

// SetHasImage flags both case variants of a letter as having a custom image
func (r *LetterRepository) SetHasImage(letter string, hasImage bool) error {
	_, err := r.db.Exec("UPDATE letters SET has_image = ? WHERE UPPER(character) = UPPER(?)", hasImage, letter)
	if err != nil {
		return fmt.Errorf("failed to set image flag: %w", err)
	}
	return nil
}

// CustomWords returns the letter-to-word overrides currently in the catalog
func (r *LetterRepository) CustomWords() (map[string]string, error) {
	rows, err := r.db.Query(`
		SELECT character, display_word FROM letters
		WHERE case_type = 'upper' AND display_word IS NOT NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom words: %w", err)
	}
	defer rows.Close()

	words := make(map[string]string)
	for rows.Next() {
		var character, word string
		if err := rows.Scan(&character, &word); err != nil {
			return nil, err
		}
		words[character] = word
	}

	return words, rows.Err()
}

func scanLetter(rows *sql.Rows) (models.Letter, error) {
	var letter models.Letter
	var displayWord sql.NullString

	err := rows.Scan(
		&letter.ID,
		&letter.Character,
		&letter.CaseType,
		&letter.ImageName,
		&letter.DisplayOrder,
		&letter.HasImage,
		&displayWord,
	)
	if err != nil {
		return letter, err
	}

	if displayWord.Valid {
		letter.DisplayWord = &displayWord.String
	}
	return letter, nil
}
