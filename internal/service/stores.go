package service

import "alphabetquest/internal/models"

// ProgressStore is the storage access needed by the scheduler, grader and
// reporter. repository.ProgressRepository implements it; tests substitute an
// in-memory fake.
type ProgressStore interface {
	ProblemDue(childID int64, mode, today string) ([]models.ProgressLetter, error)
	DueForReview(childID int64, mode, today string) ([]models.ProgressLetter, error)
	Unintroduced(childID int64, mode string, limit int) ([]models.ProgressLetter, error)
	Mastered(childID int64, mode string, limit int) ([]models.ProgressLetter, error)
	Learning(childID int64, mode string, limit int) ([]models.ProgressLetter, error)
	LearningCount(childID int64, mode string) (int, error)

	// UpdateProgress runs fn on one row inside a single transaction and
	// writes the mutated row back. Returns (nil, nil) when the row is absent.
	UpdateProgress(childID, letterID int64, mode string, fn func(p *models.Progress) error) (*models.Progress, error)

	Reset(childID int64, mode string) error
	StatusCounts(childID int64, mode string) (models.StatusCounts, error)
	Problem(childID int64, mode string) ([]models.ProgressLetter, error)
	LettersWithProgress(childID int64, mode string) ([]models.ProgressLetter, error)
	CreateForProfile(childID int64) error
}

// SessionStore is the storage access for session rows
type SessionStore interface {
	Create(childID int64, mode string, totalCards int, newLetterIDs string) (*models.Session, error)
	GetByID(sessionID int64) (*models.Session, error)
	Complete(sessionID int64, totalCards, correctCount int) (*models.Session, error)
	Delete(sessionID, childID int64) (bool, error)
	DeleteAll(childID int64, mode string) error
	RecentCompleted(childID int64, mode string, limit int) ([]models.Session, error)
	CompletedCount(childID int64, mode string) (int, error)
	LastCompleted(childID int64, mode string) (*models.Session, error)
}

// ProfileStore is the storage access for child profiles
type ProfileStore interface {
	Create(name, avatar string) (*models.Profile, error)
	GetByID(id int64) (*models.Profile, error)
	List() ([]models.Profile, error)
	Update(id int64, name, avatar string) error
	Delete(id int64) error
	Count() (int, error)
	Exists(id int64) (bool, error)
}

// LetterStore is the storage access for the letter catalog
type LetterStore interface {
	List(caseType string) ([]models.Letter, error)
	AdminLetters() ([]models.Letter, error)
	Count() (int, error)
	Insert(character, caseType, imageName string, displayOrder int) (int64, error)
	SetDisplayWord(letter string, word *string) error
	SetHasImage(letter string, hasImage bool) error
	CustomWords() (map[string]string, error)
}

// validateMode rejects anything but upper, lower, both
func validateMode(mode string) error {
	if !models.ValidMode(mode) {
		return ValidationError{Field: "mode", Message: "mode must be upper, lower, or both"}
	}
	return nil
}

// validateChild checks the id is present and references an existing profile
func validateChild(profiles ProfileStore, childID int64) error {
	if childID <= 0 {
		return ValidationError{Field: "child_id", Message: "child_id is required"}
	}
	exists, err := profiles.Exists(childID)
	if err != nil {
		return err
	}
	if !exists {
		return ValidationError{Field: "child_id", Message: "unknown child profile"}
	}
	return nil
}
