package models

// Practice modes
const (
	ModeUpper = "upper"
	ModeLower = "lower"
	ModeBoth  = "both"
)

// Progress statuses
const (
	StatusNew      = "new"
	StatusLearning = "learning"
	StatusMastered = "mastered"
)

// Ease factor bounds and defaults for the review interval model
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	MaxEaseFactor     = 2.5
)

// Storage layouts for the TEXT date columns. Lexicographic order on these
// strings matches chronological order, which the pool queries rely on.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// ValidMode reports whether mode is one of upper, lower, both
func ValidMode(mode string) bool {
	return mode == ModeUpper || mode == ModeLower || mode == ModeBoth
}

// Progress is the per-(child, letter, mode) mastery record.
// Dates are stored as ISO-8601 strings: next_review_date as YYYY-MM-DD,
// last_reviewed and introduced_date as YYYY-MM-DD HH:MM:SS. A nil pointer
// means the column is NULL. introduced_date is NULL until the letter's
// first-ever grading.
type Progress struct {
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

// ProgressLetter is a Progress row joined with its letter's display metadata
type ProgressLetter struct {
	Progress
	Character    string  `json:"character"`
	CaseType     string  `json:"case_type"`
	ImageName    string  `json:"image_name"`
	DisplayOrder int     `json:"display_order"`
	HasImage     bool    `json:"has_image"`
	DisplayWord  *string `json:"display_word"`
}

// GradeResult is the snapshot returned after grading one card
type GradeResult struct {
	LetterID       int64   `json:"letter_id"`
	Correct        bool    `json:"correct"`
	Status         string  `json:"status"`
	EaseFactor     float64 `json:"ease_factor"`
	IntervalDays   int     `json:"interval_days"`
	Repetitions    int     `json:"repetitions"`
	RecentFails    int     `json:"recent_fails"`
	NextReviewDate string  `json:"next_review_date"`
	FirstGrading   bool    `json:"is_new"`
}

// StatusCounts tallies progress rows by status. Problem counts letters with
// recent_fails >= 2 regardless of due date, so it overlaps the other buckets.
type StatusCounts struct {
	Mastered int `json:"mastered"`
	Learning int `json:"learning"`
	New      int `json:"new"`
	Problem  int `json:"problem"`
}

// ProgressSummary is the aggregate view for the progress dashboard
type ProgressSummary struct {
	Counts         StatusCounts     `json:"counts"`
	ProblemLetters []ProgressLetter `json:"problem_letters"`
	RecentSessions []Session        `json:"recent_sessions"`
}
