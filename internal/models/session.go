package models

// Session represents one scheduled batch of cards and its outcome tally
type Session struct {
	ID                   int64   `json:"id"`
	ChildID              int64   `json:"child_id"`
	Mode                 string  `json:"mode"`
	StartedAt            string  `json:"started_at"`
	CompletedAt          *string `json:"completed_at"`
	TotalCards           int     `json:"total_cards"`
	CorrectCount         int     `json:"correct_count"`
	NewLettersIntroduced string  `json:"new_letters_introduced"`
}

// Card is one ready-to-render flashcard in a session batch
type Card struct {
	LetterID    int64   `json:"letter_id"`
	Character   string  `json:"character"`
	CaseType    string  `json:"case_type"`
	ImageName   string  `json:"image_name"`
	HasImage    bool    `json:"has_image"`
	DisplayWord *string `json:"display_word"`
	IsNew       bool    `json:"is_new"`
	IsProblem   bool    `json:"is_problem"`
}

// SessionBatch is the scheduler's response: a new session id plus its cards
type SessionBatch struct {
	SessionID int64  `json:"session_id"`
	Cards     []Card `json:"cards"`
}
