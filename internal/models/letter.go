package models

// Letter case values
const (
	CaseUpper = "upper"
	CaseLower = "lower"
)

// Letter represents one catalog entry of the fixed 26-letter (x2 case) alphabet.
// Created once at seeding; only display_word and has_image change afterwards.
type Letter struct {
	ID           int64   `json:"id"`
	Character    string  `json:"character"`
	CaseType     string  `json:"case_type"`
	ImageName    string  `json:"image_name"`
	DisplayOrder int     `json:"display_order"`
	HasImage     bool    `json:"has_image"`
	DisplayWord  *string `json:"display_word"`
}
