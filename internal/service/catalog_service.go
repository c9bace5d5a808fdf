package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"alphabetquest/internal/models"
)

// letterImageSize is the square edge uploaded letter images are resized to
const letterImageSize = 400

// defaultImageNames maps display order to the canonical image key for each
// letter of the alphabet
var defaultImageNames = [26]string{
	"anna", "bam", "chase", "daniel", "elmo",
	"fuli", "goofy", "house", "icecream", "jj",
	"kion", "lightning", "marshall", "nemo", "olaf",
	"peppa", "elsa", "rubble", "skye", "thomas",
	"umbrella", "violin", "watermelon", "xylophone", "yoyo", "zuma",
}

// CatalogService seeds and administers the letter catalog
type CatalogService struct {
	letters         LetterStore
	imagesDir       string
	customWordsPath string
}

// NewCatalogService creates a new catalog service
func NewCatalogService(letters LetterStore, imagesDir, customWordsPath string) *CatalogService {
	return &CatalogService{
		letters:         letters,
		imagesDir:       imagesDir,
		customWordsPath: customWordsPath,
	}
}

// Seed populates the 26-letter x2-case catalog if it is empty, restores
// custom display words from the sidecar file, and detects previously
// uploaded images
func (s *CatalogService) Seed() error {
	count, err := s.letters.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := 0; i < 26; i++ {
		upper := string(rune('A' + i))
		lower := string(rune('a' + i))
		image := defaultImageNames[i]
		order := i + 1

		if _, err := s.letters.Insert(upper, models.CaseUpper, image, order); err != nil {
			return err
		}
		if _, err := s.letters.Insert(lower, models.CaseLower, image, order); err != nil {
			return err
		}
	}

	if err := s.restoreCustomWords(); err != nil {
		log.Printf("Warning: failed to restore custom words: %v", err)
	}
	if err := s.detectImages(); err != nil {
		log.Printf("Warning: failed to detect letter images: %v", err)
	}

	log.Println("Letter catalog seeded")
	return nil
}

// restoreCustomWords re-applies display-word overrides from the sidecar file
func (s *CatalogService) restoreCustomWords() error {
	data, err := os.ReadFile(s.customWordsPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var words map[string]string
	if err := json.Unmarshal(data, &words); err != nil {
		return fmt.Errorf("failed to parse custom words file: %w", err)
	}

	for letter, word := range words {
		w := word
		if err := s.letters.SetDisplayWord(strings.ToUpper(letter), &w); err != nil {
			return err
		}
	}
	return nil
}

// detectImages sets the has_image flag for letters whose uploaded image
// file already exists on disk
func (s *CatalogService) detectImages() error {
	for i := 0; i < 26; i++ {
		letter := string(rune('A' + i))
		if _, err := os.Stat(filepath.Join(s.imagesDir, letter+".png")); err == nil {
			if err := s.letters.SetHasImage(letter, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// ListLetters returns catalog entries, optionally filtered by case type
func (s *CatalogService) ListLetters(caseType string) ([]models.Letter, error) {
	if caseType != "" && caseType != models.CaseUpper && caseType != models.CaseLower {
		return nil, ValidationError{Field: "case_type", Message: "case_type must be upper or lower"}
	}
	letters, err := s.letters.List(caseType)
	if err != nil {
		return nil, err
	}
	if letters == nil {
		letters = []models.Letter{}
	}
	return letters, nil
}

// AdminLetters returns the upper-case catalog rows for the admin view
func (s *CatalogService) AdminLetters() ([]models.Letter, error) {
	return s.letters.AdminLetters()
}

// SetDisplayWord updates the custom display word for a letter and persists
// the override to the sidecar file so a reseed keeps it. An empty word
// clears the override.
func (s *CatalogService) SetDisplayWord(letter, word string) (*string, error) {
	letter, err := normalizeLetter(letter)
	if err != nil {
		return nil, err
	}

	var value *string
	if trimmed := strings.TrimSpace(word); trimmed != "" {
		value = &trimmed
	}

	if err := s.letters.SetDisplayWord(letter, value); err != nil {
		return nil, err
	}

	if err := s.saveCustomWords(); err != nil {
		log.Printf("Warning: failed to save custom words sidecar: %v", err)
	}
	return value, nil
}

// saveCustomWords writes the current overrides to the sidecar file
func (s *CatalogService) saveCustomWords() error {
	words, err := s.letters.CustomWords()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.customWordsPath, data, 0644)
}

// UploadImage resizes an uploaded image to a square PNG and flags the
// letter as having a custom image. Returns the public image path.
func (s *CatalogService) UploadImage(letter string, r io.Reader) (string, error) {
	letter, err := normalizeLetter(letter)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", ValidationError{Field: "image", Message: "file is not a decodable image"}
	}

	resized := imaging.Fill(img, letterImageSize, letterImageSize, imaging.Center, imaging.Lanczos)

	if err := os.MkdirAll(s.imagesDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create images directory: %w", err)
	}

	filename := letter + ".png"
	if err := imaging.Save(resized, filepath.Join(s.imagesDir, filename)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	if err := s.letters.SetHasImage(letter, true); err != nil {
		return "", err
	}
	return "/images/letters/" + filename, nil
}

// RemoveImage deletes a letter's uploaded image and clears its flag
func (s *CatalogService) RemoveImage(letter string) error {
	letter, err := normalizeLetter(letter)
	if err != nil {
		return err
	}

	path := filepath.Join(s.imagesDir, letter+".png")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image: %w", err)
	}

	return s.letters.SetHasImage(letter, false)
}

// normalizeLetter upper-cases and validates a single A-Z letter parameter
func normalizeLetter(letter string) (string, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		return "", ValidationError{Field: "letter", Message: "letter must be a single character A-Z"}
	}
	return letter, nil
}
