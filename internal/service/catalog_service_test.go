package service

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"alphabetquest/internal/models"
)

// fakeLetterStore is an in-memory LetterStore
type fakeLetterStore struct {
	letters []models.Letter
	nextID  int64
}

func newFakeLetterStore() *fakeLetterStore {
	return &fakeLetterStore{nextID: 1}
}

func (f *fakeLetterStore) List(caseType string) ([]models.Letter, error) {
	if caseType == "" {
		return f.letters, nil
	}
	var out []models.Letter
	for _, l := range f.letters {
		if l.CaseType == caseType {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLetterStore) AdminLetters() ([]models.Letter, error) {
	return f.List(models.CaseUpper)
}

func (f *fakeLetterStore) Count() (int, error) {
	return len(f.letters), nil
}

func (f *fakeLetterStore) Insert(character, caseType, imageName string, displayOrder int) (int64, error) {
	id := f.nextID
	f.nextID++
	f.letters = append(f.letters, models.Letter{
		ID:           id,
		Character:    character,
		CaseType:     caseType,
		ImageName:    imageName,
		DisplayOrder: displayOrder,
	})
	return id, nil
}

func (f *fakeLetterStore) SetDisplayWord(letter string, word *string) error {
	for i := range f.letters {
		if strings.EqualFold(f.letters[i].Character, letter) {
			f.letters[i].DisplayWord = word
		}
	}
	return nil
}

func (f *fakeLetterStore) SetHasImage(letter string, hasImage bool) error {
	for i := range f.letters {
		if strings.EqualFold(f.letters[i].Character, letter) {
			f.letters[i].HasImage = hasImage
		}
	}
	return nil
}

func (f *fakeLetterStore) CustomWords() (map[string]string, error) {
	words := make(map[string]string)
	for _, l := range f.letters {
		if l.CaseType == models.CaseUpper && l.DisplayWord != nil {
			words[l.Character] = *l.DisplayWord
		}
	}
	return words, nil
}

func newTestCatalog(t *testing.T, letters *fakeLetterStore) *CatalogService {
	t.Helper()
	dir := t.TempDir()
	return NewCatalogService(letters, dir, filepath.Join(dir, "custom-words.json"))
}

func TestSeedCreatesFullCatalog(t *testing.T) {
	letters := newFakeLetterStore()
	s := newTestCatalog(t, letters)

	if err := s.Seed(); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	if len(letters.letters) != 52 {
		t.Fatalf("got %d letters, want 52", len(letters.letters))
	}

	upper, _ := letters.List(models.CaseUpper)
	if len(upper) != 26 {
		t.Errorf("got %d upper-case letters, want 26", len(upper))
	}
	if upper[0].Character != "A" || upper[0].ImageName != "anna" || upper[0].DisplayOrder != 1 {
		t.Errorf("first letter = %+v, want A/anna/1", upper[0])
	}
	if upper[25].Character != "Z" || upper[25].ImageName != "zuma" {
		t.Errorf("last letter = %+v, want Z/zuma", upper[25])
	}
}

func TestSeedSkipsExistingCatalog(t *testing.T) {
	letters := newFakeLetterStore()
	letters.Insert("A", models.CaseUpper, "anna", 1)
	s := newTestCatalog(t, letters)

	if err := s.Seed(); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if len(letters.letters) != 1 {
		t.Errorf("reseeded a non-empty catalog: %d letters", len(letters.letters))
	}
}

func TestSeedRestoresCustomWords(t *testing.T) {
	letters := newFakeLetterStore()
	dir := t.TempDir()
	wordsPath := filepath.Join(dir, "custom-words.json")
	if err := os.WriteFile(wordsPath, []byte(`{"B": "Bear"}`), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewCatalogService(letters, dir, wordsPath)

	if err := s.Seed(); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	words, _ := letters.CustomWords()
	if words["B"] != "Bear" {
		t.Errorf("custom word for B = %q, want Bear", words["B"])
	}
}

func TestSeedDetectsExistingImages(t *testing.T) {
	letters := newFakeLetterStore()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "C.png"), []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewCatalogService(letters, dir, filepath.Join(dir, "custom-words.json"))

	if err := s.Seed(); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	for _, l := range letters.letters {
		if l.Character == "C" && !l.HasImage {
			t.Error("has_image not set for C with an existing file")
		}
		if l.Character == "D" && l.HasImage {
			t.Error("has_image set for D with no file")
		}
	}
}

func TestSetDisplayWord(t *testing.T) {
	letters := newFakeLetterStore()
	letters.Insert("A", models.CaseUpper, "anna", 1)
	letters.Insert("a", models.CaseLower, "anna", 1)
	s := newTestCatalog(t, letters)

	word, err := s.SetDisplayWord("a", " Apple ")
	if err != nil {
		t.Fatalf("SetDisplayWord() error = %v", err)
	}
	if word == nil || *word != "Apple" {
		t.Fatalf("word = %v, want trimmed Apple", word)
	}

	// Sidecar file persists the override
	data, err := os.ReadFile(s.customWordsPath)
	if err != nil {
		t.Fatalf("sidecar not written: %v", err)
	}
	if !strings.Contains(string(data), "Apple") {
		t.Errorf("sidecar missing word: %s", data)
	}

	// Clearing
	word, err = s.SetDisplayWord("A", "")
	if err != nil {
		t.Fatalf("SetDisplayWord() error = %v", err)
	}
	if word != nil {
		t.Errorf("word = %v, want nil after clearing", word)
	}
}

func TestSetDisplayWordRejectsBadLetter(t *testing.T) {
	s := newTestCatalog(t, newFakeLetterStore())

	for _, letter := range []string{"", "AB", "1", "é"} {
		if _, err := s.SetDisplayWord(letter, "word"); err == nil {
			t.Errorf("letter %q: expected validation error", letter)
		}
	}
}

func TestUploadImage(t *testing.T) {
	letters := newFakeLetterStore()
	letters.Insert("A", models.CaseUpper, "anna", 1)
	s := newTestCatalog(t, letters)

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 800, 600))); err != nil {
		t.Fatal(err)
	}

	path, err := s.UploadImage("a", &buf)
	if err != nil {
		t.Fatalf("UploadImage() error = %v", err)
	}
	if path != "/images/letters/A.png" {
		t.Errorf("path = %q, want /images/letters/A.png", path)
	}

	if _, err := os.Stat(filepath.Join(s.imagesDir, "A.png")); err != nil {
		t.Errorf("image file not written: %v", err)
	}
	if !letters.letters[0].HasImage {
		t.Error("has_image not set after upload")
	}
}

func TestUploadImageRejectsGarbage(t *testing.T) {
	s := newTestCatalog(t, newFakeLetterStore())

	_, err := s.UploadImage("A", strings.NewReader("not an image"))
	var validation ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestRemoveImage(t *testing.T) {
	letters := newFakeLetterStore()
	letters.Insert("A", models.CaseUpper, "anna", 1)
	s := newTestCatalog(t, letters)

	if err := os.WriteFile(filepath.Join(s.imagesDir, "A.png"), []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}
	letters.SetHasImage("A", true)

	if err := s.RemoveImage("A"); err != nil {
		t.Fatalf("RemoveImage() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.imagesDir, "A.png")); !os.IsNotExist(err) {
		t.Error("image file still present")
	}
	if letters.letters[0].HasImage {
		t.Error("has_image still set")
	}

	// Removing again is not an error
	if err := s.RemoveImage("A"); err != nil {
		t.Errorf("second RemoveImage() error = %v", err)
	}
}

func TestListLettersValidation(t *testing.T) {
	s := newTestCatalog(t, newFakeLetterStore())

	if _, err := s.ListLetters("mixed"); err == nil {
		t.Error("expected error for invalid case_type")
	}
	letters, err := s.ListLetters("")
	if err != nil {
		t.Fatalf("ListLetters() error = %v", err)
	}
	if letters == nil {
		t.Error("letters is nil, want empty slice")
	}
}
