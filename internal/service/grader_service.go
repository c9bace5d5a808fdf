package service

import (
	"math"
	"time"

	"alphabetquest/internal/models"
)

// GraderService applies one pass/fail outcome to one letter's mastery record
type GraderService struct {
	progress ProgressStore
	now      func() time.Time
}

// NewGraderService creates a new grader service
func NewGraderService(progress ProgressStore) *GraderService {
	return &GraderService{progress: progress, now: time.Now}
}

// GradeCard updates the (child, letter, mode) progress row for the given
// outcome inside a single transaction and returns the recomputed snapshot.
// A missing progress row is a NotFoundError, never auto-created.
func (s *GraderService) GradeCard(letterID int64, mode string, childID int64, correct bool) (*models.GradeResult, error) {
	if err := validateMode(mode); err != nil {
		return nil, err
	}
	if childID <= 0 {
		return nil, ValidationError{Field: "child_id", Message: "child_id is required"}
	}
	if letterID <= 0 {
		return nil, ValidationError{Field: "letter_id", Message: "letter_id is required"}
	}

	var result *models.GradeResult
	updated, err := s.progress.UpdateProgress(childID, letterID, mode, func(p *models.Progress) error {
		result = applyGrade(p, correct, s.now().UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, NotFoundError{Resource: "progress record for letter", ID: letterID}
	}

	return result, nil
}

// applyGrade is the ease/interval state transition. It mutates p in place
// and returns the snapshot reported to the caller.
//
// The first-ever grading stamps introduced_date and moves the letter to
// learning regardless of outcome. A correct answer grows the interval
// (1, 3, then interval*ease rounded), nudges ease up to at most 2.5, and
// promotes to mastered only at 5+ repetitions with a 14+ day interval. A
// miss resets repetitions and interval, drops ease by 0.2 (floor 1.3), and
// makes the letter due again today. recent_fails clears only after three
// consecutive correct answers, so one lucky guess does not erase problem
// status.
func applyGrade(p *models.Progress, correct bool, now time.Time) *models.GradeResult {
	firstGrading := p.IntroducedDate == nil
	if firstGrading {
		introduced := now.Format(models.DateTimeLayout)
		p.IntroducedDate = &introduced
		p.Status = models.StatusLearning
	}

	if correct {
		p.Repetitions++
		switch p.Repetitions {
		case 1:
			p.IntervalDays = 1
		case 2:
			p.IntervalDays = 3
		default:
			p.IntervalDays = int(math.Round(float64(p.IntervalDays) * p.EaseFactor))
		}
		p.EaseFactor = math.Min(models.MaxEaseFactor, p.EaseFactor+0.1)

		if p.Repetitions >= 3 {
			p.RecentFails = 0
		}

		if p.Repetitions >= 5 && p.IntervalDays >= 14 {
			p.Status = models.StatusMastered
		} else {
			p.Status = models.StatusLearning
		}
	} else {
		p.Repetitions = 0
		p.IntervalDays = 1
		p.EaseFactor = math.Max(models.MinEaseFactor, p.EaseFactor-0.2)
		p.TimesFailed++
		p.RecentFails++
		p.Status = models.StatusLearning
	}

	next := now
	if correct {
		next = now.AddDate(0, 0, p.IntervalDays)
	}
	nextReview := next.Format(models.DateLayout)
	p.NextReviewDate = &nextReview

	lastReviewed := now.Format(models.DateTimeLayout)
	p.LastReviewed = &lastReviewed

	return &models.GradeResult{
		LetterID:       p.LetterID,
		Correct:        correct,
		Status:         p.Status,
		EaseFactor:     p.EaseFactor,
		IntervalDays:   p.IntervalDays,
		Repetitions:    p.Repetitions,
		RecentFails:    p.RecentFails,
		NextReviewDate: nextReview,
		FirstGrading:   firstGrading,
	}
}
