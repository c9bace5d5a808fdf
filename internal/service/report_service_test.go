package service

import (
	"testing"

	"alphabetquest/internal/models"
)

func TestGetProgressSummary(t *testing.T) {
	progress := newFakeProgressStore()
	progress.counts = models.StatusCounts{Mastered: 4, Learning: 6, New: 16}
	progress.problem = []models.ProgressLetter{
		progressLetter(1, 2, models.ModeUpper, "B"),
		progressLetter(1, 5, models.ModeUpper, "E"),
	}
	s := NewReportService(progress, newFakeSessionStore(), newFakeProfileStore(1))

	summary, err := s.GetProgressSummary(models.ModeUpper, 1)
	if err != nil {
		t.Fatalf("GetProgressSummary() error = %v", err)
	}

	if summary.Counts.Mastered != 4 || summary.Counts.Learning != 6 || summary.Counts.New != 16 {
		t.Errorf("counts = %+v, want 4/6/16", summary.Counts)
	}
	if summary.Counts.Problem != 2 {
		t.Errorf("problem count = %d, want the full problem list length 2", summary.Counts.Problem)
	}
	if len(summary.ProblemLetters) != 2 {
		t.Errorf("problem letters = %d, want 2", len(summary.ProblemLetters))
	}
}

func TestGetProgressSummaryEmptyIsNotNil(t *testing.T) {
	s := NewReportService(newFakeProgressStore(), newFakeSessionStore(), newFakeProfileStore(1))

	summary, err := s.GetProgressSummary(models.ModeBoth, 1)
	if err != nil {
		t.Fatalf("GetProgressSummary() error = %v", err)
	}

	if summary.ProblemLetters == nil {
		t.Error("ProblemLetters is nil, want empty slice")
	}
	if summary.RecentSessions == nil {
		t.Error("RecentSessions is nil, want empty slice")
	}
}

func TestGetProgressSummaryIsReadOnly(t *testing.T) {
	progress := newFakeProgressStore()
	progress.putRow(defaultRow(1, 1, models.ModeUpper))
	s := NewReportService(progress, newFakeSessionStore(), newFakeProfileStore(1))

	before := *progress.rows[progressKey(1, 1, models.ModeUpper)]
	if _, err := s.GetProgressSummary(models.ModeUpper, 1); err != nil {
		t.Fatalf("GetProgressSummary() error = %v", err)
	}
	after := *progress.rows[progressKey(1, 1, models.ModeUpper)]

	if before != after {
		t.Errorf("summary mutated progress: before=%+v after=%+v", before, after)
	}
}

func TestGetProgressLetters(t *testing.T) {
	progress := newFakeProgressStore()
	progress.allLetters = []models.ProgressLetter{
		progressLetter(1, 1, models.ModeUpper, "A"),
		progressLetter(1, 2, models.ModeUpper, "B"),
	}
	s := NewReportService(progress, newFakeSessionStore(), newFakeProfileStore(1))

	letters, err := s.GetProgressLetters(models.ModeUpper, 1)
	if err != nil {
		t.Fatalf("GetProgressLetters() error = %v", err)
	}
	if len(letters) != 2 {
		t.Errorf("got %d letters, want 2", len(letters))
	}
}

func TestReportValidation(t *testing.T) {
	s := NewReportService(newFakeProgressStore(), newFakeSessionStore(), newFakeProfileStore(1))

	if _, err := s.GetProgressSummary("sideways", 1); err == nil {
		t.Error("expected error for invalid mode")
	}
	if _, err := s.GetProgressLetters(models.ModeUpper, 99); err == nil {
		t.Error("expected error for unknown child")
	}
}
