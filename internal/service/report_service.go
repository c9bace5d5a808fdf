package service

import "alphabetquest/internal/models"

// recentSessionLimit bounds the session history shown on the dashboard
const recentSessionLimit = 5

// ReportService aggregates mastery records into display views
type ReportService struct {
	progress ProgressStore
	sessions SessionStore
	profiles ProfileStore
}

// NewReportService creates a new progress reporter
func NewReportService(progress ProgressStore, sessions SessionStore, profiles ProfileStore) *ReportService {
	return &ReportService{
		progress: progress,
		sessions: sessions,
		profiles: profiles,
	}
}

// GetProgressSummary returns status tallies, the problem-letter list and the
// most recent completed sessions for (child, mode). The problem count covers
// every letter with recent_fails >= 2 whether or not it is currently due.
func (s *ReportService) GetProgressSummary(mode string, childID int64) (*models.ProgressSummary, error) {
	if err := validateMode(mode); err != nil {
		return nil, err
	}
	if err := validateChild(s.profiles, childID); err != nil {
		return nil, err
	}

	counts, err := s.progress.StatusCounts(childID, mode)
	if err != nil {
		return nil, err
	}

	problemLetters, err := s.progress.Problem(childID, mode)
	if err != nil {
		return nil, err
	}
	counts.Problem = len(problemLetters)

	recentSessions, err := s.sessions.RecentCompleted(childID, mode, recentSessionLimit)
	if err != nil {
		return nil, err
	}

	if problemLetters == nil {
		problemLetters = []models.ProgressLetter{}
	}
	if recentSessions == nil {
		recentSessions = []models.Session{}
	}

	return &models.ProgressSummary{
		Counts:         counts,
		ProblemLetters: problemLetters,
		RecentSessions: recentSessions,
	}, nil
}

// GetProgressLetters returns the full per-letter join for detail views.
// Unfiltered and unpaginated: the catalog bounds it at 26 or 52 rows.
func (s *ReportService) GetProgressLetters(mode string, childID int64) ([]models.ProgressLetter, error) {
	if err := validateMode(mode); err != nil {
		return nil, err
	}
	if err := validateChild(s.profiles, childID); err != nil {
		return nil, err
	}

	letters, err := s.progress.LettersWithProgress(childID, mode)
	if err != nil {
		return nil, err
	}
	if letters == nil {
		letters = []models.ProgressLetter{}
	}
	return letters, nil
}
