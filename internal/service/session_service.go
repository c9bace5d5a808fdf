package service

import "alphabetquest/internal/models"

// SessionService finalizes, prunes and resets review history
type SessionService struct {
	sessions SessionStore
	progress ProgressStore
	profiles ProfileStore
}

// NewSessionService creates a new session lifecycle service
func NewSessionService(sessions SessionStore, progress ProgressStore, profiles ProfileStore) *SessionService {
	return &SessionService{
		sessions: sessions,
		progress: progress,
		profiles: profiles,
	}
}

// CompleteSession stamps completion time and final tallies on an existing
// session. It never creates one.
func (s *SessionService) CompleteSession(sessionID int64, totalCards, correctCount int) (*models.Session, error) {
	if sessionID <= 0 {
		return nil, ValidationError{Field: "session_id", Message: "session_id is required"}
	}
	if totalCards < 0 || correctCount < 0 {
		return nil, ValidationError{Field: "correct_count", Message: "tallies must not be negative"}
	}

	session, err := s.sessions.Complete(sessionID, totalCards, correctCount)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, NotFoundError{Resource: "session", ID: sessionID}
	}
	return session, nil
}

// DeleteSession removes one session scoped to its owning child. Returns
// false, without error, when nothing matched.
func (s *SessionService) DeleteSession(sessionID, childID int64) (bool, error) {
	if sessionID <= 0 {
		return false, ValidationError{Field: "session_id", Message: "session_id is required"}
	}
	if childID <= 0 {
		return false, ValidationError{Field: "child_id", Message: "child_id is required"}
	}
	return s.sessions.Delete(sessionID, childID)
}

// ResetProgress reverts every progress row for (child, mode) to its
// created-state defaults and wipes the session history. Irreversible.
func (s *SessionService) ResetProgress(mode string, childID int64) error {
	if err := validateMode(mode); err != nil {
		return err
	}
	if err := validateChild(s.profiles, childID); err != nil {
		return err
	}

	if err := s.progress.Reset(childID, mode); err != nil {
		return err
	}
	return s.sessions.DeleteAll(childID, mode)
}
