package service

import (
	"fmt"
	"time"

	"alphabetquest/internal/models"
)

// fakeProgressStore is an in-memory ProgressStore. The pool lists are set
// directly by each test; the rows map backs UpdateProgress and Get-style
// calls, keyed by child:letter:mode.
type fakeProgressStore struct {
	problem  []models.ProgressLetter
	due      []models.ProgressLetter
	fresh    []models.ProgressLetter
	mastered []models.ProgressLetter
	learning []models.ProgressLetter

	learningTotal int
	rows          map[string]*models.Progress
	counts        models.StatusCounts
	allLetters    []models.ProgressLetter

	resetCalls  []string
	seededKids  []int64
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{rows: make(map[string]*models.Progress)}
}

func progressKey(childID, letterID int64, mode string) string {
	return fmt.Sprintf("%d:%d:%s", childID, letterID, mode)
}

func (f *fakeProgressStore) putRow(p models.Progress) {
	row := p
	f.rows[progressKey(p.ChildID, p.LetterID, p.Mode)] = &row
}

func (f *fakeProgressStore) ProblemDue(childID int64, mode, today string) ([]models.ProgressLetter, error) {
	return f.problem, nil
}

func (f *fakeProgressStore) DueForReview(childID int64, mode, today string) ([]models.ProgressLetter, error) {
	return f.due, nil
}

func (f *fakeProgressStore) Unintroduced(childID int64, mode string, limit int) ([]models.ProgressLetter, error) {
	return f.fresh, nil
}

func (f *fakeProgressStore) Mastered(childID int64, mode string, limit int) ([]models.ProgressLetter, error) {
	return f.mastered, nil
}

func (f *fakeProgressStore) Learning(childID int64, mode string, limit int) ([]models.ProgressLetter, error) {
	return f.learning, nil
}

func (f *fakeProgressStore) LearningCount(childID int64, mode string) (int, error) {
	return f.learningTotal, nil
}

func (f *fakeProgressStore) UpdateProgress(childID, letterID int64, mode string, fn func(p *models.Progress) error) (*models.Progress, error) {
	row, ok := f.rows[progressKey(childID, letterID, mode)]
	if !ok {
		return nil, nil
	}
	if err := fn(row); err != nil {
		return nil, err
	}
	updated := *row
	return &updated, nil
}

func (f *fakeProgressStore) Reset(childID int64, mode string) error {
	f.resetCalls = append(f.resetCalls, fmt.Sprintf("%d:%s", childID, mode))
	return nil
}

func (f *fakeProgressStore) StatusCounts(childID int64, mode string) (models.StatusCounts, error) {
	return f.counts, nil
}

func (f *fakeProgressStore) Problem(childID int64, mode string) ([]models.ProgressLetter, error) {
	return f.problem, nil
}

func (f *fakeProgressStore) LettersWithProgress(childID int64, mode string) ([]models.ProgressLetter, error) {
	return f.allLetters, nil
}

func (f *fakeProgressStore) CreateForProfile(childID int64) error {
	f.seededKids = append(f.seededKids, childID)
	return nil
}

// fakeSessionStore is an in-memory SessionStore
type fakeSessionStore struct {
	sessions map[int64]*models.Session
	nextID   int64

	completedCount int
	lastCompleted  *models.Session
	deleteAllCalls []string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[int64]*models.Session), nextID: 1}
}

func (f *fakeSessionStore) Create(childID int64, mode string, totalCards int, newLetterIDs string) (*models.Session, error) {
	session := &models.Session{
		ID:                   f.nextID,
		ChildID:              childID,
		Mode:                 mode,
		StartedAt:            time.Now().UTC().Format(models.DateTimeLayout),
		TotalCards:           totalCards,
		NewLettersIntroduced: newLetterIDs,
	}
	f.sessions[f.nextID] = session
	f.nextID++
	return session, nil
}

func (f *fakeSessionStore) GetByID(sessionID int64) (*models.Session, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionStore) Complete(sessionID int64, totalCards, correctCount int) (*models.Session, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	completedAt := time.Now().UTC().Format(models.DateTimeLayout)
	session.CompletedAt = &completedAt
	session.TotalCards = totalCards
	session.CorrectCount = correctCount
	copied := *session
	return &copied, nil
}

func (f *fakeSessionStore) Delete(sessionID, childID int64) (bool, error) {
	session, ok := f.sessions[sessionID]
	if !ok || session.ChildID != childID {
		return false, nil
	}
	delete(f.sessions, sessionID)
	return true, nil
}

func (f *fakeSessionStore) DeleteAll(childID int64, mode string) error {
	f.deleteAllCalls = append(f.deleteAllCalls, fmt.Sprintf("%d:%s", childID, mode))
	for id, session := range f.sessions {
		if session.ChildID == childID && session.Mode == mode {
			delete(f.sessions, id)
		}
	}
	return nil
}

func (f *fakeSessionStore) RecentCompleted(childID int64, mode string, limit int) ([]models.Session, error) {
	var out []models.Session
	for _, session := range f.sessions {
		if session.ChildID == childID && session.Mode == mode && session.CompletedAt != nil {
			out = append(out, *session)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSessionStore) CompletedCount(childID int64, mode string) (int, error) {
	return f.completedCount, nil
}

func (f *fakeSessionStore) LastCompleted(childID int64, mode string) (*models.Session, error) {
	return f.lastCompleted, nil
}

// fakeProfileStore is an in-memory ProfileStore
type fakeProfileStore struct {
	profiles map[int64]*models.Profile
	nextID   int64
}

func newFakeProfileStore(ids ...int64) *fakeProfileStore {
	f := &fakeProfileStore{profiles: make(map[int64]*models.Profile), nextID: 1}
	for _, id := range ids {
		f.profiles[id] = &models.Profile{ID: id, Name: fmt.Sprintf("kid-%d", id), Avatar: "🧒"}
		if id >= f.nextID {
			f.nextID = id + 1
		}
	}
	return f
}

func (f *fakeProfileStore) Create(name, avatar string) (*models.Profile, error) {
	profile := &models.Profile{ID: f.nextID, Name: name, Avatar: avatar, CreatedAt: time.Now()}
	f.profiles[f.nextID] = profile
	f.nextID++
	return profile, nil
}

func (f *fakeProfileStore) GetByID(id int64) (*models.Profile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeProfileStore) List() ([]models.Profile, error) {
	var out []models.Profile
	for _, profile := range f.profiles {
		out = append(out, *profile)
	}
	return out, nil
}

func (f *fakeProfileStore) Update(id int64, name, avatar string) error {
	if profile, ok := f.profiles[id]; ok {
		profile.Name = name
		profile.Avatar = avatar
	}
	return nil
}

func (f *fakeProfileStore) Delete(id int64) error {
	delete(f.profiles, id)
	return nil
}

func (f *fakeProfileStore) Count() (int, error) {
	return len(f.profiles), nil
}

func (f *fakeProfileStore) Exists(id int64) (bool, error) {
	_, ok := f.profiles[id]
	return ok, nil
}

// progressLetter builds a joined candidate row for pool lists
func progressLetter(childID, letterID int64, mode, character string) models.ProgressLetter {
	return models.ProgressLetter{
		Progress: models.Progress{
			ChildID:      childID,
			LetterID:     letterID,
			Mode:         mode,
			Status:       models.StatusNew,
			EaseFactor:   models.DefaultEaseFactor,
			IntervalDays: 1,
		},
		Character: character,
		CaseType:  models.CaseUpper,
	}
}
