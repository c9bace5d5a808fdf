package service

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"alphabetquest/internal/models"
)

const (
	// DefaultBatchSize is the soft target when the caller gives no count
	DefaultBatchSize = 10

	// learningCap bounds how many letters may be in 'learning' at once
	// before new introductions stop
	learningCap = 7

	// firstSessionIntro is how many new letters the very first session may
	// introduce; steadyIntro applies afterwards, gated on performance
	firstSessionIntro = 4
	steadyIntro       = 2

	// introThreshold is the minimum success rate of the last completed
	// session required to keep introducing new letters
	introThreshold = 0.7
)

// SchedulerService selects the ordered batch of letters for a review session
type SchedulerService struct {
	progress ProgressStore
	sessions SessionStore
	profiles ProfileStore
	now      func() time.Time
}

// NewSchedulerService creates a new scheduler service
func NewSchedulerService(progress ProgressStore, sessions SessionStore, profiles ProfileStore) *SchedulerService {
	return &SchedulerService{
		progress: progress,
		sessions: sessions,
		profiles: profiles,
		now:      time.Now,
	}
}

// cardPool is one prioritized candidate list for batch assembly. maxTake
// of 0 means the pool is bounded only by the batch target.
type cardPool struct {
	rows      []models.ProgressLetter
	isNew     bool
	isProblem bool
	maxTake   int
}

// BuildSession assembles a batch of cards for (child, mode) and records a
// session row for it. targetCount is a soft target: the batch may come up
// short when no pool has eligible letters left, and the relaxed fill pools
// only guarantee the target while unseen or learning letters remain.
func (s *SchedulerService) BuildSession(mode string, childID int64, targetCount int) (*models.SessionBatch, error) {
	if err := validateMode(mode); err != nil {
		return nil, err
	}
	if err := validateChild(s.profiles, childID); err != nil {
		return nil, err
	}
	if targetCount <= 0 {
		targetCount = DefaultBatchSize
	}

	today := s.now().UTC().Format(models.DateLayout)

	problem, err := s.progress.ProblemDue(childID, mode, today)
	if err != nil {
		return nil, err
	}
	due, err := s.progress.DueForReview(childID, mode, today)
	if err != nil {
		return nil, err
	}
	fresh, err := s.progress.Unintroduced(childID, mode, targetCount)
	if err != nil {
		return nil, err
	}
	mastered, err := s.progress.Mastered(childID, mode, targetCount)
	if err != nil {
		return nil, err
	}
	learning, err := s.progress.Learning(childID, mode, targetCount)
	if err != nil {
		return nil, err
	}

	introCap, err := s.introductionCap(childID, mode)
	if err != nil {
		return nil, err
	}

	pools := make([]cardPool, 0, 6)
	pools = append(pools, cardPool{rows: problem, isProblem: true})
	pools = append(pools, cardPool{rows: due})
	if introCap > 0 {
		pools = append(pools, cardPool{rows: fresh, isNew: true, maxTake: introCap})
	}
	pools = append(pools, cardPool{rows: mastered})
	// Relaxed fills: ignore the introduction gate, then due dates
	pools = append(pools, cardPool{rows: fresh, isNew: true})
	pools = append(pools, cardPool{rows: learning})

	cards := assembleBatch(targetCount, pools)

	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	session, err := s.sessions.Create(childID, mode, len(cards), joinNewLetterIDs(cards))
	if err != nil {
		return nil, err
	}

	return &models.SessionBatch{SessionID: session.ID, Cards: cards}, nil
}

// introductionCap decides how many brand-new letters this batch may contain.
// Zero blocks the gated introduction pool entirely; the relaxed fill still
// runs afterwards.
func (s *SchedulerService) introductionCap(childID int64, mode string) (int, error) {
	learningCount, err := s.progress.LearningCount(childID, mode)
	if err != nil {
		return 0, err
	}
	if learningCount >= learningCap {
		return 0, nil
	}

	completed, err := s.sessions.CompletedCount(childID, mode)
	if err != nil {
		return 0, err
	}
	if completed == 0 {
		// Very first session for this (child, mode)
		return firstSessionIntro, nil
	}

	last, err := s.sessions.LastCompleted(childID, mode)
	if err != nil {
		return 0, err
	}
	if last == nil || last.TotalCards == 0 {
		return 0, nil
	}

	rate := float64(last.CorrectCount) / float64(last.TotalCards)
	if rate < introThreshold {
		return 0, nil
	}

	take := steadyIntro
	if room := learningCap - learningCount; room < take {
		take = room
	}
	return take, nil
}

// assembleBatch walks the pools in priority order, deduplicating by letter
// id and stopping at the target. Pure so each pool's contribution can be
// tested in isolation.
func assembleBatch(target int, pools []cardPool) []models.Card {
	cards := make([]models.Card, 0, target)
	seen := make(map[int64]bool)

	for _, pool := range pools {
		taken := 0
		for _, row := range pool.rows {
			if len(cards) >= target {
				return cards
			}
			if pool.maxTake > 0 && taken >= pool.maxTake {
				break
			}
			if seen[row.LetterID] {
				continue
			}
			seen[row.LetterID] = true
			cards = append(cards, models.Card{
				LetterID:    row.LetterID,
				Character:   row.Character,
				CaseType:    row.CaseType,
				ImageName:   row.ImageName,
				HasImage:    row.HasImage,
				DisplayWord: row.DisplayWord,
				IsNew:       pool.isNew,
				IsProblem:   pool.isProblem,
			})
			taken++
		}
	}

	return cards
}

// joinNewLetterIDs records which letters this batch introduces
func joinNewLetterIDs(cards []models.Card) string {
	var ids []string
	for _, card := range cards {
		if card.IsNew {
			ids = append(ids, strconv.FormatInt(card.LetterID, 10))
		}
	}
	return strings.Join(ids, ",")
}
