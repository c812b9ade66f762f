// Package quiz holds the quiz session state machine.
package quiz

import (
	"errors"

	"github.com/Chokichi/Chemistry-Quiz-App/internal/generator"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/model"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/pool"
)

// Mode is the question source of a session.
type Mode int

const (
	// ModeNormal draws new questions from the pool.
	ModeNormal Mode = iota
	// ModeReview replays missed questions, most recent first.
	ModeReview
)

func (m Mode) String() string {
	if m == ModeReview {
		return "review"
	}
	return "normal"
}

// Notices shown to the learner.
const (
	NoticeTypo            = "Possible typo: check your spelling"
	NoticeReviewDone      = "No missed questions left to review"
	NoticeNothingToReview = "No missed questions to review yet"
)

var (
	// ErrAwaitingContinue is returned when input arrives before the learner
	// moved past the previous result.
	ErrAwaitingContinue = errors.New("question already answered; continue first")
	// ErrNotAnswered is returned by Continue when the current question is open.
	ErrNotAnswered = errors.New("current question has not been answered")
	// ErrNoQuestion is returned when there is no active question.
	ErrNoQuestion = errors.New("no active question")
	// ErrEmptyPool is returned when the filter selects no elements.
	ErrEmptyPool = errors.New("filter selects no elements")
)

// Stats tracks consecutive correct answers.
type Stats struct {
	Streak     int
	BestStreak int
}

// Result describes a graded answer.
type Result struct {
	Question model.Question
	Input    string
	Status   model.Status
	Revealed bool
	Notice   string
}

// Entry is the latest outcome for one question.
type Entry struct {
	Question model.Question
	Status   model.Status
}

// Session is the complete state of one quiz run.
type Session struct {
	catalog []model.Element
	filter  model.FilterConfig
	modes   model.ModeSet
	gen     *generator.Generator

	pool     []model.Element
	poolSize int
	missed   []model.Question

	entries []Entry
	index   map[string]int

	stats Stats
	mode  Mode

	current    model.Question
	hasCurrent bool
	waiting    bool
	last       Result
	hasLast    bool
}

// NewSession creates a session and fills its first pool. Call Next to draw
// the first question.
func NewSession(catalog []model.Element, filter model.FilterConfig, modes model.ModeSet, gen *generator.Generator) *Session {
	s := &Session{
		catalog: catalog,
		filter:  filter,
		modes:   modes.Clone(),
		gen:     gen,
		index:   map[string]int{},
	}
	s.refill()
	return s
}

// Next makes the next question current.
//
// In review mode the most recently missed question is shown again without
// leaving the queue. An empty queue ends review mode and the returned notice
// says so. In normal mode the pool is refilled when exhausted.
func (s *Session) Next() (string, error) {
	s.waiting = false
	notice := ""
	if s.mode == ModeReview {
		if len(s.missed) > 0 {
			s.setCurrent(s.missed[len(s.missed)-1])
			return "", nil
		}
		s.mode = ModeNormal
		notice = NoticeReviewDone
	}
	if len(s.pool) == 0 {
		s.refill()
	}
	q, rest, ok := s.gen.Next(s.pool, s.modes)
	if !ok {
		s.hasCurrent = false
		return notice, ErrEmptyPool
	}
	s.pool = rest
	s.setCurrent(q)
	return notice, nil
}

// Submit grades input against the current question.
func (s *Session) Submit(input string) (Result, error) {
	if err := s.checkAnswerable(); err != nil {
		return Result{}, err
	}
	q := s.current
	status := Grade(q, input)
	res := Result{Question: q, Input: input, Status: status}
	switch status {
	case model.StatusCorrect:
		s.stats.Streak++
		if s.stats.Streak > s.stats.BestStreak {
			s.stats.BestStreak = s.stats.Streak
		}
		if s.mode == ModeReview {
			s.removeMissed(q.Key())
		}
	case model.StatusClose:
		s.stats.Streak = 0
		res.Notice = NoticeTypo
	default:
		s.miss(q)
	}
	s.finish(res)
	return res, nil
}

// Reveal shows the answer to the current question and counts it as missed.
func (s *Session) Reveal() (Result, error) {
	if err := s.checkAnswerable(); err != nil {
		return Result{}, err
	}
	res := Result{Question: s.current, Status: model.StatusIncorrect, Revealed: true}
	s.miss(s.current)
	s.finish(res)
	return res, nil
}

// Continue moves past an answered question.
func (s *Session) Continue() (string, error) {
	if !s.waiting {
		return "", ErrNotAnswered
	}
	return s.Next()
}

// EnterReview switches to review mode and shows the latest missed question.
// With nothing to review the session stays in normal mode.
func (s *Session) EnterReview() (string, error) {
	if len(s.missed) == 0 {
		return NoticeNothingToReview, nil
	}
	s.mode = ModeReview
	return s.Next()
}

// ExitReview returns to normal mode and draws a fresh question.
func (s *Session) ExitReview() (string, error) {
	s.mode = ModeNormal
	return s.Next()
}

// ToggleReview flips between normal and review mode.
func (s *Session) ToggleReview() (string, error) {
	if s.mode == ModeReview {
		return s.ExitReview()
	}
	return s.EnterReview()
}

// UpdateFilter replaces the filter, rebuilds the pool, resets the streaks and
// draws a new question from the new pool. Review mode ends; the missed queue
// is kept.
func (s *Session) UpdateFilter(cfg model.FilterConfig) (string, error) {
	s.filter = cfg
	s.mode = ModeNormal
	s.stats = Stats{}
	s.refill()
	return s.Next()
}

// SetModes replaces the enabled question types. It applies from the next
// question on.
func (s *Session) SetModes(modes model.ModeSet) {
	s.modes = modes.Clone()
}

// ToggleMode flips a single question type.
func (s *Session) ToggleMode(t model.QuestionType) {
	s.modes[t] = !s.modes[t]
}

// Current returns the active question.
func (s *Session) Current() (model.Question, bool) {
	return s.current, s.hasCurrent
}

// LastResult returns the result of the latest answer while it is on screen.
func (s *Session) LastResult() (Result, bool) {
	return s.last, s.hasLast && s.waiting
}

// Stats returns streak counters.
func (s *Session) Stats() Stats { return s.stats }

// Mode returns the current question source.
func (s *Session) Mode() Mode { return s.mode }

// Waiting reports whether the session waits for Continue.
func (s *Session) Waiting() bool { return s.waiting }

// Filter returns the active filter.
func (s *Session) Filter() model.FilterConfig { return s.filter }

// Modes returns a copy of the enabled question types.
func (s *Session) Modes() model.ModeSet { return s.modes.Clone() }

// PoolSize is the number of elements selected by the last pool build.
func (s *Session) PoolSize() int { return s.poolSize }

// PoolRemaining is the number of elements not yet asked in this cycle.
func (s *Session) PoolRemaining() int { return len(s.pool) }

// MissedCount is the length of the review queue.
func (s *Session) MissedCount() int { return len(s.missed) }

// Missed returns the review queue, oldest first.
func (s *Session) Missed() []model.Question {
	return append([]model.Question(nil), s.missed...)
}

// Answers returns the latest outcome per question in first-answered order.
func (s *Session) Answers() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Counts aggregates the latest outcome per question.
func (s *Session) Counts() model.Counts {
	var c model.Counts
	for _, e := range s.entries {
		c.Add(e.Status)
	}
	return c
}

func (s *Session) checkAnswerable() error {
	if !s.hasCurrent {
		return ErrNoQuestion
	}
	if s.waiting {
		return ErrAwaitingContinue
	}
	return nil
}

func (s *Session) setCurrent(q model.Question) {
	s.current = q
	s.hasCurrent = true
	s.hasLast = false
}

func (s *Session) finish(res Result) {
	s.record(res.Question, res.Status)
	s.last = res
	s.hasLast = true
	s.waiting = true
}

func (s *Session) refill() {
	s.pool = pool.Build(s.catalog, s.filter)
	s.gen.Shuffle(s.pool)
	s.poolSize = len(s.pool)
}

func (s *Session) miss(q model.Question) {
	s.stats.Streak = 0
	if s.mode == ModeReview {
		return
	}
	for _, m := range s.missed {
		if m.Key() == q.Key() {
			return
		}
	}
	s.missed = append(s.missed, q)
}

func (s *Session) removeMissed(key string) {
	for i := len(s.missed) - 1; i >= 0; i-- {
		if s.missed[i].Key() == key {
			s.missed = append(s.missed[:i], s.missed[i+1:]...)
			return
		}
	}
}

func (s *Session) record(q model.Question, status model.Status) {
	key := q.Key()
	if i, ok := s.index[key]; ok {
		s.entries[i].Status = status
		return
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, Entry{Question: q, Status: status})
}
