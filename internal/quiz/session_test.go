package quiz

import (
	"errors"
	"testing"

	"github.com/Chokichi/Chemistry-Quiz-App/internal/catalog"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/generator"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/model"
)

func charge(n int) *int { return &n }

var (
	hydrogen = model.Element{Number: 1, Symbol: "H", Name: "Hydrogen", Group: 1, Period: 1, Family: model.FamilyNonmetal, Charge: charge(1)}
	oxygen   = model.Element{Number: 8, Symbol: "O", Name: "Oxygen", Group: 16, Period: 2, Family: model.FamilyChalcogen, Charge: charge(-2)}
)

func newTestSession(t *testing.T, elements []model.Element, modes model.ModeSet) *Session {
	t.Helper()
	s := NewSession(elements, model.FilterConfig{MaxRow: model.MaxPeriod}, modes, generator.NewWithSeed(1))
	if _, err := s.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	return s
}

func mustCurrent(t *testing.T, s *Session) model.Question {
	t.Helper()
	q, ok := s.Current()
	if !ok {
		t.Fatalf("expected an active question")
	}
	return q
}

func TestSubmitCorrectHydrogen(t *testing.T) {
	s := NewSession([]model.Element{hydrogen, oxygen}, model.FilterConfig{MaxRow: 7}, model.ModeSet{model.SymbolToName: true}, generator.NewWithSeed(3))
	s.pool = []model.Element{oxygen, hydrogen}
	if _, err := s.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	q := mustCurrent(t, s)
	if q.Symbol != "H" || q.Type != model.SymbolToName {
		t.Fatalf("unexpected question: %+v", q)
	}
	res, err := s.Submit("Hydrogen")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Status != model.StatusCorrect {
		t.Fatalf("expected correct, got %s", res.Status)
	}
	if s.Stats().Streak != 1 || s.Stats().BestStreak != 1 {
		t.Fatalf("unexpected stats: %+v", s.Stats())
	}
	if s.PoolRemaining() != 1 || s.PoolSize() != 2 {
		t.Fatalf("unexpected pool counts: remaining=%d size=%d", s.PoolRemaining(), s.PoolSize())
	}
}

func TestSubmitWaitsForContinue(t *testing.T) {
	s := newTestSession(t, []model.Element{hydrogen, oxygen}, model.DefaultModes())
	if _, err := s.Continue(); !errors.Is(err, ErrNotAnswered) {
		t.Fatalf("expected ErrNotAnswered, got %v", err)
	}
	if _, err := s.Submit("nope"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !s.Waiting() {
		t.Fatalf("expected waiting state")
	}
	if _, ok := s.LastResult(); !ok {
		t.Fatalf("expected last result while waiting")
	}
	if _, err := s.Submit("again"); !errors.Is(err, ErrAwaitingContinue) {
		t.Fatalf("expected ErrAwaitingContinue, got %v", err)
	}
	if _, err := s.Reveal(); !errors.Is(err, ErrAwaitingContinue) {
		t.Fatalf("expected ErrAwaitingContinue on reveal, got %v", err)
	}
	if _, err := s.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	if s.Waiting() {
		t.Fatalf("expected open question after continue")
	}
}

func TestSubmitCloseAnswer(t *testing.T) {
	s := newTestSession(t, []model.Element{oxygen}, model.ModeSet{model.SymbolToName: true})
	if _, err := s.Submit("Oxygen"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := s.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	if s.Stats().Streak != 1 {
		t.Fatalf("expected streak 1 before the typo, got %+v", s.Stats())
	}
	res, err := s.Submit("oxigen")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Status != model.StatusClose || res.Notice != NoticeTypo {
		t.Fatalf("expected close with typo notice, got %+v", res)
	}
	if st := s.Stats(); st.Streak != 0 || st.BestStreak != 1 {
		t.Fatalf("close answers reset the streak and keep the best, got %+v", st)
	}
	if s.MissedCount() != 0 {
		t.Fatalf("close answers are not queued for review")
	}
	counts := s.Counts()
	if counts.Close != 1 || counts.Total() != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestAnsweredLogOverwrites(t *testing.T) {
	s := newTestSession(t, []model.Element{oxygen}, model.ModeSet{model.SymbolToName: true})
	if _, err := s.Submit("oxigen"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	// Single-element pool: the same question comes back.
	if _, err := s.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	if _, err := s.Submit("Oxygen"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	counts := s.Counts()
	if counts.Correct != 1 || counts.Close != 0 || counts.Total() != 1 {
		t.Fatalf("expected overwritten entry, got %+v", counts)
	}
	answers := s.Answers()
	if len(answers) != 1 || answers[0].Status != model.StatusCorrect {
		t.Fatalf("unexpected answers: %+v", answers)
	}
}

func TestStreakProperties(t *testing.T) {
	s := newTestSession(t, catalog.Default()[:20], model.ModeSet{model.NameToSymbol: true})
	index := catalog.BySymbol(catalog.Default())
	pattern := []bool{true, true, false, true, true, true, false, false, true}
	streak, best, prevBest := 0, 0, 0
	for i, correct := range pattern {
		q := mustCurrent(t, s)
		input := "??"
		if correct {
			input = index[q.Symbol].Symbol
		}
		res, err := s.Submit(input)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if correct {
			streak++
			if res.Status != model.StatusCorrect {
				t.Fatalf("step %d: expected correct, got %s", i, res.Status)
			}
		} else {
			streak = 0
			if res.Status != model.StatusIncorrect {
				t.Fatalf("step %d: expected incorrect, got %s", i, res.Status)
			}
		}
		if streak > best {
			best = streak
		}
		st := s.Stats()
		if st.Streak != streak || st.BestStreak != best {
			t.Fatalf("step %d: got %+v, want streak=%d best=%d", i, st, streak, best)
		}
		if st.BestStreak < prevBest {
			t.Fatalf("best streak decreased")
		}
		prevBest = st.BestStreak
		if _, err := s.Continue(); err != nil {
			t.Fatalf("continue %d: %v", i, err)
		}
	}
}

func TestReviewModeRemovesOnCorrectAndExits(t *testing.T) {
	s := newTestSession(t, []model.Element{hydrogen, oxygen}, model.ModeSet{model.SymbolToName: true})
	missed := mustCurrent(t, s)
	if _, err := s.Submit("wrong"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.MissedCount() != 1 {
		t.Fatalf("expected one missed question")
	}
	if _, err := s.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}

	notice, err := s.EnterReview()
	if err != nil || notice != "" {
		t.Fatalf("enter review: notice=%q err=%v", notice, err)
	}
	if s.Mode() != ModeReview {
		t.Fatalf("expected review mode")
	}
	q := mustCurrent(t, s)
	if q.Key() != missed.Key() {
		t.Fatalf("expected missed question %s, got %s", missed.Key(), q.Key())
	}
	if s.MissedCount() != 1 {
		t.Fatalf("review must not pop the queue before a correct answer")
	}

	// Wrong again in review: stays queued once.
	if _, err := s.Submit("still wrong"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.MissedCount() != 1 {
		t.Fatalf("expected queue length 1, got %d", s.MissedCount())
	}
	if _, err := s.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	if again := mustCurrent(t, s); again.Key() != missed.Key() {
		t.Fatalf("expected the same missed question again")
	}

	if _, err := s.Submit(missed.Answer); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.MissedCount() != 0 {
		t.Fatalf("expected queue to be empty")
	}
	notice, err = s.Continue()
	if err != nil {
		t.Fatalf("continue: %v", err)
	}
	if notice != NoticeReviewDone {
		t.Fatalf("expected review done notice, got %q", notice)
	}
	if s.Mode() != ModeNormal {
		t.Fatalf("expected normal mode after review")
	}
	if _, ok := s.Current(); !ok {
		t.Fatalf("expected a fresh question after leaving review")
	}
}

func TestEnterReviewWithEmptyQueue(t *testing.T) {
	s := newTestSession(t, []model.Element{hydrogen}, model.DefaultModes())
	notice, err := s.EnterReview()
	if err != nil {
		t.Fatalf("enter review: %v", err)
	}
	if notice != NoticeNothingToReview || s.Mode() != ModeNormal {
		t.Fatalf("expected to stay in normal mode, notice=%q mode=%s", notice, s.Mode())
	}
}

func TestRevealCountsAsMissed(t *testing.T) {
	s := newTestSession(t, []model.Element{hydrogen, oxygen}, model.DefaultModes())
	if _, err := s.Submit(mustCurrent(t, s).Answer); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := s.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	res, err := s.Reveal()
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if !res.Revealed || res.Status != model.StatusIncorrect {
		t.Fatalf("unexpected reveal result: %+v", res)
	}
	if s.Stats().Streak != 0 || s.Stats().BestStreak != 1 {
		t.Fatalf("unexpected stats after reveal: %+v", s.Stats())
	}
	if s.MissedCount() != 1 {
		t.Fatalf("expected revealed question to be queued")
	}
}

func TestPoolRefillsWhenExhausted(t *testing.T) {
	s := newTestSession(t, []model.Element{hydrogen, oxygen}, model.DefaultModes())
	seen := map[string]int{}
	for i := 0; i < 6; i++ {
		q := mustCurrent(t, s)
		seen[q.Symbol]++
		if _, err := s.Submit(q.Answer); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if _, err := s.Continue(); err != nil {
			t.Fatalf("continue: %v", err)
		}
	}
	// Every cycle asks each element exactly once.
	if seen["H"] != 3 || seen["O"] != 3 {
		t.Fatalf("unexpected distribution across cycles: %v", seen)
	}
}

func TestUpdateFilterResetsStreaks(t *testing.T) {
	s := newTestSession(t, catalog.Default(), model.DefaultModes())
	if _, err := s.Submit(mustCurrent(t, s).Answer); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.Stats().BestStreak != 1 {
		t.Fatalf("expected best streak 1")
	}
	cfg := model.FilterConfig{MainGroup: true, MaxRow: 2}
	if _, err := s.UpdateFilter(cfg); err != nil {
		t.Fatalf("update filter: %v", err)
	}
	if s.Stats() != (Stats{}) {
		t.Fatalf("expected reset stats, got %+v", s.Stats())
	}
	if s.Waiting() {
		t.Fatalf("expected open question after filter update")
	}
	if s.PoolSize() != 10 || s.PoolRemaining() != 9 {
		t.Fatalf("unexpected pool counts: size=%d remaining=%d", s.PoolSize(), s.PoolRemaining())
	}
	if s.Filter() != cfg {
		t.Fatalf("filter not replaced")
	}
}

func TestUpdateFilterLeavesReviewMode(t *testing.T) {
	s := newTestSession(t, []model.Element{hydrogen, oxygen}, model.DefaultModes())
	if _, err := s.Submit("nope"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := s.EnterReview(); err != nil {
		t.Fatalf("enter review: %v", err)
	}
	if s.Mode() != ModeReview {
		t.Fatalf("expected review mode")
	}
	cfg := model.FilterConfig{MaxRow: model.MaxPeriod}
	if _, err := s.UpdateFilter(cfg); err != nil {
		t.Fatalf("update filter: %v", err)
	}
	if s.Mode() != ModeNormal {
		t.Fatalf("filter change should end review mode")
	}
	if s.MissedCount() != 1 {
		t.Fatalf("missed queue should survive a filter change, got %d", s.MissedCount())
	}
	if s.PoolRemaining() != s.PoolSize()-1 {
		t.Fatalf("expected the question drawn from the new pool: size=%d remaining=%d", s.PoolSize(), s.PoolRemaining())
	}
}

func TestEmptyPool(t *testing.T) {
	s := NewSession(catalog.Default(), model.FilterConfig{IncludeRareEarths: true, MaxRow: 5}, model.DefaultModes(), generator.NewWithSeed(1))
	if _, err := s.Next(); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
	if _, err := s.Submit("x"); !errors.Is(err, ErrNoQuestion) {
		t.Fatalf("expected ErrNoQuestion, got %v", err)
	}
}

func TestNoModesFallsBackToSymbolToName(t *testing.T) {
	s := newTestSession(t, []model.Element{hydrogen}, model.ModeSet{})
	if q := mustCurrent(t, s); q.Type != model.SymbolToName {
		t.Fatalf("expected symbol-to-name fallback, got %s", q.Type)
	}
	s.ToggleMode(model.FamilyOf)
	s.ToggleMode(model.SymbolToName)
	s.ToggleMode(model.SymbolToName)
	if got := s.Modes().Enabled(); len(got) != 1 || got[0] != model.FamilyOf {
		t.Fatalf("unexpected modes: %v", got)
	}
}
