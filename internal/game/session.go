package game

import (
	"math"
	"strings"
	"time"

	"github.com/cartopolis/api/internal/catalog"
	"github.com/cartopolis/api/internal/leaderboard"
)

// Session owns all mutable game state for one player: the current round,
// the hint state, the running totals, and the recency buffer for city
// draws. It is not safe for concurrent use; callers serialising access
// (e.g. an HTTP layer) must wrap it in their own lock.
type Session struct {
	player     string
	difficulty catalog.Difficulty

	catalog *catalog.Catalog
	recency catalog.Recency
	hints   *Hints
	now     func() time.Time

	city        catalog.City
	round       int
	roundStart  time.Time
	outcome     Outcome
	answerShown bool

	score          int
	totalGuesses   int
	correctGuesses int
	currentStreak  int
	bestStreak     int
}

// NewSession starts a fresh session at round 1 with a city already drawn.
func NewSession(cat *catalog.Catalog, player string, d catalog.Difficulty) *Session {
	s := &Session{
		player:     player,
		difficulty: d,
		catalog:    cat,
		hints:      NewHints(),
		now:        time.Now,
	}
	s.startRound(1)
	return s
}

// startRound replaces the target city wholesale and resets per-round state.
func (s *Session) startRound(n int) {
	s.city = s.catalog.PickRandom(s.difficulty, &s.recency)
	s.round = n
	s.roundStart = s.now()
	s.outcome = OutcomeGuessing
	s.answerShown = false
	s.hints.Reset()
}

// GuessResult reports what a submitted guess did to the session.
type GuessResult struct {
	Match      Match
	RoundScore int
	HintsUsed  int
}

// SubmitGuess evaluates text against the current city and applies the
// outcome to the totals. It is a no-op (ok=false) when the round is
// already decided or the text is blank, matching the UI contract that such
// submissions are silently ignored.
func (s *Session) SubmitGuess(text string) (GuessResult, bool) {
	if s.outcome != OutcomeGuessing || strings.TrimSpace(text) == "" {
		return GuessResult{}, false
	}

	m := Evaluate(text, s.city)
	s.totalGuesses++

	res := GuessResult{Match: m, HintsUsed: s.hints.Used()}
	if m.Correct() {
		res.RoundScore = Score(m, s.hints.Used())
		s.score += res.RoundScore
		s.correctGuesses++
		s.currentStreak++
		if s.currentStreak > s.bestStreak {
			s.bestStreak = s.currentStreak
		}
		s.outcome = OutcomeCorrect
	} else {
		s.currentStreak = 0
		s.outcome = OutcomeIncorrect
	}
	s.answerShown = true
	return res, true
}

// UseHint advances the hint sequence for the current city. ok=false when
// the round is decided or all four hints are spent.
func (s *Session) UseHint() (Hint, bool) {
	if s.outcome != OutcomeGuessing {
		return Hint{}, false
	}
	return s.hints.Next(s.city)
}

// AdvanceRound moves from a decided round to a fresh one. ok=false while
// the current round is still being guessed.
func (s *Session) AdvanceRound() bool {
	if s.outcome == OutcomeGuessing {
		return false
	}
	s.startRound(s.round + 1)
	return true
}

// Reset returns the session to a brand-new state: totals zeroed, recency
// cleared, round 1 with a fresh city.
func (s *Session) Reset() {
	s.score = 0
	s.totalGuesses = 0
	s.correctGuesses = 0
	s.currentStreak = 0
	s.bestStreak = 0
	s.recency.Reset()
	s.startRound(1)
}

// Accuracy is the rounded percentage of correct guesses, 0 before any
// guess has been made.
func (s *Session) Accuracy() int {
	if s.totalGuesses == 0 {
		return 0
	}
	return int(math.Round(float64(s.correctGuesses) / float64(s.totalGuesses) * 100))
}

// ElapsedSeconds is the time spent on the current round so far.
func (s *Session) ElapsedSeconds() int {
	return int(s.now().Sub(s.roundStart).Seconds())
}

// End freezes the totals into a leaderboard entry. A session with no
// guesses contributes nothing (ok=false). Games played follows the
// rounds-advanced-past convention: an unfinished final round is not
// counted.
func (s *Session) End() (leaderboard.Entry, bool) {
	if s.totalGuesses == 0 {
		return leaderboard.Entry{}, false
	}
	return leaderboard.Entry{
		Name:        s.player,
		Score:       s.score,
		Accuracy:    s.Accuracy(),
		GamesPlayed: s.round - 1,
		Streak:      s.bestStreak,
		Difficulty:  string(s.difficulty),
	}, true
}

func (s *Session) Player() string                 { return s.player }
func (s *Session) Difficulty() catalog.Difficulty { return s.difficulty }
func (s *Session) City() catalog.City             { return s.city }
func (s *Session) Round() int                     { return s.round }
func (s *Session) Outcome() Outcome               { return s.outcome }
func (s *Session) AnswerShown() bool              { return s.answerShown }
func (s *Session) Score() int                     { return s.score }
func (s *Session) TotalGuesses() int              { return s.totalGuesses }
func (s *Session) CorrectGuesses() int            { return s.correctGuesses }
func (s *Session) CurrentStreak() int             { return s.currentStreak }
func (s *Session) BestStreak() int                { return s.bestStreak }
func (s *Session) HintsUsed() int                 { return s.hints.Used() }
func (s *Session) RevealedLetters() []int         { return s.hints.Revealed() }
func (s *Session) CanUseHint() bool               { return s.outcome == OutcomeGuessing && s.hints.CanUse() }
