package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/cartopolis/api/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cities := make([]catalog.City, 12)
	for i := range cities {
		cities[i] = catalog.City{
			Name:       fmt.Sprintf("City %d", i),
			Country:    "Testland",
			Population: 2_000_000,
			Continent:  "Europe",
		}
	}
	cat, err := catalog.New(cities)
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	return cat
}

func TestSessionEndToEnd(t *testing.T) {
	s := NewSession(testCatalog(t), "Maria", catalog.Easy)

	if s.Round() != 1 || s.Outcome() != OutcomeGuessing {
		t.Fatalf("fresh session: round=%d outcome=%v", s.Round(), s.Outcome())
	}

	// Round 1: wrong guess.
	res, ok := s.SubmitGuess("definitely not it")
	if !ok {
		t.Fatal("guess rejected")
	}
	if res.Match != MatchNone || res.RoundScore != 0 {
		t.Fatalf("wrong guess scored: %+v", res)
	}
	if s.Score() != 0 || s.CurrentStreak() != 0 || s.Outcome() != OutcomeIncorrect {
		t.Fatalf("after miss: score=%d streak=%d outcome=%v", s.Score(), s.CurrentStreak(), s.Outcome())
	}
	if !s.AnswerShown() {
		t.Error("answer not revealed after miss")
	}

	if !s.AdvanceRound() {
		t.Fatal("advance refused from decided round")
	}
	if s.Round() != 2 || s.Outcome() != OutcomeGuessing || s.AnswerShown() {
		t.Fatalf("after advance: round=%d outcome=%v shown=%v", s.Round(), s.Outcome(), s.AnswerShown())
	}

	// Round 2: exact correct guess with zero hints.
	res, ok = s.SubmitGuess(s.City().Name)
	if !ok {
		t.Fatal("guess rejected")
	}
	if res.Match != MatchExact || res.RoundScore != 5 {
		t.Fatalf("exact guess with no hints: %+v, want 5 points", res)
	}
	if s.Score() != 5 || s.CurrentStreak() != 1 || s.BestStreak() != 1 {
		t.Fatalf("after hit: score=%d streak=%d best=%d", s.Score(), s.CurrentStreak(), s.BestStreak())
	}

	entry, ok := s.End()
	if !ok {
		t.Fatal("end refused with guesses made")
	}
	if entry.Name != "Maria" || entry.Score != 5 || entry.GamesPlayed != 1 {
		t.Fatalf("entry = %+v, want name=Maria score=5 gamesPlayed=1", entry)
	}
	if entry.Accuracy != 50 {
		t.Errorf("accuracy = %d, want 50", entry.Accuracy)
	}
	if entry.Streak != 1 || entry.Difficulty != "easy" {
		t.Errorf("entry = %+v, want streak=1 difficulty=easy", entry)
	}
}

func TestSubmitGuessNoOps(t *testing.T) {
	s := NewSession(testCatalog(t), "Maria", catalog.Easy)

	if _, ok := s.SubmitGuess("   "); ok {
		t.Error("blank guess accepted")
	}
	if s.TotalGuesses() != 0 {
		t.Errorf("blank guess counted: totalGuesses=%d", s.TotalGuesses())
	}

	s.SubmitGuess(s.City().Name)
	if _, ok := s.SubmitGuess("anything"); ok {
		t.Error("guess accepted on a decided round")
	}
	if s.TotalGuesses() != 1 {
		t.Errorf("rejected guess mutated totals: totalGuesses=%d", s.TotalGuesses())
	}
}

func TestHintPenaltyAppliesToRoundScore(t *testing.T) {
	s := NewSession(testCatalog(t), "Maria", catalog.Easy)

	for i := 0; i < 2; i++ {
		if _, ok := s.UseHint(); !ok {
			t.Fatalf("hint %d refused", i+1)
		}
	}
	res, ok := s.SubmitGuess(s.City().Name)
	if !ok || res.RoundScore != 3 {
		t.Fatalf("score with 2 hints = %+v ok=%v, want 3", res, ok)
	}
}

func TestHintsResetEachRound(t *testing.T) {
	s := NewSession(testCatalog(t), "Maria", catalog.Easy)

	s.UseHint()
	s.UseHint()
	s.SubmitGuess("wrong")
	s.AdvanceRound()

	if s.HintsUsed() != 0 || len(s.RevealedLetters()) != 0 {
		t.Fatalf("hints survived the round boundary: used=%d revealed=%v",
			s.HintsUsed(), s.RevealedLetters())
	}
}

func TestHintRefusedAfterRoundDecided(t *testing.T) {
	s := NewSession(testCatalog(t), "Maria", catalog.Easy)
	s.SubmitGuess(s.City().Name)

	if _, ok := s.UseHint(); ok {
		t.Error("hint granted after the round was decided")
	}
}

func TestStreakInvariants(t *testing.T) {
	s := NewSession(testCatalog(t), "Maria", catalog.Easy)

	// Three hits, one miss, two hits: best streak must track the peak and
	// the miss must zero the current streak immediately.
	steps := []bool{true, true, true, false, true, true}
	for _, hit := range steps {
		guess := "not the city"
		if hit {
			guess = s.City().Name
		}
		if _, ok := s.SubmitGuess(guess); !ok {
			t.Fatal("guess rejected")
		}
		if s.BestStreak() < s.CurrentStreak() {
			t.Fatalf("invariant violated: best=%d < current=%d", s.BestStreak(), s.CurrentStreak())
		}
		if !hit && s.CurrentStreak() != 0 {
			t.Fatalf("streak = %d immediately after a miss, want 0", s.CurrentStreak())
		}
		s.AdvanceRound()
	}

	if s.BestStreak() != 3 || s.CurrentStreak() != 2 {
		t.Fatalf("best=%d current=%d, want 3 and 2", s.BestStreak(), s.CurrentStreak())
	}
	if s.TotalGuesses() != 6 || s.CorrectGuesses() != 5 {
		t.Fatalf("guesses=%d correct=%d, want 6 and 5", s.TotalGuesses(), s.CorrectGuesses())
	}
}

func TestEndWithoutGuesses(t *testing.T) {
	s := NewSession(testCatalog(t), "Maria", catalog.Easy)
	if _, ok := s.End(); ok {
		t.Error("session with zero guesses produced a leaderboard entry")
	}
}

func TestReset(t *testing.T) {
	s := NewSession(testCatalog(t), "Maria", catalog.Easy)

	s.SubmitGuess(s.City().Name)
	s.AdvanceRound()
	s.UseHint()
	s.Reset()

	if s.Round() != 1 || s.Score() != 0 || s.TotalGuesses() != 0 ||
		s.BestStreak() != 0 || s.HintsUsed() != 0 || s.Outcome() != OutcomeGuessing {
		t.Fatalf("reset left state behind: round=%d score=%d guesses=%d best=%d hints=%d outcome=%v",
			s.Round(), s.Score(), s.TotalGuesses(), s.BestStreak(), s.HintsUsed(), s.Outcome())
	}
}

func TestAdvanceRefusedWhileGuessing(t *testing.T) {
	s := NewSession(testCatalog(t), "Maria", catalog.Easy)
	if s.AdvanceRound() {
		t.Error("advance allowed while still guessing")
	}
	if s.Round() != 1 {
		t.Errorf("round = %d, want 1", s.Round())
	}
}

func TestElapsedSeconds(t *testing.T) {
	s := NewSession(testCatalog(t), "Maria", catalog.Easy)

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return start }
	s.startRound(1)

	s.now = func() time.Time { return start.Add(42 * time.Second) }
	if got := s.ElapsedSeconds(); got != 42 {
		t.Fatalf("elapsed = %d, want 42", got)
	}
}
