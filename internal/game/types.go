// Package game implements the round/session state machine: guess
// evaluation, the four-stage hint sequence, scoring, and the per-session
// totals that feed the leaderboard.
package game

// Match is the result of evaluating a guess against the target city.
type Match string

const (
	// MatchNone: the guess names neither the city nor "city, country".
	MatchNone Match = "none"
	// MatchPartial: "city, country" form, or the guess contains the city
	// name with extra words around it.
	MatchPartial Match = "partial"
	// MatchExact: the guess is the city name itself.
	MatchExact Match = "exact"
)

// Correct reports whether the match earns points.
func (m Match) Correct() bool { return m != MatchNone }

// Outcome is the state of the current round.
type Outcome string

const (
	OutcomeGuessing  Outcome = "guessing"
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
)
