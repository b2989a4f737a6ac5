package game

// basePoints is the round score before hint penalties.
const basePoints = 5

// Score computes the round score: basePoints minus one point per hint
// used, floored at 1 so a correct guess is never worthless. A miss scores
// zero regardless of hints.
func Score(m Match, hintsUsed int) int {
	if !m.Correct() {
		return 0
	}
	s := basePoints - hintsUsed
	if s < 1 {
		return 1
	}
	return s
}
