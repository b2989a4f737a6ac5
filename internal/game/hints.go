package game

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/cartopolis/api/internal/catalog"
)

// MaxHints is the number of hint stages per round.
const MaxHints = 4

// Hint is one step of the fixed reveal sequence.
type Hint struct {
	Stage    int    `json:"stage"`
	Message  string `json:"message"`
	Revealed []int  `json:"revealed,omitempty"` // letter indices newly revealed by this hint
}

// Hints is the per-round hint state. Stages advance strictly in order:
// continent, first letter, country, two random letters. The engine is the
// source of truth for the cap; the UI's disabled button is advisory only.
type Hints struct {
	used        int
	revealed    map[int]struct{}
	continent   bool
	firstLetter bool
	country     bool
}

func NewHints() *Hints {
	return &Hints{revealed: make(map[int]struct{})}
}

func (h *Hints) Used() int    { return h.used }
func (h *Hints) CanUse() bool { return h.used < MaxHints }

// Revealed returns the revealed letter indices in ascending order. Indices
// are rune positions into the city name; space positions are never in it.
func (h *Hints) Revealed() []int {
	out := make([]int, 0, len(h.revealed))
	for i := range h.revealed {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Next advances to the following hint stage for city. It returns ok=false
// once all four stages have been used; the fifth and later calls change
// nothing.
func (h *Hints) Next(city catalog.City) (Hint, bool) {
	if !h.CanUse() {
		return Hint{}, false
	}
	h.used++

	switch h.used {
	case 1:
		h.continent = true
		return Hint{
			Stage:   1,
			Message: fmt.Sprintf("This city is in %s", city.Continent),
		}, true

	case 2:
		h.firstLetter = true
		h.revealed[0] = struct{}{}
		first := strings.ToUpper(string([]rune(city.Name)[0]))
		return Hint{
			Stage:    2,
			Message:  fmt.Sprintf("City starts with %q", first),
			Revealed: []int{0},
		}, true

	case 3:
		h.country = true
		return Hint{
			Stage:   3,
			Message: fmt.Sprintf("This city is in %s", city.Country),
		}, true

	default:
		picked := h.revealRandomLetters(city.Name, 2)
		return Hint{
			Stage:    4,
			Message:  fmt.Sprintf("Revealed %d more letters in the city name", len(picked)),
			Revealed: picked,
		}, true
	}
}

// revealRandomLetters picks up to n uniform random rune indices from the
// not-yet-revealed, non-space, non-first positions of name. Fewer than n
// remaining candidates is fine; zero is acceptable for very short names.
func (h *Hints) revealRandomLetters(name string, n int) []int {
	var candidates []int
	for i, r := range []rune(name) {
		if i == 0 || r == ' ' {
			continue
		}
		if _, done := h.revealed[i]; done {
			continue
		}
		candidates = append(candidates, i)
	}

	var picked []int
	for len(picked) < n && len(candidates) > 0 {
		j := hintRandIndex(len(candidates))
		idx := candidates[j]
		candidates = append(candidates[:j], candidates[j+1:]...)
		h.revealed[idx] = struct{}{}
		picked = append(picked, idx)
	}
	sort.Ints(picked)
	return picked
}

// Reset returns hint state to the start of a round. Called at every round
// boundary, not just on a new session.
func (h *Hints) Reset() {
	h.used = 0
	h.revealed = make(map[int]struct{})
	h.continent = false
	h.firstLetter = false
	h.country = false
}

func hintRandIndex(n int) int {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("reading random index: %v", err))
	}
	return int(i.Int64())
}
