package game

import (
	"strings"

	"github.com/cartopolis/api/internal/catalog"
)

// Evaluate normalizes the raw guess and compares it against the target
// city. It is pure: no state, no side effects.
//
// A guess containing the country but not the city name is MatchNone; only
// the city name itself (alone, with the country appended, or embedded in a
// longer phrase) counts.
func Evaluate(raw string, city catalog.City) Match {
	guess := normalize(raw)
	if guess == "" {
		return MatchNone
	}

	name := normalize(city.Name)
	country := normalize(city.Country)

	if guess == name {
		return MatchExact
	}
	if guess == name+", "+country || strings.Contains(guess, name) {
		return MatchPartial
	}
	return MatchNone
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
