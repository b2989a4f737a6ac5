package game

import (
	"testing"

	"github.com/cartopolis/api/internal/catalog"
)

func TestEvaluate(t *testing.T) {
	paris := catalog.City{Name: "Paris", Country: "France"}
	newYork := catalog.City{Name: "New York", Country: "United States"}

	tests := []struct {
		name  string
		guess string
		city  catalog.City
		want  Match
	}{
		{"exact", "Paris", paris, MatchExact},
		{"exact ignores case", "pArIs", paris, MatchExact},
		{"exact ignores surrounding whitespace", "  paris  ", paris, MatchExact},
		{"city comma country", "paris, france", paris, MatchPartial},
		{"extra words around the name", "the city of Paris", paris, MatchPartial},
		{"country alone is not a match", "france", paris, MatchNone},
		{"country with filler is not a match", "somewhere in France", paris, MatchNone},
		{"wrong city", "london", paris, MatchNone},
		{"empty guess", "", paris, MatchNone},
		{"whitespace-only guess", "   ", paris, MatchNone},
		{"multi-word exact", "new york", newYork, MatchExact},
		{"multi-word with country", "new york, united states", newYork, MatchPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.guess, tt.city); got != tt.want {
				t.Errorf("Evaluate(%q, %s) = %v, want %v", tt.guess, tt.city.Name, got, tt.want)
			}
		})
	}
}
