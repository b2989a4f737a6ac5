// Package catalog holds the static city reference table and the
// difficulty-filtered random draw used to start each round.
package catalog

import (
	"crypto/rand"
	_ "embed"
	"encoding/json"
	"fmt"
	"math/big"
)

//go:embed cities.json
var citiesJSON []byte

// City is an immutable reference record. The table is loaded once at
// startup and never mutated.
type City struct {
	Name       string  `json:"name"`
	Country    string  `json:"country"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Population int     `json:"population"`
	Continent  string  `json:"continent"`
}

// Difficulty selects a population floor for the draw. The floors are
// monotonic: every easy city qualifies for medium, every medium for hard.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

func (d Difficulty) Floor() int {
	switch d {
	case Easy:
		return 1_000_000
	case Medium:
		return 500_000
	default:
		return 100_000
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// RecencySize bounds how many recent picks are excluded from the draw.
const RecencySize = 8

// Recency is a bounded buffer of recently drawn city names, owned by the
// session and threaded through PickRandom. The zero value is ready to use.
type Recency struct {
	names []string
}

func (r *Recency) Contains(name string) bool {
	for _, n := range r.names {
		if n == name {
			return true
		}
	}
	return false
}

func (r *Recency) Reset() {
	r.names = r.names[:0]
}

func (r *Recency) remember(name string) {
	r.names = append(r.names, name)
	if len(r.names) > RecencySize {
		r.names = r.names[len(r.names)-RecencySize:]
	}
}

type Catalog struct {
	cities []City
	byName map[string]City
}

// New builds a catalog from the given cities. An empty candidate pool for
// any difficulty is a configuration error, not something PickRandom can
// recover from at round time.
func New(cities []City) (*Catalog, error) {
	if len(cities) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	byName := make(map[string]City, len(cities))
	for _, c := range cities {
		if _, dup := byName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate city %q", c.Name)
		}
		if c.Population < 0 {
			return nil, fmt.Errorf("city %q has negative population", c.Name)
		}
		byName[c.Name] = c
	}

	cat := &Catalog{cities: cities, byName: byName}
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		if len(cat.forDifficulty(d)) == 0 {
			return nil, fmt.Errorf("no cities with population >= %d for difficulty %q", d.Floor(), d)
		}
	}
	return cat, nil
}

// Load parses the embedded city table.
func Load() (*Catalog, error) {
	var cities []City
	if err := json.Unmarshal(citiesJSON, &cities); err != nil {
		return nil, fmt.Errorf("parsing embedded city table: %w", err)
	}
	return New(cities)
}

func (c *Catalog) Len() int { return len(c.cities) }

func (c *Catalog) ByName(name string) (City, bool) {
	city, ok := c.byName[name]
	return city, ok
}

func (c *Catalog) forDifficulty(d Difficulty) []City {
	var out []City
	for _, city := range c.cities {
		if city.Population >= d.Floor() {
			out = append(out, city)
		}
	}
	return out
}

// PickRandom draws a city uniformly at random among cities meeting the
// difficulty's population floor, skipping any city in the recency buffer.
// If the recency exclusion empties the pool (small tiers), the draw falls
// back to the full tier. The chosen name is appended to the buffer.
func (c *Catalog) PickRandom(d Difficulty, rec *Recency) City {
	candidates := c.forDifficulty(d)

	pool := candidates[:0:0]
	for _, city := range candidates {
		if !rec.Contains(city.Name) {
			pool = append(pool, city)
		}
	}
	if len(pool) == 0 {
		pool = candidates
	}

	city := pool[randIndex(len(pool))]
	rec.remember(city.Name)
	return city
}

// randIndex returns an unbiased random index in [0, n).
func randIndex(n int) int {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken.
		panic(fmt.Sprintf("reading random index: %v", err))
	}
	return int(i.Int64())
}
