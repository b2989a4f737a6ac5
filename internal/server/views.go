package server

import "github.com/cartopolis/api/internal/game"

// LetterBox is one tile of the city-name display: a space gap, a revealed
// letter, or a blank to fill in.
type LetterBox struct {
	Char     string `json:"char,omitempty"`
	Space    bool   `json:"space,omitempty"`
	Revealed bool   `json:"revealed,omitempty"`
}

// CityView is what the client may know about the target city. Name,
// country, continent and population are withheld until the answer is
// revealed; coordinates are always present for the map.
type CityView struct {
	Lat        float64     `json:"lat"`
	Lng        float64     `json:"lng"`
	Letters    []LetterBox `json:"letters"`
	Name       string      `json:"name,omitempty"`
	Country    string      `json:"country,omitempty"`
	Continent  string      `json:"continent,omitempty"`
	Population int         `json:"population,omitempty"`
}

// StateResponse is the full session snapshot returned by most endpoints.
type StateResponse struct {
	Player         string   `json:"player"`
	Difficulty     string   `json:"difficulty"`
	Round          int      `json:"round"`
	Outcome        string   `json:"outcome"`
	AnswerShown    bool     `json:"answerShown"`
	Score          int      `json:"score"`
	TotalGuesses   int      `json:"totalGuesses"`
	CorrectGuesses int      `json:"correctGuesses"`
	Accuracy       int      `json:"accuracy"`
	CurrentStreak  int      `json:"currentStreak"`
	BestStreak     int      `json:"bestStreak"`
	HintsUsed      int      `json:"hintsUsed"`
	CanUseHint     bool     `json:"canUseHint"`
	ElapsedSeconds int      `json:"elapsedSeconds"`
	City           CityView `json:"city"`
}

// stateView snapshots s. Callers must hold the session lock.
func stateView(s *game.Session) StateResponse {
	city := s.City()

	revealed := make(map[int]bool)
	for _, i := range s.RevealedLetters() {
		revealed[i] = true
	}

	cv := CityView{Lat: city.Lat, Lng: city.Lng}
	for i, r := range []rune(city.Name) {
		box := LetterBox{}
		switch {
		case r == ' ':
			box.Space = true
		case s.AnswerShown() || revealed[i]:
			box.Char = string(r)
			box.Revealed = true
		}
		cv.Letters = append(cv.Letters, box)
	}

	if s.AnswerShown() {
		cv.Name = city.Name
		cv.Country = city.Country
		cv.Continent = city.Continent
		cv.Population = city.Population
	}

	return StateResponse{
		Player:         s.Player(),
		Difficulty:     string(s.Difficulty()),
		Round:          s.Round(),
		Outcome:        string(s.Outcome()),
		AnswerShown:    s.AnswerShown(),
		Score:          s.Score(),
		TotalGuesses:   s.TotalGuesses(),
		CorrectGuesses: s.CorrectGuesses(),
		Accuracy:       s.Accuracy(),
		CurrentStreak:  s.CurrentStreak(),
		BestStreak:     s.BestStreak(),
		HintsUsed:      s.HintsUsed(),
		CanUseHint:     s.CanUseHint(),
		ElapsedSeconds: s.ElapsedSeconds(),
		City:           cv,
	}
}
