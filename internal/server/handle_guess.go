package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/cartopolis/api/internal/wiki"
)

type GuessRequest struct {
	Guess string `json:"guess"`
}

type GuessResponse struct {
	Correct    bool          `json:"correct"`
	Match      string        `json:"match"`
	RoundScore int           `json:"roundScore"`
	Answer     string        `json:"answer"`
	Country    string        `json:"country"`
	State      StateResponse `json:"state"`
}

func handleGuess(broker *Broker, wikiClient *wiki.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		token := tokenFrom(r)

		var req GuessRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Guess) == "" {
			writeError(w, http.StatusBadRequest, "guess is required")
			return
		}

		sess.mu.Lock()
		res, ok := sess.game.SubmitGuess(req.Guess)
		if !ok {
			sess.mu.Unlock()
			writeError(w, http.StatusConflict, "round already decided")
			return
		}
		city := sess.game.City()
		state := stateView(sess.game)
		sess.mu.Unlock()

		broker.Publish(token, SSEEvent{
			Type:       "guess_result",
			Round:      state.Round,
			Correct:    res.Match.Correct(),
			RoundScore: res.RoundScore,
		})

		// Enrichment is fire-and-forget: the fact arrives on the event
		// stream when (and if) it is ready, and Summary itself degrades to
		// a local fallback on any failure.
		go func() {
			fact := wikiClient.Summary(context.Background(), city)
			broker.Publish(token, SSEEvent{Type: "city_fact", Fact: &fact})
		}()

		writeJSON(w, http.StatusOK, GuessResponse{
			Correct:    res.Match.Correct(),
			Match:      string(res.Match),
			RoundScore: res.RoundScore,
			Answer:     city.Name,
			Country:    city.Country,
			State:      state,
		})
	}
}
