package server

import (
	"net/http"

	"github.com/cartopolis/api/internal/game"
)

type HintResponse struct {
	Exhausted bool          `json:"exhausted"`
	Hint      *game.Hint    `json:"hint,omitempty"`
	State     StateResponse `json:"state"`
}

func handleHint(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		token := tokenFrom(r)

		sess.mu.Lock()
		if sess.game.Outcome() != game.OutcomeGuessing {
			sess.mu.Unlock()
			writeError(w, http.StatusConflict, "round already decided")
			return
		}
		hint, ok := sess.game.UseHint()
		state := stateView(sess.game)
		sess.mu.Unlock()

		// The hint cap is not an error: the engine no-ops and the client
		// is told the well is dry.
		if !ok {
			writeJSON(w, http.StatusOK, HintResponse{Exhausted: true, State: state})
			return
		}

		broker.Publish(token, SSEEvent{
			Type:    "hint",
			Round:   state.Round,
			Message: hint.Message,
		})

		writeJSON(w, http.StatusOK, HintResponse{Hint: &hint, State: state})
	}
}
