package server

import "net/http"

func handleNextRound(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		token := tokenFrom(r)

		sess.mu.Lock()
		ok := sess.game.AdvanceRound()
		state := stateView(sess.game)
		sess.mu.Unlock()

		if !ok {
			writeError(w, http.StatusConflict, "round still in progress")
			return
		}

		broker.Publish(token, SSEEvent{Type: "round_started", Round: state.Round})

		writeJSON(w, http.StatusOK, state)
	}
}
