package server

import (
	"net/http"

	"github.com/cartopolis/api/internal/leaderboard"
)

type EndGameResponse struct {
	Committed bool                `json:"committed"`
	Entry     *leaderboard.Entry  `json:"entry,omitempty"`
	Standings []leaderboard.Entry `json:"standings"`
}

func handleEndGame(sessions *Registry, board *leaderboard.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		token := tokenFrom(r)

		sess.mu.Lock()
		entry, ok := sess.game.End()
		sess.mu.Unlock()

		// The session is spent either way; a zero-guess session just
		// contributes nothing to the standings.
		sessions.Delete(token)

		if !ok {
			writeJSON(w, http.StatusOK, EndGameResponse{
				Standings: board.Entries(),
			})
			return
		}

		standings, err := board.Commit(r.Context(), entry)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, EndGameResponse{
			Committed: true,
			Entry:     &entry,
			Standings: standings,
		})
	}
}
