package server

import (
	"net/http"

	"github.com/cartopolis/api/internal/leaderboard"
)

type LeaderboardResponse struct {
	Entries []leaderboard.Entry `json:"entries"`
}

func handleLeaderboard(board *leaderboard.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, LeaderboardResponse{Entries: board.Entries()})
	}
}
