package server

import (
	"net/http"
	"strings"

	"github.com/cartopolis/api/internal/catalog"
	"github.com/cartopolis/api/internal/game"
)

type StartGameRequest struct {
	PlayerName string `json:"playerName"`
	Difficulty string `json:"difficulty"`
}

type StartGameResponse struct {
	Token string        `json:"token"`
	State StateResponse `json:"state"`
}

func handleStartGame(sessions *Registry, cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.PlayerName = strings.TrimSpace(req.PlayerName)
		if req.PlayerName == "" {
			writeError(w, http.StatusBadRequest, "playerName is required")
			return
		}
		difficulty, err := catalog.ParseDifficulty(req.Difficulty)
		if err != nil {
			writeError(w, http.StatusBadRequest, "difficulty must be easy, medium or hard")
			return
		}

		s := game.NewSession(cat, req.PlayerName, difficulty)
		token := sessions.Create(s)

		writeJSON(w, http.StatusOK, StartGameResponse{
			Token: token,
			State: stateView(s),
		})
	}
}

func handleGameState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		sess.mu.Lock()
		state := stateView(sess.game)
		sess.mu.Unlock()

		writeJSON(w, http.StatusOK, state)
	}
}

func handleResetGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		sess.mu.Lock()
		sess.game.Reset()
		state := stateView(sess.game)
		sess.mu.Unlock()

		writeJSON(w, http.StatusOK, state)
	}
}
