package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cartopolis/api/internal/catalog"
	"github.com/cartopolis/api/internal/game"
	"github.com/cartopolis/api/internal/leaderboard"
	"github.com/cartopolis/api/internal/wiki"
)

func newTestRouter(t *testing.T) (*chi.Mux, *Registry) {
	t.Helper()

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	board := leaderboard.NewBoard(leaderboard.NewMemoryStore(), slog.Default(), 11)
	if err := board.Open(context.Background()); err != nil {
		t.Fatalf("opening board: %v", err)
	}

	// Unreachable wiki endpoint: enrichment must degrade to the local
	// fallback without affecting any handler.
	wikiClient := wiki.NewClient("http://127.0.0.1:1", 50*time.Millisecond, slog.Default())

	broker := NewBroker()
	sessions := NewRegistry()

	r := chi.NewRouter()
	r.Post("/api/game", handleStartGame(sessions, cat))
	r.Get("/api/leaderboard", handleLeaderboard(board))
	r.Get("/api/game/events", handleEvents(sessions, broker))
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware(sessions))
		r.Get("/api/game/state", handleGameState())
		r.Post("/api/game/guess", handleGuess(broker, wikiClient))
		r.Post("/api/game/hint", handleHint(broker))
		r.Post("/api/game/next", handleNextRound(broker))
		r.Post("/api/game/reset", handleResetGame())
		r.Post("/api/game/end", handleEndGame(sessions, board))
	})
	return r, sessions
}

func startSession(t *testing.T, r *chi.Mux, name, difficulty string) StartGameResponse {
	t.Helper()

	body, _ := json.Marshal(StartGameRequest{PlayerName: name, Difficulty: difficulty})
	req := httptest.NewRequest(http.MethodPost, "/api/game", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp StartGameResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Token == "" {
		t.Fatal("start: expected a session token")
	}
	return resp
}

func doJSON(t *testing.T, r *chi.Mux, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStartGameValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/game", "", StartGameRequest{PlayerName: "", Difficulty: "easy"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank name: expected 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/game", "", StartGameRequest{PlayerName: "Maria", Difficulty: "extreme"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad difficulty: expected 400, got %d", w.Code)
	}
}

func TestStartGameHidesAnswer(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := startSession(t, r, "Maria", "easy")
	state := resp.State

	if state.Round != 1 || state.Outcome != string(game.OutcomeGuessing) {
		t.Fatalf("fresh state: round=%d outcome=%s", state.Round, state.Outcome)
	}
	if state.City.Name != "" || state.City.Country != "" {
		t.Fatalf("answer leaked before reveal: %+v", state.City)
	}
	if len(state.City.Letters) == 0 {
		t.Fatal("no letter boxes in state")
	}
	for _, box := range state.City.Letters {
		if box.Char != "" {
			t.Fatalf("letter leaked before any hint: %+v", state.City.Letters)
		}
	}
}

func TestSessionRequiresToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/game/state", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/game/state", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bogus token: expected 401, got %d", w.Code)
	}
}

func TestGuessFlow(t *testing.T) {
	r, sessions := newTestRouter(t)
	resp := startSession(t, r, "Maria", "easy")

	// Round 1: a wrong guess.
	w := doJSON(t, r, http.MethodPost, "/api/game/guess", resp.Token, GuessRequest{Guess: "definitely not it"})
	if w.Code != http.StatusOK {
		t.Fatalf("guess: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var guess GuessResponse
	json.NewDecoder(w.Body).Decode(&guess)
	if guess.Correct || guess.RoundScore != 0 {
		t.Fatalf("wrong guess scored: %+v", guess)
	}
	if guess.Answer == "" {
		t.Fatal("answer not revealed after a decided round")
	}
	if guess.State.Outcome != string(game.OutcomeIncorrect) {
		t.Fatalf("outcome = %s, want incorrect", guess.State.Outcome)
	}

	// Guessing again on a decided round conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/game/guess", resp.Token, GuessRequest{Guess: "anything"})
	if w.Code != http.StatusConflict {
		t.Fatalf("second guess: expected 409, got %d", w.Code)
	}

	// An empty guess is a bad request, not a game event.
	w = doJSON(t, r, http.MethodPost, "/api/game/guess", resp.Token, GuessRequest{Guess: "  "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty guess: expected 400, got %d", w.Code)
	}

	// Advance and answer correctly with no hints: 5 points.
	w = doJSON(t, r, http.MethodPost, "/api/game/next", resp.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("next: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	sess, ok := sessions.Get(resp.Token)
	if !ok {
		t.Fatal("session vanished")
	}
	answer := sess.game.City().Name

	w = doJSON(t, r, http.MethodPost, "/api/game/guess", resp.Token, GuessRequest{Guess: answer})
	json.NewDecoder(w.Body).Decode(&guess)
	if !guess.Correct || guess.RoundScore != 5 {
		t.Fatalf("exact guess: %+v, want correct with 5 points", guess)
	}
	if guess.State.Score != 5 || guess.State.CurrentStreak != 1 {
		t.Fatalf("totals after hit: %+v", guess.State)
	}

	// End: one advanced-past round, committed to the leaderboard.
	w = doJSON(t, r, http.MethodPost, "/api/game/end", resp.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("end: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var end EndGameResponse
	json.NewDecoder(w.Body).Decode(&end)
	if !end.Committed || end.Entry == nil {
		t.Fatalf("end: %+v, want committed entry", end)
	}
	if end.Entry.Score != 5 || end.Entry.GamesPlayed != 1 || end.Entry.Streak != 1 {
		t.Fatalf("entry = %+v, want score=5 gamesPlayed=1 streak=1", end.Entry)
	}

	// The token is spent.
	w = doJSON(t, r, http.MethodGet, "/api/game/state", resp.Token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("state after end: expected 401, got %d", w.Code)
	}

	// The standings survive on the leaderboard endpoint.
	w = doJSON(t, r, http.MethodGet, "/api/leaderboard", "", nil)
	var lb LeaderboardResponse
	json.NewDecoder(w.Body).Decode(&lb)
	if len(lb.Entries) != 1 || lb.Entries[0].Name != "Maria" || lb.Entries[0].Score != 5 {
		t.Fatalf("leaderboard = %+v", lb.Entries)
	}
}

func TestHintFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	resp := startSession(t, r, "Maria", "easy")

	for i := 1; i <= game.MaxHints; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/game/hint", resp.Token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("hint %d: expected 200, got %d: %s", i, w.Code, w.Body.String())
		}
		var hint HintResponse
		json.NewDecoder(w.Body).Decode(&hint)
		if hint.Exhausted || hint.Hint == nil || hint.Hint.Stage != i {
			t.Fatalf("hint %d = %+v", i, hint)
		}
		if hint.State.HintsUsed != i {
			t.Fatalf("hintsUsed = %d after hint %d", hint.State.HintsUsed, i)
		}
	}

	// The fifth request reports exhaustion without erroring.
	w := doJSON(t, r, http.MethodPost, "/api/game/hint", resp.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("fifth hint: expected 200, got %d", w.Code)
	}
	var hint HintResponse
	json.NewDecoder(w.Body).Decode(&hint)
	if !hint.Exhausted || hint.Hint != nil {
		t.Fatalf("fifth hint = %+v, want exhausted", hint)
	}
	if hint.State.HintsUsed != game.MaxHints {
		t.Fatalf("hintsUsed = %d after no-op, want %d", hint.State.HintsUsed, game.MaxHints)
	}

	// First-letter hint revealed index 0 in the letter boxes.
	if len(hint.State.City.Letters) == 0 || !hint.State.City.Letters[0].Revealed {
		t.Fatalf("first letter not revealed in state: %+v", hint.State.City.Letters)
	}
}

func TestNextRoundConflictsWhileGuessing(t *testing.T) {
	r, _ := newTestRouter(t)
	resp := startSession(t, r, "Maria", "easy")

	w := doJSON(t, r, http.MethodPost, "/api/game/next", resp.Token, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("next while guessing: expected 409, got %d", w.Code)
	}
}

func TestEndWithoutGuessesCommitsNothing(t *testing.T) {
	r, _ := newTestRouter(t)
	resp := startSession(t, r, "Maria", "easy")

	w := doJSON(t, r, http.MethodPost, "/api/game/end", resp.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("end: expected 200, got %d", w.Code)
	}
	var end EndGameResponse
	json.NewDecoder(w.Body).Decode(&end)
	if end.Committed || len(end.Standings) != 0 {
		t.Fatalf("zero-guess end = %+v, want nothing committed", end)
	}
}

func TestResetZeroesTotals(t *testing.T) {
	r, sessions := newTestRouter(t)
	resp := startSession(t, r, "Maria", "easy")

	sess, _ := sessions.Get(resp.Token)
	answer := sess.game.City().Name
	doJSON(t, r, http.MethodPost, "/api/game/guess", resp.Token, GuessRequest{Guess: answer})

	w := doJSON(t, r, http.MethodPost, "/api/game/reset", resp.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reset: expected 200, got %d", w.Code)
	}
	var state StateResponse
	json.NewDecoder(w.Body).Decode(&state)
	if state.Score != 0 || state.Round != 1 || state.TotalGuesses != 0 {
		t.Fatalf("state after reset: %+v", state)
	}
}
