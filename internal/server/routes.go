package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, deps Deps) {
	broker := NewBroker()
	sessions := NewRegistry()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Cartopolis API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(deps.Logger, deps.DB, deps.Redis))

	r.Post("/api/game", handleStartGame(sessions, deps.Catalog))
	r.Get("/api/leaderboard", handleLeaderboard(deps.Board))

	// SSE passes the token as a query parameter (EventSource cannot set
	// headers), so it sits outside the bearer-token group.
	r.Get("/api/game/events", handleEvents(sessions, broker))

	// Session routes, token resolved by sessionMiddleware.
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware(sessions))
		r.Get("/api/game/state", handleGameState())
		r.Post("/api/game/guess", handleGuess(broker, deps.Wiki))
		r.Post("/api/game/hint", handleHint(broker))
		r.Post("/api/game/next", handleNextRound(broker))
		r.Post("/api/game/reset", handleResetGame())
		r.Post("/api/game/end", handleEndGame(sessions, deps.Board))
	})
}
