package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/cartopolis/api/internal/game"
)

// gameSession wraps the single-threaded game core with the lock the HTTP
// layer needs: every state transition happens under mu.
type gameSession struct {
	mu   sync.Mutex
	game *game.Session
}

// Registry holds live sessions keyed by bearer token. Sessions never
// touch durable storage until they end; abandoning one mid-round simply
// leaves it here until the process exits.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*gameSession
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*gameSession)}
}

// Create registers s under a fresh random token.
func (r *Registry) Create(s *game.Session) string {
	token := uuid.NewString()
	r.mu.Lock()
	r.sessions[token] = &gameSession{game: s}
	r.mu.Unlock()
	return token
}

func (r *Registry) Get(token string) (*gameSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[token]
	return s, ok
}

func (r *Registry) Delete(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}
