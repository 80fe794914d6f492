package session

import (
	"sync"
	"time"

	"github.com/komaljain0311/cogent-voice--assistant/internal/model/chat"
)

// maxExchanges caps the retained conversation tail per session.
const maxExchanges = 10

// Store keeps per-session conversation history in process memory. State lives
// for the life of the server process; a restart loses all sessions.
//
// Store is safe for concurrent use. A whole turn (read history, generate,
// append) is not transactional: two concurrent turns on the same session id
// may interleave their appends.
type Store struct {
	mu       sync.RWMutex
	sessions map[string][]chat.Exchange
}

// NewStore bootstraps the in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string][]chat.Exchange)}
}

// History returns the exchanges recorded for the session, oldest first. An
// unknown session is created empty as a side effect.
func (s *Store) History(sessionID string) []chat.Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.sessions[sessionID]
	if !ok {
		s.sessions[sessionID] = nil
		return nil
	}

	copied := make([]chat.Exchange, len(history))
	copy(copied, history)
	return copied
}

// Append records one completed exchange, evicting the oldest entries beyond
// the cap.
func (s *Store) Append(sessionID, query, response string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[sessionID], chat.Exchange{
		Query:     query,
		Response:  response,
		CreatedAt: time.Now().UTC(),
	})
	if len(history) > maxExchanges {
		history = history[len(history)-maxExchanges:]
	}
	s.sessions[sessionID] = history
}

// Delete removes all state for the session. Deleting an unknown session is a
// no-op.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
