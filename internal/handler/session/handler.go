package session

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/komaljain0311/cogent-voice--assistant/pkg/utils"
)

// Deleter clears one session's conversation history.
type Deleter interface {
	Delete(sessionID string)
}

// Handler serves session lifecycle endpoints.
type Handler struct {
	sessions Deleter
}

// New creates the session handler.
func New(sessions Deleter) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes mounts the session endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Delete("/sessions/{sessionID}", h.handleDelete)
}

// handleDelete clears the session. Unknown ids succeed with the same
// confirmation so clients can reset unconditionally.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	h.sessions.Delete(sessionID)
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s cleared.", sessionID),
	})
}
