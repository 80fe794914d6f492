package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatmodel "github.com/komaljain0311/cogent-voice--assistant/internal/model/chat"
	"github.com/komaljain0311/cogent-voice--assistant/internal/model/user"
	"github.com/komaljain0311/cogent-voice--assistant/pkg/utils"
)

// Responder runs one conversation turn.
type Responder interface {
	Respond(ctx context.Context, query, sessionID string) chatmodel.Result
	StreamRespond(ctx context.Context, query, sessionID string) <-chan chatmodel.StreamEvent
}

// ChatLog persists turns for registered users. Session ids that match a
// username or email get their exchanges recorded.
type ChatLog interface {
	FindUser(ctx context.Context, identifier string) (user.User, bool, error)
	LogChat(ctx context.Context, userID int64, sessionID, query, response string) error
}

// Handler serves the blocking and SSE chat endpoints.
type Handler struct {
	responder Responder
	chatLog   ChatLog
}

// New creates the chat handler. chatLog may be nil when account bookkeeping is
// disabled.
func New(responder Responder, chatLog ChatLog) *Handler {
	return &Handler{responder: responder, chatLog: chatLog}
}

// RegisterRoutes mounts the chat endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Post("/chat/stream", h.handleChatStream)
}

type queryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeQuery(w, r)
	if !ok {
		return
	}

	result := h.responder.Respond(r.Context(), req.Query, req.SessionID)
	h.recordForUser(r.Context(), result.SessionID, req.Query, result.Response)

	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleChatStream(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeQuery(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	utils.SetupSSEHeaders(w)

	for event := range h.responder.StreamRespond(r.Context(), req.Query, req.SessionID) {
		utils.SendSSEChunk(w, flusher, event)
	}
}

// recordForUser writes the turn to chat history when the session id belongs to
// a registered account.
func (h *Handler) recordForUser(ctx context.Context, sessionID, query, response string) {
	if h.chatLog == nil {
		return
	}

	account, found, err := h.chatLog.FindUser(ctx, sessionID)
	if err != nil {
		log.Printf("[chat] user lookup failed for session=%s: %v", sessionID, err)
		return
	}
	if !found {
		return
	}
	if err := h.chatLog.LogChat(ctx, account.ID, sessionID, query, response); err != nil {
		log.Printf("[chat] failed to record history for user=%d: %v", account.ID, err)
	}
}

func decodeQuery(w http.ResponseWriter, r *http.Request) (queryRequest, bool) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return queryRequest{}, false
	}
	if req.Query == "" {
		utils.RespondError(w, http.StatusBadRequest, "query is required")
		return queryRequest{}, false
	}
	return req, true
}
