package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatmodel "github.com/komaljain0311/cogent-voice--assistant/internal/model/chat"
)

// Responder runs one conversation turn.
type Responder interface {
	Respond(ctx context.Context, query, sessionID string) chatmodel.Result
	StreamRespond(ctx context.Context, query, sessionID string) <-chan chatmodel.StreamEvent
}

// Handler serves the realtime websocket chat endpoint. One connection carries
// any number of query/response cycles; only disconnect or a malformed frame
// ends the loop.
type Handler struct {
	responder Responder
	upgrader  websocket.Upgrader
}

// New creates the websocket handler.
func New(responder Responder) *Handler {
	return &Handler{
		responder: responder,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Query  string `json:"query"`
	Stream *bool  `json:"stream"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connected session=%s", sessionID)
	h.serveConn(r.Context(), conn, sessionID)
	log.Printf("[ws] disconnected session=%s", sessionID)
}

func (h *Handler) serveConn(ctx context.Context, conn *websocket.Conn, sessionID string) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[ws] malformed frame for session=%s: %v", sessionID, err)
			return
		}

		// Streaming is the default delivery mode.
		stream := msg.Stream == nil || *msg.Stream

		if stream {
			for event := range h.responder.StreamRespond(ctx, msg.Query, sessionID) {
				if err := conn.WriteJSON(event); err != nil {
					return
				}
			}
			continue
		}

		result := h.responder.Respond(ctx, msg.Query, sessionID)
		if err := conn.WriteJSON(result); err != nil {
			return
		}
	}
}
