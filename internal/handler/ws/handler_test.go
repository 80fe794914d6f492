package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatmodel "github.com/komaljain0311/cogent-voice--assistant/internal/model/chat"
)

type fakeResponder struct {
	result chatmodel.Result
	events []chatmodel.StreamEvent
}

func (f *fakeResponder) Respond(_ context.Context, _, sessionID string) chatmodel.Result {
	result := f.result
	result.SessionID = sessionID
	return result
}

func (f *fakeResponder) StreamRespond(_ context.Context, _, _ string) <-chan chatmodel.StreamEvent {
	out := make(chan chatmodel.StreamEvent, len(f.events))
	for _, event := range f.events {
		out <- event
	}
	close(out)
	return out
}

func dialTestServer(t *testing.T, responder Responder) *websocket.Conn {
	t.Helper()

	r := chi.NewRouter()
	New(responder).RegisterRoutes(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/s1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestWebSocketStreamingCycle(t *testing.T) {
	responder := &fakeResponder{events: []chatmodel.StreamEvent{
		{Type: chatmodel.EventPartial, Content: "Hello ", SessionID: "s1"},
		{Type: chatmodel.EventComplete, Content: "Hello", SessionID: "s1"},
	}}
	conn := dialTestServer(t, responder)

	if err := conn.WriteJSON(map[string]any{"query": "hi", "stream": true}); err != nil {
		t.Fatalf("writing query: %v", err)
	}

	var first chatmodel.StreamEvent
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("reading first event: %v", err)
	}
	if first.Type != chatmodel.EventPartial {
		t.Fatalf("expected partial first, got %s", first.Type)
	}

	var second chatmodel.StreamEvent
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("reading second event: %v", err)
	}
	if second.Type != chatmodel.EventComplete {
		t.Fatalf("expected complete, got %s", second.Type)
	}
}

func TestWebSocketNonStreamingCycle(t *testing.T) {
	responder := &fakeResponder{result: chatmodel.Result{Response: "full answer"}}
	conn := dialTestServer(t, responder)

	if err := conn.WriteJSON(map[string]any{"query": "hi", "stream": false}); err != nil {
		t.Fatalf("writing query: %v", err)
	}

	var result chatmodel.Result
	if err := conn.ReadJSON(&result); err != nil {
		t.Fatalf("reading result: %v", err)
	}
	if result.Response != "full answer" {
		t.Fatalf("unexpected response: %q", result.Response)
	}
	if result.SessionID != "s1" {
		t.Fatalf("session id must come from the url, got %q", result.SessionID)
	}
}

func TestWebSocketMultipleCycles(t *testing.T) {
	responder := &fakeResponder{events: []chatmodel.StreamEvent{
		{Type: chatmodel.EventComplete, Content: "done", SessionID: "s1"},
	}}
	conn := dialTestServer(t, responder)

	for i := 0; i < 3; i++ {
		if err := conn.WriteJSON(map[string]any{"query": "hi"}); err != nil {
			t.Fatalf("cycle %d: writing query: %v", i, err)
		}
		var event chatmodel.StreamEvent
		if err := conn.ReadJSON(&event); err != nil {
			t.Fatalf("cycle %d: reading event: %v", i, err)
		}
		if event.Type != chatmodel.EventComplete {
			t.Fatalf("cycle %d: expected complete, got %s", i, event.Type)
		}
	}
}
