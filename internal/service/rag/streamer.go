package rag

import (
	"context"
	"strings"
	"time"

	"github.com/komaljain0311/cogent-voice--assistant/internal/model/chat"
)

// Streamer re-segments a complete answer into word-level partial events. The
// inter-word delay simulates incremental generation; it is a presentation
// affordance only and may be zero.
type Streamer struct {
	delay time.Duration
}

// NewStreamer returns a Streamer with the given inter-word delay.
func NewStreamer(delay time.Duration) *Streamer {
	return &Streamer{delay: delay}
}

// StreamPartials emits one partial event per whitespace-delimited word.
// Returns false when the consumer context is cancelled mid-stream; the caller
// must then stop producing events.
func (s *Streamer) StreamPartials(ctx context.Context, out chan<- chat.StreamEvent, fullText string, sources []string, sessionID string) bool {
	words := strings.Fields(fullText)
	var cumulative strings.Builder

	for _, word := range words {
		cumulative.WriteString(word)
		cumulative.WriteString(" ")

		event := chat.StreamEvent{
			Type:         chat.EventPartial,
			Content:      word + " ",
			FullResponse: strings.TrimSpace(cumulative.String()),
			Sources:      normalizeSources(sources),
			SessionID:    sessionID,
		}
		if !send(ctx, out, event) {
			return false
		}

		if s.delay > 0 {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(s.delay):
			}
		}
	}
	return true
}

// CompleteEvent builds the single terminal event for a successful turn.
func CompleteEvent(fullText string, sources []string, sessionID string, started time.Time) chat.StreamEvent {
	return chat.StreamEvent{
		Type:         chat.EventComplete,
		Content:      fullText,
		Sources:      normalizeSources(sources),
		SessionID:    sessionID,
		ResponseTime: time.Since(started).Seconds(),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
}

// ErrorEvent builds the single terminal event for a failed turn. The content
// is always the fixed user-safe apology, never provider error text.
func ErrorEvent(sessionID string) chat.StreamEvent {
	return chat.StreamEvent{
		Type:      chat.EventError,
		Content:   ApologyMessage,
		Sources:   []string{},
		SessionID: sessionID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func send(ctx context.Context, out chan<- chat.StreamEvent, event chat.StreamEvent) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- event:
		return true
	}
}

func normalizeSources(sources []string) []string {
	if sources == nil {
		return []string{}
	}
	return sources
}
