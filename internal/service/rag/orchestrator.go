package rag

import (
	"context"
	"log"
	"time"

	"github.com/komaljain0311/cogent-voice--assistant/internal/model/chat"
	"github.com/komaljain0311/cogent-voice--assistant/internal/model/document"
	"github.com/komaljain0311/cogent-voice--assistant/internal/model/persona"
	"github.com/komaljain0311/cogent-voice--assistant/internal/service/ai"
)

// ApologyMessage is the fixed user-visible text for any internal failure
// during a turn.
const ApologyMessage = "I apologize, but I'm experiencing technical difficulties. Please try again in a moment."

// DefaultSessionID is used when the caller omits a session id.
const DefaultSessionID = "default"

// Retriever returns the top-k chunks most relevant to a query.
type Retriever interface {
	Query(ctx context.Context, query string, k int) ([]document.RetrievedChunk, error)
}

// Generator produces a complete answer for an assembled prompt.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SessionStore owns per-session conversation history.
type SessionStore interface {
	History(sessionID string) []chat.Exchange
	Append(sessionID, query, response string)
}

// Orchestrator coordinates one conversation turn: retrieve context, assemble
// the prompt, invoke generation, record the exchange and deliver the answer.
// The retriever and generator may be nil when their credentials are not
// configured; a nil retriever degrades to empty context, a nil generator
// produces the apology path.
type Orchestrator struct {
	retriever Retriever
	generator Generator
	sessions  SessionStore
	personas  persona.Store
	streamer  *Streamer
	topK      int
}

// New wires the orchestrator.
func New(retriever Retriever, generator Generator, sessions SessionStore, personas persona.Store, streamer *Streamer, topK int) *Orchestrator {
	return &Orchestrator{
		retriever: retriever,
		generator: generator,
		sessions:  sessions,
		personas:  personas,
		streamer:  streamer,
		topK:      topK,
	}
}

// Respond executes a blocking turn. Internal failures are converted to the
// apology payload with empty sources; the transport never sees a raw error.
func (o *Orchestrator) Respond(ctx context.Context, query, sessionID string) chat.Result {
	started := time.Now()
	sessionID = normalizeSessionID(sessionID)

	text, sources, err := o.runTurn(ctx, query, sessionID)
	if err != nil {
		log.Printf("[rag] turn failed for session=%s: %v", sessionID, err)
		return apologyResult(sessionID, started)
	}

	return chat.Result{
		Response:     text,
		Sources:      normalizeSources(sources),
		SessionID:    sessionID,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		ResponseTime: time.Since(started).Seconds(),
	}
}

// StreamRespond executes a turn and delivers the answer incrementally. The
// exchange is appended to the session once the full text is known, before the
// terminal event, so history always reflects the final answer. The channel is
// closed after the terminal event, or as soon as the consumer context is
// cancelled.
func (o *Orchestrator) StreamRespond(ctx context.Context, query, sessionID string) <-chan chat.StreamEvent {
	started := time.Now()
	sessionID = normalizeSessionID(sessionID)

	out := make(chan chat.StreamEvent)
	go func() {
		defer close(out)

		text, sources, err := o.runTurn(ctx, query, sessionID)
		if err != nil {
			log.Printf("[rag] streaming turn failed for session=%s: %v", sessionID, err)
			send(ctx, out, ErrorEvent(sessionID))
			return
		}

		if !o.streamer.StreamPartials(ctx, out, text, sources, sessionID) {
			// Consumer went away; no terminal event.
			return
		}

		send(ctx, out, CompleteEvent(text, sources, sessionID, started))
	}()
	return out
}

// runTurn performs retrieval, prompt assembly and generation, and appends the
// exchange on success. Retrieval failure degrades to empty context; only
// generation failure aborts the turn.
func (o *Orchestrator) runTurn(ctx context.Context, query, sessionID string) (string, []string, error) {
	history := o.sessions.History(sessionID)
	chunks, sources := o.retrieveContext(ctx, query)

	prompt := ai.BuildPrompt(o.personas.Default(), history, chunks, query)

	if o.generator == nil {
		return "", nil, generationError(errNoGenerator)
	}
	text, err := o.generator.Complete(ctx, prompt)
	if err != nil {
		return "", nil, generationError(err)
	}

	o.sessions.Append(sessionID, query, text)
	return text, sources, nil
}

// retrieveContext queries the similarity index, degrading to an empty context
// set on any failure.
func (o *Orchestrator) retrieveContext(ctx context.Context, query string) ([]document.RetrievedChunk, []string) {
	if o.retriever == nil {
		return nil, nil
	}

	chunks, err := o.retriever.Query(ctx, query, o.topK)
	if err != nil {
		log.Printf("[rag] %v", retrievalError(err))
		return nil, nil
	}

	sources := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		sources = append(sources, chunk.SourceLabel)
	}
	return chunks, sources
}

func apologyResult(sessionID string, started time.Time) chat.Result {
	return chat.Result{
		Response:     ApologyMessage,
		Sources:      []string{},
		SessionID:    sessionID,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		ResponseTime: time.Since(started).Seconds(),
	}
}

func normalizeSessionID(sessionID string) string {
	if sessionID == "" {
		return DefaultSessionID
	}
	return sessionID
}
