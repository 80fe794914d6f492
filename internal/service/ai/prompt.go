package ai

import (
	"fmt"
	"strings"

	"github.com/komaljain0311/cogent-voice--assistant/internal/model/chat"
	"github.com/komaljain0311/cogent-voice--assistant/internal/model/document"
	"github.com/komaljain0311/cogent-voice--assistant/internal/model/persona"
)

// NoContextFallback is substituted for the context block when retrieval
// returned nothing.
const NoContextFallback = "No relevant context found."

// historyWindow bounds how many prior exchanges are rendered into the prompt.
const historyWindow = 3

// BuildPrompt assembles the single generation prompt from persona guidelines,
// recent conversation, retrieved context and the raw query. No token budget is
// applied; the history window and retrieval k bound the practical size.
func BuildPrompt(p persona.Persona, history []chat.Exchange, chunks []document.RetrievedChunk, query string) string {
	var conversation strings.Builder
	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}
	for _, exchange := range recent {
		fmt.Fprintf(&conversation, "User: %s\nAssistant: %s\n\n", exchange.Query, exchange.Response)
	}

	context := NoContextFallback
	if len(chunks) > 0 {
		texts := make([]string, 0, len(chunks))
		for _, chunk := range chunks {
			texts = append(texts, chunk.Text)
		}
		context = strings.Join(texts, "\n\n")
	}

	var guidelines strings.Builder
	for _, g := range p.Guidelines {
		fmt.Fprintf(&guidelines, "- %s\n", g)
	}

	return fmt.Sprintf(`You are %s, an %s for %s. You are helpful, professional, and knowledgeable about the company's services and policies.

Key Guidelines:
%s
Previous Conversation:
%s
Relevant Context:
%s

Current User Query: %s

Please provide a helpful and accurate response:`,
		p.Name, p.Role, p.Company, guidelines.String(), conversation.String(), context, query)
}
