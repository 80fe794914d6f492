package ai

import (
	"strings"
	"testing"

	"github.com/komaljain0311/cogent-voice--assistant/internal/model/chat"
	"github.com/komaljain0311/cogent-voice--assistant/internal/model/document"
	"github.com/komaljain0311/cogent-voice--assistant/internal/model/persona"
)

func TestBuildPromptFallbackWithoutContext(t *testing.T) {
	p := persona.Seed()[0]

	prompt := BuildPrompt(p, nil, nil, "What services do you offer?")

	if !strings.Contains(prompt, NoContextFallback) {
		t.Fatalf("expected fallback phrase in prompt, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Current User Query: What services do you offer?") {
		t.Fatal("expected raw query in prompt")
	}
	if !strings.Contains(prompt, "You are Budger") {
		t.Fatal("expected persona name in prompt")
	}
}

func TestBuildPromptJoinsChunks(t *testing.T) {
	p := persona.Seed()[0]
	chunks := []document.RetrievedChunk{
		{Text: "chunk one"},
		{Text: "chunk two"},
	}

	prompt := BuildPrompt(p, nil, chunks, "q")

	if !strings.Contains(prompt, "chunk one\n\nchunk two") {
		t.Fatal("expected chunks joined with blank line")
	}
	if strings.Contains(prompt, NoContextFallback) {
		t.Fatal("fallback phrase must not appear when context exists")
	}
}

func TestBuildPromptLimitsHistoryToThreeOldestFirst(t *testing.T) {
	p := persona.Seed()[0]
	history := []chat.Exchange{
		{Query: "q1", Response: "a1"},
		{Query: "q2", Response: "a2"},
		{Query: "q3", Response: "a3"},
		{Query: "q4", Response: "a4"},
	}

	prompt := BuildPrompt(p, history, nil, "q5")

	if strings.Contains(prompt, "User: q1") {
		t.Fatal("oldest exchange beyond window must be dropped")
	}
	for _, q := range []string{"User: q2", "User: q3", "User: q4"} {
		if !strings.Contains(prompt, q) {
			t.Fatalf("expected %q in prompt", q)
		}
	}

	// Oldest of the retained window renders first.
	if strings.Index(prompt, "User: q2") > strings.Index(prompt, "User: q3") {
		t.Fatal("exchanges must appear oldest first")
	}
}
