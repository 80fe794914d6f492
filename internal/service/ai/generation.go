package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/komaljain0311/cogent-voice--assistant/internal/config"
)

// Generator wraps the completion model behind a single blocking call. The
// model returns its whole answer at once; incremental delivery is simulated
// downstream by the response streamer.
type Generator struct {
	chain   compose.Runnable[map[string]any, *schema.Message]
	timeout time.Duration
}

// NewGenerator builds and compiles the generation chain once at startup.
func NewGenerator(ctx context.Context, cfg config.AIConfig) (*Generator, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.UserMessage("{prompt}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile generation chain: %w", err)
	}

	return &Generator{chain: runnable, timeout: cfg.Timeout}, nil
}

// Complete runs the prompt through the model and returns the full answer
// text. Provider failures (auth, rate limit, network) surface as errors for
// the orchestrator to convert.
func (g *Generator) Complete(ctx context.Context, promptText string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	response, err := g.chain.Invoke(ctx, map[string]any{"prompt": promptText})
	if err != nil {
		return "", fmt.Errorf("failed to run generation chain: %w", err)
	}

	log.Printf("[ai] generated response, length=%d", len(response.Content))
	return response.Content, nil
}
