package index

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/embedding"
	chromem "github.com/philippgille/chromem-go"
)

// NewEmbeddingFunc bridges an eino embedding.Embedder to the chromem-go
// EmbeddingFunc signature.
//
// Note: chromem-go normalizes vectors itself, so no manual normalization is
// needed.
func NewEmbeddingFunc(embedder embedding.Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vectors, err := embedder.EmbedStrings(ctx, []string{text})
		if err != nil {
			return nil, fmt.Errorf("embed failed: %w", err)
		}

		if len(vectors) == 0 || len(vectors[0]) == 0 {
			return nil, fmt.Errorf("no embeddings returned")
		}

		result := make([]float32, len(vectors[0]))
		for i, v := range vectors[0] {
			result[i] = float32(v)
		}
		return result, nil
	}
}
