package index

import (
	"context"
	"fmt"
	"log"

	chromem "github.com/philippgille/chromem-go"

	"github.com/komaljain0311/cogent-voice--assistant/internal/model/document"
)

// Client wraps an embedding-backed vector collection. The index is treated as
// an externally-owned resource: safe for concurrent upserts and queries from
// multiple sessions.
type Client struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// New opens (or creates) the named collection. When persistDir is empty the
// index lives in memory only.
func New(persistDir, collectionName string, embed chromem.EmbeddingFunc) (*Client, error) {
	var (
		db  *chromem.DB
		err error
	)
	if persistDir == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(persistDir, false)
		if err != nil {
			return nil, fmt.Errorf("failed to open vector store: %w", err)
		}
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %q: %w", collectionName, err)
	}

	return &Client{db: db, collection: collection}, nil
}

// Upsert adds or replaces chunks in the collection.
func (c *Client) Upsert(ctx context.Context, chunks []document.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	docs := make([]chromem.Document, 0, len(chunks))
	for _, chunk := range chunks {
		docs = append(docs, chromem.Document{
			ID:       chunk.ID,
			Content:  chunk.Text,
			Metadata: chunk.Metadata,
		})
	}

	if err := c.collection.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("failed to upsert %d chunks: %w", len(docs), err)
	}
	return nil
}

// Query returns the top-k chunks most similar to the query text. An empty
// collection yields an empty result, not an error.
func (c *Client) Query(ctx context.Context, query string, k int) ([]document.RetrievedChunk, error) {
	// chromem rejects nResults larger than the collection size.
	count := c.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := c.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}

	chunks := make([]document.RetrievedChunk, 0, len(results))
	for _, res := range results {
		chunks = append(chunks, document.RetrievedChunk{
			Text:        res.Content,
			SourceLabel: formatSourceLabel(res.Metadata),
		})
	}
	return chunks, nil
}

// Count reports how many chunks the collection holds.
func (c *Client) Count() int {
	return c.collection.Count()
}

// LogStats writes the collection size to the server log, mirroring startup
// diagnostics.
func (c *Client) LogStats() {
	log.Printf("[index] collection contains %d document chunks", c.Count())
}

func formatSourceLabel(metadata map[string]string) string {
	page := metadata["page"]
	if page == "" {
		page = "N/A"
	}
	source := metadata["source"]
	if source == "" {
		source = "Unknown"
	}
	return fmt.Sprintf("Page %s - %s", page, source)
}
