package ingest

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/transformer/splitter/recursive"
	einodoc "github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/komaljain0311/cogent-voice--assistant/internal/config"
	"github.com/komaljain0311/cogent-voice--assistant/internal/model/document"
)

// Indexer receives the prepared chunks.
type Indexer interface {
	Upsert(ctx context.Context, chunks []document.Chunk) error
}

// Pipeline turns a PDF on disk into indexed chunks: page extraction, recursive
// splitting, metadata tagging and batched upserts.
type Pipeline struct {
	splitter  einodoc.Transformer
	index     Indexer
	batchSize int
}

// NewPipeline builds the pipeline with the configured chunking parameters.
func NewPipeline(ctx context.Context, cfg config.IngestConfig, index Indexer) (*Pipeline, error) {
	splitter, err := recursive.NewSplitter(ctx, &recursive.Config{
		ChunkSize:   cfg.ChunkSize,
		OverlapSize: cfg.ChunkOverlap,
		Separators:  []string{"\n\n", "\n", ". ", " ", ""},
	})
	if err != nil {
		return nil, fmt.Errorf("creating splitter: %w", err)
	}

	return &Pipeline{
		splitter:  splitter,
		index:     index,
		batchSize: cfg.BatchSize,
	}, nil
}

// IngestPDF loads the file, splits every page and upserts the chunks under the
// given collection tag. Returns the number of chunks indexed.
func (p *Pipeline) IngestPDF(ctx context.Context, filePath, collectionName string) (int, error) {
	pages, err := extractPages(filePath)
	if err != nil {
		return 0, fmt.Errorf("loading pdf: %w", err)
	}
	if len(pages) == 0 {
		return 0, fmt.Errorf("no extractable text in %s", filepath.Base(filePath))
	}

	split, err := p.splitter.Transform(ctx, pages)
	if err != nil {
		return 0, fmt.Errorf("splitting document: %w", err)
	}

	chunks := tagChunks(split, collectionName)
	log.Printf("[ingest] file=%s pages=%d chunks=%d", filepath.Base(filePath), len(pages), len(chunks))

	if err := p.indexChunks(ctx, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// indexChunks upserts the chunks in fixed-size batches.
func (p *Pipeline) indexChunks(ctx context.Context, chunks []document.Chunk) error {
	for start := 0; start < len(chunks); start += p.batchSize {
		end := start + p.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		if err := p.index.Upsert(ctx, chunks[start:end]); err != nil {
			return fmt.Errorf("indexing batch at %d: %w", start, err)
		}
	}
	return nil
}

// extractPages reads one schema.Document per PDF page that yields text.
func extractPages(filePath string) ([]*schema.Document, error) {
	file, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	source := filepath.Base(filePath)
	var pages []*schema.Document
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("[ingest] skipping page %d of %s: %v", i, source, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, &schema.Document{
			ID:      fmt.Sprintf("%s-page-%d", source, i),
			Content: text,
			MetaData: map[string]any{
				"source": source,
				"page":   strconv.Itoa(i),
			},
		})
	}
	return pages, nil
}

// tagChunks converts split documents into index chunks, stamping collection
// and ingestion time onto each one.
func tagChunks(docs []*schema.Document, collectionName string) []document.Chunk {
	ingestedAt := time.Now().UTC().Format(time.RFC3339)

	chunks := make([]document.Chunk, 0, len(docs))
	for _, doc := range docs {
		metadata := map[string]string{
			"collection": collectionName,
			"timestamp":  ingestedAt,
		}
		for key, value := range doc.MetaData {
			if s, ok := value.(string); ok {
				metadata[key] = s
			}
		}
		chunks = append(chunks, document.Chunk{
			ID:       uuid.NewString(),
			Text:     doc.Content,
			Metadata: metadata,
		})
	}
	return chunks
}
