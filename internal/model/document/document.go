package document

// Chunk is a splittable unit of an ingested document, ready for the index.
type Chunk struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
}

// RetrievedChunk is a similarity hit returned per query. Ephemeral: recomputed
// every turn, never stored.
type RetrievedChunk struct {
	Text        string `json:"text"`
	SourceLabel string `json:"source_label"`
}
