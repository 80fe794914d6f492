package ingest

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/komaljain0311/cogent-voice--assistant/pkg/utils"
)

// Ingester loads one document into the similarity index.
type Ingester interface {
	IngestPDF(ctx context.Context, filePath, collectionName string) (int, error)
}

// Handler serves the document upload endpoint.
type Handler struct {
	pipeline Ingester
}

// New creates the ingest handler. pipeline may be nil when no embedding
// credentials are configured.
func New(pipeline Ingester) *Handler {
	return &Handler{pipeline: pipeline}
}

// RegisterRoutes mounts the ingestion endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/upload", h.handleUpload)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FilePath       string `json:"file_path"`
		CollectionName string `json:"collection_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.FilePath == "" {
		utils.RespondError(w, http.StatusBadRequest, "file_path is required")
		return
	}
	if payload.CollectionName == "" {
		payload.CollectionName = "default"
	}

	if h.pipeline == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "document ingestion unavailable")
		return
	}

	count, err := h.pipeline.IngestPDF(r.Context(), payload.FilePath, payload.CollectionName)
	if err != nil {
		log.Printf("[ingest] upload failed for %s: %v", payload.FilePath, err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to add documents.")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Documents added successfully.",
		"chunks":  count,
	})
}
