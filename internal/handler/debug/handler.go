package debug

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/komaljain0311/cogent-voice--assistant/internal/model/document"
	"github.com/komaljain0311/cogent-voice--assistant/pkg/utils"
)

// Retriever exposes raw similarity search results.
type Retriever interface {
	Query(ctx context.Context, query string, k int) ([]document.RetrievedChunk, error)
}

// Handler serves retrieval inspection endpoints.
type Handler struct {
	retriever Retriever
	topK      int
}

// New creates the debug handler. retriever may be nil when no index is
// configured.
func New(retriever Retriever, topK int) *Handler {
	return &Handler{retriever: retriever, topK: topK}
}

// RegisterRoutes mounts the debug endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/debug/context", h.handleContext)
}

// handleContext shows exactly what the index returns for a query, without the
// prompt assembly or generation on top.
func (h *Handler) handleContext(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		utils.RespondError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	texts := []string{}
	sources := []string{}
	if h.retriever != nil {
		chunks, err := h.retriever.Query(r.Context(), query, h.topK)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "retrieval failed")
			return
		}
		for _, chunk := range chunks {
			texts = append(texts, chunk.Text)
			sources = append(sources, chunk.SourceLabel)
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"context_texts": texts,
		"sources":       sources,
		"count":         len(texts),
	})
}
