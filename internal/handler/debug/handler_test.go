package debug

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/komaljain0311/cogent-voice--assistant/internal/model/document"
)

type fakeRetriever struct {
	chunks []document.RetrievedChunk
}

func (f *fakeRetriever) Query(_ context.Context, _ string, _ int) ([]document.RetrievedChunk, error) {
	return f.chunks, nil
}

func setupRouter(retriever Retriever) *chi.Mux {
	r := chi.NewRouter()
	New(retriever, 3).RegisterRoutes(r)
	return r
}

func TestDebugContextReturnsRetrieval(t *testing.T) {
	retriever := &fakeRetriever{chunks: []document.RetrievedChunk{
		{Text: "chunk one", SourceLabel: "Page 1 - kb.pdf"},
		{Text: "chunk two", SourceLabel: "Page 2 - kb.pdf"},
	}}
	r := setupRouter(retriever)

	req := httptest.NewRequest(http.MethodGet, "/debug/context?query=services", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		ContextTexts []string `json:"context_texts"`
		Sources      []string `json:"sources"`
		Count        int      `json:"count"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Count != 2 || len(body.ContextTexts) != 2 || len(body.Sources) != 2 {
		t.Fatalf("unexpected payload: %+v", body)
	}
	if body.Sources[0] != "Page 1 - kb.pdf" {
		t.Fatalf("unexpected source: %q", body.Sources[0])
	}
}

func TestDebugContextRequiresQuery(t *testing.T) {
	r := setupRouter(&fakeRetriever{})

	req := httptest.NewRequest(http.MethodGet, "/debug/context", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestDebugContextWithoutRetriever(t *testing.T) {
	r := setupRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/debug/context?query=services", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Count != 0 {
		t.Fatalf("expected empty retrieval, got %+v", body)
	}
}
