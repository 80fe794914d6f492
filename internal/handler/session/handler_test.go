package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

type recordingDeleter struct {
	deleted []string
}

func (r *recordingDeleter) Delete(sessionID string) {
	r.deleted = append(r.deleted, sessionID)
}

func TestDeleteSessionClears(t *testing.T) {
	deleter := &recordingDeleter{}
	r := chi.NewRouter()
	New(deleter).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodDelete, "/sessions/s1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if len(deleter.deleted) != 1 || deleter.deleted[0] != "s1" {
		t.Fatalf("expected delete of s1, got %v", deleter.deleted)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.Contains(body["message"], "s1") {
		t.Fatalf("confirmation must name the session: %v", body)
	}
}

func TestDeleteSessionIdempotent(t *testing.T) {
	deleter := &recordingDeleter{}
	r := chi.NewRouter()
	New(deleter).RegisterRoutes(r)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/sessions/ghost", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i, resp.Code)
		}
	}
}
