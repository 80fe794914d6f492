package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authHandler "github.com/komaljain0311/cogent-voice--assistant/internal/handler/auth"
	chatHandler "github.com/komaljain0311/cogent-voice--assistant/internal/handler/chat"
	debugHandler "github.com/komaljain0311/cogent-voice--assistant/internal/handler/debug"
	ingestHandler "github.com/komaljain0311/cogent-voice--assistant/internal/handler/ingest"
	sessionHandler "github.com/komaljain0311/cogent-voice--assistant/internal/handler/session"
	wsHandler "github.com/komaljain0311/cogent-voice--assistant/internal/handler/ws"
	middlewarePkg "github.com/komaljain0311/cogent-voice--assistant/internal/middleware"
	"github.com/komaljain0311/cogent-voice--assistant/internal/service/index"
	ingestService "github.com/komaljain0311/cogent-voice--assistant/internal/service/ingest"
	"github.com/komaljain0311/cogent-voice--assistant/internal/service/rag"
	"github.com/komaljain0311/cogent-voice--assistant/internal/service/session"
	"github.com/komaljain0311/cogent-voice--assistant/internal/storage/sqlite"
	"github.com/komaljain0311/cogent-voice--assistant/pkg/utils"
)

// NewRouter wires HTTP routes to core services. accounts, pipeline and
// retriever may be nil; the affected endpoints then degrade or report
// unavailability instead of failing at startup.
func NewRouter(orchestrator *rag.Orchestrator, sessions *session.Store, accounts *sqlite.Store, pipeline *ingestService.Pipeline, retriever *index.Client, topK int, modelName string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	var chatLog chatHandler.ChatLog
	if accounts != nil {
		chatLog = accounts
	}
	var ingester ingestHandler.Ingester
	if pipeline != nil {
		ingester = pipeline
	}
	var debugRetriever debugHandler.Retriever
	if retriever != nil {
		debugRetriever = retriever
	}

	chatHandler.New(orchestrator, chatLog).RegisterRoutes(r)
	wsHandler.New(orchestrator).RegisterRoutes(r)
	sessionHandler.New(sessions).RegisterRoutes(r)
	ingestHandler.New(ingester).RegisterRoutes(r)
	debugHandler.New(debugRetriever, topK).RegisterRoutes(r)
	if accounts != nil {
		authHandler.New(accounts).RegisterRoutes(r)
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{
			"service": "Budger AI Voice Assistant",
			"status":  "running",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"model":     modelName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	return r
}
