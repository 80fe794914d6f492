package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/komaljain0311/cogent-voice--assistant/internal/config"
	"github.com/komaljain0311/cogent-voice--assistant/internal/handler"
	"github.com/komaljain0311/cogent-voice--assistant/internal/model/persona"
	"github.com/komaljain0311/cogent-voice--assistant/internal/service/ai"
	"github.com/komaljain0311/cogent-voice--assistant/internal/service/index"
	"github.com/komaljain0311/cogent-voice--assistant/internal/service/ingest"
	"github.com/komaljain0311/cogent-voice--assistant/internal/service/rag"
	"github.com/komaljain0311/cogent-voice--assistant/internal/service/session"
	"github.com/komaljain0311/cogent-voice--assistant/internal/storage/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	personaStore := persona.NewMemoryStore(persona.Seed())
	sessions := session.NewStore()

	// The similarity index needs embedding credentials. Without them retrieval
	// and ingestion stay disabled and every turn runs with empty context.
	var (
		indexClient *index.Client
		pipeline    *ingest.Pipeline
	)
	if cfg.AI.EmbeddingEnabled() {
		embedder, err := cfg.AI.NewEmbedder(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize embedder: %v", err)
		} else {
			indexClient, err = index.New(cfg.Index.PersistDir, cfg.Index.Collection, index.NewEmbeddingFunc(embedder))
			if err != nil {
				log.Fatalf("failed to open vector store: %v", err)
			}
			indexClient.LogStats()

			pipeline, err = ingest.NewPipeline(ctx, cfg.Ingest, indexClient)
			if err != nil {
				log.Fatalf("failed to build ingestion pipeline: %v", err)
			}
		}
	} else {
		log.Println("embedding credentials not configured, retrieval disabled")
	}

	var generator *ai.Generator
	if cfg.AI.Enabled() {
		generator, err = ai.NewGenerator(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize generation model: %v", err)
			log.Println("continuing without generation, responses fall back to the apology message")
		} else {
			log.Printf("generation model %s initialized", cfg.AI.Model)
		}
	} else {
		log.Println("generation credentials not configured, responses fall back to the apology message")
	}

	accounts, err := sqlite.NewStore(cfg.Store.Path)
	if err != nil {
		log.Fatalf("failed to open account store: %v", err)
	}
	defer accounts.Close()

	// The orchestrator takes interfaces; a nil concrete pointer must stay a
	// nil interface so the degraded paths trigger.
	var retriever rag.Retriever
	if indexClient != nil {
		retriever = indexClient
	}
	var gen rag.Generator
	if generator != nil {
		gen = generator
	}

	streamer := rag.NewStreamer(cfg.Stream.WordDelay)
	orchestrator := rag.New(retriever, gen, sessions, personaStore, streamer, cfg.Index.TopK)

	router := handler.NewRouter(orchestrator, sessions, accounts, pipeline, indexClient, cfg.Index.TopK, cfg.AI.Model)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Budger assistant backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
