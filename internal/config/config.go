package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	arkembed "github.com/cloudwego/eino-ext/components/embedding/ark"
	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every setting the service needs.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Index  IndexConfig
	Ingest IngestConfig
	Store  StoreConfig
	Stream StreamConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	index, err := loadIndexConfig()
	if err != nil {
		return nil, err
	}

	ingest, err := loadIngestConfig()
	if err != nil {
		return nil, err
	}

	stream, err := loadStreamConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		AI:     ai,
		Index:  index,
		Ingest: ingest,
		Store:  StoreConfig{Path: getEnvOrDefault("SQLITE_PATH", "budger_users.db")},
		Stream: stream,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8000"
	}

	if strings.Contains(port, ":") {
		// Allow ":8000" or "127.0.0.1:8000" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig describes the generation and embedding models.
type AIConfig struct {
	APIKey         string
	AccessKey      string
	SecretKey      string
	Model          string
	EmbeddingModel string
	BaseURL        string
	Region         string
	Temperature    *float64
	TopP           *float64
	MaxTokens      *int
	Timeout        time.Duration
}

// Enabled reports whether generation credentials are configured.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// EmbeddingEnabled reports whether retrieval embeddings can be produced.
func (c AIConfig) EmbeddingEnabled() bool {
	return c.EmbeddingModel != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds the generation model from this configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("generation credentials missing: provide ARK_API_KEY + ARK_MODEL or AK/SK")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

// NewEmbedder builds the embedding model used by the similarity index.
func (c AIConfig) NewEmbedder(ctx context.Context) (embedding.Embedder, error) {
	if !c.EmbeddingEnabled() {
		return nil, fmt.Errorf("embedding credentials missing: provide ARK_API_KEY + ARK_EMBEDDING_MODEL")
	}

	return arkembed.NewEmbedder(ctx, &arkembed.EmbeddingConfig{
		BaseURL: c.BaseURL,
		Region:  c.Region,
		APIKey:  c.APIKey,
		Model:   c.EmbeddingModel,
	})
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	timeoutSeconds, err := parseOptionalIntEnv("ARK_TIMEOUT")
	if err != nil {
		return AIConfig{}, err
	}
	var timeout time.Duration
	if timeoutSeconds != nil {
		timeout = time.Duration(*timeoutSeconds) * time.Second
	}

	return AIConfig{
		APIKey:         strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:      strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:      strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:          strings.TrimSpace(os.Getenv("ARK_MODEL")),
		EmbeddingModel: strings.TrimSpace(os.Getenv("ARK_EMBEDDING_MODEL")),
		BaseURL:        getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:         getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:    temperature,
		TopP:           topP,
		MaxTokens:      maxTokens,
		Timeout:        timeout,
	}, nil
}

// IndexConfig describes the similarity index.
type IndexConfig struct {
	PersistDir string
	Collection string
	TopK       int
}

func loadIndexConfig() (IndexConfig, error) {
	topK := 3
	if override, err := parseOptionalIntEnv("RETRIEVAL_TOP_K"); err != nil {
		return IndexConfig{}, err
	} else if override != nil {
		if *override < 1 {
			topK = 1
		} else {
			topK = *override
		}
	}

	return IndexConfig{
		PersistDir: getEnvOrDefault("INDEX_DIR", "enhanced_chroma_store"),
		Collection: getEnvOrDefault("INDEX_COLLECTION", "documents"),
		TopK:       topK,
	}, nil
}

// IngestConfig describes the document splitting pipeline.
type IngestConfig struct {
	ChunkSize    int
	ChunkOverlap int
	BatchSize    int
}

func loadIngestConfig() (IngestConfig, error) {
	cfg := IngestConfig{ChunkSize: 800, ChunkOverlap: 100, BatchSize: 50}

	if override, err := parseOptionalIntEnv("CHUNK_SIZE"); err != nil {
		return IngestConfig{}, err
	} else if override != nil {
		cfg.ChunkSize = *override
	}
	if override, err := parseOptionalIntEnv("CHUNK_OVERLAP"); err != nil {
		return IngestConfig{}, err
	} else if override != nil {
		cfg.ChunkOverlap = *override
	}
	if override, err := parseOptionalIntEnv("INGEST_BATCH_SIZE"); err != nil {
		return IngestConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return IngestConfig{}, fmt.Errorf("INGEST_BATCH_SIZE must be >= 1")
		}
		cfg.BatchSize = *override
	}

	return cfg, nil
}

// StoreConfig describes the relational store.
type StoreConfig struct {
	Path string
}

// StreamConfig describes the simulated streaming cadence.
type StreamConfig struct {
	WordDelay time.Duration
}

func loadStreamConfig() (StreamConfig, error) {
	delayMS := 50
	if override, err := parseOptionalIntEnv("STREAM_DELAY_MS"); err != nil {
		return StreamConfig{}, err
	} else if override != nil {
		if *override < 0 {
			return StreamConfig{}, fmt.Errorf("STREAM_DELAY_MS must be >= 0")
		}
		delayMS = *override
	}
	return StreamConfig{WordDelay: time.Duration(delayMS) * time.Millisecond}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
