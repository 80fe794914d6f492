package config

import (
	"testing"
	"time"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if cfg.Addr != ":8000" {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
}

func TestLoadServerConfigFullAddr(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9001")
	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9001" {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
}

func TestLoadServerConfigRejectsSpaces(t *testing.T) {
	t.Setenv("PORT", "80 00")
	if _, err := loadServerConfig(); err == nil {
		t.Fatal("expected error for PORT with spaces")
	}
}

func TestAIConfigEnabled(t *testing.T) {
	cases := []struct {
		name string
		cfg  AIConfig
		want bool
	}{
		{"api key", AIConfig{Model: "m", APIKey: "k"}, true},
		{"ak/sk", AIConfig{Model: "m", AccessKey: "a", SecretKey: "s"}, true},
		{"missing model", AIConfig{APIKey: "k"}, false},
		{"missing creds", AIConfig{Model: "m"}, false},
	}
	for _, tc := range cases {
		if got := tc.cfg.Enabled(); got != tc.want {
			t.Fatalf("%s: Enabled() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestStreamConfigDefaultsAndOverride(t *testing.T) {
	t.Setenv("STREAM_DELAY_MS", "")
	cfg, err := loadStreamConfig()
	if err != nil {
		t.Fatalf("loadStreamConfig err: %v", err)
	}
	if cfg.WordDelay != 50*time.Millisecond {
		t.Fatalf("unexpected default delay: %v", cfg.WordDelay)
	}

	t.Setenv("STREAM_DELAY_MS", "0")
	cfg, err = loadStreamConfig()
	if err != nil {
		t.Fatalf("loadStreamConfig err: %v", err)
	}
	if cfg.WordDelay != 0 {
		t.Fatalf("expected zero delay, got %v", cfg.WordDelay)
	}

	t.Setenv("STREAM_DELAY_MS", "-5")
	if _, err := loadStreamConfig(); err == nil {
		t.Fatal("expected error for negative delay")
	}
}

func TestIngestConfigOverrides(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "400")
	t.Setenv("CHUNK_OVERLAP", "40")
	t.Setenv("INGEST_BATCH_SIZE", "10")

	cfg, err := loadIngestConfig()
	if err != nil {
		t.Fatalf("loadIngestConfig err: %v", err)
	}
	if cfg.ChunkSize != 400 || cfg.ChunkOverlap != 40 || cfg.BatchSize != 10 {
		t.Fatalf("unexpected ingest config: %+v", cfg)
	}
}

func TestIngestConfigRejectsNonPositiveBatchSize(t *testing.T) {
	// A zero batch would never advance the upsert loop; a negative one would
	// slice out of range.
	for _, value := range []string{"0", "-1"} {
		t.Setenv("INGEST_BATCH_SIZE", value)

		if _, err := loadIngestConfig(); err == nil {
			t.Fatalf("expected error for INGEST_BATCH_SIZE=%s", value)
		}
	}
}
