package config

import (
	"os"
	"testing"
)

const sampleConfig = `
llm:
  base_url: https://api.example.com/v1
  api_key: dummy
  model: gpt-4o
  timeout_seconds: 10
embedding:
  model: text-embedding-3-small
vector_store:
  url: http://localhost:6333
  collection: student_code_collection
chunking:
  chunk_size: 500
  chunk_overlap: 50
store:
  path: test.db
  api_url: http://localhost:5000
server:
  host: 0.0.0.0
  port: "5000"
`

// TestLoad verifies that Load unmarshals the full config file.
func TestLoad(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	if _, err := tmp.WriteString(sampleConfig); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmp.Close()

	t.Setenv("CONFIG_PATH", tmp.Name())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Fatalf("unexpected model: %s", cfg.LLM.Model)
	}
	if cfg.LLM.APIKey != "dummy" {
		t.Fatalf("unexpected api key: %s", cfg.LLM.APIKey)
	}
	if cfg.Chunking.ChunkSize != 500 || cfg.Chunking.ChunkOverlap != 50 {
		t.Fatalf("unexpected chunking config: %+v", cfg.Chunking)
	}
	if cfg.Server.Port != "5000" {
		t.Fatalf("unexpected port: %s", cfg.Server.Port)
	}
	// Embedding key falls back to the LLM key when unset.
	if cfg.Embedding.APIKey != "dummy" {
		t.Fatalf("embedding key not inherited: %s", cfg.Embedding.APIKey)
	}
	if err := cfg.ValidateLLM(); err != nil {
		t.Fatalf("ValidateLLM: %v", err)
	}
}

// TestLoad_EnvOverride verifies the API key can come from the environment.
func TestLoad_EnvOverride(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	if _, err := tmp.WriteString("llm:\n  model: gpt-4o\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmp.Close()

	t.Setenv("CONFIG_PATH", tmp.Name())
	t.Setenv("LLM_API_KEY", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.APIKey != "from-env" {
		t.Fatalf("env override not applied: %q", cfg.LLM.APIKey)
	}
}

// TestValidateLLM_MissingKey verifies a missing credential is an error.
func TestValidateLLM_MissingKey(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ValidateLLM(); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
