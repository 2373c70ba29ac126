// Command codebuddy-index runs the offline embedding pipeline over a
// directory of course documents and student submissions.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/codebuddy/codebuddy-go/internal/chunker"
	"github.com/codebuddy/codebuddy-go/internal/config"
	"github.com/codebuddy/codebuddy-go/internal/embedding"
	"github.com/codebuddy/codebuddy-go/internal/extract"
	"github.com/codebuddy/codebuddy-go/internal/indexer"
	"github.com/codebuddy/codebuddy-go/internal/llm"
	"github.com/codebuddy/codebuddy-go/internal/logger"
	"github.com/codebuddy/codebuddy-go/internal/vectorstore"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: codebuddy-index <data directory>")
		os.Exit(2)
	}
	dataDir := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)

	if err := cfg.ValidateEmbedding(); err != nil {
		logger.L.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	documents, err := extract.Directory(dataDir)
	if err != nil {
		logger.L.Error("failed to process documents", "dir", dataDir, "error", err)
		os.Exit(1)
	}
	if len(documents) == 0 {
		logger.L.Warn("no supported documents found", "dir", dataDir)
		return
	}
	logger.L.Info("documents extracted", "dir", dataDir, "count", len(documents))

	embedder := embedding.NewOpenAI(llm.NewEmbeddingClient(cfg.Embedding), cfg.Embedding)
	store := vectorstore.NewQdrant(cfg.VectorStore)
	ix := indexer.New(
		chunker.NewCharacter(cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap),
		embedder,
		store,
	)

	if err := ix.Index(context.Background(), documents); err != nil {
		logger.L.Error("indexing failed", "error", err)
		os.Exit(1)
	}
	logger.L.Info("embedding and storing complete", "collection", cfg.VectorStore.Collection)
}
