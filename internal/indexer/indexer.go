// Package indexer runs the embedding pipeline: extracted documents are
// chunked, embedded and upserted into the vector collection.
package indexer

import (
	"context"
	"fmt"

	"github.com/codebuddy/codebuddy-go/internal/chunker"
	"github.com/codebuddy/codebuddy-go/internal/embedding"
	"github.com/codebuddy/codebuddy-go/internal/extract"
	"github.com/codebuddy/codebuddy-go/internal/logger"
	"github.com/codebuddy/codebuddy-go/internal/vectorstore"
)

// Indexer ties the chunker, the embedder and the vector store
// together.
type Indexer struct {
	chunker  *chunker.CharacterChunker
	embedder embedding.Embedder
	store    vectorstore.Store
}

// New creates an indexer.
func New(c *chunker.CharacterChunker, e embedding.Embedder, s vectorstore.Store) *Indexer {
	return &Indexer{chunker: c, embedder: e, store: s}
}

// Index embeds every chunk of every document and upserts it under a
// deterministic id derived from the filename and chunk index, so
// re-indexing the same file is
// idempotent. Per-chunk failures are logged and skipped; the
// collection is created lazily once the first vector reveals the
// embedding dimension.
func (ix *Indexer) Index(ctx context.Context, documents []extract.Document) error {
	collectionReady := false

	for _, doc := range documents {
		chunks := ix.chunker.Chunk(doc.Content)
		points := make([]vectorstore.Point, 0, len(chunks))

		for i, chunk := range chunks {
			vector, err := ix.embedder.Embed(ctx, chunk)
			if err != nil {
				logger.L.Error("failed to embed chunk", "filename", doc.Filename, "chunk_index", i, "error", err)
				continue
			}
			if !collectionReady {
				if err := ix.store.EnsureCollection(ctx, len(vector)); err != nil {
					return fmt.Errorf("ensure collection: %w", err)
				}
				collectionReady = true
			}
			points = append(points, vectorstore.Point{
				ID:     vectorstore.PointID(doc.Filename, i),
				Vector: vector,
				Payload: map[string]any{
					"filename":    doc.Filename,
					"chunk_index": i,
					"text":        chunk,
				},
			})
		}

		if err := ix.store.Upsert(ctx, points); err != nil {
			logger.L.Error("failed to upsert chunks", "filename", doc.Filename, "error", err)
			continue
		}
		logger.L.Info("document indexed", "filename", doc.Filename, "chunks", len(points))
	}
	return nil
}
