// Package embedding computes vector embeddings through an
// OpenAI-compatible embeddings endpoint.
package embedding

import (
	"context"
	"errors"
	"time"

	"github.com/codebuddy/codebuddy-go/internal/config"
	"github.com/codebuddy/codebuddy-go/internal/llm"

	"github.com/sashabaranov/go-openai"
)

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OpenAI is an Embedder backed by the embeddings API.
type OpenAI struct {
	client  llm.Embedder
	model   string
	timeout time.Duration
}

// NewOpenAI creates an embedder using the given client.
func NewOpenAI(client llm.Embedder, cfg config.EmbeddingConfig) *OpenAI {
	return &OpenAI{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout(),
	}
}

// Embed returns the embedding vector for one text.
func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(o.model),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return resp.Data[0].Embedding, nil
}
