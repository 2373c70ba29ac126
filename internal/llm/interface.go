package llm

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// Generator is the minimal subset of openai.Client the tutor engine
// uses; it is easy to mock in tests.
type Generator interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Embedder is the minimal subset of openai.Client the indexer uses.
type Embedder interface {
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}
