// Package tutor implements the dialogue engine that drives the code
// evaluation conversation: it assembles a prompt from the governing
// instruction and the ordered chat history, delegates generation to an
// OpenAI-compatible backend, and tracks the protocol stage the
// conversation has reached.
package tutor

import (
	"context"
	"strings"
	"time"

	"github.com/codebuddy/codebuddy-go/internal/config"
	"github.com/codebuddy/codebuddy-go/internal/llm"
	"github.com/codebuddy/codebuddy-go/internal/logger"
	"github.com/codebuddy/codebuddy-go/internal/session"

	"github.com/sashabaranov/go-openai"
)

// Fallback utterances. These are returned to the student verbatim;
// generation failures never propagate as errors.
const (
	FallbackMessage       = "An error occurred during the response generation."
	NotInitializedMessage = "LLM not initialized."
)

// Engine produces the next assistant turn for a conversation. It holds
// no per-conversation state; the caller owns the history and appends
// the returned utterance to it.
type Engine struct {
	client      llm.Generator
	model       string
	instruction string
	timeout     time.Duration
}

// New creates an engine backed by the given generation client.
func New(client llm.Generator, cfg config.LLMConfig) *Engine {
	return &Engine{
		client:      client,
		model:       cfg.Model,
		instruction: Instruction,
		timeout:     cfg.Timeout(),
	}
}

// BuildPrompt concatenates the instruction, each history turn as
// "<Role>: <content>" in original order, and a trailing response cue,
// joined by blank lines. The instruction must come first so the model
// treats it as governing context, and history order must be preserved
// exactly so confirmations and disagreements stay attributable to the
// step they answered.
func (e *Engine) BuildPrompt(history []session.Message) string {
	parts := make([]string, 0, len(history)+1)
	parts = append(parts, e.instruction)
	for _, m := range history {
		switch m.Role {
		case session.RoleUser:
			parts = append(parts, "User: "+m.Content)
		case session.RoleAssistant:
			parts = append(parts, "Assistant: "+m.Content)
		}
	}
	return strings.Join(parts, "\n\n") + "\n\nResponse:"
}

// Respond returns the assistant's next utterance for the given
// history. The generation call is bounded by the configured timeout;
// on any backend failure the literal fallback message is returned.
func (e *Engine) Respond(ctx context.Context, history []session.Message) string {
	if e.client == nil {
		return NotInitializedMessage
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := e.BuildPrompt(history)
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		logger.L.Error("response generation failed", "error", err)
		return FallbackMessage
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		logger.L.Error("response generation returned no content")
		return FallbackMessage
	}
	return resp.Choices[0].Message.Content
}
