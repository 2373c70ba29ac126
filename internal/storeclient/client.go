// Package storeclient is the HTTP client the chat shell uses to flush
// conversation history and feedback to the store API.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/codebuddy/codebuddy-go/internal/session"
	"github.com/codebuddy/codebuddy-go/internal/store"
)

// Client talks to the conversation store API.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the store API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SaveConversation posts the full session history under the given
// conversation id.
func (c *Client) SaveConversation(ctx context.Context, conversationID string, messages []session.Message) error {
	chat := make([]store.ChatMessage, 0, len(messages))
	for _, m := range messages {
		chat = append(chat, store.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return c.post(ctx, "/save_conversation", map[string]any{
		"conversation_id": conversationID,
		"messages":        chat,
	})
}

// SaveFeedback posts one feedback entry for an existing conversation.
func (c *Client) SaveFeedback(ctx context.Context, conversationID, feedback string) error {
	return c.post(ctx, "/save_feedback", map[string]any{
		"conversation_id": conversationID,
		"feedback":        feedback,
	})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("post %s: %s: %s", path, resp.Status, strings.TrimSpace(string(payload)))
	}
	return nil
}
