package storeclient

import (
	"context"

	"github.com/codebuddy/codebuddy-go/internal/session"
)

// Recorder tracks how many turns of a session have already been
// persisted so each flush sends only the new ones. The store appends
// every message it receives, so re-sending earlier turns would
// duplicate them in the conversation record.
type Recorder struct {
	client         *Client
	conversationID string
	saved          int
}

// NewRecorder creates a recorder for one conversation.
func NewRecorder(client *Client, conversationID string) *Recorder {
	return &Recorder{client: client, conversationID: conversationID}
}

// Flush persists the turns appended since the last successful flush.
// A no-op when there is nothing new; on failure the cursor does not
// advance, so the unsaved turns are retried on the next flush.
func (r *Recorder) Flush(ctx context.Context, messages []session.Message) error {
	if len(messages) <= r.saved {
		return nil
	}
	if err := r.client.SaveConversation(ctx, r.conversationID, messages[r.saved:]); err != nil {
		return err
	}
	r.saved = len(messages)
	return nil
}
