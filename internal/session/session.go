// Package session holds the transient, process-local chat state for
// one evaluation. Persisted records are owned by the store; a session
// only accumulates turns until a caller flushes them.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Roles of a conversation turn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged turn.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the chat context for one evaluation: a fresh conversation
// id and an append-only ordered history.
type Session struct {
	ID       string    `json:"id"`
	Started  time.Time `json:"started"`
	Messages []Message `json:"messages"`
}

// New creates an empty session with a fresh conversation id.
func New() *Session {
	return &Session{
		ID:      uuid.NewString(),
		Started: time.Now(),
	}
}

// Append adds one turn to the history.
func (s *Session) Append(role, content string) {
	s.Messages = append(s.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// Submit seeds the history with the student's code submission as the
// first user turn. Any previous turns belong to an earlier evaluation
// and are discarded.
func (s *Session) Submit(code string) {
	s.Messages = nil
	s.Append(RoleUser, fmt.Sprintf("Student Code Submission:\n```\n%s\n```", code))
}

// Last returns the most recent turn, or false if the history is empty.
func (s *Session) Last() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}
