// Package store persists conversations, their messages and feedback in
// SQLite. Every mutation runs in its own transaction: it either commits
// fully or rolls back, leaving no partial writes.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// ErrNotFound is returned when an operation references a conversation
// that does not exist.
var ErrNotFound = errors.New("conversation not found")

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
    id TEXT PRIMARY KEY,
    timestamp DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    conversation_id TEXT NOT NULL REFERENCES conversations(id),
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    timestamp DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS feedback (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    conversation_id TEXT NOT NULL REFERENCES conversations(id),
    feedback_text TEXT NOT NULL,
    timestamp DATETIME NOT NULL
);`

// ChatMessage is one role/content pair supplied by a caller.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message is a persisted message row.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
}

// Feedback is a persisted feedback row.
type Feedback struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Text           string    `json:"feedback_text"`
	Timestamp      time.Time `json:"timestamp"`
}

// Conversation is a conversation with its messages and feedback nested
// inline.
type Conversation struct {
	ID        string     `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	Messages  []Message  `json:"messages"`
	Feedback  []Feedback `json:"feedback"`
}

// Store wraps the database handle. database/sql pools connections per
// statement, so one Store is shared across requests.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_busy_timeout=10000&_fk=1")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveConversation creates the conversation row if it does not exist
// yet and appends all supplied messages to it, atomically. Saving the
// same conversation id again never duplicates the conversation row;
// it only appends messages.
func (s *Store) SaveConversation(ctx context.Context, conversationID string, messages []ChatMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, `SELECT id FROM conversations WHERE id = ?`, conversationID).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.ExecContext(ctx, `INSERT INTO conversations (id, timestamp) VALUES (?, ?)`, conversationID, time.Now().UTC()); err != nil {
			return fmt.Errorf("insert conversation: %w", err)
		}
	case err != nil:
		return fmt.Errorf("check conversation: %w", err)
	}

	now := time.Now().UTC()
	for _, m := range messages {
		if _, err := tx.ExecContext(ctx, `INSERT INTO messages (conversation_id, role, content, timestamp) VALUES (?, ?, ?, ?)`,
			conversationID, m.Role, m.Content, now); err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// SaveFeedback appends a feedback entry to an existing conversation.
// Returns ErrNotFound when the conversation does not exist; nothing is
// written in that case.
func (s *Store) SaveFeedback(ctx context.Context, conversationID, text string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, `SELECT id FROM conversations WHERE id = ?`, conversationID).Scan(&existing)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, conversationID)
	}
	if err != nil {
		return fmt.Errorf("check conversation: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO feedback (conversation_id, feedback_text, timestamp) VALUES (?, ?, ?)`,
		conversationID, text, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListConversations returns every conversation newest-first, each with
// its messages in append order and feedback entries inline.
func (s *Store) ListConversations(ctx context.Context) ([]Conversation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, timestamp FROM conversations ORDER BY timestamp DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	defer rows.Close()

	conversations := []Conversation{}
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.ID, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversations: %w", err)
	}

	for i := range conversations {
		if conversations[i].Messages, err = s.listMessages(ctx, conversations[i].ID); err != nil {
			return nil, err
		}
		if conversations[i].Feedback, err = s.listFeedback(ctx, conversations[i].ID); err != nil {
			return nil, err
		}
	}
	return conversations, nil
}

func (s *Store) listMessages(ctx context.Context, conversationID string) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, conversation_id, role, content, timestamp FROM messages WHERE conversation_id = ? ORDER BY id ASC`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *Store) listFeedback(ctx context.Context, conversationID string) ([]Feedback, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, conversation_id, feedback_text, timestamp FROM feedback WHERE conversation_id = ? ORDER BY id ASC`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer rows.Close()

	feedback := []Feedback{}
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.ConversationID, &f.Text, &f.Timestamp); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}
