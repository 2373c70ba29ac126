package storeclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codebuddy/codebuddy-go/internal/session"

	"github.com/stretchr/testify/require"
)

func TestSaveConversation(t *testing.T) {
	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/save_conversation", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	err := c.SaveConversation(context.Background(), "conv-1", []session.Message{
		{Role: session.RoleUser, Content: "A"},
		{Role: session.RoleAssistant, Content: "B"},
	})
	require.NoError(t, err)
	require.Equal(t, "conv-1", got["conversation_id"])
	messages := got["messages"].([]any)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]any)
	require.Equal(t, "user", first["role"])
	require.Equal(t, "A", first["content"])
}

func TestSaveFeedback_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Conversation with ID conv-1 not found"}`))
	}))
	defer ts.Close()

	err := New(ts.URL).SaveFeedback(context.Background(), "conv-1", "text")
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}
