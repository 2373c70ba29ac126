package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/codebuddy/codebuddy-go/internal/store"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ts := httptest.NewServer(New(st).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

type conversationView struct {
	ID       string `json:"id"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Feedback []struct {
		Text string `json:"feedback_text"`
	} `json:"feedback"`
}

func getConversations(t *testing.T, ts *httptest.Server) []conversationView {
	t.Helper()
	resp, err := http.Get(ts.URL + "/get_conversations")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []conversationView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// TestSaveConversation_ThenGet verifies saved messages come back in
// the same order.
func TestSaveConversation_ThenGet(t *testing.T) {
	ts := newTestServer(t)

	messages := []map[string]string{
		{"role": "user", "content": "A"},
		{"role": "assistant", "content": "B"},
		{"role": "user", "content": "C"},
	}
	resp := postJSON(t, ts.URL+"/save_conversation", map[string]any{
		"conversation_id": "conv-1",
		"messages":        messages,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.True(t, created["success"])

	conversations := getConversations(t, ts)
	require.Len(t, conversations, 1)
	require.Equal(t, "conv-1", conversations[0].ID)
	require.Len(t, conversations[0].Messages, 3)
	for i, m := range conversations[0].Messages {
		require.Equal(t, messages[i]["role"], m.Role)
		require.Equal(t, messages[i]["content"], m.Content)
	}
}

// TestSaveConversation_Twice verifies no duplicate conversation row
// and that messages accumulate across saves.
func TestSaveConversation_Twice(t *testing.T) {
	ts := newTestServer(t)

	for _, content := range []string{"first", "second"} {
		resp := postJSON(t, ts.URL+"/save_conversation", map[string]any{
			"conversation_id": "conv-1",
			"messages":        []map[string]string{{"role": "user", "content": content}},
		})
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	conversations := getConversations(t, ts)
	require.Len(t, conversations, 1)
	require.Len(t, conversations[0].Messages, 2)
}

func TestSaveConversation_MissingFields(t *testing.T) {
	ts := newTestServer(t)

	cases := []map[string]any{
		{"messages": []map[string]string{{"role": "user", "content": "A"}}},
		{"conversation_id": "conv-1"},
		{"conversation_id": "conv-1", "messages": []map[string]string{}},
	}
	for _, body := range cases {
		resp := postJSON(t, ts.URL+"/save_conversation", body)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "body: %v", body)
	}

	// Nothing was written.
	require.Empty(t, getConversations(t, ts))
}

func TestSaveFeedback(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/save_conversation", map[string]any{
		"conversation_id": "conv-1",
		"messages":        []map[string]string{{"role": "user", "content": "A"}},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/save_feedback", map[string]any{
		"conversation_id": "conv-1",
		"feedback":        "great session",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	conversations := getConversations(t, ts)
	require.Len(t, conversations[0].Feedback, 1)
	require.Equal(t, "great session", conversations[0].Feedback[0].Text)
}

// TestSaveFeedback_UnknownConversation verifies a 404 and no write.
func TestSaveFeedback_UnknownConversation(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/save_feedback", map[string]any{
		"conversation_id": "missing",
		"feedback":        "text",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Empty(t, getConversations(t, ts))
}

func TestSaveFeedback_MissingFields(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/save_feedback", map[string]any{"conversation_id": "conv-1"})
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/save_feedback", map[string]any{"feedback": "text"})
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSaveConversation_InvalidJSON(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/save_conversation", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
