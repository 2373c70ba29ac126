// Package server exposes the conversation store as an HTTP/JSON API.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/codebuddy/codebuddy-go/internal/logger"
	"github.com/codebuddy/codebuddy-go/internal/store"
)

// Server routes store operations over HTTP.
type Server struct {
	store *store.Store
}

// New creates a server backed by the given store.
func New(st *store.Store) *Server {
	return &Server{store: st}
}

// Routes returns the request mux for the API.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /save_conversation", s.handleSaveConversation)
	mux.HandleFunc("POST /save_feedback", s.handleSaveFeedback)
	mux.HandleFunc("GET /get_conversations", s.handleGetConversations)
	return mux
}

type saveConversationRequest struct {
	ConversationID string              `json:"conversation_id"`
	Messages       []store.ChatMessage `json:"messages"`
}

type saveFeedbackRequest struct {
	ConversationID string `json:"conversation_id"`
	Feedback       string `json:"feedback"`
}

func (s *Server) handleSaveConversation(w http.ResponseWriter, r *http.Request) {
	var req saveConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ConversationID == "" || len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "Missing conversation_id or messages")
		return
	}

	if err := s.store.SaveConversation(r.Context(), req.ConversationID, req.Messages); err != nil {
		logger.L.Error("save conversation failed", "conversation_id", req.ConversationID, "error", err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	logger.L.Info("conversation saved", "conversation_id", req.ConversationID, "messages", len(req.Messages))
	writeJSON(w, http.StatusCreated, map[string]any{"success": true})
}

func (s *Server) handleSaveFeedback(w http.ResponseWriter, r *http.Request) {
	var req saveFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ConversationID == "" || req.Feedback == "" {
		writeError(w, http.StatusBadRequest, "Missing conversation_id or feedback")
		return
	}

	err := s.store.SaveFeedback(r.Context(), req.ConversationID, req.Feedback)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Conversation with ID "+req.ConversationID+" not found")
		return
	}
	if err != nil {
		logger.L.Error("save feedback failed", "conversation_id", req.ConversationID, "error", err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	logger.L.Info("feedback saved", "conversation_id", req.ConversationID)
	writeJSON(w, http.StatusCreated, map[string]any{"success": true})
}

func (s *Server) handleGetConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := s.store.ListConversations(r.Context())
	if err != nil {
		logger.L.Error("list conversations failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, conversations)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.L.Error("write response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
