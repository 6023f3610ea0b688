package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chat", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			ChatID  string `json:"chat_id"`
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "session-1", req.ChatID)
		assert.Equal(t, "I have a fever", req.Message)

		json.NewEncoder(w).Encode(ChatReply{
			ChatID:     req.ChatID,
			AIResponse: "How high is it?",
			Timestamp:  "2026-03-02T09:00:00Z",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	reply, err := client.Chat(context.Background(), "session-1", "I have a fever")
	require.NoError(t, err)
	assert.Equal(t, "session-1", reply.ChatID)
	assert.Equal(t, "How high is it?", reply.AIResponse)
}

func TestClientChat_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	_, err := client.Chat(context.Background(), "session-1", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClientChat_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")

	_, err := client.Chat(context.Background(), "session-1", "hello")
	require.Error(t, err)
}
