package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the external symptom-assistant service. Inference
// happens entirely on that side; this is a thin JSON client.
type Client struct {
	baseURL string
	httpc   *http.Client
}

type chatRequest struct {
	ChatID  string `json:"chat_id"`
	Message string `json:"message"`
}

type ChatReply struct {
	ChatID     string `json:"chat_id"`
	AIResponse string `json:"ai_response"`
	Timestamp  string `json:"timestamp"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Chat(ctx context.Context, chatID, message string) (*ChatReply, error) {
	body, err := json.Marshal(chatRequest{
		ChatID:  chatID,
		Message: message,
	})
	if err != nil {
		return nil, fmt.Errorf("assistant: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/chat",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("assistant: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assistant: calling service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("assistant: service returned %d: %s", resp.StatusCode, payload)
	}

	var reply ChatReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("assistant: decoding response: %w", err)
	}

	return &reply, nil
}
