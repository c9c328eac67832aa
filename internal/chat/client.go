// Package chat proxies questions to an external chat-completion endpoint.
// The endpoint is treated as opaque: POST a message and mode, get back an
// answer string.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pmory/pmory-api/internal/models"
	"github.com/pmory/pmory-api/pkg/config"
	apperrors "github.com/pmory/pmory-api/pkg/errors"
)

// Asker is the proxy capability consumed by the chat service.
type Asker interface {
	Ask(ctx context.Context, message string, mode models.ChatMode) (string, error)
}

// Client posts questions to the configured endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient builds a proxy from config. An empty endpoint is allowed; the
// client then reports ErrNotConfigured on every Ask.
func NewClient(cfg config.ChatConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &Client{
		endpoint: cfg.Endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

type askPayload struct {
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

type askReply struct {
	Answer string `json:"answer"`
}

// Ask sends one question. A missing endpoint is a configuration state,
// not a transport failure, and is reported as such.
func (c *Client) Ask(ctx context.Context, message string, mode models.ChatMode) (string, error) {
	if c.endpoint == "" {
		return "", apperrors.ErrNotConfigured
	}

	body, err := json.Marshal(askPayload{Message: message, Mode: string(mode)})
	if err != nil {
		return "", fmt.Errorf("chat: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("chat: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat: call endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("chat: endpoint returned HTTP %d", resp.StatusCode)
	}

	var reply askReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("chat: decode response: %w", err)
	}

	return reply.Answer, nil
}
