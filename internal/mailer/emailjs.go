// Package mailer talks to the template-send REST API (EmailJS). A send is
// a single POST with the account, template, and parameter map; the service
// renders and delivers the message.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pmory/pmory-api/pkg/config"
)

// Sender is the send capability consumed by the subscription and
// notification services.
type Sender interface {
	Send(ctx context.Context, req SendRequest) error
}

// SendRequest fully describes one outbound message.
type SendRequest struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	Params     map[string]string
}

// Client is the HTTP implementation of Sender.
type Client struct {
	baseURL  string
	disabled bool
	http     *http.Client
	logger   *zap.Logger
}

// NewClient builds a sender from config. With DisableDeliveries set the
// client logs and succeeds without calling out, for local development.
func NewClient(cfg config.MailConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:  cfg.BaseURL,
		disabled: cfg.DisableDeliveries,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type sendPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send posts one message. Any non-2xx reply is a failure.
func (c *Client) Send(ctx context.Context, req SendRequest) error {
	if c.disabled {
		c.logger.Info("mail delivery disabled, dropping send",
			zap.String("template", req.TemplateID),
			zap.String("to", req.Params["to_email"]))
		return nil
	}

	if req.ServiceID == "" || req.PublicKey == "" {
		return fmt.Errorf("mailer: service id and public key are required")
	}

	body, err := json.Marshal(sendPayload{
		ServiceID:      req.ServiceID,
		TemplateID:     req.TemplateID,
		UserID:         req.PublicKey,
		TemplateParams: req.Params,
	})
	if err != nil {
		return fmt.Errorf("mailer: encode payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mailer: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mailer: send failed with status %d: %s", resp.StatusCode, detail)
	}

	return nil
}
