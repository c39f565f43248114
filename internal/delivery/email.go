package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmesoai/Omarim-AI-sub000/internal/logging"
)

// EmailConfig configures the HTTP email sender.
type EmailConfig struct {
	APIKey  string
	BaseURL string
	From    string
	Timeout time.Duration
}

// DefaultEmailConfig returns sensible defaults for a Resend-style API.
func DefaultEmailConfig(apiKey string) EmailConfig {
	return EmailConfig{
		APIKey:  apiKey,
		BaseURL: "https://api.resend.com",
		From:    "omarim@notifications.local",
		Timeout: 30 * time.Second,
	}
}

// HTTPEmailSender implements EmailSender against a Resend-style REST API.
// Single attempt, no retries; retry policy belongs to the caller.
type HTTPEmailSender struct {
	apiKey     string
	baseURL    string
	from       string
	httpClient *http.Client
}

// NewHTTPEmailSender creates an email sender. An empty API key is allowed;
// Send then reports a configuration-missing result instead of calling out.
func NewHTTPEmailSender(cfg EmailConfig) *HTTPEmailSender {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &HTTPEmailSender{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		from:       cfg.From,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type emailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type emailResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Send delivers one email.
func (s *HTTPEmailSender) Send(ctx context.Context, to, subject, body string) Result {
	if s.apiKey == "" {
		logging.DeliveryDebug("Email send skipped: no API key")
		return ConfigMissing("email delivery")
	}

	payload, err := json.Marshal(emailRequest{
		From:    s.from,
		To:      to,
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("failed to read response: %v", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Success: false, Message: fmt.Sprintf("provider returned status %d: %s", resp.StatusCode, string(respBody))}
	}

	var emailResp emailResponse
	if err := json.Unmarshal(respBody, &emailResp); err == nil && emailResp.Error != nil {
		return Result{Success: false, Message: "provider error: " + emailResp.Error.Message}
	}

	logging.Delivery("Email sent to %s (subject=%q)", to, subject)
	return Result{Success: true, Message: fmt.Sprintf("email sent to %s", to)}
}
