package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/GenZCreation/genz-backend/models"
)

const defaultBaseURL = "https://api.resend.com"

// Resend_Client sends transactional email through the Resend API. Like the
// gemini client it is constructed once from configuration and reused.
type Resend_Client struct {
	APIKey string
	// BaseURL overrides the Resend endpoint, used by tests.
	BaseURL string

	client *http.Client
}

func NewClient(apiKey string) *Resend_Client {
	return &Resend_Client{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Send submits one email and returns the opaque message id Resend assigns.
// Non-2xx responses surface as *models.UpstreamError with Resend's own
// message when it can be parsed; there are no retries.
func (c *Resend_Client) Send(ctx context.Context, send Send_Request) (string, error) {
	body, err := json.Marshal(send)
	if err != nil {
		return "", fmt.Errorf("failed to marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create resend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making POST request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read resend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr Send_Error
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
			return "", &models.UpstreamError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		return "", &models.UpstreamError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("Resend error HTTP %d", resp.StatusCode)}
	}

	var sent Send_Response
	if err := json.Unmarshal(raw, &sent); err != nil {
		// A 2xx with an unreadable body still means the mail went out.
		return "", nil
	}
	return sent.ID, nil
}
