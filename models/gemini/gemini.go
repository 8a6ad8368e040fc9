package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/GenZCreation/genz-backend/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// fallbackText is returned when the model answers with a 200 but no usable
// text. The widget must never render a blank assistant bubble.
const fallbackText = "Ok."

// Gemini_Model is the upstream completion client. It is built once from
// configuration and reused across requests; it holds no per-request state.
type Gemini_Model struct {
	Model  string
	APIKey string
	// BaseURL overrides the Google endpoint, used by tests.
	BaseURL string

	// client is used for buffered calls and carries a hard timeout.
	// streamClient has no overall timeout: a streamed body legitimately
	// outlives 30s, and cancellation rides the request context instead.
	client       *http.Client
	streamClient *http.Client
}

func NewModel(model, apiKey string) *Gemini_Model {
	if model == "" {
		model = "gemini-3-flash-preview"
	}
	return &Gemini_Model{
		Model:        model,
		APIKey:       apiKey,
		BaseURL:      defaultBaseURL,
		client:       &http.Client{Timeout: 30 * time.Second},
		streamClient: &http.Client{},
	}
}

// Generate issues one buffered completion call and returns the concatenated
// candidate text. A non-2xx status or an unreadable body surfaces as
// *models.UpstreamError; there are no retries.
func (g *Gemini_Model) Generate(ctx context.Context, contents []Content, system string) (string, error) {
	body, err := json.Marshal(build_request(contents, system))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.BaseURL, g.Model)
	resp, err := g.do_request(ctx, g.client, url, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gemini response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", upstream_error(resp.StatusCode, raw)
	}

	var response Gemini_Response
	if err := json.Unmarshal(raw, &response); err != nil {
		return "", &models.UpstreamError{StatusCode: resp.StatusCode, Message: "unparseable gemini response"}
	}

	text := ExtractText(&response)
	if text == "" {
		return fallbackText, nil
	}
	return text, nil
}

// StreamGenerate opens the SSE variant of the completion call and hands the
// raw body to the caller. It fails fast on a non-2xx status, before any
// stream processing begins. The caller owns closing the returned body.
func (g *Gemini_Model) StreamGenerate(ctx context.Context, contents []Content, system string) (io.ReadCloser, error) {
	body, err := json.Marshal(build_request(contents, system))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stream request body: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", g.BaseURL, g.Model)
	resp, err := g.do_request(ctx, g.streamClient, url, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		resp.Body.Close()
		return nil, upstream_error(resp.StatusCode, raw)
	}

	return resp.Body, nil
}

// ExtractText joins every text part of the first candidate, in order.
func ExtractText(resp *Gemini_Response) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func build_request(contents []Content, system string) Gemini_Request_Body {
	req := Gemini_Request_Body{
		Contents: contents,
		GenerationConfig: &GenerationConfig{
			Temperature:     0.4,
			MaxOutputTokens: 800,
		},
	}
	if system != "" {
		req.SystemInstruction = &SystemInstruction{Parts: []Part{{Text: system}}}
	}
	return req
}

func (g *Gemini_Model) do_request(ctx context.Context, client *http.Client, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making POST request: %w", err)
	}
	return resp, nil
}

// upstream_error shapes a non-2xx gemini body into an UpstreamError, keeping
// the API's own message when the error envelope parses.
func upstream_error(status int, raw []byte) error {
	var envelope Gemini_Error_Response
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		return &models.UpstreamError{StatusCode: status, Message: envelope.Error.Message}
	}
	return &models.UpstreamError{StatusCode: status, Message: fmt.Sprintf("Gemini error HTTP %d", status)}
}
