package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/FrenchMajesty/classifier-eval/internal/retry"
)

const openaiBaseURL = "https://api.openai.com/v1"

// NewClient creates a new Client targeting the OpenAI API. Use SetBaseURL
// for compatible providers.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:      apiKey,
		BaseURL:     openaiBaseURL,
		HTTPClient:  http.DefaultClient,
		RetryConfig: retry.DefaultConfig(),
	}
}

var _ LanguageModelClient = (*Client)(nil)

// SetBaseURL points the client at an OpenAI-compatible endpoint
func (c *Client) SetBaseURL(baseURL string) {
	c.BaseURL = baseURL
}

// ChatCompletion sends a chat completion request with retry logic
func (c *Client) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	url := c.BaseURL + "/chat/completions"

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	respBody, err := retry.Do(ctx, "OpenAI chat", c.RetryConfig, isRetryable, func(attempt int) ([]byte, int, error) {
		return c.post(ctx, url, body)
	})
	if err != nil {
		return nil, err
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, &ChatCompletionError{
			Message: fmt.Sprintf("failed to parse chat completion response: %v", err),
			RawBody: json.RawMessage(respBody),
		}
	}

	return &chatResp, nil
}

// post performs one POST attempt and maps non-200 statuses to typed
// errors carrying the raw body.
func (c *Client) post(ctx context.Context, url string, body []byte) ([]byte, int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read chat response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return respBody, resp.StatusCode, &ChatCompletionError{
			Message:    fmt.Sprintf("openai chat API error %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
			RawBody:    json.RawMessage(respBody),
		}
	}

	return respBody, resp.StatusCode, nil
}

// isRetryable determines if an attempt should be retried
func isRetryable(err error, statusCode int, body []byte) bool {
	// Network errors never produced a response
	if err != nil && statusCode == 0 {
		return true
	}

	// Server errors and rate limiting
	if statusCode >= 500 || statusCode == http.StatusTooManyRequests {
		return true
	}

	return false
}
