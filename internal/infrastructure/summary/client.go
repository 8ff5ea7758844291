package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/specwise/backend/internal/domain"
)

// FailureMessage is the fixed user-facing text a failed summarization call
// degrades to; summarization errors are never surfaced as unhandled errors.
const FailureMessage = "AI request failed. Check token/network and try again."

// maxSummaryLength bounds the text returned from the proxy.
const maxSummaryLength = 1000

// Client posts summarization prompts to a configurable local proxy endpoint
type Client struct {
	httpClient *http.Client
	endpoint   string
	provider   string
	debug      bool
}

// NewClient creates a new summarization proxy client
func NewClient(endpoint, provider string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		endpoint: endpoint,
		provider: provider,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Summarize posts the prompt to the proxy and extracts a best-effort text
// answer from whichever known response shape the provider returned.
func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("%w: no endpoint configured", domain.ErrSummaryFailure)
	}

	payload, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSummaryFailure, err)
	}

	reqURL := fmt.Sprintf("%s?provider=%s", c.endpoint, url.QueryEscape(c.provider))
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSummaryFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSummaryFailure, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		if c.debug {
			log.Printf("[SUMMARY] proxy error - status: %d, body: %s", resp.StatusCode, string(body))
		}
		return "", fmt.Errorf("%w: status %d", domain.ErrSummaryFailure, resp.StatusCode)
	}

	text := extractText(body)
	if text == "" {
		return "", fmt.Errorf("%w: unrecognized response shape", domain.ErrSummaryFailure)
	}

	if len(text) > maxSummaryLength {
		text = text[:maxSummaryLength]
	}
	return text, nil
}

// extractText pulls the answer out of the known provider response shapes:
// a top-level array of {generated_text}, an OpenAI-style
// choices[0].message.content, or a bare {generated_text}. Anything else is
// returned as raw JSON so the caller still gets something renderable.
func extractText(body []byte) string {
	var arrayShape []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &arrayShape); err == nil && len(arrayShape) > 0 {
		return arrayShape[0].GeneratedText
	}

	var objectShape struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &objectShape); err == nil {
		if len(objectShape.Choices) > 0 && objectShape.Choices[0].Message.Content != "" {
			return objectShape.Choices[0].Message.Content
		}
		if objectShape.GeneratedText != "" {
			return objectShape.GeneratedText
		}
	}

	if json.Valid(body) {
		return string(body)
	}
	return ""
}
