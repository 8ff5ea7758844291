package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/specwise/backend/internal/domain"
)

// Client handles communication with the MediaWiki action API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	searchLimit int
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new MediaWiki API client
func NewClient(baseURL, userAgent string, searchLimit int) *Client {
	// Stay well under the API's anonymous-client etiquette limits
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	if searchLimit <= 0 {
		searchLimit = 8
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		userAgent:   userAgent,
		searchLimit: searchLimit,
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWikiAPIFailure, err)
	}

	return resp, nil
}

// exponentialBackoff returns the delay before the given retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// Search queries the encyclopedia for candidate article titles. The query is
// biased toward smartphones by appending the keyword before searching.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Candidate, error) {
	if c.debug {
		log.Printf("[WIKI] Search called with query: %q", query)
	}

	params := url.Values{}
	params.Add("action", "query")
	params.Add("list", "search")
	params.Add("srsearch", query+" smartphone")
	params.Add("srlimit", fmt.Sprintf("%d", c.searchLimit))
	params.Add("format", "json")

	reqURL := fmt.Sprintf("%s/w/api.php?%s", c.baseURL, params.Encode())

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[WIKI] search request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[WIKI] search error (attempt %d) - status: %d, body: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrWikiAPIFailure, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var searchResp searchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, fmt.Errorf("failed to decode search response: %w", err)
		}

		candidates := make([]domain.Candidate, 0, len(searchResp.Query.Search))
		for _, item := range searchResp.Query.Search {
			candidates = append(candidates, domain.Candidate{
				PageID:  item.PageID,
				Title:   item.Title,
				Snippet: stripHTMLTags(item.Snippet),
			})
		}

		if c.debug {
			log.Printf("[WIKI] found %d candidates for query: %q", len(candidates), query)
		}
		return candidates, nil
	}

	return nil, lastErr
}

// FetchArticleHTML retrieves the rendered HTML content of one article by its
// canonical title.
func (c *Client) FetchArticleHTML(ctx context.Context, title string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Add("action", "parse")
	params.Add("page", title)
	params.Add("prop", "text")
	params.Add("formatversion", "2")
	params.Add("format", "json")

	reqURL := fmt.Sprintf("%s/w/api.php?%s", c.baseURL, params.Encode())

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", domain.ErrPageNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d, body: %s", domain.ErrWikiAPIFailure, resp.StatusCode, string(body))
	}

	var parseResp parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parseResp); err != nil {
		return "", fmt.Errorf("failed to decode parse response: %w", err)
	}

	// The API reports missing pages inside a 200 response
	if parseResp.Error != nil {
		if parseResp.Error.Code == "missingtitle" {
			return "", domain.ErrPageNotFound
		}
		return "", fmt.Errorf("%w: %s", domain.ErrWikiAPIFailure, parseResp.Error.Info)
	}

	return parseResp.Parse.Text, nil
}

// searchResponse represents the list=search API response
type searchResponse struct {
	Query struct {
		SearchInfo struct {
			TotalHits int `json:"totalhits"`
		} `json:"searchinfo"`
		Search []struct {
			PageID  int    `json:"pageid"`
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

// parseResponse represents the action=parse API response (formatversion=2)
type parseResponse struct {
	Parse struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"parse"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// stripHTMLTags removes markup from search snippets (the API wraps matched
// terms in span tags).
func stripHTMLTags(s string) string {
	var result []rune
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result = append(result, r)
		}
	}
	return string(result)
}
