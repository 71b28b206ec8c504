package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/abuzarmahmood/pr-blog-bot/internal/logging"
)

// BraveClient queries the Brave Search web API.
type BraveClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	log        logging.Logger
}

func NewBraveClient(endpoint, apiKey string, log logging.Logger) *BraveClient {
	return &BraveClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log.WithName("search"),
	}
}

func (c *BraveClient) Search(ctx context.Context, query string, count int) ([]Result, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("search: invalid endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("count", strconv.Itoa(count))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("search: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("search: read response: %w", err)
	}

	results := parseBraveResults(body, count)
	c.log.Debug("search completed", "query", query, "results", len(results))
	return results, nil
}

func parseBraveResults(body []byte, count int) []Result {
	var results []Result
	gjson.GetBytes(body, "web.results").ForEach(func(_, value gjson.Result) bool {
		results = append(results, Result{
			Title:   value.Get("title").Str,
			URL:     value.Get("url").Str,
			Snippet: value.Get("description").Str,
		})
		return count <= 0 || len(results) < count
	})
	return results
}
