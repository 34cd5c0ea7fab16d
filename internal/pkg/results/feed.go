package results

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/halobet/HaloBet/internal/pkg/env"
)

// FeedClient pulls finished-match scores from the external results provider.
// It implements ResultSource.
type FeedClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewFeedClient builds a client from RESULTS_FEED_URL and
// RESULTS_FEED_TOKEN. Returns an error when the URL is not configured so
// callers can skip installing the sync job instead of polling nothing.
func NewFeedClient() (*FeedClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(env.GetEnv("RESULTS_FEED_URL", "")), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("RESULTS_FEED_URL is not configured")
	}

	return &FeedClient{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseURL:    baseURL,
		token:      strings.TrimSpace(env.GetEnv("RESULTS_FEED_TOKEN", "")),
	}, nil
}

type feedEnvelope struct {
	Results []ResultUpdate `json:"results"`
}

// FetchResults requests the provider's finished-match feed.
func (c *FeedClient) FetchResults(ctx context.Context) ([]ResultUpdate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/results/finished", nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch results feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("results feed returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope feedEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode results feed: %w", err)
	}

	return envelope.Results, nil
}
