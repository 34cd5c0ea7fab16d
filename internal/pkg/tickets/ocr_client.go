package tickets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/halobet/HaloBet/internal/pkg/env"
)

// OCRClient calls the external slip-extraction service. It implements
// Extractor; the extraction itself happens on the provider side.
type OCRClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewOCRClient builds a client from OCR_SERVICE_URL and OCR_SERVICE_TOKEN.
func NewOCRClient() (*OCRClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(env.GetEnv("OCR_SERVICE_URL", "")), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("OCR_SERVICE_URL is not configured")
	}

	return &OCRClient{
		// Extraction is slow compared to the feed calls
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		token:      strings.TrimSpace(env.GetEnv("OCR_SERVICE_TOKEN", "")),
	}, nil
}

type ocrResponse struct {
	Bets []ExtractedBet `json:"bets"`
	Raw  string         `json:"raw"`
}

// Extract sends the slip image and returns the structured bets the service
// read from it.
func (c *OCRClient) Extract(ctx context.Context, image []byte) (Extraction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract", bytes.NewReader(image))
	if err != nil {
		return Extraction{}, fmt.Errorf("build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Extraction{}, fmt.Errorf("call extraction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Extraction{}, fmt.Errorf("extraction service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Extraction{}, fmt.Errorf("decode extraction response: %w", err)
	}

	return Extraction{Bets: parsed.Bets, Raw: parsed.Raw}, nil
}
