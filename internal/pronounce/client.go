package pronounce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/RogerChu8/voiceRecorder-app/internal/config"
)

// Assessment carries the scores returned by the scoring service, each on a
// 0-100 scale.
type Assessment struct {
	Accuracy float64 `json:"accuracyScore"`
	Fluency  float64 `json:"fluencyScore"`
	Prosody  float64 `json:"prosodyScore"`
}

// Scorer scores one recording against its reference text.
type Scorer interface {
	Score(ctx context.Context, audio []byte, referenceText string) (Assessment, error)
}

// Client provides access to the pronunciation scoring API.
type Client struct {
	apiKey     string
	endpoint   string
	language   string
	httpClient *http.Client
}

var _ Scorer = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a scoring client. baseURL may contain a single %s placeholder
// that is filled with the region.
func New(apiKey, region, baseURL, language string, timeout time.Duration, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("pronunciation api key required")
	}
	region = strings.TrimSpace(region)
	if region == "" {
		return nil, errors.New("pronunciation region required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("pronunciation base url required")
	}
	endpoint := baseURL
	if strings.Contains(baseURL, "%s") {
		endpoint = fmt.Sprintf(baseURL, region)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &Client{
		apiKey:     apiKey,
		endpoint:   strings.TrimRight(endpoint, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// NewFromConfig creates a scoring client from the pronunciation config
// section. Returns nil without error when scoring is disabled.
func NewFromConfig(cfg config.Pronunciation, opts ...Option) (*Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	return New(cfg.APIKey, cfg.Region, cfg.BaseURL, cfg.Language, time.Duration(cfg.TimeoutSeconds)*time.Second, opts...)
}

// Score submits one recording for assessment. A single attempt is made;
// callers wanting timeouts beyond the client's own should wrap ctx.
func (c *Client) Score(ctx context.Context, audio []byte, referenceText string) (Assessment, error) {
	referenceText = strings.TrimSpace(referenceText)
	if referenceText == "" {
		return Assessment{}, errors.New("reference text must not be empty")
	}
	if len(audio) == 0 {
		return Assessment{}, errors.New("audio must not be empty")
	}

	endpoint, err := url.Parse(c.endpoint)
	if err != nil {
		return Assessment{}, fmt.Errorf("parse scoring url: %w", err)
	}
	params := url.Values{}
	params.Set("referenceText", referenceText)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(audio))
	if err != nil {
		return Assessment{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "audio/wav")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return Assessment{}, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		detail := strings.TrimSpace(string(body))
		if detail != "" {
			return Assessment{}, fmt.Errorf("scoring service returned %d (latency=%v): %s", resp.StatusCode, latency, detail)
		}
		return Assessment{}, fmt.Errorf("scoring service returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload Assessment
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Assessment{}, fmt.Errorf("decode scoring response: %w", err)
	}
	return payload, nil
}
