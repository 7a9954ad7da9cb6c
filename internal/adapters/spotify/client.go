// Package spotify is the adapter for the Spotify Web API: catalog search,
// recommendations, audio features, profile lookup and playlist publishing.
// All call sites go through one request helper that normalizes transport
// errors, HTTP-status errors and structured API error bodies into the
// domain error taxonomy.
package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/seotrue/Feelist/internal/core/domain"
)

const defaultBaseURL = "https://api.spotify.com/v1"

// DefaultMarket pins search results to one locale, matching the product's
// primary audience.
const DefaultMarket = "KR"

// Client is an HTTP client for the Spotify Web API. The access token is
// supplied per call; the client itself holds no credentials.
type Client struct {
	httpClient *http.Client
	baseURL    string
	market     string
	log        zerolog.Logger
}

// NewClient constructs a Spotify client. A nil httpClient falls back to a
// sane default; empty baseURL/market fall back to the public API and the
// default market.
func NewClient(httpClient *http.Client, baseURL, market string, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if market == "" {
		market = DefaultMarket
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		market:     market,
		log:        log,
	}
}

// do performs one authenticated API call and decodes the response into out
// (skipped when out is nil). Failures come back as domain errors; no
// automatic retries happen at this layer.
func (c *Client) do(ctx context.Context, method, path, accessToken string, body any, out any) error {
	if accessToken == "" {
		return &domain.AuthError{Reason: "missing access token"}
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("spotify adapter: marshal request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("spotify adapter: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("spotify adapter: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.normalizeFailure(resp, raw, method, path)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("spotify adapter: decode %s %s: %w", method, path, err)
	}
	return nil
}

// normalizeFailure turns a non-2xx response into a typed domain error,
// decoding the conventional {"error":{"status","message"}} envelope when
// the body is machine-readable.
func (c *Client) normalizeFailure(resp *http.Response, body []byte, method, path string) error {
	message := resp.Status
	var envelope wireErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &domain.AuthError{Reason: message}
	case http.StatusTooManyRequests:
		return &domain.RateLimitError{
			Service:    "spotify",
			RetryAfter: retryAfterSeconds(resp),
			Message:    message,
		}
	}

	c.log.Error().
		Int("status", resp.StatusCode).
		Str("method", method).
		Str("path", path).
		Str("message", message).
		Msg("spotify request failed")

	return &domain.UpstreamError{Service: "spotify", Status: resp.StatusCode, Message: message}
}

// retryAfterSeconds parses the Retry-After header, in either delta-seconds
// or HTTP-date form.
func retryAfterSeconds(resp *http.Response) int {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
		return seconds
	}
	if when, err := http.ParseTime(header); err == nil {
		if until := time.Until(when); until > 0 {
			return int(until / time.Second)
		}
	}
	return 0
}
