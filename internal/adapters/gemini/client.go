// Package gemini provides an adapter for the Google Generative Language
// API. It implements mood analysis by sending user text to a Gemini model
// and normalizing the structured JSON response into a domain MoodDescriptor.
package gemini

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
	"github.com/seotrue/Feelist/internal/core/ports"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash-exp"
)

// Client calls the Generative Language API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        zerolog.Logger
}

var _ ports.MoodAnalyzer = (*Client)(nil)

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
	Details []struct {
		Type       string `json:"@type"`
		RetryDelay string `json:"retryDelay"`
	} `json:"details"`
}

// NewClient constructs a Gemini client. Empty baseURL and model fall back
// to the public endpoint and the free-tier flash model.
func NewClient(baseURL, apiKey, model string, log zerolog.Logger) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// AnalyzeMood sends user text to the model once and turns the response into
// a fully populated MoodDescriptor. Upstream quota errors surface as
// domain.RateLimitError so the caller can show a distinct affordance.
func (c *Client) AnalyzeMood(ctx context.Context, prompt string) (domain.MoodDescriptor, error) {
	if err := domain.ValidatePrompt(prompt); err != nil {
		return domain.MoodDescriptor{}, err
	}

	payload := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: buildAnalysisPrompt(strings.TrimSpace(prompt))}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.MoodDescriptor{}, fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.MoodDescriptor{}, fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.MoodDescriptor{}, &domain.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.MoodDescriptor{}, fmt.Errorf("gemini: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.MoodDescriptor{}, c.classifyFailure(resp, raw)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return domain.MoodDescriptor{}, fmt.Errorf("gemini: decode response: %w", err)
	}
	if parsed.Error != nil {
		return domain.MoodDescriptor{}, c.classifyFailure(resp, raw)
	}

	text := candidateText(parsed)
	if strings.TrimSpace(text) == "" {
		return domain.MoodDescriptor{}, &domain.TranslationError{Reason: "empty model response"}
	}

	object, ok := extractJSONObject(text)
	if !ok {
		return domain.MoodDescriptor{}, &domain.TranslationError{Reason: "no JSON object in model response"}
	}

	var rawDescriptor map[string]any
	if err := json.Unmarshal([]byte(object), &rawDescriptor); err != nil {
		return domain.MoodDescriptor{}, &domain.TranslationError{Reason: "model JSON unparsable", Err: err}
	}

	d := domain.NormalizeDescriptor(rawDescriptor)
	c.log.Debug().Str("mood", d.Mood).Strs("genres", d.Genres).Msg("mood analyzed")
	return d, nil
}

// classifyFailure maps an upstream failure to the error taxonomy. Quota and
// rate-limit failures are classified distinctly because the caller shows a
// different UI affordance for them.
func (c *Client) classifyFailure(resp *http.Response, body []byte) error {
	var parsed generateResponse
	_ = json.Unmarshal(body, &parsed)

	message := ""
	if parsed.Error != nil {
		message = parsed.Error.Message
	}
	if message == "" {
		message = strings.TrimSpace(string(body))
	}

	if isRateLimited(resp.StatusCode, message) {
		return &domain.RateLimitError{
			Service:    "gemini",
			RetryAfter: retryAfterSeconds(resp, parsed.Error),
			Message:    message,
		}
	}

	c.log.Error().Int("status", resp.StatusCode).Str("message", message).Msg("gemini request failed")
	return &domain.UpstreamError{Service: "gemini", Status: resp.StatusCode, Message: message}
}

func isRateLimited(status int, message string) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	lowered := strings.ToLower(message)
	return strings.Contains(lowered, "quota") ||
		strings.Contains(lowered, "rate limit") ||
		strings.Contains(lowered, "429")
}

// retryAfterSeconds extracts the retry hint from the Retry-After header or
// the structured retryDelay detail ("30s").
func retryAfterSeconds(resp *http.Response, apiErr *apiError) int {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
			return seconds
		}
	}
	if apiErr == nil {
		return 0
	}
	for _, detail := range apiErr.Details {
		if detail.RetryDelay == "" {
			continue
		}
		if d, err := time.ParseDuration(detail.RetryDelay); err == nil && d > 0 {
			return int(d / time.Second)
		}
	}
	return 0
}

func candidateText(parsed generateResponse) string {
	var sb strings.Builder
	for _, candidate := range parsed.Candidates {
		for _, p := range candidate.Content.Parts {
			sb.WriteString(p.Text)
		}
		break
	}
	return sb.String()
}
