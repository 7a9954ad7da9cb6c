// Package apiclient is a typed Go client for the Feelist API. Every call
// funnels through one request path that normalizes transport failures and
// non-2xx responses into a single *Error; machine-readable error envelopes
// contribute their code and request id. The client never retries.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/seotrue/Feelist/internal/auth"
	"github.com/seotrue/Feelist/internal/core/domain"
)

// Error is the one failure type the client produces. Status 0 means the
// request never reached the server.
type Error struct {
	Status     int
	StatusText string
	URL        string
	Code       string
	RequestID  string
	cause      error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("apiclient: request to %s failed: %v", e.URL, e.cause)
	}
	if e.Code != "" {
		return fmt.Sprintf("apiclient: %s %s (%s)", e.StatusText, e.URL, e.Code)
	}
	return fmt.Sprintf("apiclient: %s %s", e.StatusText, e.URL)
}

func (e *Error) Unwrap() error { return e.cause }

// Client talks to a Feelist server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a client for the given base URL. A nil httpClient gets a
// default with a timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type errorEnvelope struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"requestId"`
	} `json:"error"`
}

// do runs one request and decodes a 2xx response into out. Any failure
// comes back as *Error; there is exactly one attempt per call.
func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: marshal request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Status: 0, StatusText: "network error", URL: url, cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: 0, StatusText: "read error", URL: url, cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{
			Status:     resp.StatusCode,
			StatusText: resp.Status,
			URL:        url,
		}
		var envelope errorEnvelope
		if jsonErr := json.Unmarshal(raw, &envelope); jsonErr == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.RequestID = envelope.Error.RequestID
			if envelope.Error.Message != "" {
				apiErr.StatusText = envelope.Error.Message
			}
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("apiclient: decode %s %s: %w", method, path, err)
	}
	return nil
}

type analyzeResponse struct {
	Analysis domain.MoodDescriptor `json:"analysis"`
}

// Analyze submits mood text for analysis.
func (c *Client) Analyze(ctx context.Context, prompt string) (domain.MoodDescriptor, error) {
	var resp analyzeResponse
	err := c.do(ctx, http.MethodPost, "/api/analyze", "", map[string]string{"prompt": prompt}, &resp)
	return resp.Analysis, err
}

// LoginURL holds everything a public client needs to start a login.
type LoginURL struct {
	URL          string `json:"url"`
	CodeVerifier string `json:"codeVerifier"`
}

// Login fetches an authorization URL and its PKCE verifier.
func (c *Client) Login(ctx context.Context) (LoginURL, error) {
	var resp LoginURL
	err := c.do(ctx, http.MethodGet, "/api/auth/login", "", nil, &resp)
	return resp, err
}

// ExchangeCode completes the login with the authorization code and the
// verifier from Login.
func (c *Client) ExchangeCode(ctx context.Context, code, codeVerifier string) (auth.Session, error) {
	var resp auth.Session
	err := c.do(ctx, http.MethodPost, "/api/auth/spotify", "",
		map[string]string{"code": code, "codeVerifier": codeVerifier}, &resp)
	return resp, err
}

// Refresh trades a refresh token for a fresh session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (auth.Session, error) {
	var resp auth.Session
	err := c.do(ctx, http.MethodPost, "/api/auth/refresh", "",
		map[string]string{"refreshToken": refreshToken}, &resp)
	return resp, err
}

// Logout invalidates the session behind the access token.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", accessToken, nil, nil)
}

type createPlaylistResponse struct {
	Playlist          domain.Playlist `json:"playlist"`
	SpotifyPlaylistID string          `json:"spotifyPlaylistId"`
}

// CreatePlaylist asks the server to build a playlist for the analysis.
func (c *Client) CreatePlaylist(ctx context.Context, accessToken string, analysis domain.MoodDescriptor) (domain.Playlist, error) {
	var resp createPlaylistResponse
	err := c.do(ctx, http.MethodPost, "/api/playlist", accessToken,
		map[string]domain.MoodDescriptor{"analysis": analysis}, &resp)
	return resp.Playlist, err
}

// ShareView is the public representation of a playlist for embedding.
type ShareView struct {
	ID         string `json:"id"`
	SpotifyURL string `json:"spotifyUrl"`
	EmbedURL   string `json:"embedUrl"`
}

type shareResponse struct {
	Playlist ShareView `json:"playlist"`
}

// SharePlaylist fetches the share view of a playlist. No auth required.
func (c *Client) SharePlaylist(ctx context.Context, playlistID string) (ShareView, error) {
	var resp shareResponse
	err := c.do(ctx, http.MethodGet, "/api/playlist/"+playlistID, "", nil, &resp)
	return resp.Playlist, err
}
