package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/seotrue/Feelist/internal/core/domain"
)

const (
	defaultAuthURL  = "https://accounts.spotify.com/authorize"
	defaultTokenURL = "https://accounts.spotify.com/api/token"
)

// DefaultScopes are requested at login so the service can read the profile
// and write playlists on the user's behalf.
var DefaultScopes = []string{
	"user-read-private",
	"user-read-email",
	"playlist-modify-public",
	"playlist-modify-private",
}

// FlowConfig configures the authorization-code flow for a public client.
// No client secret is involved anywhere; the exchange is protected by PKCE.
type FlowConfig struct {
	ClientID    string
	RedirectURI string
	Scopes      []string

	// AuthURL and TokenURL default to the Spotify accounts endpoints and
	// are overridable for tests.
	AuthURL  string
	TokenURL string
}

// Flow drives the AuthSession state machine: it builds authorization URLs,
// exchanges codes for tokens, and performs the refresh-token grant.
type Flow struct {
	cfg oauth2.Config
	log zerolog.Logger
}

// NewFlow builds a Flow from configuration.
func NewFlow(cfg FlowConfig, log zerolog.Logger) *Flow {
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = defaultAuthURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	return &Flow{
		cfg: oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.RedirectURI,
			Scopes:      scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
		log: log,
	}
}

// AuthCodeURL builds the authorization redirect for a login attempt. The
// pair's challenge travels in the URL; the verifier stays with the caller.
func (f *Flow) AuthCodeURL(state string, pair PKCEPair) string {
	return f.cfg.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		oauth2.SetAuthURLParam("code_challenge", pair.Challenge),
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades an authorization code plus its verifier for tokens. The
// verifier is single-use; callers must discard it whether or not the
// exchange succeeds.
func (f *Flow) Exchange(ctx context.Context, code, verifier string) (*Session, error) {
	if code == "" {
		return nil, &domain.ValidationError{Field: "code", Reason: "is required"}
	}
	if err := ValidateVerifier(verifier); err != nil {
		return nil, &domain.ValidationError{Field: "codeVerifier", Reason: err.Error()}
	}

	token, err := f.cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, f.classify("token exchange", err)
	}
	return sessionFromToken(token), nil
}

// Refresh performs the refresh-token grant. Spotify may omit a new refresh
// token from the response, in which case the old one is carried forward.
func (f *Flow) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, &domain.AuthError{Reason: "no refresh token"}
	}

	src := f.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return nil, f.classify("token refresh", err)
	}

	s := sessionFromToken(token)
	if s.RefreshToken == "" {
		s.RefreshToken = refreshToken
	}
	return s, nil
}

// EnsureFresh returns a session whose access token is valid right now,
// refreshing it when expired. It fails with AuthError instead of letting a
// stale token reach the wire.
func (f *Flow) EnsureFresh(ctx context.Context, s *Session) (*Session, error) {
	if s == nil || !s.Authenticated || s.AccessToken == "" {
		return nil, &domain.AuthError{Reason: "not authenticated"}
	}
	if !s.Expired(time.Now()) {
		return s, nil
	}

	f.log.Debug().Time("expires_at", s.ExpiresAt).Msg("access token expired, refreshing")
	refreshed, err := f.Refresh(ctx, s.RefreshToken)
	if err != nil {
		return nil, err
	}
	refreshed.User = s.User
	return refreshed, nil
}

func (f *Flow) classify(op string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		f.log.Error().Int("status", status).Str("op", op).Msg("accounts endpoint rejected request")
		return &domain.UpstreamError{
			Service: "spotify accounts",
			Status:  status,
			Message: fmt.Sprintf("%s failed: %s", op, retrieveErr.ErrorCode),
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &domain.TransportError{URL: urlErr.URL, Err: urlErr.Err}
	}
	return fmt.Errorf("auth: %s: %w", op, err)
}

func sessionFromToken(token *oauth2.Token) *Session {
	return &Session{
		AccessToken:   token.AccessToken,
		RefreshToken:  token.RefreshToken,
		ExpiresAt:     token.Expiry,
		Authenticated: true,
	}
}
