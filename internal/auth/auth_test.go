package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seotrue/Feelist/internal/auth"
	"github.com/seotrue/Feelist/internal/core/domain"
)

// RFC 7636 appendix B golden vector.
const (
	rfcVerifier  = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	rfcChallenge = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
)

func TestChallengeFromVerifier_GoldenVector(t *testing.T) {
	require.Equal(t, rfcChallenge, auth.ChallengeFromVerifier(rfcVerifier))
}

func TestNewPKCEPair(t *testing.T) {
	pair := auth.NewPKCEPair()

	require.NoError(t, auth.ValidateVerifier(pair.Verifier))
	assert.Equal(t, auth.ChallengeFromVerifier(pair.Verifier), pair.Challenge)
	assert.NotContains(t, pair.Challenge, "=", "challenge must be unpadded")
	assert.NotContains(t, pair.Challenge, "+")
	assert.NotContains(t, pair.Challenge, "/")

	// Two login attempts never share a verifier.
	assert.NotEqual(t, pair.Verifier, auth.NewPKCEPair().Verifier)
}

func TestValidateVerifier(t *testing.T) {
	tests := []struct {
		name     string
		verifier string
		wantErr  bool
	}{
		{name: "golden vector", verifier: rfcVerifier},
		{name: "minimum length", verifier: strings.Repeat("a", 43)},
		{name: "maximum length", verifier: strings.Repeat("a", 128)},
		{name: "too short", verifier: strings.Repeat("a", 42), wantErr: true},
		{name: "too long", verifier: strings.Repeat("a", 129), wantErr: true},
		{name: "illegal character", verifier: strings.Repeat("a", 42) + "!", wantErr: true},
		{name: "empty", verifier: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ValidateVerifier(tt.verifier)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAuthCodeURL(t *testing.T) {
	flow := auth.NewFlow(auth.FlowConfig{
		ClientID:    "client-1",
		RedirectURI: "http://127.0.0.1:3000/callback",
	}, zerolog.Nop())

	pair := auth.PKCEPair{Verifier: rfcVerifier, Challenge: rfcChallenge}
	raw := flow.AuthCodeURL("state-1", pair)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "accounts.spotify.com", u.Host)
	assert.Equal(t, "client-1", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "http://127.0.0.1:3000/callback", q.Get("redirect_uri"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.Equal(t, rfcChallenge, q.Get("code_challenge"))
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Contains(t, q.Get("scope"), "playlist-modify-public")
}

func TestExchange(t *testing.T) {
	var gotForm url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","token_type":"Bearer","expires_in":3600}`))
	}))
	defer ts.Close()

	flow := auth.NewFlow(auth.FlowConfig{
		ClientID:    "client-1",
		RedirectURI: "http://127.0.0.1:3000/callback",
		TokenURL:    ts.URL,
	}, zerolog.Nop())

	session, err := flow.Exchange(context.Background(), "code-1", rfcVerifier)
	require.NoError(t, err)

	assert.Equal(t, "authorization_code", gotForm.Get("grant_type"))
	assert.Equal(t, "code-1", gotForm.Get("code"))
	assert.Equal(t, rfcVerifier, gotForm.Get("code_verifier"))

	assert.True(t, session.Authenticated)
	assert.Equal(t, "at-1", session.AccessToken)
	assert.Equal(t, "rt-1", session.RefreshToken)
	assert.False(t, session.Expired(time.Now()))
}

func TestExchange_InvalidInput(t *testing.T) {
	flow := auth.NewFlow(auth.FlowConfig{ClientID: "client-1"}, zerolog.Nop())

	var verr *domain.ValidationError

	_, err := flow.Exchange(context.Background(), "", rfcVerifier)
	require.ErrorAs(t, err, &verr)

	_, err = flow.Exchange(context.Background(), "code-1", "short")
	require.ErrorAs(t, err, &verr)
}

func TestExchange_UpstreamFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid authorization code"}`))
	}))
	defer ts.Close()

	flow := auth.NewFlow(auth.FlowConfig{ClientID: "client-1", TokenURL: ts.URL}, zerolog.Nop())

	_, err := flow.Exchange(context.Background(), "bad-code", rfcVerifier)
	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadRequest, upstream.Status)
}

func TestRefresh_KeepsOldRefreshToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "rt-old", r.PostForm.Get("refresh_token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-2","token_type":"Bearer","expires_in":3600}`))
	}))
	defer ts.Close()

	flow := auth.NewFlow(auth.FlowConfig{ClientID: "client-1", TokenURL: ts.URL}, zerolog.Nop())

	session, err := flow.Refresh(context.Background(), "rt-old")
	require.NoError(t, err)
	assert.Equal(t, "at-2", session.AccessToken)
	assert.Equal(t, "rt-old", session.RefreshToken, "old refresh token carried forward when upstream omits one")
}

func TestEnsureFresh(t *testing.T) {
	refreshCalls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-new","refresh_token":"rt-new","token_type":"Bearer","expires_in":3600}`))
	}))
	defer ts.Close()

	flow := auth.NewFlow(auth.FlowConfig{ClientID: "client-1", TokenURL: ts.URL}, zerolog.Nop())

	t.Run("valid session passes through", func(t *testing.T) {
		s := &auth.Session{AccessToken: "at-1", Authenticated: true, ExpiresAt: time.Now().Add(time.Hour)}
		fresh, err := flow.EnsureFresh(context.Background(), s)
		require.NoError(t, err)
		assert.Equal(t, "at-1", fresh.AccessToken)
		assert.Zero(t, refreshCalls)
	})

	t.Run("expired session is refreshed", func(t *testing.T) {
		s := &auth.Session{
			AccessToken:   "at-stale",
			RefreshToken:  "rt-1",
			Authenticated: true,
			ExpiresAt:     time.Now().Add(-time.Minute),
			User:          domain.UserProfile{ID: "u1", DisplayName: "User One"},
		}
		fresh, err := flow.EnsureFresh(context.Background(), s)
		require.NoError(t, err)
		assert.Equal(t, "at-new", fresh.AccessToken)
		assert.Equal(t, "u1", fresh.User.ID, "profile survives refresh")
		assert.Equal(t, 1, refreshCalls)
	})

	t.Run("unauthenticated session fails before any network call", func(t *testing.T) {
		before := refreshCalls
		s := &auth.Session{}
		_, err := flow.EnsureFresh(context.Background(), s)
		var authErr *domain.AuthError
		require.ErrorAs(t, err, &authErr)
		require.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Equal(t, before, refreshCalls)
	})
}

func TestSession_Clear(t *testing.T) {
	s := &auth.Session{
		AccessToken:   "at-1",
		RefreshToken:  "rt-1",
		ExpiresAt:     time.Now().Add(time.Hour),
		Authenticated: true,
		User:          domain.UserProfile{ID: "u1"},
	}
	s.Clear()

	assert.False(t, s.Authenticated)
	assert.Empty(t, s.AccessToken)
	assert.Empty(t, s.RefreshToken)
	assert.True(t, s.ExpiresAt.IsZero())
	assert.Empty(t, s.User.ID)
	assert.False(t, s.Usable(time.Now()))
}
